package serializer

import (
	"github.com/ValentinKolb/redmine/rpc/serializer/converters"
	"github.com/ValentinKolb/redmine/rpc/serializer/wire"
)

// NewXMLSerializer creates a new serializer using XML encoding
func NewXMLSerializer(opts ...Option) ISerializer {
	return &xmlSerializerImpl{config: newConfig(opts)}
}

// xmlSerializerImpl implements the ISerializer interface using XML encoding
type xmlSerializerImpl struct {
	config config
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (s *xmlSerializerImpl) Format() string {
	return wire.FormatXML
}

func (s *xmlSerializerImpl) ContentType() string {
	return "application/xml"
}

func (s *xmlSerializerImpl) Registry() converters.IRegistry {
	return s.config.registry
}

func (s *xmlSerializerImpl) NewReader(data []byte) wire.IReader {
	return wire.NewXMLReader(data)
}

func (s *xmlSerializerImpl) NewWriter() wire.IWriter {
	return wire.NewXMLWriter(s.config.writer)
}
