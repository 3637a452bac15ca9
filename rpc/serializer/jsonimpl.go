package serializer

import (
	"github.com/ValentinKolb/redmine/rpc/serializer/converters"
	"github.com/ValentinKolb/redmine/rpc/serializer/wire"
)

// NewJSONSerializer creates a new serializer using JSON encoding
func NewJSONSerializer(opts ...Option) ISerializer {
	return &jsonSerializerImpl{config: newConfig(opts)}
}

// jsonSerializerImpl implements the ISerializer interface using JSON encoding
type jsonSerializerImpl struct {
	config config
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (s *jsonSerializerImpl) Format() string {
	return wire.FormatJSON
}

func (s *jsonSerializerImpl) ContentType() string {
	return "application/json"
}

func (s *jsonSerializerImpl) Registry() converters.IRegistry {
	return s.config.registry
}

func (s *jsonSerializerImpl) NewReader(data []byte) wire.IReader {
	return wire.NewJSONReader(data)
}

func (s *jsonSerializerImpl) NewWriter() wire.IWriter {
	return wire.NewJSONWriter(s.config.writer)
}
