package serializer

import (
	"github.com/ValentinKolb/redmine/rpc/common"
	"github.com/ValentinKolb/redmine/rpc/serializer/converters"
	"github.com/ValentinKolb/redmine/rpc/serializer/wire"
)

var Logger = common.GetLogger("serializer")

// ISerializer is the interface for the wire formats the client can talk.
// Entities are (de)serialized through the generic package functions Serialize,
// Deserialize, DeserializeToPagedResults and Count.
type ISerializer interface {
	// Format returns the wire format name ("xml" or "json"), also used as path suffix
	Format() string
	// ContentType returns the MIME type sent with request bodies
	ContentType() string
	// Registry returns the converters available to this serializer
	Registry() converters.IRegistry
	// NewReader creates a reader over one document
	NewReader(data []byte) wire.IReader
	// NewWriter creates a writer for one document
	NewWriter() wire.IWriter
}

// New returns the serializer for the given format name
func New(format string, opts ...Option) (ISerializer, error) {
	switch format {
	case wire.FormatXML:
		return NewXMLSerializer(opts...), nil
	case wire.FormatJSON:
		return NewJSONSerializer(opts...), nil
	default:
		return nil, &SerializationError{Format: format, Err: ErrUnknownFormat}
	}
}

// --------------------------------------------------------------------------
// Options
// --------------------------------------------------------------------------

// Option configures a serializer
type Option func(*config)

type config struct {
	registry converters.IRegistry
	writer   wire.WriterOptions
}

func newConfig(opts []Option) config {
	c := config{}
	for _, opt := range opts {
		opt(&c)
	}
	if c.registry == nil {
		c.registry = converters.NewRegistry()
	}
	return c
}

// WithRegistry sets the converter registry (default: all entity types)
func WithRegistry(reg converters.IRegistry) Option {
	return func(c *config) {
		c.registry = reg
	}
}

// WithIndent enables pretty printing with the given indent. XML uses indent as
// is. JSON only indents with spaces, one per byte of indent, so "\t" becomes a
// single space.
func WithIndent(indent string) Option {
	return func(c *config) {
		c.writer.Indent = indent
	}
}

// WithXMLDeclaration prepends <?xml version="1.0" encoding="UTF-8"?> to XML documents
func WithXMLDeclaration() Option {
	return func(c *config) {
		c.writer.XMLDeclaration = true
	}
}

// WithDateTimeLayout sets the layout of written timestamps (default RFC 3339)
func WithDateTimeLayout(layout string) Option {
	return func(c *config) {
		c.writer.DateTimeLayout = layout
	}
}
