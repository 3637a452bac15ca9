package wire

import "errors"

var (
	ErrUnexpectedRoot        = errors.New("unexpected root element")
	ErrAttributeAfterContent = errors.New("attribute written after element content")
	ErrUnbalanced            = errors.New("unbalanced object or array")
	ErrNoValue               = errors.New("no value at cursor")
	ErrTrailingData          = errors.New("unexpected data after document root")
)

// ValueKind describes the value the reader's cursor is positioned on
type ValueKind uint8

const (
	KindNone   ValueKind = iota // cursor is not on a value
	KindNull                    // explicit null (JSON null, XML nil="true")
	KindScalar                  // string, number, bool or XML attribute
	KindObject                  // JSON object or XML element
	KindArray                   // JSON array or XML element with type="array"
)

// String returns the string representation of a ValueKind
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "none"
	}
}

// --------------------------------------------------------------------------
// Reader
// --------------------------------------------------------------------------

// IReader is a pull reader over one wire document. The cursor always sits on a
// single value. Read methods consume that value entirely and never look past it.
// A value a callback leaves unread is skipped structurally (the whole subtree)
// before the next field or item is positioned.
type IReader interface {
	// Format returns the wire format name ("xml" or "json")
	Format() string
	// Root positions the cursor on the entity value of the document.
	// For XML the root element name must match one of keys (if any are given).
	// For JSON the document is unwrapped one level when its first property is one of keys.
	Root(keys ...string) error
	// Kind reports what the cursor is positioned on
	Kind() ValueKind
	// ReadObject calls fn once per field of the object at the cursor, with the
	// cursor positioned on the field value. XML attributes are reported as fields
	// before child elements. Non-object values are consumed and ignored.
	ReadObject(fn func(field string) error) error
	// ReadArray calls fn once per item of the array at the cursor, with the cursor
	// positioned on the item. Non-array values are consumed and ignored.
	ReadArray(fn func() error) error
	// ReadText consumes a scalar and returns its text form. Null and structured
	// values yield "".
	ReadText() (string, error)
	// Skip consumes the value at the cursor
	Skip() error
	// End consumes the rest of the document after the entity value. Whatever is
	// left of a JSON wrapper object is skipped up to its closing brace. Anything
	// but whitespace (and XML comments or processing instructions) after the
	// root is an error.
	End() error
}

// --------------------------------------------------------------------------
// Writer
// --------------------------------------------------------------------------

// IWriter emits one wire document. Errors are sticky: after the first failure all
// calls are no-ops and Bytes reports the error.
//
// The name passed to each call is the XML element (or attribute) name. In JSON it
// is the property name inside objects, ignored inside arrays, and wraps the
// document one level at the root.
type IWriter interface {
	// Format returns the wire format name ("xml" or "json")
	Format() string
	StartObject(name string)
	EndObject()
	StartArray(name string)
	EndArray()
	// Attr writes an XML attribute on the element just started. JSON writes a property.
	Attr(name string, v Scalar)
	// Field writes a scalar child element (XML) or property/array item (JSON)
	Field(name string, v Scalar)
	// Bytes returns the finished document or the first error
	Bytes() ([]byte, error)
}

// WriterOptions configures a writer
type WriterOptions struct {
	Indent         string // empty for compact output, JSON indents len(Indent) spaces
	DateTimeLayout string // defaults to DateTimeLayout
	XMLDeclaration bool   // prepend <?xml ...?> (XML only)
}

func (o WriterOptions) dateTimeLayout() string {
	if o.DateTimeLayout == "" {
		return DateTimeLayout
	}
	return o.DateTimeLayout
}
