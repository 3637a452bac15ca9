package wire

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

const FormatXML = "xml"

// --------------------------------------------------------------------------
// XML reader
// --------------------------------------------------------------------------

// NewXMLReader creates a reader over an XML document
func NewXMLReader(data []byte) IReader {
	return &xmlReader{dec: xml.NewDecoder(bytes.NewReader(data))}
}

// xmlReader streams tokens from encoding/xml. The cursor is either an attribute
// value or an element whose start tag has already been consumed.
type xmlReader struct {
	dec     *xml.Decoder
	pending bool // a value is positioned and not yet consumed
	isAttr  bool
	attrVal string
	elem    xml.StartElement
}

// --------------------------------------------------------------------------
// Interface Methods (docu see wire.IReader)
// --------------------------------------------------------------------------

func (r *xmlReader) Format() string {
	return FormatXML
}

func (r *xmlReader) Root(keys ...string) error {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return err
		}
		if start, ok := tok.(xml.StartElement); ok {
			if len(keys) > 0 && !slices.Contains(keys, start.Name.Local) {
				return fmt.Errorf("%w: expected <%s>, got <%s>", ErrUnexpectedRoot, strings.Join(keys, "|"), start.Name.Local)
			}
			r.positionElement(start)
			return nil
		}
	}
}

func (r *xmlReader) Kind() ValueKind {
	switch {
	case !r.pending:
		return KindNone
	case r.isAttr:
		return KindScalar
	case attrValue(r.elem, "type") == "array":
		return KindArray
	case attrValue(r.elem, "nil") == "true":
		return KindNull
	default:
		return KindObject
	}
}

func (r *xmlReader) ReadObject(fn func(field string) error) error {
	if !r.pending {
		return ErrNoValue
	}
	r.pending = false
	if r.isAttr {
		return nil
	}
	elem := r.elem

	// attributes first
	for _, attr := range elem.Attr {
		if isMarkupAttr(attr) {
			continue
		}
		r.positionAttr(attr.Value)
		if err := fn(attr.Name.Local); err != nil {
			return err
		}
		r.pending = false
	}

	// then child elements
	return r.eachChild(func(child xml.StartElement) error {
		return fn(child.Name.Local)
	})
}

func (r *xmlReader) ReadArray(fn func() error) error {
	if !r.pending {
		return ErrNoValue
	}
	r.pending = false
	if r.isAttr {
		return nil
	}
	return r.eachChild(func(xml.StartElement) error {
		return fn()
	})
}

func (r *xmlReader) ReadText() (string, error) {
	if !r.pending {
		return "", ErrNoValue
	}
	r.pending = false
	if r.isAttr {
		return r.attrVal, nil
	}

	var sb strings.Builder
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			// structured content where text was expected
			if err := r.dec.Skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}

func (r *xmlReader) Skip() error {
	if !r.pending {
		return nil
	}
	r.pending = false
	if r.isAttr {
		return nil
	}
	return r.dec.Skip()
}

func (r *xmlReader) End() error {
	if err := r.Skip(); err != nil {
		return err
	}

	for {
		tok, err := r.dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return ErrTrailingData
			}
		default:
			return fmt.Errorf("%w: %T", ErrTrailingData, tok)
		}
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// eachChild positions the cursor on every child element until the end tag of
// the current element and skips whatever fn leaves unread
func (r *xmlReader) eachChild(fn func(child xml.StartElement) error) error {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			r.positionElement(t)
			if err := fn(t); err != nil {
				return err
			}
			if err := r.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (r *xmlReader) positionElement(start xml.StartElement) {
	r.pending = true
	r.isAttr = false
	r.attrVal = ""
	r.elem = start
}

func (r *xmlReader) positionAttr(value string) {
	r.pending = true
	r.isAttr = true
	r.attrVal = value
}

// isMarkupAttr reports attributes that describe the element rather than carry data
func isMarkupAttr(attr xml.Attr) bool {
	switch {
	case attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns":
		return true
	case attr.Name.Local == "type" && attr.Value == "array":
		return true
	case attr.Name.Local == "nil" && attr.Value == "true":
		return true
	}
	return false
}

func attrValue(elem xml.StartElement, name string) string {
	for _, attr := range elem.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// --------------------------------------------------------------------------
// XML writer
// --------------------------------------------------------------------------

// NewXMLWriter creates a writer producing an XML document
func NewXMLWriter(opts WriterOptions) IWriter {
	w := &xmlWriter{opts: opts}
	if opts.XMLDeclaration {
		w.buf.WriteString(xml.Header)
	}
	w.enc = xml.NewEncoder(&w.buf)
	if opts.Indent != "" {
		w.enc.Indent("", opts.Indent)
	}
	return w
}

// xmlWriter keeps the most recent start tag open until content follows, so that
// attributes can still be added to it
type xmlWriter struct {
	buf     bytes.Buffer
	enc     *xml.Encoder
	opts    WriterOptions
	pending *xml.StartElement
	open    []xml.Name
	err     error
}

// --------------------------------------------------------------------------
// Interface Methods (docu see wire.IWriter)
// --------------------------------------------------------------------------

func (w *xmlWriter) Format() string {
	return FormatXML
}

func (w *xmlWriter) StartObject(name string) {
	w.flush()
	w.pending = &xml.StartElement{Name: xml.Name{Local: name}}
}

func (w *xmlWriter) EndObject() {
	w.flush()
	if w.err != nil {
		return
	}
	if len(w.open) == 0 {
		w.err = ErrUnbalanced
		return
	}
	name := w.open[len(w.open)-1]
	w.open = w.open[:len(w.open)-1]
	w.encode(xml.EndElement{Name: name})
}

func (w *xmlWriter) StartArray(name string) {
	w.flush()
	w.pending = &xml.StartElement{
		Name: xml.Name{Local: name},
		Attr: []xml.Attr{{Name: xml.Name{Local: "type"}, Value: "array"}},
	}
}

func (w *xmlWriter) EndArray() {
	w.EndObject()
}

func (w *xmlWriter) Attr(name string, v Scalar) {
	if w.err != nil {
		return
	}
	if w.pending == nil {
		w.err = fmt.Errorf("%w: %s", ErrAttributeAfterContent, name)
		return
	}
	w.pending.Attr = append(w.pending.Attr, xml.Attr{
		Name:  xml.Name{Local: name},
		Value: v.Text(w.opts.dateTimeLayout()),
	})
}

func (w *xmlWriter) Field(name string, v Scalar) {
	w.flush()
	start := xml.StartElement{Name: xml.Name{Local: name}}
	w.encode(start)
	if text := v.Text(w.opts.dateTimeLayout()); text != "" {
		w.encode(xml.CharData(text))
	}
	w.encode(start.End())
}

func (w *xmlWriter) Bytes() ([]byte, error) {
	w.flush()
	if w.err == nil && len(w.open) != 0 {
		w.err = ErrUnbalanced
	}
	if w.err == nil {
		w.err = w.enc.Flush()
	}
	if w.err != nil {
		return nil, w.err
	}
	return w.buf.Bytes(), nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// flush emits the pending start tag
func (w *xmlWriter) flush() {
	if w.pending == nil {
		return
	}
	start := *w.pending
	w.pending = nil
	w.encode(start)
	w.open = append(w.open, start.Name)
}

func (w *xmlWriter) encode(tok xml.Token) {
	if w.err != nil {
		return
	}
	w.err = w.enc.EncodeToken(tok)
}
