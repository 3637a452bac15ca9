package wire

import (
	"errors"
	"io"
	"slices"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/puzpuzpuz/xsync/v3"
)

const FormatJSON = "json"

// jsonAPIs caches frozen json-iterator configs by indention step
var jsonAPIs = xsync.NewMapOf[int, jsoniter.API]()

func jsonAPI(indent int) jsoniter.API {
	api, _ := jsonAPIs.LoadOrCompute(indent, func() jsoniter.API {
		return jsoniter.Config{EscapeHTML: false, IndentionStep: indent}.Froze()
	})
	return api
}

// --------------------------------------------------------------------------
// JSON reader
// --------------------------------------------------------------------------

// NewJSONReader creates a reader over a JSON document
func NewJSONReader(data []byte) IReader {
	return &jsonReader{data: data, iter: jsoniter.ParseBytes(jsonAPI(0), data), pending: true}
}

// jsonReader wraps a json-iterator Iterator. The iterator itself is always
// positioned right before the value the cursor refers to.
type jsonReader struct {
	data    []byte
	iter    *jsoniter.Iterator
	pending bool
	wrapped bool // Root unwrapped {"<key>": ...}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see wire.IReader)
// --------------------------------------------------------------------------

func (r *jsonReader) Format() string {
	return FormatJSON
}

func (r *jsonReader) Root(keys ...string) error {
	r.iter = jsoniter.ParseBytes(jsonAPI(0), r.data)
	r.pending = true
	r.wrapped = false
	if len(keys) == 0 || r.iter.WhatIsNext() != jsoniter.ObjectValue {
		return r.err()
	}

	// unwrap {"<key>": <entity>} when the first property names the entity
	probe := jsoniter.ParseBytes(jsonAPI(0), r.data)
	if field := probe.ReadObject(); probe.Error == nil && slices.Contains(keys, field) {
		r.iter = probe
		r.wrapped = true
		return nil
	}
	r.iter = jsoniter.ParseBytes(jsonAPI(0), r.data)
	return nil
}

func (r *jsonReader) Kind() ValueKind {
	if !r.pending {
		return KindNone
	}
	switch r.iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		return KindObject
	case jsoniter.ArrayValue:
		return KindArray
	case jsoniter.NilValue:
		return KindNull
	case jsoniter.StringValue, jsoniter.NumberValue, jsoniter.BoolValue:
		return KindScalar
	default:
		return KindNone
	}
}

func (r *jsonReader) ReadObject(fn func(field string) error) error {
	if !r.pending {
		return ErrNoValue
	}
	r.pending = false
	if r.iter.WhatIsNext() != jsoniter.ObjectValue {
		r.iter.Skip()
		return r.err()
	}

	var cbErr error
	r.iter.ReadObjectCB(func(iter *jsoniter.Iterator, field string) bool {
		r.pending = true
		if cbErr = fn(field); cbErr != nil {
			return false
		}
		if r.pending {
			iter.Skip()
			r.pending = false
		}
		return r.err() == nil
	})
	if cbErr != nil {
		return cbErr
	}
	return r.err()
}

func (r *jsonReader) ReadArray(fn func() error) error {
	if !r.pending {
		return ErrNoValue
	}
	r.pending = false
	if r.iter.WhatIsNext() != jsoniter.ArrayValue {
		r.iter.Skip()
		return r.err()
	}

	var cbErr error
	r.iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
		r.pending = true
		if cbErr = fn(); cbErr != nil {
			return false
		}
		if r.pending {
			iter.Skip()
			r.pending = false
		}
		return r.err() == nil
	})
	if cbErr != nil {
		return cbErr
	}
	return r.err()
}

func (r *jsonReader) ReadText() (string, error) {
	if !r.pending {
		return "", ErrNoValue
	}
	r.pending = false

	var text string
	switch r.iter.WhatIsNext() {
	case jsoniter.StringValue:
		text = r.iter.ReadString()
	case jsoniter.NumberValue:
		text = string(r.iter.ReadNumber())
	case jsoniter.BoolValue:
		text = strconv.FormatBool(r.iter.ReadBool())
	case jsoniter.NilValue:
		r.iter.ReadNil()
	default:
		r.iter.Skip()
	}
	return text, r.err()
}

func (r *jsonReader) Skip() error {
	if !r.pending {
		return nil
	}
	r.pending = false
	r.iter.Skip()
	return r.err()
}

func (r *jsonReader) End() error {
	if err := r.Skip(); err != nil {
		return err
	}

	if r.wrapped {
		r.wrapped = false
		// ReadObject returns "" on the closing brace and on errors
		for field := r.iter.ReadObject(); field != ""; field = r.iter.ReadObject() {
			r.iter.Skip()
		}
		if err := r.err(); err != nil {
			return err
		}
	}

	// at the end of input the iterator reports io.EOF, any other token leaves it nil
	r.iter.WhatIsNext()
	if r.iter.Error == nil {
		return ErrTrailingData
	}
	return r.err()
}

// err returns the iterator error. io.EOF after a complete value is not an error;
// truncated input is reported by json-iterator with its own message.
func (r *jsonReader) err() error {
	if r.iter.Error == nil || errors.Is(r.iter.Error, io.EOF) {
		return nil
	}
	return r.iter.Error
}

// --------------------------------------------------------------------------
// JSON writer
// --------------------------------------------------------------------------

// NewJSONWriter creates a writer producing a JSON document
func NewJSONWriter(opts WriterOptions) IWriter {
	return &jsonWriter{
		opts:   opts,
		stream: jsoniter.NewStream(jsonAPI(len(opts.Indent)), nil, 512),
	}
}

type jsonFrame struct {
	array bool
	first bool
}

// jsonWriter wraps a json-iterator Stream and tracks object/array nesting to
// place separators and property names
type jsonWriter struct {
	opts    WriterOptions
	stream  *jsoniter.Stream
	stack   []jsonFrame
	wrapped bool // document is wrapped in {"<root name>": ...}
	err     error
}

// --------------------------------------------------------------------------
// Interface Methods (docu see wire.IWriter)
// --------------------------------------------------------------------------

func (w *jsonWriter) Format() string {
	return FormatJSON
}

func (w *jsonWriter) StartObject(name string) {
	if w.err != nil {
		return
	}
	w.begin(name)
	w.stream.WriteObjectStart()
	w.stack = append(w.stack, jsonFrame{first: true})
}

func (w *jsonWriter) EndObject() {
	if w.pop(false) {
		w.stream.WriteObjectEnd()
		w.closeRoot()
	}
}

func (w *jsonWriter) StartArray(name string) {
	if w.err != nil {
		return
	}
	w.begin(name)
	w.stream.WriteArrayStart()
	w.stack = append(w.stack, jsonFrame{array: true, first: true})
}

func (w *jsonWriter) EndArray() {
	if w.pop(true) {
		w.stream.WriteArrayEnd()
		w.closeRoot()
	}
}

func (w *jsonWriter) Attr(name string, v Scalar) {
	w.Field(name, v)
}

func (w *jsonWriter) Field(name string, v Scalar) {
	if w.err != nil {
		return
	}
	w.begin(name)
	text := v.Text(w.opts.dateTimeLayout())
	switch {
	case v.quoted():
		w.stream.WriteString(text)
	default:
		w.stream.WriteRaw(text)
	}
	w.closeRoot()
}

func (w *jsonWriter) Bytes() ([]byte, error) {
	if w.err == nil && len(w.stack) != 0 {
		w.err = ErrUnbalanced
	}
	if w.err == nil && w.stream.Error != nil {
		w.err = w.stream.Error
	}
	if w.err != nil {
		return nil, w.err
	}
	return w.stream.Buffer(), nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// begin writes the separator and property name in front of a new value
func (w *jsonWriter) begin(name string) {
	if len(w.stack) == 0 {
		if name != "" {
			w.stream.WriteObjectStart()
			w.stream.WriteObjectField(name)
			w.wrapped = true
		}
		return
	}
	top := &w.stack[len(w.stack)-1]
	if !top.first {
		w.stream.WriteMore()
	}
	top.first = false
	if !top.array {
		w.stream.WriteObjectField(name)
	}
}

func (w *jsonWriter) pop(array bool) bool {
	if w.err != nil {
		return false
	}
	if len(w.stack) == 0 || w.stack[len(w.stack)-1].array != array {
		w.err = ErrUnbalanced
		return false
	}
	w.stack = w.stack[:len(w.stack)-1]
	return true
}

// closeRoot closes the wrapping object once the root value is complete
func (w *jsonWriter) closeRoot() {
	if len(w.stack) == 0 && w.wrapped {
		w.stream.WriteObjectEnd()
		w.wrapped = false
	}
}
