package serializer

import (
	"bytes"

	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/rpc/serializer/converters"
	"github.com/ValentinKolb/redmine/rpc/serializer/wire"
)

// Serialize writes v as a complete document in the format of s. The entity is
// nested under its singular wire key.
//
// A type without converter in the registry of s yields a *ConfigurationError,
// every other failure a *SerializationError.
func Serialize[T any](s ISerializer, v *T) (data []byte, err error) {
	t := converters.TypeOf[T]()
	conv, err := converters.Lookup[T](s.Registry())
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, &SerializationError{Type: t, Format: s.Format(), Err: ErrNilEntity}
	}
	defer recoverSerialization(t, s.Format(), &err)

	w := s.NewWriter()
	if err := conv.Write(w, "", v); err != nil {
		return nil, &SerializationError{Type: t, Format: s.Format(), Err: err}
	}
	data, err = w.Bytes()
	if err != nil {
		return nil, &SerializationError{Type: t, Format: s.Format(), Err: err}
	}
	return data, nil
}

// SerializePagedResults writes page as a list envelope, the inverse of
// DeserializeToPagedResults. A nil page is written as an empty list.
func SerializePagedResults[T any](s ISerializer, page *types.PagedResults[T]) (data []byte, err error) {
	t := converters.TypeOf[T]()
	conv, err := converters.Lookup[T](s.Registry())
	if err != nil {
		return nil, err
	}
	if page == nil {
		page = &types.PagedResults[T]{}
	}
	defer recoverSerialization(t, s.Format(), &err)

	key := conv.Key()
	w := s.NewWriter()
	meta := func() {
		w.Attr("total_count", wire.Int(page.TotalItems))
		w.Attr("offset", wire.Int(page.Offset))
		w.Attr("limit", wire.Int(page.Limit))
	}

	// XML carries the metadata as attributes of the list element, JSON as
	// properties next to the array
	if s.Format() == wire.FormatXML {
		w.StartArray(key.Plural)
		meta()
	} else {
		w.StartObject("")
		w.StartArray(key.Plural)
	}
	for i := range page.Items {
		if err := conv.Write(w, "", &page.Items[i]); err != nil {
			return nil, &SerializationError{Type: t, Format: s.Format(), Err: err}
		}
	}
	w.EndArray()
	if s.Format() != wire.FormatXML {
		meta()
		w.EndObject()
	}

	data, err = w.Bytes()
	if err != nil {
		return nil, &SerializationError{Type: t, Format: s.Format(), Err: err}
	}
	return data, nil
}

// Deserialize reads one entity from data. Nil, blank and JSON null documents
// yield (nil, nil). On failure no partially read entity is returned.
//
// A type without converter in the registry of s yields a *ConfigurationError,
// every other failure a *DeserializationError.
func Deserialize[T any](s ISerializer, data []byte) (v *T, err error) {
	t := converters.TypeOf[T]()
	conv, err := converters.Lookup[T](s.Registry())
	if err != nil {
		return nil, err
	}
	if isEmptyDocument(s.Format(), data) {
		return nil, nil
	}
	defer recoverDeserialization(t, s.Format(), &err)

	r := s.NewReader(data)
	if err := r.Root(conv.Key().Singular); err != nil {
		return nil, &DeserializationError{Type: t, Format: s.Format(), Err: err}
	}
	entity, err := conv.Read(r)
	if err == nil {
		err = r.End()
	}
	if err != nil {
		return nil, &DeserializationError{Type: t, Format: s.Format(), Err: err}
	}
	return entity, nil
}

// DeserializeToPagedResults reads a list envelope. Blank documents yield an empty page.
func DeserializeToPagedResults[T any](s ISerializer, data []byte) (page *types.PagedResults[T], err error) {
	t := converters.TypeOf[T]()
	conv, err := converters.Lookup[T](s.Registry())
	if err != nil {
		return nil, err
	}
	if isEmptyDocument(s.Format(), data) {
		return &types.PagedResults[T]{}, nil
	}
	defer recoverDeserialization(t, s.Format(), &err)

	dec := newPagedDecoder(s, conv, data, false)
	if err := dec.decode(); err != nil {
		return nil, &DeserializationError{Type: t, Format: s.Format(), Err: err}
	}
	return &dec.page, nil
}

// Count returns the total item count of a list envelope without materializing
// the items. Blank documents count 0.
func Count[T any](s ISerializer, data []byte) (count int, err error) {
	t := converters.TypeOf[T]()
	conv, err := converters.Lookup[T](s.Registry())
	if err != nil {
		return 0, err
	}
	if isEmptyDocument(s.Format(), data) {
		return 0, nil
	}
	defer recoverDeserialization(t, s.Format(), &err)

	dec := newPagedDecoder(s, conv, data, true)
	if err := dec.decode(); err != nil {
		return 0, &DeserializationError{Type: t, Format: s.Format(), Err: err}
	}
	return dec.page.TotalItems, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

var jsonNull = []byte("null")

func isEmptyDocument(format string, data []byte) bool {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return true
	}
	return format == wire.FormatJSON && bytes.Equal(data, jsonNull)
}
