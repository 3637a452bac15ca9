package converters

import (
	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/rpc/serializer/wire"
)

// --------------------------------------------------------------------------
// Objects and lists
// --------------------------------------------------------------------------

// readObject allocates a T and fills it field by field. Fields the callback does
// not consume are skipped by the reader. A null value yields nil.
func readObject[T any](r wire.IReader, field func(v *T, name string) error) (*T, error) {
	if r.Kind() == wire.KindNull {
		return nil, r.Skip()
	}
	v := new(T)
	if err := r.ReadObject(func(name string) error {
		return field(v, name)
	}); err != nil {
		return nil, err
	}
	return v, nil
}

// readText reads a scalar-wrapped entity
func readText[T any](r wire.IReader, wrap func(string) T) (*T, error) {
	if r.Kind() == wire.KindNull {
		return nil, r.Skip()
	}
	text, err := r.ReadText()
	if err != nil {
		return nil, err
	}
	v := wrap(text)
	return &v, nil
}

// readList reads a collection. A JSON object in place of an array is read as a
// single item; XML containers are always lists. Empty collections read as nil.
func readList[T any](r wire.IReader, read func(wire.IReader) (*T, error)) ([]T, error) {
	var list []T
	item := func() error {
		v, err := read(r)
		if err != nil || v == nil {
			return err
		}
		list = append(list, *v)
		return nil
	}

	var err error
	switch kind := r.Kind(); {
	case kind == wire.KindArray, kind == wire.KindObject && r.Format() == wire.FormatXML:
		err = r.ReadArray(item)
	case kind == wire.KindObject:
		err = item()
	default:
		err = r.Skip()
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

// writeList writes a collection, nothing when it is empty
func writeList[T any](w wire.IWriter, name, itemName string, list []T, write func(wire.IWriter, string, *T)) {
	if len(list) == 0 {
		return
	}
	w.StartArray(name)
	for i := range list {
		write(w, itemName, &list[i])
	}
	w.EndArray()
}

// readInts reads a collection of ids
func readInts(r wire.IReader) ([]int, error) {
	return readList(r, func(r wire.IReader) (*int, error) {
		return wire.ReadNullableInt(r)
	})
}

// writeInts writes a collection of ids, nothing when it is empty
func writeInts(w wire.IWriter, name, itemName string, ids []int) {
	writeList(w, name, itemName, ids, func(w wire.IWriter, name string, id *int) {
		w.Field(name, wire.Int(*id))
	})
}

// --------------------------------------------------------------------------
// References
// --------------------------------------------------------------------------

// reference is satisfied by IdentifiableName and every type defined on top of it
type reference interface {
	~struct {
		ID   int
		Name string
	}
}

// readRef reads an id/name reference. XML carries both as attributes, JSON as properties.
func readRef(r wire.IReader) (*types.IdentifiableName, error) {
	return readObject(r, func(v *types.IdentifiableName, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "name":
			v.Name, err = wire.ReadString(r)
		}
		return err
	})
}

// writeRef writes an id/name reference, nothing when v is nil
func writeRef(w wire.IWriter, name string, v *types.IdentifiableName) {
	if v == nil {
		return
	}
	w.StartObject(name)
	w.Attr("id", wire.Int(v.ID))
	wire.WriteAttrIfNotDefault(w, "name", v.Name, wire.String)
	w.EndObject()
}

func readRefAs[T reference](r wire.IReader) (*T, error) {
	ref, err := readRef(r)
	if err != nil || ref == nil {
		return nil, err
	}
	v := T(*ref)
	return &v, nil
}

func writeRefAs[T reference](w wire.IWriter, name string, v *T) {
	if v == nil {
		return
	}
	ref := types.IdentifiableName(*v)
	writeRef(w, name, &ref)
}

// writeRefID writes the id of a reference as a request key (e.g. project_id)
func writeRefID(w wire.IWriter, name string, v *types.IdentifiableName) {
	if v != nil && v.ID != 0 {
		w.Field(name, wire.Int(v.ID))
	}
}

// writeRefIDOrEmpty writes the id of a reference, or the empty marker which
// clears the association on the server
func writeRefIDOrEmpty(w wire.IWriter, name string, v *types.IdentifiableName) {
	if v == nil {
		w.Field(name, wire.Empty())
		return
	}
	wire.WriteOrEmpty(w, name, v.ID, wire.Int)
}

// --------------------------------------------------------------------------
// Scalars
// --------------------------------------------------------------------------

func stringOf[S ~string](s S) wire.Scalar {
	return wire.String(string(s))
}

func intOf[I ~int](i I) wire.Scalar {
	return wire.Int(int(i))
}
