package converters

import (
	"errors"
	"fmt"

	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/rpc/serializer/wire"
)

var (
	// ErrNoConverter is returned when a type has no converter in a registry
	ErrNoConverter = errors.New("no converter registered")
	// ErrNilEntity is returned when a nil entity is written
	ErrNilEntity = errors.New("entity is nil")
)

// ConfigurationError reports a type that cannot be converted with the given registry
type ConfigurationError struct {
	Type string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s for %s", ErrNoConverter, e.Type)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrNoConverter
}

// Key holds the wire names of an entity: the element/property name of a single
// entity and the name of a collection of them
type Key struct {
	Singular string
	Plural   string
}

// IConverter reads and writes one entity type. The same converter serves XML and
// JSON, the format is decided by the reader/writer passed in.
type IConverter[T any] interface {
	// Type returns the entity tag of T
	Type() types.EntityType
	// Key returns the wire names of T
	Key() Key
	// Read consumes exactly the value at the cursor and returns the entity.
	// A null value yields (nil, nil).
	Read(r wire.IReader) (*T, error)
	// Write emits v as an element/property called name (the singular key when empty)
	Write(w wire.IWriter, name string, v *T) error
}

// converterImpl implements IConverter with plain read/write functions
type converterImpl[T any] struct {
	typ   types.EntityType
	key   Key
	read  func(r wire.IReader) (*T, error)
	write func(w wire.IWriter, name string, v *T)
}

func newConverter[T any](typ types.EntityType, singular, plural string, read func(wire.IReader) (*T, error), write func(wire.IWriter, string, *T)) IConverter[T] {
	return &converterImpl[T]{
		typ:   typ,
		key:   Key{Singular: singular, Plural: plural},
		read:  read,
		write: write,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see converters.IConverter)
// --------------------------------------------------------------------------

func (c *converterImpl[T]) Type() types.EntityType {
	return c.typ
}

func (c *converterImpl[T]) Key() Key {
	return c.key
}

func (c *converterImpl[T]) Read(r wire.IReader) (*T, error) {
	return c.read(r)
}

func (c *converterImpl[T]) Write(w wire.IWriter, name string, v *T) error {
	if v == nil {
		return ErrNilEntity
	}
	if name == "" {
		name = c.key.Singular
	}
	c.write(w, name, v)
	return nil
}
