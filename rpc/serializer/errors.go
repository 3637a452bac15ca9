package serializer

import (
	"errors"
	"fmt"

	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/rpc/serializer/converters"
)

var (
	// ErrNilEntity is returned when a nil entity is serialized
	ErrNilEntity = converters.ErrNilEntity
	// ErrNoConverter is returned when the registry has no converter for a type
	ErrNoConverter = converters.ErrNoConverter
	// ErrUnknownFormat is returned by New for format names other than xml and json
	ErrUnknownFormat = errors.New("unknown format")
	// ErrConverterPanic wraps a panic recovered from a converter
	ErrConverterPanic = errors.New("converter panicked")
)

// ConfigurationError reports a type that has no converter in the registry
type ConfigurationError = converters.ConfigurationError

// SerializationError is returned when an entity cannot be written
type SerializationError struct {
	Type   types.EntityType
	Format string
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialize %s to %s: %v", e.Type, e.Format, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// DeserializationError is returned when a document cannot be read. It carries the
// entity type, the wire format and the underlying reader or converter error.
type DeserializationError struct {
	Type   types.EntityType
	Format string
	Err    error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("deserialize %s from %s: %v", e.Type, e.Format, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// recoverSerialization turns a converter panic into a SerializationError
func recoverSerialization(t types.EntityType, format string, err *error) {
	if r := recover(); r != nil {
		Logger.Errorf("recovered panic while serializing %s to %s: %v", t, format, r)
		*err = &SerializationError{Type: t, Format: format, Err: fmt.Errorf("%w: %v", ErrConverterPanic, r)}
	}
}

// recoverDeserialization turns a converter panic into a DeserializationError
func recoverDeserialization(t types.EntityType, format string, err *error) {
	if r := recover(); r != nil {
		Logger.Errorf("recovered panic while deserializing %s from %s: %v", t, format, r)
		*err = &DeserializationError{Type: t, Format: format, Err: fmt.Errorf("%w: %v", ErrConverterPanic, r)}
	}
}
