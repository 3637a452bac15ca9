/*
Package converters provides one hand-written converter per entity type of the
lib/types catalogue.

A converter is a pair of plain functions written once against the wire.IReader and
wire.IWriter capabilities, so XML and JSON share a single definition. No reflection
is used: the registry is a closed table from types.EntityType to converter, and
Lookup resolves the Go type through a compile-time type switch (TypeOf).

The package focuses on:
  - Fixed field order and a per-field omission policy on write
  - Attributes versus elements in XML (ids and names of references are attributes)
  - Tolerant reads: unknown fields are skipped, absent or malformed scalars default
  - Dual-shape custom field values ("value": "x" and "value": ["x", "y"])

Key Components:
  - IConverter[T]: Read / Write / Key / Type of one entity type
  - IRegistry: NewRegistry (all types) and NewRegistryOf (restricted set)
  - Lookup[T] and TypeOf[T]
  - ConfigurationError / ErrNoConverter: T has no converter in the registry

Thread Safety:
Registries are immutable after construction and converters hold no state, both can
be shared between goroutines.
*/
package converters
