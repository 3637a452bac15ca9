// Package types defines the domain entities exchanged with a Redmine server through
// its REST API. Every entity is a closed, independently defined struct: there is no
// shared base type and no reflection-driven tagging. The wire shape of each entity
// lives in the converters package, not here.
//
// The package focuses on:
//   - Plain data structures for the ~50 entities the REST API exposes
//   - Nullable scalars expressed as pointers (*int, *float64, *bool, *time.Time)
//   - Lightweight references (IdentifiableName) for nested id/name snapshots
//   - The EntityType tag that closes the set of serializable types
//
// Key Components:
//
//   - IdentifiableName: An immutable id + display name snapshot of another entity.
//     Several reference-like types (Watcher, GroupUser, ProjectTracker, ...) are
//     defined on top of it so each keeps its own wire key.
//
//   - EntityType: Enumeration of every entity type known to the codec. The registry
//     in the converters package maps each tag to exactly one converter.
//
//   - PagedResults: A page of entities plus the total/offset/limit metadata reported
//     by list endpoints.
//
// Thread Safety:
//
//	Entities are plain values. They are constructed fresh on every deserialize call
//	and are owned by the caller afterwards.
package types
