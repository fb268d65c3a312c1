package docsql

import "errors"

// Sentinel errors.
var (
	// ErrMalformedSchema is returned when a schema document cannot be
	// simplified: bsonType and anyOf on the same node, an empty anyOf,
	// a nested anyOf, or an unknown type tag.
	ErrMalformedSchema = errors.New("docsql: malformed schema")

	// ErrNotObjectSchema is returned when a schema expected to describe an
	// object (a collection, or a per-table sub-schema) is something else.
	ErrNotObjectSchema = errors.New("docsql: not an object schema")

	// ErrUnknownColumn is returned when a field name is absent from an
	// object's properties and is neither required nor covered by
	// additionalProperties.
	ErrUnknownColumn = errors.New("docsql: unknown column")

	// ErrOrderingMismatch is returned when an externally supplied column
	// order does not reference every projected column exactly once.
	ErrOrderingMismatch = errors.New("docsql: ordering key mismatch")

	// ErrUnknownTypeTag is returned by type-table lookups for a tag outside
	// the fixed tag universe.
	ErrUnknownTypeTag = errors.New("docsql: unknown type tag")

	// ErrUnknownTypeMode is returned when a mode string is neither "strict"
	// nor "permissive".
	ErrUnknownTypeMode = errors.New("docsql: unknown type mode")

	// ErrConfigNotFound is returned when no .docsql.yaml is found.
	ErrConfigNotFound = errors.New("docsql: no .docsql.yaml found")
)
