package docsql

import (
	"maps"
	"slices"
	"strings"
)

// Schema is a simplified, canonical schema: either a single Atom or an
// AnyOf over two or more distinct Atoms. A canonical schema never contains
// a multi-tag node or a nested AnyOf; Simplify removes both.
//
// The type set is closed: Scalar, Object, Array, AnyOf. Code consuming a
// Schema switches over exactly these four.
type Schema interface {
	// key returns a deterministic encoding of the schema used as a total
	// order and as a set key. Two schemas are equal iff their keys are.
	key() string
}

// Atom is a non-union canonical schema: Scalar, Object, or Array.
type Atom interface {
	Schema
	atom()
}

// Scalar is a schema constrained to a single non-structural type tag.
// Scalar(TagAny) is the unconstrained "any value" schema.
type Scalar struct {
	Tag TypeTag
}

// Object is a document schema: per-field sub-schemas, the set of fields
// that must be present, and whether undeclared fields are allowed.
type Object struct {
	Properties           map[string]Schema
	Required             map[string]struct{}
	AdditionalProperties bool
}

// Array is a schema for arrays with one element schema.
type Array struct {
	Element Schema
}

// AnyOf is a union of two or more distinct Atoms. Construct via NewAnyOf,
// which sorts, deduplicates, and collapses degenerate unions.
type AnyOf struct {
	Alternatives []Atom
}

func (*Scalar) atom() {}
func (*Object) atom() {}
func (*Array) atom()  {}

func (s *Scalar) key() string { return "s:" + string(s.Tag) }

func (o *Object) key() string {
	var b strings.Builder

	b.WriteString("o:{")
	for _, name := range slices.Sorted(maps.Keys(o.Properties)) {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(o.Properties[name].key())
		b.WriteByte(';')
	}
	b.WriteString("}req{")
	for _, name := range slices.Sorted(maps.Keys(o.Required)) {
		b.WriteString(name)
		b.WriteByte(';')
	}
	b.WriteByte('}')
	if o.AdditionalProperties {
		b.WriteString("open")
	}

	return b.String()
}

func (a *Array) key() string { return "a:[" + a.Element.key() + "]" }

func (u *AnyOf) key() string {
	keys := make([]string, len(u.Alternatives))
	for i, alt := range u.Alternatives {
		keys[i] = alt.key()
	}

	return "u:{" + strings.Join(keys, "|") + "}"
}

// AnySchema returns the unconstrained schema.
func AnySchema() *Scalar {
	return &Scalar{Tag: TagAny}
}

// NewAnyOf builds a canonical union from alternatives already known to be
// Atoms. Duplicates collapse, ordering is deterministic, and a singleton
// union degenerates to its sole member. An empty union is malformed.
func NewAnyOf(alternatives []Atom) (Schema, error) {
	if len(alternatives) == 0 {
		return nil, wrapSchemaErr("anyOf must have at least one alternative")
	}

	seen := make(map[string]struct{}, len(alternatives))
	distinct := make([]Atom, 0, len(alternatives))

	for _, alt := range alternatives {
		k := alt.key()
		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		distinct = append(distinct, alt)
	}

	if len(distinct) == 1 {
		return distinct[0], nil
	}

	slices.SortFunc(distinct, func(a, b Atom) int {
		return strings.Compare(a.key(), b.key())
	})

	return &AnyOf{Alternatives: distinct}, nil
}

// SchemasEqual reports whether two canonical schemas are structurally equal,
// regardless of how they were constructed.
func SchemasEqual(a, b Schema) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.key() == b.key()
}
