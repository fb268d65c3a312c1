package docsql

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ColumnMetadata is everything the relational protocol advertises about
// one result column before any row is fetched. Records are created once
// per resolved column and never mutated.
type ColumnMetadata struct {
	// TableName is the owning collection or table. Name is the field name;
	// Label is the display label (the field name, for this driver).
	TableName string
	Name      string
	Label     string

	// SQLType is the mode-dependent concise relational type code;
	// SQLDataType is the verbose code.
	SQLType     SQLType
	SQLDataType SQLType
	TypeName    string

	Nullability Nullability

	// Nil means not applicable.
	Precision   *int
	Scale       *int
	DisplaySize *int
	OctetLength *int

	LiteralPrefix string
	LiteralSuffix string

	CaseSensitive  bool
	FixedPrecScale bool
	Searchable     Searchable
	Unsigned       *bool
	NumPrecRadix   *int
	SQLDatetimeSub *int

	// Updatable is always false; the driver is read-only.
	Updatable bool
}

// ColumnRef names a projected column: the owning table and the field.
// It is the lookup key for externally supplied column orders.
type ColumnRef struct {
	Owner string
	Field string
}

func (r ColumnRef) String() string {
	return r.Owner + "." + r.Field
}

// representativeTag reduces an arbitrary canonical schema to the single
// tag used for the type-table lookup. A two-way union where exactly one
// alternative is null degenerates to the other alternative; every other
// union widens to the generic tag, because the relational protocol cannot
// express a polymorphic column.
func representativeTag(s Schema) TypeTag {
	switch v := s.(type) {
	case *Scalar:
		return v.Tag
	case *Object:
		return TagObject
	case *Array:
		return TagArray
	case *AnyOf:
		if len(v.Alternatives) == 2 {
			first, second := v.Alternatives[0], v.Alternatives[1]
			if scalar, ok := first.(*Scalar); ok && scalar.Tag == TagNull {
				return representativeTag(second)
			}
			if scalar, ok := second.(*Scalar); ok && scalar.Tag == TagNull {
				return representativeTag(first)
			}
		}

		return TagAny
	default:
		return TagAny
	}
}

// ProjectColumn combines a canonical schema, its names, and a nullability
// into one column metadata record using the mode's type table.
func ProjectColumn(owner, field string, s Schema, nullability Nullability, mode TypeMode) (ColumnMetadata, error) {
	desc, err := LookupType(representativeTag(s), mode)
	if err != nil {
		return ColumnMetadata{}, err
	}

	return ColumnMetadata{
		TableName:      owner,
		Name:           field,
		Label:          field,
		SQLType:        desc.SQLType,
		SQLDataType:    desc.SQLDataType,
		TypeName:       desc.TypeName,
		Nullability:    nullability,
		Precision:      desc.Precision,
		Scale:          desc.Scale,
		DisplaySize:    desc.DisplaySize,
		OctetLength:    desc.ByteLength,
		LiteralPrefix:  desc.LiteralPrefix,
		LiteralSuffix:  desc.LiteralSuffix,
		CaseSensitive:  desc.CaseSensitive,
		FixedPrecScale: desc.FixedPrecScale,
		Searchable:     desc.Searchable,
		Unsigned:       desc.Unsigned,
		NumPrecRadix:   desc.NumPrecRadix,
		SQLDatetimeSub: desc.SQLDatetimeSub,
	}, nil
}

// ResolveCollection turns the schema of one collection into its column
// list. Field names sorted lexicographically define the ordinal positions.
func ResolveCollection(collection string, s Schema, mode TypeMode) ([]ColumnMetadata, error) {
	obj, ok := s.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: collection %q", ErrNotObjectSchema, collection)
	}

	fields := slices.Sorted(maps.Keys(obj.Properties))
	columns := make([]ColumnMetadata, 0, len(fields))

	for _, field := range fields {
		nullability, err := FieldNullability(obj, field)
		if err != nil {
			return nil, err
		}

		col, err := ProjectColumn(collection, field, obj.Properties[field], nullability, mode)
		if err != nil {
			return nil, err
		}

		columns = append(columns, col)
	}

	return columns, nil
}

// ResolveResultSet turns a query-result schema into its column list. The
// top level must be an object with one object-typed property per
// referenced table. When order is non-nil it is authoritative and must
// reference every projected column exactly once; when nil, columns are
// sorted by (owner, field).
func ResolveResultSet(s Schema, order []ColumnRef, mode TypeMode) ([]ColumnMetadata, error) {
	top, ok := s.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: result-set schema", ErrNotObjectSchema)
	}

	projected := make(map[ColumnRef]ColumnMetadata)

	for owner, tableSchema := range top.Properties {
		obj, ok := tableSchema.(*Object)
		if !ok {
			return nil, fmt.Errorf("%w: table %q", ErrNotObjectSchema, owner)
		}

		for field := range obj.Properties {
			nullability, err := FieldNullability(obj, field)
			if err != nil {
				return nil, err
			}

			col, err := ProjectColumn(owner, field, obj.Properties[field], nullability, mode)
			if err != nil {
				return nil, err
			}

			projected[ColumnRef{Owner: owner, Field: field}] = col
		}
	}

	if order == nil {
		refs := slices.SortedFunc(maps.Keys(projected), func(a, b ColumnRef) int {
			if c := strings.Compare(a.Owner, b.Owner); c != 0 {
				return c
			}

			return strings.Compare(a.Field, b.Field)
		})

		columns := make([]ColumnMetadata, len(refs))
		for i, ref := range refs {
			columns[i] = projected[ref]
		}

		return columns, nil
	}

	columns := make([]ColumnMetadata, 0, len(order))
	consumed := make(map[ColumnRef]struct{}, len(order))

	for _, ref := range order {
		col, ok := projected[ref]
		if !ok {
			return nil, fmt.Errorf("%w: %s not projected", ErrOrderingMismatch, ref)
		}
		if _, dup := consumed[ref]; dup {
			return nil, fmt.Errorf("%w: %s referenced twice", ErrOrderingMismatch, ref)
		}

		consumed[ref] = struct{}{}
		columns = append(columns, col)
	}

	if len(consumed) != len(projected) {
		return nil, fmt.Errorf("%w: order references %d of %d columns",
			ErrOrderingMismatch, len(consumed), len(projected))
	}

	return columns, nil
}
