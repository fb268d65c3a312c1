package docsql

import "fmt"

// Nullability is the three-valued nullability advertised for a column.
// The values are the relational protocol's nullability codes.
type Nullability int

// Nullability states. Unknown is a legitimate outcome, not an error: it
// means the schema does not constrain the field.
const (
	NoNulls            Nullability = 0
	Nullable           Nullability = 1
	NullabilityUnknown Nullability = 2
)

// String returns the state name.
func (n Nullability) String() string {
	switch n {
	case NoNulls:
		return "no-nulls"
	case Nullable:
		return "nullable"
	default:
		return "unknown"
	}
}

// FieldNullability derives the nullability of a named field of an object
// schema.
//
// A field absent from the object's properties is Unknown when it is
// required or the object allows additional properties, and an unknown
// column otherwise. A field typed exactly null or undefined is Nullable
// even when required. A union is Nullable as soon as null is one of its
// alternatives.
func FieldNullability(obj *Object, field string) (Nullability, error) {
	schema, ok := obj.Properties[field]
	if !ok {
		_, required := obj.Required[field]
		if required || obj.AdditionalProperties {
			return NullabilityUnknown, nil
		}

		return NullabilityUnknown, fmt.Errorf("%w: %q", ErrUnknownColumn, field)
	}

	_, required := obj.Required[field]

	switch s := schema.(type) {
	case *Scalar:
		switch s.Tag {
		case TagAny, TagNull, TagUndefined:
			return Nullable, nil
		}
	case *AnyOf:
		for _, alt := range s.Alternatives {
			if scalar, ok := alt.(*Scalar); ok && scalar.Tag == TagNull {
				return Nullable, nil
			}
		}
	}

	if required {
		return NoNulls, nil
	}

	return Nullable, nil
}
