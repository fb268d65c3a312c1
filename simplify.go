package docsql

import "fmt"

// Simplify collapses a wire schema document into its canonical two-level
// form: a single Atom, or an AnyOf over distinct Atoms.
//
// Multi-tag nodes explode into unions, singleton unions collapse, nested
// property and item schemas are simplified recursively, and structurally
// invalid combinations are rejected. Simplification is all-or-nothing: any
// invalid node fails the whole document.
func Simplify(doc *SchemaDocument) (Schema, error) {
	if doc == nil {
		return AnySchema(), nil
	}

	if len(doc.Types) > 0 && doc.AnyOf != nil {
		return nil, wrapSchemaErr("bsonType and anyOf are mutually exclusive")
	}

	if doc.AnyOf != nil && len(doc.AnyOf) == 0 {
		return nil, wrapSchemaErr("anyOf must have at least one alternative")
	}

	if len(doc.AnyOf) > 0 {
		return simplifyAnyOf(doc.AnyOf)
	}

	if len(doc.Types) > 1 {
		return explodeTags(doc)
	}

	return simplifySingle(doc)
}

func wrapSchemaErr(reason string) error {
	return fmt.Errorf("%w: %s", ErrMalformedSchema, reason)
}

// simplifyAnyOf converts an explicit anyOf list into a canonical union.
// Alternatives must themselves simplify to Atoms; an alternative that is
// itself a union (an explicit anyOf, or a multi-tag node) is rejected.
func simplifyAnyOf(alternatives []*SchemaDocument) (Schema, error) {
	atoms := make([]Atom, 0, len(alternatives))

	for _, alt := range alternatives {
		if alt != nil && len(alt.AnyOf) > 0 {
			return nil, wrapSchemaErr("nested anyOf")
		}

		s, err := Simplify(alt)
		if err != nil {
			return nil, err
		}

		atom, ok := s.(Atom)
		if !ok {
			return nil, wrapSchemaErr("anyOf alternative is itself a union")
		}

		atoms = append(atoms, atom)
	}

	return NewAnyOf(atoms)
}

// explodeTags turns a multi-tag node into a union with one alternative per
// tag. Only the fields meaningful for a tag travel with it: object payload
// with the object tag, the item schema with the array tag.
func explodeTags(doc *SchemaDocument) (Schema, error) {
	atoms := make([]Atom, 0, len(doc.Types))

	for _, tag := range doc.Types {
		alt := &SchemaDocument{Types: TagSet{tag}}

		switch tag {
		case TagObject:
			alt.Properties = doc.Properties
			alt.Required = doc.Required
			alt.AdditionalProperties = doc.AdditionalProperties
		case TagArray:
			alt.Items = doc.Items
		}

		s, err := simplifySingle(alt)
		if err != nil {
			return nil, err
		}

		// simplifySingle on a single-tag node always yields an Atom.
		atoms = append(atoms, s.(Atom))
	}

	return NewAnyOf(atoms)
}

// simplifySingle handles a node with at most one type tag.
func simplifySingle(doc *SchemaDocument) (Schema, error) {
	if len(doc.Types) == 0 {
		// No tag and no additionalProperties assertion constrains nothing.
		if doc.AdditionalProperties == nil {
			return AnySchema(), nil
		}

		return simplifyObject(doc)
	}

	tag := doc.Types[0]
	if !ValidTypeTag(tag) {
		return nil, wrapSchemaErr(fmt.Sprintf("unknown bsonType %q", tag))
	}

	switch tag {
	case TagObject:
		return simplifyObject(doc)
	case TagArray:
		return simplifyArray(doc)
	default:
		return &Scalar{Tag: tag}, nil
	}
}

func simplifyObject(doc *SchemaDocument) (*Object, error) {
	properties := make(map[string]Schema, len(doc.Properties))
	for name, sub := range doc.Properties {
		s, err := Simplify(sub)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}

		properties[name] = s
	}

	required := make(map[string]struct{}, len(doc.Required))
	for _, name := range doc.Required {
		required[name] = struct{}{}
	}

	additional := true
	if doc.AdditionalProperties != nil {
		additional = *doc.AdditionalProperties
	}

	return &Object{
		Properties:           properties,
		Required:             required,
		AdditionalProperties: additional,
	}, nil
}

func simplifyArray(doc *SchemaDocument) (*Array, error) {
	// Per-index item schemas cannot be collapsed into one element schema;
	// widen to an array of anything.
	if doc.Items == nil || doc.Items.Indexed != nil {
		return &Array{Element: AnySchema()}, nil
	}

	element, err := Simplify(doc.Items.Single)
	if err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}

	return &Array{Element: element}, nil
}
