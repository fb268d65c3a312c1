package docsql

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SchemaDocument is the wire form of a schema as the server sends it:
// a JSON-schema-style tree keyed by bsonType. It is produced by
// deserialization, never mutated, and consumed once by Simplify.
type SchemaDocument struct {
	// Types is the node's type tag(s). The wire form is a single string or
	// a non-empty list of strings.
	Types TagSet `json:"bsonType,omitempty" yaml:"bsonType,omitempty"`

	// Properties maps field names to their sub-schemas.
	Properties map[string]*SchemaDocument `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Required lists fields that must be present.
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`

	// AdditionalProperties, when present, asserts whether undeclared
	// fields are allowed. Absent means allowed.
	AdditionalProperties *bool `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Items constrains array elements: one schema for every element, or
	// one schema per fixed index.
	Items *ItemSchemas `json:"items,omitempty" yaml:"items,omitempty"`

	// AnyOf lists alternative schemas. Mutually exclusive with Types.
	AnyOf []*SchemaDocument `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
}

// ParseSchemaDocument deserializes a JSON schema document.
func ParseSchemaDocument(data []byte) (*SchemaDocument, error) {
	var doc SchemaDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing schema document: %w", err)
	}

	return &doc, nil
}

// ParseSchemaDocumentYAML deserializes a YAML schema document.
func ParseSchemaDocumentYAML(data []byte) (*SchemaDocument, error) {
	var doc SchemaDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing schema document: %w", err)
	}

	return &doc, nil
}

// TagSet holds the type tag(s) of a schema node. On the wire it is either
// a single string or a list of strings.
type TagSet []TypeTag

// UnmarshalJSON accepts "int" and ["int", "null"].
func (t *TagSet) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = TagSet{TypeTag(single)}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("bsonType must be a string or a list of strings: %w", err)
	}

	tags := make(TagSet, len(many))
	for i, s := range many {
		tags[i] = TypeTag(s)
	}
	*t = tags

	return nil
}

// MarshalJSON emits a bare string for a single tag.
func (t TagSet) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(string(t[0]))
	}

	tags := make([]string, len(t))
	for i, tag := range t {
		tags[i] = string(tag)
	}

	return json.Marshal(tags)
}

// UnmarshalYAML accepts the same two shapes as UnmarshalJSON.
func (t *TagSet) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*t = TagSet{TypeTag(single)}

		return nil
	case yaml.SequenceNode:
		var many []string
		if err := node.Decode(&many); err != nil {
			return err
		}

		tags := make(TagSet, len(many))
		for i, s := range many {
			tags[i] = TypeTag(s)
		}
		*t = tags

		return nil
	default:
		return fmt.Errorf("bsonType must be a string or a list of strings (line %d)", node.Line)
	}
}

// ItemSchemas is the items keyword: either a single element schema or a
// per-index schema list. The per-index shape cannot be represented
// faithfully by one element schema and is widened during simplification.
type ItemSchemas struct {
	Single  *SchemaDocument
	Indexed []*SchemaDocument
}

// UnmarshalJSON accepts an object or a list of objects.
func (i *ItemSchemas) UnmarshalJSON(data []byte) error {
	var indexed []*SchemaDocument
	if err := json.Unmarshal(data, &indexed); err == nil {
		i.Indexed = indexed
		return nil
	}

	var single SchemaDocument
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("items must be a schema or a list of schemas: %w", err)
	}
	i.Single = &single

	return nil
}

// MarshalJSON emits whichever shape is populated.
func (i ItemSchemas) MarshalJSON() ([]byte, error) {
	if i.Indexed != nil {
		return json.Marshal(i.Indexed)
	}

	return json.Marshal(i.Single)
}

// UnmarshalYAML accepts the same two shapes as UnmarshalJSON.
func (i *ItemSchemas) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		return node.Decode(&i.Indexed)
	case yaml.MappingNode:
		var single SchemaDocument
		if err := node.Decode(&single); err != nil {
			return err
		}
		i.Single = &single

		return nil
	default:
		return fmt.Errorf("items must be a schema or a list of schemas (line %d)", node.Line)
	}
}
