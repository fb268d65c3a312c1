package docsql

import "fmt"

// TypeTag is a document value-kind marker as it appears on the wire
// (the bsonType keyword of a schema document).
type TypeTag string

// The fixed tag universe. Every simplified schema is built from these tags
// and the type table has exactly one row per tag, in this order.
const (
	TagAny                 TypeTag = "any"
	TagArray               TypeTag = "array"
	TagBinData             TypeTag = "binData"
	TagBool                TypeTag = "bool"
	TagDate                TypeTag = "date"
	TagDecimal             TypeTag = "decimal"
	TagDouble              TypeTag = "double"
	TagInt                 TypeTag = "int"
	TagJavascript          TypeTag = "javascript"
	TagJavascriptWithScope TypeTag = "javascriptWithScope"
	TagLong                TypeTag = "long"
	TagMaxKey              TypeTag = "maxKey"
	TagMinKey              TypeTag = "minKey"
	TagNull                TypeTag = "null"
	TagObject              TypeTag = "object"
	TagObjectID            TypeTag = "objectId"
	TagRegex               TypeTag = "regex"
	TagString              TypeTag = "string"
	TagSymbol              TypeTag = "symbol"
	TagTimestamp           TypeTag = "timestamp"
	TagUndefined           TypeTag = "undefined"
)

// TypeTags lists every supported tag in table order.
var TypeTags = []TypeTag{
	TagAny,
	TagArray,
	TagBinData,
	TagBool,
	TagDate,
	TagDecimal,
	TagDouble,
	TagInt,
	TagJavascript,
	TagJavascriptWithScope,
	TagLong,
	TagMaxKey,
	TagMinKey,
	TagNull,
	TagObject,
	TagObjectID,
	TagRegex,
	TagString,
	TagSymbol,
	TagTimestamp,
	TagUndefined,
}

var validTags = func() map[TypeTag]struct{} {
	m := make(map[TypeTag]struct{}, len(TypeTags))
	for _, t := range TypeTags {
		m[t] = struct{}{}
	}

	return m
}()

// ValidTypeTag reports whether tag is part of the fixed tag universe.
func ValidTypeTag(tag TypeTag) bool {
	_, ok := validTags[tag]
	return ok
}

// SQLType is a relational (ODBC) type code.
type SQLType int

// Relational type codes served to clients. Values are fixed by the client
// protocol and must not change.
const (
	SQLAllTypes      SQLType = 0 // wildcard in type-catalog requests
	SQLUnknownType   SQLType = 0
	SQLChar          SQLType = 1
	SQLDecimal       SQLType = 3
	SQLInteger       SQLType = 4
	SQLDouble        SQLType = 8
	SQLDatetime      SQLType = 9 // verbose code for the datetime family
	SQLVarchar       SQLType = 12
	SQLTypeTimestamp SQLType = 93
	SQLVarbinary     SQLType = -3
	SQLBigint        SQLType = -5
	SQLBit           SQLType = -7
	SQLWvarchar      SQLType = -9
)

// SQLCodeTimestamp is the datetime sub-code for the timestamp family.
const SQLCodeTimestamp = 3

// Searchable is a relational searchability code.
type Searchable int

// Searchability codes, in increasing order of capability.
const (
	PredNone       Searchable = 0 // not usable in WHERE
	PredChar       Searchable = 1 // only with LIKE
	PredBasic      Searchable = 2 // all comparisons except LIKE
	PredSearchable Searchable = 3 // any WHERE clause
)

// TypeMode selects which of the two parallel type tables a connection uses.
type TypeMode int

// Type modes.
const (
	// ModeStrict maps each tag to its native relational type code.
	ModeStrict TypeMode = iota

	// ModePermissive collapses every tag to a generic character type;
	// values travel as extended-JSON text.
	ModePermissive
)

// ParseTypeMode parses a mode name from configuration or a connection string.
func ParseTypeMode(s string) (TypeMode, error) {
	switch s {
	case "strict", "":
		return ModeStrict, nil
	case "permissive":
		return ModePermissive, nil
	default:
		return ModeStrict, fmt.Errorf("%w: %q", ErrUnknownTypeMode, s)
	}
}

// String returns the mode name.
func (m TypeMode) String() string {
	switch m {
	case ModePermissive:
		return "permissive"
	default:
		return "strict"
	}
}
