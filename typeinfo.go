package docsql

import (
	"fmt"
	"sync"
)

// TypeDescriptor is one row of the type table: everything the relational
// protocol needs to advertise about a document type tag. Descriptors are
// static; Lookup returns shared, read-only rows.
type TypeDescriptor struct {
	Tag      TypeTag
	TypeName string

	// SQLType is the concise relational type code for the table's mode.
	// SQLDataType is the non-concise (verbose) code; it differs only for
	// the datetime family.
	SQLType     SQLType
	SQLDataType SQLType

	// ByteLength is the fixed transfer size. Nil means unbounded or not
	// applicable.
	ByteLength *int

	LiteralPrefix string
	LiteralSuffix string

	Precision   *int
	Scale       *int
	DisplaySize *int

	CaseSensitive  bool
	Unsigned       *bool // nil for non-numeric types
	FixedPrecScale bool
	Searchable     Searchable
	NumPrecRadix   *int
	SQLDatetimeSub *int
}

// baseTypeRow is one row of the single source table both mode tables are
// built from. permissiveType, when set, overrides the relational type code
// in permissive mode; every other field is shared.
type baseTypeRow struct {
	desc           TypeDescriptor
	permissiveType *SQLType
}

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }
func sqlp(v SQLType) *SQLType {
	return &v
}

// baseTypeTable enumerates the tag universe once, in table order. Both mode
// tables derive from it, so they are tag-for-tag parallel by construction.
func baseTypeTable() []baseTypeRow {
	wvarchar := sqlp(SQLWvarchar)

	return []baseTypeRow{
		{
			desc: TypeDescriptor{
				Tag: TagAny, TypeName: "bson",
				SQLType: SQLUnknownType, SQLDataType: SQLUnknownType,
				Searchable: PredNone,
			},
			permissiveType: wvarchar,
		},
		{
			desc: TypeDescriptor{
				Tag: TagArray, TypeName: "array",
				SQLType: SQLWvarchar, SQLDataType: SQLWvarchar,
				LiteralPrefix: "'", LiteralSuffix: "'",
				CaseSensitive: true, Searchable: PredNone,
			},
		},
		{
			desc: TypeDescriptor{
				Tag: TagBinData, TypeName: "binData",
				SQLType: SQLVarbinary, SQLDataType: SQLVarbinary,
				LiteralPrefix: "0x",
				Searchable:    PredNone,
			},
			permissiveType: wvarchar,
		},
		{
			desc: TypeDescriptor{
				Tag: TagBool, TypeName: "bool",
				SQLType: SQLBit, SQLDataType: SQLBit,
				ByteLength: intp(1), Precision: intp(1), DisplaySize: intp(1),
				Unsigned:   boolp(true),
				Searchable: PredBasic,
			},
			permissiveType: wvarchar,
		},
		{
			desc: TypeDescriptor{
				Tag: TagDate, TypeName: "date",
				SQLType: SQLTypeTimestamp, SQLDataType: SQLDatetime,
				ByteLength: intp(16), Precision: intp(24), Scale: intp(3), DisplaySize: intp(24),
				LiteralPrefix: "'", LiteralSuffix: "'",
				Searchable:     PredBasic,
				SQLDatetimeSub: intp(SQLCodeTimestamp),
			},
			permissiveType: wvarchar,
		},
		{
			desc: TypeDescriptor{
				Tag: TagDecimal, TypeName: "decimal",
				SQLType: SQLDecimal, SQLDataType: SQLDecimal,
				ByteLength: intp(16), Precision: intp(34), Scale: intp(34), DisplaySize: intp(41),
				Unsigned:     boolp(false),
				Searchable:   PredBasic,
				NumPrecRadix: intp(10),
			},
			permissiveType: wvarchar,
		},
		{
			desc: TypeDescriptor{
				Tag: TagDouble, TypeName: "double",
				SQLType: SQLDouble, SQLDataType: SQLDouble,
				ByteLength: intp(8), Precision: intp(15), DisplaySize: intp(24),
				Unsigned:     boolp(false),
				Searchable:   PredBasic,
				NumPrecRadix: intp(2),
			},
			permissiveType: wvarchar,
		},
		{
			desc: TypeDescriptor{
				Tag: TagInt, TypeName: "int",
				SQLType: SQLInteger, SQLDataType: SQLInteger,
				ByteLength: intp(4), Precision: intp(10), DisplaySize: intp(11),
				Unsigned:     boolp(false),
				Searchable:   PredBasic,
				NumPrecRadix: intp(10),
			},
			permissiveType: wvarchar,
		},
		{
			desc: TypeDescriptor{
				Tag: TagJavascript, TypeName: "javascript",
				SQLType: SQLWvarchar, SQLDataType: SQLWvarchar,
				LiteralPrefix: "'", LiteralSuffix: "'",
				CaseSensitive: true, Searchable: PredNone,
			},
		},
		{
			desc: TypeDescriptor{
				Tag: TagJavascriptWithScope, TypeName: "javascriptWithScope",
				SQLType: SQLWvarchar, SQLDataType: SQLWvarchar,
				LiteralPrefix: "'", LiteralSuffix: "'",
				CaseSensitive: true, Searchable: PredNone,
			},
		},
		{
			desc: TypeDescriptor{
				Tag: TagLong, TypeName: "long",
				SQLType: SQLBigint, SQLDataType: SQLBigint,
				ByteLength: intp(8), Precision: intp(19), DisplaySize: intp(20),
				Unsigned:     boolp(false),
				Searchable:   PredBasic,
				NumPrecRadix: intp(10),
			},
			permissiveType: wvarchar,
		},
		{
			desc: TypeDescriptor{
				Tag: TagMaxKey, TypeName: "maxKey",
				SQLType: SQLUnknownType, SQLDataType: SQLUnknownType,
				Searchable: PredNone,
			},
			permissiveType: wvarchar,
		},
		{
			desc: TypeDescriptor{
				Tag: TagMinKey, TypeName: "minKey",
				SQLType: SQLUnknownType, SQLDataType: SQLUnknownType,
				Searchable: PredNone,
			},
			permissiveType: wvarchar,
		},
		{
			desc: TypeDescriptor{
				Tag: TagNull, TypeName: "null",
				SQLType: SQLUnknownType, SQLDataType: SQLUnknownType,
				Searchable: PredNone,
			},
			permissiveType: wvarchar,
		},
		{
			desc: TypeDescriptor{
				Tag: TagObject, TypeName: "object",
				SQLType: SQLWvarchar, SQLDataType: SQLWvarchar,
				LiteralPrefix: "'", LiteralSuffix: "'",
				CaseSensitive: true, Searchable: PredNone,
			},
		},
		{
			desc: TypeDescriptor{
				Tag: TagObjectID, TypeName: "objectId",
				SQLType: SQLWvarchar, SQLDataType: SQLWvarchar,
				ByteLength: intp(12), Precision: intp(24), DisplaySize: intp(24),
				LiteralPrefix: "'", LiteralSuffix: "'",
				CaseSensitive: true, Searchable: PredChar,
			},
		},
		{
			desc: TypeDescriptor{
				Tag: TagRegex, TypeName: "regex",
				SQLType: SQLWvarchar, SQLDataType: SQLWvarchar,
				LiteralPrefix: "'", LiteralSuffix: "'",
				CaseSensitive: true, Searchable: PredNone,
			},
		},
		{
			desc: TypeDescriptor{
				Tag: TagString, TypeName: "string",
				SQLType: SQLWvarchar, SQLDataType: SQLWvarchar,
				LiteralPrefix: "'", LiteralSuffix: "'",
				CaseSensitive: true, Searchable: PredSearchable,
			},
		},
		{
			desc: TypeDescriptor{
				Tag: TagSymbol, TypeName: "symbol",
				SQLType: SQLWvarchar, SQLDataType: SQLWvarchar,
				LiteralPrefix: "'", LiteralSuffix: "'",
				CaseSensitive: true, Searchable: PredSearchable,
			},
		},
		{
			desc: TypeDescriptor{
				Tag: TagTimestamp, TypeName: "timestamp",
				SQLType: SQLTypeTimestamp, SQLDataType: SQLDatetime,
				ByteLength: intp(16), Precision: intp(24), DisplaySize: intp(24),
				LiteralPrefix: "'", LiteralSuffix: "'",
				Searchable:     PredBasic,
				SQLDatetimeSub: intp(SQLCodeTimestamp),
			},
			permissiveType: wvarchar,
		},
		{
			desc: TypeDescriptor{
				Tag: TagUndefined, TypeName: "undefined",
				SQLType: SQLUnknownType, SQLDataType: SQLUnknownType,
				Searchable: PredNone,
			},
			permissiveType: wvarchar,
		},
	}
}

type typeTables struct {
	// rows[mode] preserves table order; index[mode] is keyed by tag.
	rows  [2][]*TypeDescriptor
	index [2]map[TypeTag]*TypeDescriptor
}

// tables builds both mode tables exactly once; all rows are read-only
// after this.
var tables = sync.OnceValue(func() *typeTables {
	base := baseTypeTable()
	t := &typeTables{}

	for _, mode := range []TypeMode{ModeStrict, ModePermissive} {
		t.rows[mode] = make([]*TypeDescriptor, 0, len(base))
		t.index[mode] = make(map[TypeTag]*TypeDescriptor, len(base))

		for _, row := range base {
			desc := row.desc

			if mode == ModePermissive && row.permissiveType != nil {
				desc.SQLType = *row.permissiveType
				desc.SQLDataType = *row.permissiveType
				desc.SQLDatetimeSub = nil
			}

			d := &desc
			t.rows[mode] = append(t.rows[mode], d)
			t.index[mode][d.Tag] = d
		}
	}

	return t
})

// LookupType returns the descriptor for a tag under a mode. The table is
// total over the fixed tag universe; only a tag outside it fails.
func LookupType(tag TypeTag, mode TypeMode) (*TypeDescriptor, error) {
	d, ok := tables().index[mode][tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTypeTag, tag)
	}

	return d, nil
}

// TypesBySQLType returns every descriptor whose relational type code under
// mode matches code, in table order. SQLAllTypes matches every row.
func TypesBySQLType(code SQLType, mode TypeMode) []*TypeDescriptor {
	rows := tables().rows[mode]
	if code == SQLAllTypes {
		out := make([]*TypeDescriptor, len(rows))
		copy(out, rows)

		return out
	}

	var out []*TypeDescriptor
	for _, d := range rows {
		if d.SQLType == code {
			out = append(out, d)
		}
	}

	return out
}

// AllTypes returns the full table for a mode, in table order.
func AllTypes(mode TypeMode) []*TypeDescriptor {
	return TypesBySQLType(SQLAllTypes, mode)
}
