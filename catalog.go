package docsql

// Type-catalog support: the type table exposed directly as a result set,
// for "list all supported types" style catalog requests.

// TypeInfoColumnNames are the catalog result set's column names, in ordinal
// order. They are fixed by the client protocol and reproduced exactly.
var TypeInfoColumnNames = []string{
	"TYPE_NAME",
	"DATA_TYPE",
	"COLUMN_SIZE",
	"LITERAL_PREFIX",
	"LITERAL_SUFFIX",
	"CREATE_PARAMS",
	"NULLABLE",
	"CASE_SENSITIVE",
	"SEARCHABLE",
	"UNSIGNED_ATTRIBUTE",
	"FIXED_PREC_SCALE",
	"AUTO_UNIQUE_VALUE",
	"LOCAL_TYPE_NAME",
	"MINIMUM_SCALE",
	"MAXIMUM_SCALE",
	"SQL_DATA_TYPE",
	"SQL_DATETIME_SUB",
	"NUM_PREC_RADIX",
	"INTERVAL_PRECISION",
}

// typeInfoColumn builds the metadata for one catalog column.
func typeInfoColumn(name string, sqlType SQLType, typeName string, nullability Nullability) ColumnMetadata {
	return ColumnMetadata{
		Name:        name,
		Label:       name,
		SQLType:     sqlType,
		SQLDataType: sqlType,
		TypeName:    typeName,
		Nullability: nullability,
		Searchable:  PredBasic,
	}
}

// TypeInfoColumns describes the catalog result set itself: 19 columns in
// protocol order. The shape does not depend on the mode; the rows do.
func TypeInfoColumns() []ColumnMetadata {
	str := func(name string, nullability Nullability) ColumnMetadata {
		col := typeInfoColumn(name, SQLWvarchar, "string", nullability)
		col.CaseSensitive = true
		col.LiteralPrefix, col.LiteralSuffix = "'", "'"
		col.Searchable = PredSearchable

		return col
	}
	num := func(name string, nullability Nullability) ColumnMetadata {
		return typeInfoColumn(name, SQLInteger, "int", nullability)
	}

	return []ColumnMetadata{
		str("TYPE_NAME", NoNulls),
		num("DATA_TYPE", NoNulls),
		num("COLUMN_SIZE", Nullable),
		str("LITERAL_PREFIX", Nullable),
		str("LITERAL_SUFFIX", Nullable),
		str("CREATE_PARAMS", Nullable),
		num("NULLABLE", NoNulls),
		num("CASE_SENSITIVE", NoNulls),
		num("SEARCHABLE", NoNulls),
		num("UNSIGNED_ATTRIBUTE", Nullable),
		num("FIXED_PREC_SCALE", NoNulls),
		num("AUTO_UNIQUE_VALUE", Nullable),
		str("LOCAL_TYPE_NAME", Nullable),
		num("MINIMUM_SCALE", Nullable),
		num("MAXIMUM_SCALE", Nullable),
		num("SQL_DATA_TYPE", NoNulls),
		num("SQL_DATETIME_SUB", Nullable),
		num("NUM_PREC_RADIX", Nullable),
		num("INTERVAL_PRECISION", Nullable),
	}
}

// TypeInfoRecord renders one descriptor as a catalog row keyed by column
// name. Nil values mean SQL NULL. Booleans are emitted as 0/1 the way the
// protocol expects.
func (d *TypeDescriptor) TypeInfoRecord() map[string]any {
	row := map[string]any{
		"TYPE_NAME":          d.TypeName,
		"DATA_TYPE":          int(d.SQLType),
		"COLUMN_SIZE":        nilOrInt(d.Precision),
		"LITERAL_PREFIX":     nilOrStr(d.LiteralPrefix),
		"LITERAL_SUFFIX":     nilOrStr(d.LiteralSuffix),
		"CREATE_PARAMS":      nil, // read-only driver: types are never created
		"NULLABLE":           int(Nullable),
		"CASE_SENSITIVE":     boolToInt(d.CaseSensitive),
		"SEARCHABLE":         int(d.Searchable),
		"UNSIGNED_ATTRIBUTE": nil,
		"FIXED_PREC_SCALE":   boolToInt(d.FixedPrecScale),
		"AUTO_UNIQUE_VALUE":  nil,
		"LOCAL_TYPE_NAME":    d.TypeName,
		"MINIMUM_SCALE":      nilOrInt(d.Scale),
		"MAXIMUM_SCALE":      nilOrInt(d.Scale),
		"SQL_DATA_TYPE":      int(d.SQLDataType),
		"SQL_DATETIME_SUB":   nilOrInt(d.SQLDatetimeSub),
		"NUM_PREC_RADIX":     nilOrInt(d.NumPrecRadix),
		"INTERVAL_PRECISION": nil,
	}

	if d.Unsigned != nil {
		row["UNSIGNED_ATTRIBUTE"] = boolToInt(*d.Unsigned)
	}

	return row
}

// TypeInfoRecords returns one catalog row per descriptor matching code
// under mode, in table order. SQLAllTypes matches every row.
func TypeInfoRecords(code SQLType, mode TypeMode) []map[string]any {
	descs := TypesBySQLType(code, mode)
	rows := make([]map[string]any, len(descs))
	for i, d := range descs {
		rows[i] = d.TypeInfoRecord()
	}

	return rows
}

func nilOrInt(v *int) any {
	if v == nil {
		return nil
	}

	return *v
}

func nilOrStr(s string) any {
	if s == "" {
		return nil
	}

	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
