package docsql_test

import (
	"testing"

	"github.com/rlch/docsql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeTableParity(t *testing.T) {
	t.Parallel()

	strict := docsql.AllTypes(docsql.ModeStrict)
	permissive := docsql.AllTypes(docsql.ModePermissive)

	require.Len(t, strict, len(docsql.TypeTags))
	require.Len(t, permissive, len(docsql.TypeTags))

	// Same tags, same order, in both tables.
	for i, tag := range docsql.TypeTags {
		assert.Equal(t, tag, strict[i].Tag)
		assert.Equal(t, tag, permissive[i].Tag)
	}
}

func TestLookupType(t *testing.T) {
	t.Parallel()

	t.Run("total over the tag universe", func(t *testing.T) {
		t.Parallel()

		for _, mode := range []docsql.TypeMode{docsql.ModeStrict, docsql.ModePermissive} {
			for _, tag := range docsql.TypeTags {
				d, err := docsql.LookupType(tag, mode)
				require.NoError(t, err)
				require.NotNil(t, d)
				assert.Equal(t, tag, d.Tag)
			}
		}
	})

	t.Run("unknown tag fails", func(t *testing.T) {
		t.Parallel()

		_, err := docsql.LookupType("frobnicate", docsql.ModeStrict)
		require.ErrorIs(t, err, docsql.ErrUnknownTypeTag)
	})

	t.Run("strict keeps native codes", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			tag  docsql.TypeTag
			want docsql.SQLType
		}{
			{docsql.TagInt, docsql.SQLInteger},
			{docsql.TagLong, docsql.SQLBigint},
			{docsql.TagDouble, docsql.SQLDouble},
			{docsql.TagDecimal, docsql.SQLDecimal},
			{docsql.TagBool, docsql.SQLBit},
			{docsql.TagString, docsql.SQLWvarchar},
			{docsql.TagDate, docsql.SQLTypeTimestamp},
			{docsql.TagBinData, docsql.SQLVarbinary},
			{docsql.TagAny, docsql.SQLUnknownType},
		}

		for _, tt := range tests {
			d, err := docsql.LookupType(tt.tag, docsql.ModeStrict)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.SQLType, "tag %s", tt.tag)
		}
	})

	t.Run("permissive collapses to wvarchar", func(t *testing.T) {
		t.Parallel()

		for _, tag := range docsql.TypeTags {
			d, err := docsql.LookupType(tag, docsql.ModePermissive)
			require.NoError(t, err)
			assert.Equal(t, docsql.SQLWvarchar, d.SQLType, "tag %s", tag)
			assert.Equal(t, docsql.SQLWvarchar, d.SQLDataType, "tag %s", tag)
		}
	})

	t.Run("datetime family uses the verbose code in strict mode", func(t *testing.T) {
		t.Parallel()

		for _, tag := range []docsql.TypeTag{docsql.TagDate, docsql.TagTimestamp} {
			d, err := docsql.LookupType(tag, docsql.ModeStrict)
			require.NoError(t, err)
			assert.Equal(t, docsql.SQLDatetime, d.SQLDataType)
			require.NotNil(t, d.SQLDatetimeSub)
			assert.Equal(t, docsql.SQLCodeTimestamp, *d.SQLDatetimeSub)
		}
	})
}

func TestTypesBySQLType(t *testing.T) {
	t.Parallel()

	t.Run("wildcard matches every row", func(t *testing.T) {
		t.Parallel()

		rows := docsql.TypesBySQLType(docsql.SQLAllTypes, docsql.ModeStrict)
		assert.Len(t, rows, len(docsql.TypeTags))
	})

	t.Run("specific code matches table order", func(t *testing.T) {
		t.Parallel()

		rows := docsql.TypesBySQLType(docsql.SQLInteger, docsql.ModeStrict)
		require.Len(t, rows, 1)
		assert.Equal(t, docsql.TagInt, rows[0].Tag)
	})

	t.Run("matching is keyed on the mode's code", func(t *testing.T) {
		t.Parallel()

		// int is SQLInteger in strict mode but wvarchar in permissive.
		rows := docsql.TypesBySQLType(docsql.SQLInteger, docsql.ModePermissive)
		assert.Empty(t, rows)

		rows = docsql.TypesBySQLType(docsql.SQLWvarchar, docsql.ModePermissive)
		assert.Len(t, rows, len(docsql.TypeTags))
	})
}

func TestParseTypeMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    docsql.TypeMode
		wantErr bool
	}{
		{in: "strict", want: docsql.ModeStrict},
		{in: "", want: docsql.ModeStrict},
		{in: "permissive", want: docsql.ModePermissive},
		{in: "lenient", wantErr: true},
	}

	for _, tt := range tests {
		got, err := docsql.ParseTypeMode(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, docsql.ErrUnknownTypeMode)
			continue
		}

		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
