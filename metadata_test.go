package docsql_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rlch/docsql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		schema       docsql.Schema
		wantType     docsql.SQLType
		wantTypeName string
	}{
		{
			name:         "scalar",
			schema:       &docsql.Scalar{Tag: docsql.TagInt},
			wantType:     docsql.SQLInteger,
			wantTypeName: "int",
		},
		{
			name:         "object",
			schema:       &docsql.Object{AdditionalProperties: true},
			wantType:     docsql.SQLWvarchar,
			wantTypeName: "object",
		},
		{
			name:         "array",
			schema:       &docsql.Array{Element: docsql.AnySchema()},
			wantType:     docsql.SQLWvarchar,
			wantTypeName: "array",
		},
		{
			name:         "nullable union degenerates to its non-null member",
			schema:       mustAnyOf(t, docsql.TagInt, docsql.TagNull),
			wantType:     docsql.SQLInteger,
			wantTypeName: "int",
		},
		{
			name:         "two non-null members widen to the generic type",
			schema:       mustAnyOf(t, docsql.TagInt, docsql.TagString),
			wantType:     docsql.SQLUnknownType,
			wantTypeName: "bson",
		},
		{
			name:         "three members widen even when one is null",
			schema:       mustAnyOf(t, docsql.TagInt, docsql.TagString, docsql.TagNull),
			wantType:     docsql.SQLUnknownType,
			wantTypeName: "bson",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			col, err := docsql.ProjectColumn("orders", "total", tt.schema, docsql.Nullable, docsql.ModeStrict)
			require.NoError(t, err)

			assert.Equal(t, "orders", col.TableName)
			assert.Equal(t, "total", col.Name)
			assert.Equal(t, "total", col.Label)
			assert.Equal(t, tt.wantType, col.SQLType)
			assert.Equal(t, tt.wantTypeName, col.TypeName)
			assert.Equal(t, docsql.Nullable, col.Nullability)
			assert.False(t, col.Updatable, "driver is read-only")
		})
	}

	t.Run("union of null and object degenerates to object", func(t *testing.T) {
		t.Parallel()

		schema, err := docsql.NewAnyOf([]docsql.Atom{
			&docsql.Scalar{Tag: docsql.TagNull},
			&docsql.Object{AdditionalProperties: true},
		})
		require.NoError(t, err)

		col, err := docsql.ProjectColumn("t", "f", schema, docsql.Nullable, docsql.ModeStrict)
		require.NoError(t, err)
		assert.Equal(t, "object", col.TypeName)
	})

	t.Run("mode changes the advertised code", func(t *testing.T) {
		t.Parallel()

		schema := &docsql.Scalar{Tag: docsql.TagInt}

		strict, err := docsql.ProjectColumn("t", "f", schema, docsql.NoNulls, docsql.ModeStrict)
		require.NoError(t, err)
		permissive, err := docsql.ProjectColumn("t", "f", schema, docsql.NoNulls, docsql.ModePermissive)
		require.NoError(t, err)

		assert.Equal(t, docsql.SQLInteger, strict.SQLType)
		assert.Equal(t, docsql.SQLWvarchar, permissive.SQLType)
	})
}

func mustAnyOf(t *testing.T, ts ...docsql.TypeTag) docsql.Schema {
	t.Helper()

	atoms := make([]docsql.Atom, len(ts))
	for i, tag := range ts {
		atoms[i] = &docsql.Scalar{Tag: tag}
	}

	s, err := docsql.NewAnyOf(atoms)
	require.NoError(t, err)

	return s
}

func TestResolveCollection(t *testing.T) {
	t.Parallel()

	schema := mustSimplify(t, &docsql.SchemaDocument{
		Types: tags(docsql.TagObject),
		Properties: map[string]*docsql.SchemaDocument{
			"zeta":  {Types: tags(docsql.TagString)},
			"alpha": {Types: tags(docsql.TagInt)},
			"mid":   {Types: tags(docsql.TagDouble, docsql.TagNull)},
		},
		Required: []string{"alpha", "mid"},
	})

	t.Run("columns sorted by field name", func(t *testing.T) {
		t.Parallel()

		columns, err := docsql.ResolveCollection("users", schema, docsql.ModeStrict)
		require.NoError(t, err)
		require.Len(t, columns, 3)

		names := []string{columns[0].Name, columns[1].Name, columns[2].Name}
		assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)

		assert.Equal(t, docsql.NoNulls, columns[0].Nullability)
		// mid is {double, null}: nullable, typed as double.
		assert.Equal(t, docsql.Nullable, columns[1].Nullability)
		assert.Equal(t, "double", columns[1].TypeName)
		assert.Equal(t, docsql.Nullable, columns[2].Nullability)

		for _, col := range columns {
			assert.Equal(t, "users", col.TableName)
		}
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		t.Parallel()

		first, err := docsql.ResolveCollection("users", schema, docsql.ModeStrict)
		require.NoError(t, err)

		for range 10 {
			again, err := docsql.ResolveCollection("users", schema, docsql.ModeStrict)
			require.NoError(t, err)
			require.Empty(t, cmp.Diff(first, again))
		}
	})

	t.Run("non-object schema fails", func(t *testing.T) {
		t.Parallel()

		_, err := docsql.ResolveCollection("users", &docsql.Scalar{Tag: docsql.TagInt}, docsql.ModeStrict)
		require.ErrorIs(t, err, docsql.ErrNotObjectSchema)
	})
}

// twoTableSchema is the resolver fixture: two tables, three columns.
func twoTableSchema(t *testing.T) docsql.Schema {
	t.Helper()

	return mustSimplify(t, &docsql.SchemaDocument{
		Types: tags(docsql.TagObject),
		Properties: map[string]*docsql.SchemaDocument{
			"bar": {
				Types: tags(docsql.TagObject),
				Properties: map[string]*docsql.SchemaDocument{
					"c": {Types: tags(docsql.TagInt)},
				},
			},
			"foo": {
				Types: tags(docsql.TagObject),
				Properties: map[string]*docsql.SchemaDocument{
					"a": {Types: tags(docsql.TagInt)},
					"b": {Types: tags(docsql.TagInt)},
				},
			},
		},
	})
}

func TestResolveResultSet(t *testing.T) {
	t.Parallel()

	refs := func(cols []docsql.ColumnMetadata) []docsql.ColumnRef {
		out := make([]docsql.ColumnRef, len(cols))
		for i, col := range cols {
			out[i] = docsql.ColumnRef{Owner: col.TableName, Field: col.Name}
		}

		return out
	}

	t.Run("lexicographic fallback", func(t *testing.T) {
		t.Parallel()

		columns, err := docsql.ResolveResultSet(twoTableSchema(t), nil, docsql.ModeStrict)
		require.NoError(t, err)

		assert.Equal(t, []docsql.ColumnRef{
			{Owner: "bar", Field: "c"},
			{Owner: "foo", Field: "a"},
			{Owner: "foo", Field: "b"},
		}, refs(columns))
	})

	t.Run("authoritative order overrides the default", func(t *testing.T) {
		t.Parallel()

		order := []docsql.ColumnRef{
			{Owner: "foo", Field: "b"},
			{Owner: "foo", Field: "a"},
			{Owner: "bar", Field: "c"},
		}

		columns, err := docsql.ResolveResultSet(twoTableSchema(t), order, docsql.ModeStrict)
		require.NoError(t, err)
		assert.Equal(t, order, refs(columns))
	})

	t.Run("order referencing an unprojected column fails", func(t *testing.T) {
		t.Parallel()

		order := []docsql.ColumnRef{
			{Owner: "foo", Field: "a"},
			{Owner: "foo", Field: "b"},
			{Owner: "bar", Field: "nope"},
		}

		_, err := docsql.ResolveResultSet(twoTableSchema(t), order, docsql.ModeStrict)
		require.ErrorIs(t, err, docsql.ErrOrderingMismatch)
	})

	t.Run("order must cover every projected column", func(t *testing.T) {
		t.Parallel()

		order := []docsql.ColumnRef{
			{Owner: "foo", Field: "a"},
		}

		_, err := docsql.ResolveResultSet(twoTableSchema(t), order, docsql.ModeStrict)
		require.ErrorIs(t, err, docsql.ErrOrderingMismatch)
	})

	t.Run("duplicate order reference fails", func(t *testing.T) {
		t.Parallel()

		order := []docsql.ColumnRef{
			{Owner: "foo", Field: "a"},
			{Owner: "foo", Field: "a"},
			{Owner: "foo", Field: "b"},
		}

		_, err := docsql.ResolveResultSet(twoTableSchema(t), order, docsql.ModeStrict)
		require.ErrorIs(t, err, docsql.ErrOrderingMismatch)
	})

	t.Run("non-object top level fails", func(t *testing.T) {
		t.Parallel()

		_, err := docsql.ResolveResultSet(&docsql.Scalar{Tag: docsql.TagInt}, nil, docsql.ModeStrict)
		require.ErrorIs(t, err, docsql.ErrNotObjectSchema)
	})

	t.Run("non-object table schema fails", func(t *testing.T) {
		t.Parallel()

		schema := mustSimplify(t, &docsql.SchemaDocument{
			Types: tags(docsql.TagObject),
			Properties: map[string]*docsql.SchemaDocument{
				"foo": {Types: tags(docsql.TagString)},
			},
		})

		_, err := docsql.ResolveResultSet(schema, nil, docsql.ModeStrict)
		require.ErrorIs(t, err, docsql.ErrNotObjectSchema)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		t.Parallel()

		first, err := docsql.ResolveResultSet(twoTableSchema(t), nil, docsql.ModeStrict)
		require.NoError(t, err)

		for range 10 {
			again, err := docsql.ResolveResultSet(twoTableSchema(t), nil, docsql.ModeStrict)
			require.NoError(t, err)
			require.Empty(t, cmp.Diff(first, again))
		}
	})
}
