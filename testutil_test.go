package docsql_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rlch/docsql"
	"github.com/stretchr/testify/require"
)

// mustSimplify simplifies a document and fails the test on error.
func mustSimplify(t *testing.T, doc *docsql.SchemaDocument) docsql.Schema {
	t.Helper()

	s, err := docsql.Simplify(doc)
	require.NoError(t, err)

	return s
}

// requireSchemaEqual compares canonical schemas structurally, with a
// readable diff on mismatch.
func requireSchemaEqual(t *testing.T, want, got docsql.Schema) {
	t.Helper()

	if !docsql.SchemasEqual(want, got) {
		t.Fatalf("schemas differ (-want +got):\n%s", cmp.Diff(want, got))
	}
}

// tags builds a TagSet from tag literals.
func tags(ts ...docsql.TypeTag) docsql.TagSet {
	return docsql.TagSet(ts)
}

// ptr returns a pointer to the given value.
func ptr[T any](v T) *T {
	return &v
}
