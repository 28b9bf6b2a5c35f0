package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"bridgen/internal/ir"
)

// AssertGolden compares the document's stable pretty serialization against
// testdata/golden/{name}.golden.
func AssertGolden(t *testing.T, name string, doc *ir.File) {
	t.Helper()

	data, err := ir.MarshalStable(doc, true)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
