package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCorpusGolden extracts every corpus file and compares the resulting IR
// document against its golden fixture byte for byte.
func TestCorpusGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "corpus", "*.rs"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "corpus must not be empty")

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".rs")
		t.Run(name, func(t *testing.T) {
			doc, err := ExtractFile(path)
			require.NoError(t, err)
			AssertGolden(t, name, doc)
		})
	}
}
