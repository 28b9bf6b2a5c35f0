package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridgen/internal/ir"
	"bridgen/internal/parser"
	"bridgen/internal/resolve"
)

func TestExtractSource(t *testing.T) {
	doc, err := ExtractSource("api.rs", `
pub fn add(a: i32, b: i32) -> Result<i32> {}
`)
	require.NoError(t, err)
	require.Len(t, doc.Funcs, 1)
	assert.Equal(t, "add", doc.Funcs[0].Name)
	assert.Equal(t, ir.ModeNormal, doc.Funcs[0].Mode)
	assert.False(t, doc.HasExecutor)
}

func TestExtractSourceSyntaxError(t *testing.T) {
	_, err := ExtractSource("api.rs", `pub fn broken(a: &str) -> Result<i32> {}`)
	var syntaxErr *parser.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "api.rs", syntaxErr.File)
}

func TestExtractSourceUnsupportedConstruct(t *testing.T) {
	_, err := ExtractSource("api.rs", `pub fn f(x: usize) -> Result<i32> {}`)
	var unsupportedErr *resolve.UnsupportedError
	require.ErrorAs(t, err, &unsupportedErr)
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.rs")
	require.NoError(t, os.WriteFile(path, []byte("pub fn f() -> Result<bool> {}\n"), 0o644))

	doc, err := ExtractFile(path)
	require.NoError(t, err)
	require.Len(t, doc.Funcs, 1)
	assert.Equal(t, ir.Primitive{Kind: ir.Bool}, doc.Funcs[0].Output)
}

func TestExtractFileMissing(t *testing.T) {
	_, err := ExtractFile(filepath.Join(t.TempDir(), "absent.rs"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestExtractFileUsesBaseName(t *testing.T) {
	// Error positions must name the file, not the checkout-relative path.
	path := filepath.Join(t.TempDir(), "deep", "api.rs")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("pub fn f(a: &str) -> Result<i32> {}\n"), 0o644))

	_, err := ExtractFile(path)
	var syntaxErr *parser.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "api.rs", syntaxErr.File)
}
