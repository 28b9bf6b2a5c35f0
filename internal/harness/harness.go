package harness

import (
	"os"
	"path/filepath"

	"bridgen/internal/ir"
	"bridgen/internal/parser"
	"bridgen/internal/resolve"
)

// ExtractSource runs the extraction pipeline over in-memory source: parse
// the declaration tree, then resolve it into the IR document.
func ExtractSource(name, source string) (*ir.File, error) {
	tree, err := parser.ParseFile(name, source)
	if err != nil {
		return nil, err
	}
	return resolve.Resolve(tree, []byte(source))
}

// ExtractFile runs the extraction pipeline over a file on disk. The file's
// base name becomes the tree name, so error positions and golden output stay
// stable across checkout locations.
func ExtractFile(path string) (*ir.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tree, err := parser.ParseFile(filepath.Base(path), string(data))
	if err != nil {
		return nil, err
	}
	return resolve.Resolve(tree, data)
}
