package config

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"bridgen/internal/ir"
)

// cargoManifest is the slice of Cargo.toml this tool reads: the [package]
// name only.
type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

// fallbackClassName derives the generated client class name from the
// crate's Cargo.toml package name, rendered in PascalCase (crate names are
// snake_case or kebab-case).
func fallbackClassName(crateDir string) (string, error) {
	path := filepath.Join(crateDir, "Cargo.toml")

	var m cargoManifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return "", fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package", "name") || m.Package.Name == "" {
		return "", fmt.Errorf("%s: missing [package].name", path)
	}

	return ir.NewIdent(m.Package.Name).PascalCase(), nil
}
