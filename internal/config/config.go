// Package config resolves the tool's options from flags and an optional
// YAML file, filling unset values by inference from the input path: the
// crate directory is the nearest ancestor holding a Cargo.toml, the class
// name comes from the crate's package name, and the output path defaults to
// a fixed sibling of the input.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultOutputName is the output file written next to the input when no
// output path is given.
const DefaultOutputName = "bridgen_ir.json"

// DefaultFileName is the config file picked up from the working directory
// when no --config flag is given.
const DefaultFileName = "bridgen.yaml"

// Raw holds option values as given, before fallback inference. The same
// shape serves CLI flags and the YAML config file; zero values mean unset.
type Raw struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	CrateDir  string `yaml:"crate_dir"`
	ClassName string `yaml:"class_name"`
	CacheDir  string `yaml:"cache_dir"`
	Pretty    bool   `yaml:"pretty"`
}

// Options holds fully resolved option values. All paths are absolute.
type Options struct {
	Input     string
	Output    string
	CrateDir  string
	ClassName string
	CacheDir  string // empty disables the extraction cache
	Pretty    bool
}

// LoadFile reads a YAML config file. Unknown keys are an error so a typo
// never silently becomes a default.
func LoadFile(path string) (*Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var raw Raw
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &raw, nil
}

// Merge overlays flag values on top of file values. A set flag wins; bools
// merge with or since flags cannot express "explicitly false".
func Merge(file, flags *Raw) *Raw {
	if file == nil {
		file = &Raw{}
	}
	merged := *file
	if flags.Input != "" {
		merged.Input = flags.Input
	}
	if flags.Output != "" {
		merged.Output = flags.Output
	}
	if flags.CrateDir != "" {
		merged.CrateDir = flags.CrateDir
	}
	if flags.ClassName != "" {
		merged.ClassName = flags.ClassName
	}
	if flags.CacheDir != "" {
		merged.CacheDir = flags.CacheDir
	}
	merged.Pretty = merged.Pretty || flags.Pretty
	return &merged
}

// Resolve fills unset values by inference and absolutizes every path
// against cwd.
func Resolve(raw *Raw, cwd string) (*Options, error) {
	if raw.Input == "" {
		return nil, fmt.Errorf("input is required")
	}
	input := absPath(cwd, raw.Input)

	output := raw.Output
	if output == "" {
		output = filepath.Join(filepath.Dir(input), DefaultOutputName)
	} else {
		output = absPath(cwd, output)
	}

	crateDir := raw.CrateDir
	if crateDir == "" {
		dir, ok := fallbackCrateDir(filepath.Dir(input))
		if !ok {
			return nil, fmt.Errorf("fail to guess crate_dir, please specify it manually")
		}
		crateDir = dir
	} else {
		crateDir = absPath(cwd, crateDir)
	}

	className := raw.ClassName
	if className == "" {
		name, err := fallbackClassName(crateDir)
		if err != nil {
			return nil, fmt.Errorf("fail to guess class_name, please specify it manually: %w", err)
		}
		className = name
	}

	cacheDir := raw.CacheDir
	if cacheDir != "" {
		cacheDir = absPath(cwd, cacheDir)
	}

	return &Options{
		Input:     input,
		Output:    output,
		CrateDir:  crateDir,
		ClassName: className,
		CacheDir:  cacheDir,
		Pretty:    raw.Pretty,
	}, nil
}

// fallbackCrateDir walks from dir toward the filesystem root looking for a
// Cargo.toml.
func fallbackCrateDir(dir string) (string, bool) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "Cargo.toml")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func absPath(cwd, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(cwd, path)
}
