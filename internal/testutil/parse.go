// Package testutil provides shared helpers for tests across the internal
// packages: parse-or-fail wrappers over the front end so resolver and
// harness tests can state their inputs as Rust source text.
package testutil

import (
	"testing"

	"bridgen/internal/decl"
	"bridgen/internal/parser"
)

// MustParseType parses a canonical type expression or fails the test.
func MustParseType(t *testing.T, src string) *decl.TypeExpr {
	t.Helper()
	ty, err := parser.ParseTypeExpr(src)
	if err != nil {
		t.Fatalf("parse type %q: %v", src, err)
	}
	return ty
}

// MustParseFile parses a Rust source fragment or fails the test.
func MustParseFile(t *testing.T, src string) *decl.File {
	t.Helper()
	f, err := parser.ParseFile("test.rs", src)
	if err != nil {
		t.Fatalf("parse file: %v", err)
	}
	return f
}
