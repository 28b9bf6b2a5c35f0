// Package ir defines the language-neutral Interface Representation produced
// for one Rust API source file.
//
// This package contains the IR node types, their JSON codec, and identity
// helpers only. All other internal packages import ir; ir imports nothing
// internal. This keeps the IR the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Type is a closed union; only the variants in types.go implement it
//   - StructRef carries a name, never a struct body, so recursive and
//     mutually recursive struct graphs stay representable
//   - All JSON tags use snake_case
//   - Nodes are built once per resolution pass and never mutated afterwards
package ir
