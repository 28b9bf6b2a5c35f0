// Package resolve is the semantic core: it turns the declaration tree of
// one Rust API source file into the IR document of package ir.
//
// Resolution is a single synchronous depth-first pass. The type resolver
// maps each type expression onto exactly one IR node through a fixed
// first-match-wins priority chain (primitive, delegate, Vec, Box, Option,
// struct reference). Struct resolution is memoized file-wide and guarded
// against self- and mutually-referential structs by registering a struct
// name before descending into its fields. The first unsupported construct
// aborts the whole pass; no partial document is ever produced, because a
// silently wrong type mapping would generate memory-unsafe glue downstream.
package resolve
