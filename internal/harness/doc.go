// Package harness drives the full extraction pipeline end to end for
// conformance testing.
//
// The corpus under testdata/corpus holds small Rust API files; each has a
// golden IR document under testdata/golden with the same base name. The
// golden files hold the stable pretty serialization, so any change to
// parsing, resolution, or the wire format shows up as a byte diff.
//
// To regenerate golden files after an intentional change, run:
//
//	go test ./internal/harness -update
package harness
