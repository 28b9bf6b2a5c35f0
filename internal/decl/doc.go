// Package decl models the declaration tree handed from the front end to the
// resolver: the top-level functions and structs of one source file, with
// type expressions already parsed into a structural form (path segments plus
// generic arguments) so that no later stage re-tokenizes type text.
//
// The tree carries declarations only. Bodies, attributes, and items other
// than public functions and structs never reach this representation.
package decl
