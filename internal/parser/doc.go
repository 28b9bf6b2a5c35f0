// Package parser is the front end: it turns the text of one Rust API source
// file into the declaration tree of package decl.
//
// Only the declaration surface is parsed. Function bodies and every item
// kind other than public functions and structs are skipped token-wise, with
// strings, chars, and comments folded into single tokens first so that
// brace balancing cannot be fooled by literals. Type expressions are parsed
// into a structural form (path segments plus generic arguments); no later
// stage re-tokenizes type text.
//
// The first construct outside the supported subset aborts the parse with a
// SyntaxError carrying the file position.
package parser
