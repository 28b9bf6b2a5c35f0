package resolve

import "bridgen/internal/decl"

// Wrapper names recognized by the shape matcher. Each is a single-argument
// generic; precedence between them is imposed by the type resolver's
// priority chain, never here.
const (
	wrapperVec            = "Vec"
	wrapperBox            = "Box"
	wrapperOption         = "Option"
	wrapperStreamSink     = "StreamSink"
	wrapperZeroCopyBuffer = "ZeroCopyBuffer"
	wrapperSyncReturn     = "SyncReturn"
	wrapperResult         = "Result"
)

// wrapperArg tests whether the expression is an instantiation of the named
// single-argument wrapper and returns the inner expression. The match is
// structural: the final path segment must equal the wrapper name exactly
// (`bridge::Box<T>` matches Box, `MyBox<T>` does not) and exactly one generic
// argument must be present.
func wrapperArg(t *decl.TypeExpr, name string) (*decl.TypeExpr, bool) {
	if t == nil || t.Name() != name || len(t.Args) != 1 {
		return nil, false
	}
	return t.Args[0], true
}

// resultArg tests for the fallible-result shape and returns the success
// payload. Result takes the payload alone or a payload plus an error type;
// the error type never crosses the boundary and is discarded.
func resultArg(t *decl.TypeExpr) (*decl.TypeExpr, bool) {
	if t == nil || t.Name() != wrapperResult {
		return nil, false
	}
	if len(t.Args) != 1 && len(t.Args) != 2 {
		return nil, false
	}
	return t.Args[0], true
}
