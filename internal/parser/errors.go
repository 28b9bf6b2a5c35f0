package parser

import "fmt"

// SyntaxError reports a construct outside the supported Rust subset:
// unsupported type syntax, a parameter binding pattern other than a simple
// name, a generic declaration, or malformed source.
type SyntaxError struct {
	File   string // source file name, may be empty for fragment parses
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}
