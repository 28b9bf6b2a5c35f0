package decl

import "strings"

// TypeExpr is a structural type expression: a `::`-separated path with the
// generic arguments of its final segment. Matching against wrapper names is
// done on this structure, never on re-parsed text, so nested brackets and
// incidental whitespace in the source cannot introduce ambiguity.
type TypeExpr struct {
	Path []string
	Args []*TypeExpr
}

// Name returns the final path segment, the name wrapper matching tests
// against.
func (t *TypeExpr) Name() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[len(t.Path)-1]
}

// IsBare reports whether the expression is a single plain identifier with no
// path prefix and no generic arguments (the only form primitives, String,
// and struct names take).
func (t *TypeExpr) IsBare() bool {
	return len(t.Path) == 1 && len(t.Args) == 0
}

// String renders the canonical text of the expression: path segments joined
// by `::`, arguments comma-joined inside angle brackets, no whitespace.
// Error messages and logs use this rendering.
func (t *TypeExpr) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.Path, "::"))
	if len(t.Args) > 0 {
		b.WriteByte('<')
		for i, arg := range t.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(arg.String())
		}
		b.WriteByte('>')
	}
	return b.String()
}
