package resolve

import (
	"bytes"
	"log/slog"

	"bridgen/internal/decl"
	"bridgen/internal/ir"
)

// HandlerName is the marker token whose presence anywhere in the raw source
// text flags a custom executor handler. The scan is intentionally textual:
// the handler is declared outside the items this package inspects.
const HandlerName = "BRIDGEN_HANDLER"

// Resolve assembles the IR document for one source file: it extracts the
// public surface from the declaration tree, resolves every function in
// declaration order through one shared struct resolver state, and scans the
// raw source for the executor marker. On the first unsupported construct
// the pass aborts and no document is returned.
func Resolve(tree *decl.File, source []byte) (*ir.File, error) {
	funcs, structs := Extract(tree)
	r := newResolver(structs, slog.Default())

	doc := &ir.File{
		Funcs:       make([]ir.Func, 0, len(funcs)),
		StructPool:  r.pool,
		HasExecutor: bytes.Contains(source, []byte(HandlerName)),
	}

	for _, fn := range funcs {
		resolved, err := r.resolveFunc(fn)
		if err != nil {
			return nil, err
		}
		doc.Funcs = append(doc.Funcs, resolved)
	}

	return doc, nil
}
