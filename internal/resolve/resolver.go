package resolve

import (
	"fmt"
	"log/slog"

	"bridgen/internal/decl"
	"bridgen/internal/ir"
)

// resolver carries the mutable state of one resolution pass: the source
// struct declarations, the pool of completed struct nodes, and the set of
// names whose resolution has started. The state is owned by exactly one
// pass over one file and is never shared.
type resolver struct {
	structs   map[string]*decl.Struct
	pool      map[string]*ir.Struct
	resolving map[string]struct{}
	log       *slog.Logger
}

func newResolver(structs map[string]*decl.Struct, log *slog.Logger) *resolver {
	return &resolver{
		structs:   structs,
		pool:      make(map[string]*ir.Struct),
		resolving: make(map[string]struct{}),
		log:       log,
	}
}

// resolveType maps one type expression onto exactly one IR node. The
// productions are tried in a fixed priority order; the first match wins and
// no match is fatal.
func (r *resolver) resolveType(t *decl.TypeExpr) (ir.Type, error) {
	r.log.Debug("resolving type", "expr", t.String())

	// 1. Fixed-width scalars.
	if t.IsBare() {
		if kind, ok := ir.PrimitiveFromRust(t.Name()); ok {
			return ir.Primitive{Kind: kind}, nil
		}
	}

	// 2. Delegate special forms.
	if d, ok, err := r.resolveDelegate(t); err != nil {
		return nil, err
	} else if ok {
		return d, nil
	}

	// 3. Vec.
	if inner, ok := wrapperArg(t, wrapperVec); ok {
		resolved, err := r.resolveType(inner)
		if err != nil {
			return nil, err
		}
		if prim, ok := resolved.(ir.Primitive); ok {
			return ir.PrimitiveList{Elem: prim.Kind}, nil
		}
		return ir.GeneralList{Inner: resolved}, nil
	}

	// 4. Box. This path is only reached for indirection the user wrote.
	if inner, ok := wrapperArg(t, wrapperBox); ok {
		resolved, err := r.resolveType(inner)
		if err != nil {
			return nil, err
		}
		return ir.Boxed{Inner: resolved, ExistsInRealSignature: true}, nil
	}

	// 5. Option.
	if inner, ok := wrapperArg(t, wrapperOption); ok {
		return r.resolveOptional(inner)
	}

	// 6. Struct reference.
	if t.IsBare() {
		if _, ok := r.structs[t.Name()]; ok {
			return r.resolveStructRef(t.Name())
		}
	}

	return nil, unsupported(ReasonUnsupportedType, t.String())
}

// resolveDelegate tests the special-cased forms: the synchronous fast-path
// byte buffer, the textual string, and the zero-copy buffer. A
// ZeroCopyBuffer whose inner is not a primitive list does not match and
// falls through to the later productions.
func (r *resolver) resolveDelegate(t *decl.TypeExpr) (ir.Type, bool, error) {
	if inner, ok := wrapperArg(t, wrapperSyncReturn); ok {
		if elem, ok := wrapperArg(inner, wrapperVec); ok && elem.IsBare() && elem.Name() == "u8" {
			return ir.Delegate{Kind: ir.DelegateSyncReturnVecU8}, true, nil
		}
		return nil, false, nil
	}

	if t.IsBare() && t.Name() == "String" {
		return ir.Delegate{Kind: ir.DelegateString}, true, nil
	}

	if inner, ok := wrapperArg(t, wrapperZeroCopyBuffer); ok {
		if elem, ok := wrapperArg(inner, wrapperVec); ok {
			resolved, err := r.resolveType(elem)
			if err != nil {
				return nil, false, err
			}
			if prim, ok := resolved.(ir.Primitive); ok {
				return ir.Delegate{Kind: ir.DelegateZeroCopyBufferVecPrimitive, Elem: prim.Kind}, true, nil
			}
		}
	}

	return nil, false, nil
}

// resolveOptional resolves the inner expression of an Option. A directly
// nested Option is a hard error, never flattened. Optional struct values
// are boxed behind a synthesized indirection that downstream emitters must
// treat as invisible; every other non-primitive inner is wrapped in the
// pointer representation without a redundant box.
func (r *resolver) resolveOptional(inner *decl.TypeExpr) (ir.Type, error) {
	if nested, ok := wrapperArg(inner, wrapperOption); ok {
		return nil, unsupported(ReasonNestedOptional, nested.String())
	}

	resolved, err := r.resolveType(inner)
	if err != nil {
		return nil, err
	}

	switch v := resolved.(type) {
	case ir.Primitive:
		return ir.Optional{Repr: ir.OptionalPrimitive, Inner: v}, nil
	case ir.StructRef:
		boxed := ir.Boxed{Inner: v, ExistsInRealSignature: false}
		return ir.Optional{Repr: ir.OptionalPointer, Inner: boxed}, nil
	default:
		return ir.Optional{Repr: ir.OptionalPointer, Inner: resolved}, nil
	}
}

// resolveStructRef returns a by-name reference into the struct pool,
// constructing the pool entry on first encounter. The name is registered
// before its fields are resolved; a field referring back to the name (Self
// through Box, or a mutual cycle) then short-circuits here instead of
// recursing without bound.
func (r *resolver) resolveStructRef(name string) (ir.Type, error) {
	if _, seen := r.resolving[name]; !seen {
		r.resolving[name] = struct{}{}
		st, err := r.resolveStruct(r.structs[name])
		if err != nil {
			return nil, err
		}
		r.pool[name] = st
	}
	return ir.StructRef{Name: name}, nil
}

// resolveStruct builds the pool entry for one struct declaration. Fields
// resolve in declaration order; positional fields are named field0,
// field1, ... Unit structs have no representable fields and are rejected.
func (r *resolver) resolveStruct(src *decl.Struct) (*ir.Struct, error) {
	r.log.Debug("resolving struct", "name", src.Name)

	var named bool
	switch src.Shape {
	case decl.ShapeNamed:
		named = true
	case decl.ShapePositional:
		named = false
	default:
		return nil, unsupported(ReasonBadStructShape, src.Name)
	}

	fields := make([]ir.Field, 0, len(src.Fields))
	for i, f := range src.Fields {
		name := f.Name
		if name == "" {
			name = fmt.Sprintf("field%d", i)
		}
		ty, err := r.resolveType(f.Type)
		if err != nil {
			return nil, err
		}
		fields = append(fields, ir.Field{Name: ir.NewIdent(name), Type: ty, Docs: f.Docs})
	}

	return &ir.Struct{
		Name:          src.Name,
		Fields:        fields,
		IsFieldsNamed: named,
		Docs:          src.Docs,
	}, nil
}
