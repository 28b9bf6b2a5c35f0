package resolve

import (
	"bridgen/internal/decl"
	"bridgen/internal/ir"
)

// resolveFunc builds one function node. A parameter shaped as StreamSink<T>
// is reinterpreted as the outbound channel: it sets the output to the
// resolution of T, sets mode Stream, and is excluded from the inputs. When
// a stream parameter is present the declared return type is never
// consulted; otherwise the return type must be Result-shaped and its
// success payload becomes the output, with mode Sync when that payload is
// the synchronous fast-path delegate.
func (r *resolver) resolveFunc(src *decl.Func) (ir.Func, error) {
	r.log.Debug("resolving function", "name", src.Name)

	inputs := make([]ir.Field, 0, len(src.Params))
	var output ir.Type
	var mode ir.Mode

	for _, p := range src.Params {
		if inner, ok := wrapperArg(p.Type, wrapperStreamSink); ok {
			// A second StreamSink overwrites the first; both vanish
			// from the inputs.
			out, err := r.resolveType(inner)
			if err != nil {
				return ir.Func{}, err
			}
			output = out
			mode = ir.ModeStream
			continue
		}

		ty, err := r.resolveType(p.Type)
		if err != nil {
			return ir.Func{}, err
		}
		inputs = append(inputs, ir.Field{Name: ir.NewIdent(p.Name), Type: ty, Docs: p.Docs})
	}

	if output == nil {
		if src.Ret == nil {
			return ir.Func{}, unsupported(ReasonBadReturnShape, "()")
		}
		payload, ok := resultArg(src.Ret)
		if !ok {
			return ir.Func{}, unsupported(ReasonBadReturnShape, src.Ret.String())
		}
		out, err := r.resolveType(payload)
		if err != nil {
			return ir.Func{}, err
		}
		output = out

		mode = ir.ModeNormal
		if d, ok := out.(ir.Delegate); ok && d.Kind == ir.DelegateSyncReturnVecU8 {
			mode = ir.ModeSync
		}
	}

	return ir.Func{
		Name:   src.Name,
		Inputs: inputs,
		Output: output,
		Mode:   mode,
		Docs:   src.Docs,
	}, nil
}
