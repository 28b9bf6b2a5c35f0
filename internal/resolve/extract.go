package resolve

import "bridgen/internal/decl"

// Extract filters a declaration tree down to its publicly visible surface:
// the functions in declaration order and the structs keyed by name. All
// other items are ignored.
func Extract(file *decl.File) ([]*decl.Func, map[string]*decl.Struct) {
	var funcs []*decl.Func
	structs := make(map[string]*decl.Struct)

	for _, item := range file.Items {
		switch it := item.(type) {
		case *decl.Func:
			if it.Public {
				funcs = append(funcs, it)
			}
		case *decl.Struct:
			if it.Public {
				structs[it.Name] = it
			}
		}
	}

	return funcs, structs
}
