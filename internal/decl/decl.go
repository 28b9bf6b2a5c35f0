package decl

// File is the parsed declaration tree of one source file, items in source
// order.
type File struct {
	Name  string
	Items []Item
}

// Item is a top-level declaration.
//
// This is a sealed interface - only *Func and *Struct implement it. The
// marker method pattern keeps the extractor's type switch exhaustive.
type Item interface {
	item()
}

// Func is a top-level function declaration. Ret is the declared return type,
// nil when the function declares none.
type Func struct {
	Name   string
	Public bool
	Params []Param
	Ret    *TypeExpr
	Docs   []string
}

// Param is one function parameter, always bound to a simple name (the front
// end rejects any other binding pattern before the tree is built).
type Param struct {
	Name string
	Type *TypeExpr
	Docs []string
}

// StructShape distinguishes the field container form of a struct
// declaration.
type StructShape string

const (
	// ShapeNamed is a braced struct with named fields.
	ShapeNamed StructShape = "named"
	// ShapePositional is a tuple struct with unnamed fields.
	ShapePositional StructShape = "positional"
	// ShapeUnit is a fieldless unit struct. Represented here, rejected by
	// the resolver.
	ShapeUnit StructShape = "unit"
)

// Struct is a top-level struct declaration. Fields is empty for ShapeUnit;
// Field.Name is empty for ShapePositional.
type Struct struct {
	Name   string
	Public bool
	Shape  StructShape
	Fields []Field
	Docs   []string
}

// Field is one struct field.
type Field struct {
	Name string
	Type *TypeExpr
	Docs []string
}

func (*Func) item()   {}
func (*Struct) item() {}
