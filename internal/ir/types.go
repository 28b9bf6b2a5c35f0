package ir

import (
	"fmt"
	"strings"
)

// File is the IR document for one source file: the exported functions in
// declaration order, the deduplicated struct pool, and whether the source
// declares a custom executor handler.
type File struct {
	Funcs       []Func             `json:"funcs"`
	StructPool  map[string]*Struct `json:"struct_pool"`
	HasExecutor bool               `json:"has_executor"`
}

// Func is one exported function.
type Func struct {
	Name   string   `json:"name"`
	Inputs []Field  `json:"inputs"`
	Output Type     `json:"output"`
	Mode   Mode     `json:"mode"`
	Docs   []string `json:"docs,omitempty"`
}

// Field is a named, typed slot with attached documentation. The same shape
// serves function parameters and struct fields.
type Field struct {
	Name Ident    `json:"name"`
	Type Type     `json:"type"`
	Docs []string `json:"docs,omitempty"`
}

// Struct is one exported struct. IsFieldsNamed distinguishes named fields
// from positional (tuple) fields; positional fields are named field0,
// field1, … in declaration order.
type Struct struct {
	Name          string   `json:"name"`
	Fields        []Field  `json:"fields"`
	IsFieldsNamed bool     `json:"is_fields_named"`
	Docs          []string `json:"docs,omitempty"`
}

// Mode classifies how a function's result crosses the boundary.
type Mode string

const (
	// ModeNormal is an ordinary asynchronous call/return.
	ModeNormal Mode = "normal"
	// ModeSync returns its payload through the synchronous fast path,
	// bypassing the asynchronous dispatch machinery.
	ModeSync Mode = "sync"
	// ModeStream emits results over time through a designated StreamSink
	// parameter; the declared return type is not the output type.
	ModeStream Mode = "stream"
)

// PrimitiveKind enumerates the fixed-width scalars with a direct
// cross-boundary representation.
type PrimitiveKind string

const (
	U8   PrimitiveKind = "u8"
	I8   PrimitiveKind = "i8"
	U16  PrimitiveKind = "u16"
	I16  PrimitiveKind = "i16"
	U32  PrimitiveKind = "u32"
	I32  PrimitiveKind = "i32"
	U64  PrimitiveKind = "u64"
	I64  PrimitiveKind = "i64"
	F32  PrimitiveKind = "f32"
	F64  PrimitiveKind = "f64"
	Bool PrimitiveKind = "bool"
)

var primitivesByRustName = map[string]PrimitiveKind{
	"u8": U8, "i8": I8,
	"u16": U16, "i16": I16,
	"u32": U32, "i32": I32,
	"u64": U64, "i64": I64,
	"f32": F32, "f64": F64,
	"bool": Bool,
}

// PrimitiveFromRust maps a Rust scalar type name to its kind.
func PrimitiveFromRust(name string) (PrimitiveKind, bool) {
	k, ok := primitivesByRustName[name]
	return k, ok
}

// DelegateKind enumerates the special-cased types with bespoke
// cross-boundary handling.
type DelegateKind string

const (
	// DelegateString is a textual string.
	DelegateString DelegateKind = "string"
	// DelegateZeroCopyBufferVecPrimitive is a primitive buffer handed across
	// the boundary without an intermediate copy; Delegate.Elem holds the
	// element kind.
	DelegateZeroCopyBufferVecPrimitive DelegateKind = "zero_copy_buffer_vec_primitive"
	// DelegateSyncReturnVecU8 is the synchronous fast-path byte buffer
	// return.
	DelegateSyncReturnVecU8 DelegateKind = "sync_return_vec_u8"
)

// OptionalRepr selects how a nullable value is encoded.
type OptionalRepr string

const (
	// OptionalPrimitive is an inline null-capable scalar encoding.
	OptionalPrimitive OptionalRepr = "primitive"
	// OptionalPointer wraps the inner node behind a nullable pointer.
	OptionalPointer OptionalRepr = "pointer"
)

// Type is the closed union of IR type nodes.
//
// This is a sealed interface - only the types in this file implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in downstream emitters.
type Type interface {
	typeNode() // Marker method - seals interface to this package
	fmt.Stringer
}

// Primitive is a fixed-width scalar.
type Primitive struct {
	Kind PrimitiveKind `json:"primitive"`
}

// Delegate is a special-cased type. Elem is set only for
// DelegateZeroCopyBufferVecPrimitive.
type Delegate struct {
	Kind DelegateKind  `json:"delegate"`
	Elem PrimitiveKind `json:"elem,omitempty"`
}

// PrimitiveList is a homogeneous sequence of one primitive kind,
// represented compactly (typed buffer, not a list of nodes).
type PrimitiveList struct {
	Elem PrimitiveKind `json:"elem"`
}

// GeneralList is a homogeneous sequence of any non-primitive element type.
type GeneralList struct {
	Inner Type `json:"inner"`
}

// Boxed is single-value indirection. ExistsInRealSignature is true when the
// source signature spells the Box out, false when the indirection was
// synthesized internally (optional struct values); emitters must not render
// synthesized boxes as user-visible wrapping.
type Boxed struct {
	Inner                 Type `json:"inner"`
	ExistsInRealSignature bool `json:"exists_in_real_signature"`
}

// Optional is a nullable value. Repr OptionalPrimitive carries a Primitive
// inner; Repr OptionalPointer carries any other node, possibly a synthesized
// Boxed.
type Optional struct {
	Repr  OptionalRepr `json:"repr"`
	Inner Type         `json:"inner"`
}

// StructRef refers to a struct pool entry by name. It never carries the
// struct body inline.
type StructRef struct {
	Name string `json:"name"`
}

func (Primitive) typeNode()     {}
func (Delegate) typeNode()      {}
func (PrimitiveList) typeNode() {}
func (GeneralList) typeNode()   {}
func (Boxed) typeNode()         {}
func (Optional) typeNode()      {}
func (StructRef) typeNode()     {}

func (t Primitive) String() string { return string(t.Kind) }

func (t Delegate) String() string {
	if t.Kind == DelegateZeroCopyBufferVecPrimitive {
		return fmt.Sprintf("ZeroCopyBuffer<Vec<%s>>", t.Elem)
	}
	if t.Kind == DelegateSyncReturnVecU8 {
		return "SyncReturn<Vec<u8>>"
	}
	return "String"
}

func (t PrimitiveList) String() string { return fmt.Sprintf("Vec<%s>", t.Elem) }

func (t GeneralList) String() string { return fmt.Sprintf("Vec<%s>", t.Inner) }

func (t Boxed) String() string {
	if !t.ExistsInRealSignature {
		return t.Inner.String()
	}
	return fmt.Sprintf("Box<%s>", t.Inner)
}

func (t Optional) String() string { return fmt.Sprintf("Option<%s>", t.Inner) }

func (t StructRef) String() string { return t.Name }

// Signature renders a compact human-readable summary of a function, used in
// verbose logs and error context.
func (f Func) Signature() string {
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteByte('(')
	for i, in := range f.Inputs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(in.Name.Raw)
		b.WriteString(": ")
		b.WriteString(in.Type.String())
	}
	b.WriteString(") -> ")
	b.WriteString(f.Output.String())
	return b.String()
}
