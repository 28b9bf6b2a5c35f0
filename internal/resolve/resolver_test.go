package resolve

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridgen/internal/ir"
	"bridgen/internal/testutil"
)

// testResolver builds a resolver over the public structs of src.
func testResolver(t *testing.T, src string) *resolver {
	t.Helper()
	f := testutil.MustParseFile(t, src)
	_, structs := Extract(f)
	return newResolver(structs, slog.Default())
}

func mustResolveType(t *testing.T, r *resolver, expr string) ir.Type {
	t.Helper()
	ty, err := r.resolveType(testutil.MustParseType(t, expr))
	require.NoError(t, err, "resolving %q", expr)
	return ty
}

func TestResolvePrimitives(t *testing.T) {
	r := testResolver(t, "")
	for expr, kind := range map[string]ir.PrimitiveKind{
		"u8": ir.U8, "i8": ir.I8,
		"u16": ir.U16, "i16": ir.I16,
		"u32": ir.U32, "i32": ir.I32,
		"u64": ir.U64, "i64": ir.I64,
		"f32": ir.F32, "f64": ir.F64,
		"bool": ir.Bool,
	} {
		assert.Equal(t, ir.Primitive{Kind: kind}, mustResolveType(t, r, expr))
	}
}

func TestResolveStringDelegate(t *testing.T) {
	r := testResolver(t, "")
	assert.Equal(t, ir.Delegate{Kind: ir.DelegateString}, mustResolveType(t, r, "String"))
}

func TestResolveSyncReturnDelegate(t *testing.T) {
	r := testResolver(t, "")
	assert.Equal(t,
		ir.Delegate{Kind: ir.DelegateSyncReturnVecU8},
		mustResolveType(t, r, "SyncReturn<Vec<u8>>"))

	// SyncReturn over anything but a byte buffer matches nothing.
	_, err := r.resolveType(testutil.MustParseType(t, "SyncReturn<Vec<i32>>"))
	var unsupportedErr *UnsupportedError
	require.ErrorAs(t, err, &unsupportedErr)
	assert.Equal(t, ReasonUnsupportedType, unsupportedErr.Reason)
}

func TestResolveZeroCopyBuffer(t *testing.T) {
	r := testResolver(t, "")
	assert.Equal(t,
		ir.Delegate{Kind: ir.DelegateZeroCopyBufferVecPrimitive, Elem: ir.F32},
		mustResolveType(t, r, "ZeroCopyBuffer<Vec<f32>>"))

	// A non-primitive element falls through the delegate branch and
	// matches nothing else.
	_, err := r.resolveType(testutil.MustParseType(t, "ZeroCopyBuffer<Vec<String>>"))
	var unsupportedErr *UnsupportedError
	require.ErrorAs(t, err, &unsupportedErr)
}

func TestResolveVecOfPrimitiveIsCompact(t *testing.T) {
	r := testResolver(t, "")
	assert.Equal(t, ir.PrimitiveList{Elem: ir.U8}, mustResolveType(t, r, "Vec<u8>"))
}

func TestResolveVecOfOtherIsGeneralList(t *testing.T) {
	r := testResolver(t, "")
	assert.Equal(t,
		ir.GeneralList{Inner: ir.Delegate{Kind: ir.DelegateString}},
		mustResolveType(t, r, "Vec<String>"))
	assert.Equal(t,
		ir.GeneralList{Inner: ir.PrimitiveList{Elem: ir.U8}},
		mustResolveType(t, r, "Vec<Vec<u8>>"))
}

func TestResolveExplicitBox(t *testing.T) {
	r := testResolver(t, "pub struct Point { x: f64 }")
	assert.Equal(t,
		ir.Boxed{Inner: ir.StructRef{Name: "Point"}, ExistsInRealSignature: true},
		mustResolveType(t, r, "Box<Point>"))
}

func TestResolveOptionalPrimitiveIsInline(t *testing.T) {
	r := testResolver(t, "")
	assert.Equal(t,
		ir.Optional{Repr: ir.OptionalPrimitive, Inner: ir.Primitive{Kind: ir.I64}},
		mustResolveType(t, r, "Option<i64>"))
}

func TestResolveOptionalStructSynthesizesBox(t *testing.T) {
	r := testResolver(t, "pub struct Point { x: f64 }")
	assert.Equal(t,
		ir.Optional{
			Repr:  ir.OptionalPointer,
			Inner: ir.Boxed{Inner: ir.StructRef{Name: "Point"}, ExistsInRealSignature: false},
		},
		mustResolveType(t, r, "Option<Point>"))

	// The synthesized box and a user-written box differ by the flag alone.
	explicit := mustResolveType(t, r, "Box<Point>").(ir.Boxed)
	synthesized := mustResolveType(t, r, "Option<Point>").(ir.Optional).Inner.(ir.Boxed)
	assert.Equal(t, explicit.Inner, synthesized.Inner)
	assert.True(t, explicit.ExistsInRealSignature)
	assert.False(t, synthesized.ExistsInRealSignature)
}

func TestResolveOptionalOtherSkipsRedundantBox(t *testing.T) {
	r := testResolver(t, "")
	assert.Equal(t,
		ir.Optional{Repr: ir.OptionalPointer, Inner: ir.Delegate{Kind: ir.DelegateString}},
		mustResolveType(t, r, "Option<String>"))
	assert.Equal(t,
		ir.Optional{Repr: ir.OptionalPointer, Inner: ir.PrimitiveList{Elem: ir.U8}},
		mustResolveType(t, r, "Option<Vec<u8>>"))
}

func TestResolveNestedOptionalFails(t *testing.T) {
	r := testResolver(t, "")
	_, err := r.resolveType(testutil.MustParseType(t, "Option<Option<i32>>"))
	var unsupportedErr *UnsupportedError
	require.ErrorAs(t, err, &unsupportedErr)
	assert.Equal(t, ReasonNestedOptional, unsupportedErr.Reason)
	assert.Contains(t, err.Error(), "nested optionals without indirection")

	// Indirection between the optionals makes the shape legal.
	ty := mustResolveType(t, r, "Option<Box<Option<i32>>>")
	outer := ty.(ir.Optional)
	assert.Equal(t, ir.OptionalPointer, outer.Repr)
	boxed := outer.Inner.(ir.Boxed)
	assert.True(t, boxed.ExistsInRealSignature)
	assert.IsType(t, ir.Optional{}, boxed.Inner)
}

func TestResolveStructRefMemoizes(t *testing.T) {
	r := testResolver(t, "pub struct Point { x: f64, y: f64 }")

	first := mustResolveType(t, r, "Point")
	second := mustResolveType(t, r, "Point")
	assert.Equal(t, first, second)
	assert.Equal(t, ir.StructRef{Name: "Point"}, first)

	require.Len(t, r.pool, 1)
	entry := r.pool["Point"]
	require.NotNil(t, entry)
	assert.True(t, entry.IsFieldsNamed)
	require.Len(t, entry.Fields, 2)
	assert.Equal(t, "x", entry.Fields[0].Name.Raw)
}

func TestResolvePositionalStructFieldNames(t *testing.T) {
	r := testResolver(t, "pub struct Pair(i32, String);")
	mustResolveType(t, r, "Pair")

	entry := r.pool["Pair"]
	require.NotNil(t, entry)
	assert.False(t, entry.IsFieldsNamed)
	require.Len(t, entry.Fields, 2)
	assert.Equal(t, "field0", entry.Fields[0].Name.Raw)
	assert.Equal(t, "field1", entry.Fields[1].Name.Raw)
}

func TestResolveUnitStructFails(t *testing.T) {
	r := testResolver(t, "pub struct Marker;")
	_, err := r.resolveType(testutil.MustParseType(t, "Marker"))
	var unsupportedErr *UnsupportedError
	require.ErrorAs(t, err, &unsupportedErr)
	assert.Equal(t, ReasonBadStructShape, unsupportedErr.Reason)
}

func TestResolveSelfReferentialStructTerminates(t *testing.T) {
	r := testResolver(t, `
pub struct TreeNode {
    value: i32,
    child: Box<TreeNode>,
}
`)
	mustResolveType(t, r, "TreeNode")

	entry := r.pool["TreeNode"]
	require.NotNil(t, entry)
	require.Len(t, entry.Fields, 2)
	assert.Equal(t,
		ir.Boxed{Inner: ir.StructRef{Name: "TreeNode"}, ExistsInRealSignature: true},
		entry.Fields[1].Type)
}

func TestResolveMutuallyRecursiveStructsTerminate(t *testing.T) {
	r := testResolver(t, `
pub struct A { b: Box<B> }
pub struct B { a: Box<A> }
`)
	mustResolveType(t, r, "A")

	require.Len(t, r.pool, 2)
	assert.Equal(t,
		ir.Boxed{Inner: ir.StructRef{Name: "B"}, ExistsInRealSignature: true},
		r.pool["A"].Fields[0].Type)
	assert.Equal(t,
		ir.Boxed{Inner: ir.StructRef{Name: "A"}, ExistsInRealSignature: true},
		r.pool["B"].Fields[0].Type)
}

func TestResolveUnknownTypeFails(t *testing.T) {
	r := testResolver(t, "")
	for _, expr := range []string{"usize", "HashMap<String,i32>", "Unknown"} {
		_, err := r.resolveType(testutil.MustParseType(t, expr))
		var unsupportedErr *UnsupportedError
		require.ErrorAs(t, err, &unsupportedErr, "expr %q", expr)
		assert.Equal(t, ReasonUnsupportedType, unsupportedErr.Reason)
		assert.Contains(t, err.Error(), expr)
	}
}

func TestWrapperMatchIsExactOnFinalSegment(t *testing.T) {
	r := testResolver(t, "")

	// A name merely ending in the wrapper name is not the wrapper.
	_, err := r.resolveType(testutil.MustParseType(t, "MyBox<u8>"))
	var unsupportedErr *UnsupportedError
	require.ErrorAs(t, err, &unsupportedErr)

	// A path prefix is allowed.
	assert.Equal(t,
		ir.Boxed{Inner: ir.Primitive{Kind: ir.U8}, ExistsInRealSignature: true},
		mustResolveType(t, r, "bridge::Box<u8>"))
}
