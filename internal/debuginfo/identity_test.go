package debuginfo

import (
	"bytes"
	"debug/dwarf"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineClassification(t *testing.T) {
	tests := []struct {
		name           string
		attrs          map[dwarf.Attr]interface{}
		isInlined      bool
		declaredInline bool
	}{
		{
			name:  "attribute absent",
			attrs: nil,
		},
		{
			name:  "explicit not inlined",
			attrs: map[dwarf.Attr]interface{}{dwarf.AttrInline: InlineNone},
		},
		{
			name:      "inlined without declaration",
			attrs:     map[dwarf.Attr]interface{}{dwarf.AttrInline: InlineInlined},
			isInlined: true,
		},
		{
			name:           "declared inline but not inlined",
			attrs:          map[dwarf.Attr]interface{}{dwarf.AttrInline: InlineDeclaredNotInlined},
			declaredInline: true,
		},
		{
			name:           "declared inline and inlined",
			attrs:          map[dwarf.Attr]interface{}{dwarf.AttrInline: InlineDeclaredInlined},
			isInlined:      true,
			declaredInline: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEntry(0x10, KindSubprogram, tt.attrs)
			u := testUnit(nil, e)

			id, err := ResolveIdentity(u, e, zerolog.Nop())
			require.NoError(t, err)
			assert.Equal(t, tt.isInlined, id.IsInlined())
			assert.Equal(t, tt.declaredInline, id.DeclaredInline())
		})
	}
}

func TestResolveIdentity_Direct(t *testing.T) {
	e := testEntry(0x10, KindSubprogram, map[dwarf.Attr]interface{}{
		dwarf.AttrName:        "foo",
		dwarf.AttrDeclFile:    int64(1),
		dwarf.AttrDeclLine:    int64(10),
		dwarf.AttrLinkageName: "_Z3foov",
		dwarf.AttrInline:      InlineInlined,
	})
	u := testUnit([]string{"a.c"}, e)

	id, err := ResolveIdentity(u, e, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "foo", id.Name)
	assert.Equal(t, "a.c", id.DeclFile)
	assert.Equal(t, int64(10), id.DeclLine)
	assert.Equal(t, "_Z3foov", id.LinkageName)
	assert.True(t, id.IsInlined())
	assert.Nil(t, id.Specification())
}

func TestResolveIdentity_SpecificationFallback(t *testing.T) {
	// Declaration entry: carries name and coordinates.
	decl := testEntry(0x10, KindSubprogram, map[dwarf.Attr]interface{}{
		dwarf.AttrName:     "foo",
		dwarf.AttrDeclFile: int64(1),
		dwarf.AttrDeclLine: int64(10),
	})
	// Out-of-line definition: carries linkage name and inline class, points
	// back at the declaration.
	def := testEntry(0x40, KindSubprogram, map[dwarf.Attr]interface{}{
		dwarf.AttrSpecification: dwarf.Offset(0x10),
		dwarf.AttrLinkageName:   "_Z3foov",
		dwarf.AttrInline:        InlineDeclaredInlined,
	})
	u := testUnit([]string{"a.c"}, decl, def)

	id, err := ResolveIdentity(u, def, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "foo", id.Name, "name comes from the declaration")
	assert.Equal(t, "a.c", id.DeclFile, "file comes from the declaration")
	assert.Equal(t, int64(10), id.DeclLine, "line comes from the declaration")
	assert.Equal(t, "_Z3foov", id.LinkageName, "linkage name stays local")
	assert.True(t, id.IsInlined())

	require.NotNil(t, id.Specification())
	assert.Equal(t, "foo", id.Specification().Name)
}

func TestResolveIdentity_AttributesFallBackIndependently(t *testing.T) {
	decl := testEntry(0x10, KindSubprogram, map[dwarf.Attr]interface{}{
		dwarf.AttrDeclLine: int64(7),
	})
	// The definition has a file but no line; the line must still come from
	// the declaration.
	def := testEntry(0x40, KindSubprogram, map[dwarf.Attr]interface{}{
		dwarf.AttrSpecification: dwarf.Offset(0x10),
		dwarf.AttrDeclFile:      int64(2),
	})
	u := testUnit([]string{"a.c", "b.c"}, decl, def)

	id, err := ResolveIdentity(u, def, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "b.c", id.DeclFile)
	assert.Equal(t, int64(7), id.DeclLine)
}

func TestResolveIdentity_TwoHopChain(t *testing.T) {
	root := testEntry(0x10, KindSubprogram, map[dwarf.Attr]interface{}{
		dwarf.AttrName: "deep",
	})
	mid := testEntry(0x20, KindSubprogram, map[dwarf.Attr]interface{}{
		dwarf.AttrSpecification: dwarf.Offset(0x10),
		dwarf.AttrLinkageName:   "_Z4deepv",
	})
	leaf := testEntry(0x30, KindSubprogram, map[dwarf.Attr]interface{}{
		dwarf.AttrSpecification: dwarf.Offset(0x20),
		dwarf.AttrInline:        InlineInlined,
	})
	u := testUnit(nil, root, mid, leaf)

	id, err := ResolveIdentity(u, leaf, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "deep", id.Name)
	assert.Equal(t, "_Z4deepv", id.LinkageName)
	assert.True(t, id.IsInlined())
}

func TestResolveIdentity_MIPSLinkageName(t *testing.T) {
	e := testEntry(0x10, KindSubprogram, map[dwarf.Attr]interface{}{
		attrMIPSLinkageName: "_Z3barv",
	})
	u := testUnit(nil, e)

	id, err := ResolveIdentity(u, e, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "_Z3barv", id.LinkageName)
}

func TestResolveIdentity_Idempotent(t *testing.T) {
	decl := testEntry(0x10, KindSubprogram, map[dwarf.Attr]interface{}{
		dwarf.AttrName:     "foo",
		dwarf.AttrDeclFile: int64(1),
		dwarf.AttrDeclLine: int64(10),
	})
	def := testEntry(0x40, KindSubprogram, map[dwarf.Attr]interface{}{
		dwarf.AttrSpecification: dwarf.Offset(0x10),
		dwarf.AttrLinkageName:   "_Z3foov",
		dwarf.AttrInline:        InlineInlined,
	})
	u := testUnit([]string{"a.c"}, decl, def)

	first, err := ResolveIdentity(u, def, zerolog.Nop())
	require.NoError(t, err)
	second, err := ResolveIdentity(u, def, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.DeclFile, second.DeclFile)
	assert.Equal(t, first.DeclLine, second.DeclLine)
	assert.Equal(t, first.LinkageName, second.LinkageName)
	assert.Equal(t, first.InlineEnum, second.InlineEnum)
}

func TestResolveIdentity_UnresolvableSpecification(t *testing.T) {
	e := testEntry(0x10, KindSubprogram, map[dwarf.Attr]interface{}{
		dwarf.AttrSpecification: dwarf.Offset(0xdead),
		dwarf.AttrLinkageName:   "_Z3foov",
	})
	u := testUnit(nil, e)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	id, err := ResolveIdentity(u, e, logger)
	require.NoError(t, err, "a dangling reference degrades the identity, it is not fatal")

	assert.Nil(t, id.Specification())
	assert.Empty(t, id.Name)
	assert.Equal(t, "_Z3foov", id.LinkageName, "direct attributes survive")
	assert.Contains(t, buf.String(), "No entry at specification offset")
}

func TestResolveIdentity_SpecificationCycle(t *testing.T) {
	a := testEntry(0x10, KindSubprogram, map[dwarf.Attr]interface{}{
		dwarf.AttrSpecification: dwarf.Offset(0x20),
		dwarf.AttrLinkageName:   "_Z3foov",
	})
	b := testEntry(0x20, KindSubprogram, map[dwarf.Attr]interface{}{
		dwarf.AttrSpecification: dwarf.Offset(0x10),
		dwarf.AttrName:          "foo",
	})
	u := testUnit(nil, a, b)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	id, err := ResolveIdentity(u, a, logger)
	require.NoError(t, err, "a reference cycle must terminate, not hang or fail")

	assert.Equal(t, "foo", id.Name, "attributes up to the cycle point still merge")
	assert.Equal(t, "_Z3foov", id.LinkageName)
	assert.Contains(t, buf.String(), "cycle")
}

func TestResolveIdentity_FileIndexOutOfRange(t *testing.T) {
	e := testEntry(0x10, KindSubprogram, map[dwarf.Attr]interface{}{
		dwarf.AttrDeclFile: int64(5),
	})
	u := testUnit([]string{"a.c"}, e)

	_, err := ResolveIdentity(u, e, zerolog.Nop())
	assert.Error(t, err, "an out-of-range file index is data corruption")
}
