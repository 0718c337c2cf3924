package generator

import (
	"bytes"
	"strings"
	"testing"

	"pydocpdf/internal/extractor"
	"pydocpdf/internal/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleModule() *extractor.Module {
	return &extractor.Module{
		Name:      "mod",
		Docstring: strPtr("Module doc."),
		Classes: []*extractor.Class{
			{Name: "Point", Docstring: strPtr("Point(x, y)")},
			{Name: "_Internal", Functions: []*extractor.Function{}},
			{Name: "MyClass", Docstring: strPtr("A class."), Functions: []*extractor.Function{
				{Name: "__init__", Signature: []string{"self"}, Docstring: strPtr("Init.")},
				{Name: "my_method", Signature: []string{"self", "x"}, Docstring: strPtr("doc")},
				{Name: "_helper", Signature: []string{"self"}},
			}},
		},
		Functions: []*extractor.Function{
			{Name: "run", Signature: []string{"a", "b"}, Docstring: strPtr("Run it.")},
			{Name: "_secret", Signature: []string{}},
		},
	}
}

func TestIsPrivateName(t *testing.T) {
	cases := map[string]bool{
		"_hidden":     true,
		"__private":   true,
		"public":      false,
		"__init__":    false,
		"__doc__":     true,
		"__version__": true,
		"__call__":    false,
	}
	for name, want := range cases {
		assert.Equal(t, want, IsPrivateName(name), name)
	}
}

func TestRenderModule(t *testing.T) {
	doc := RenderModule(sampleModule())

	assert.Equal(t, "Docstrings to mod module", doc.Title)
	assert.Equal(t, []Block{
		{Heading, "NAME", 0},
		{Subheading, "mod", 1},
		{Heading, "DESCRIPTION", 0},
		{Body, "Module doc.", 1},
		{Heading, "CLASSES", 0},
		{Subheading, "Point", 1},
		{Body, "Point(x, y)", 2},
		{Subheading, "MyClass", 1},
		{Body, "A class.", 2},
		{Subheading, "__init__(self)", 2},
		{Body, "Init.", 3},
		{Subheading, "my_method(self, x)", 2},
		{Body, "doc", 3},
		{Heading, "FUNCTIONS", 0},
		{Subheading, "run(a, b)", 1},
		{Body, "Run it.", 2},
	}, doc.Blocks)
}

func TestRenderModule_EmptySectionsOmitted(t *testing.T) {
	m := &extractor.Module{
		Name:      "bare",
		Classes:   []*extractor.Class{{Name: "_Hidden"}},
		Functions: []*extractor.Function{{Name: "_only_private"}},
	}
	doc := RenderModule(m)

	assert.Equal(t, []Block{
		{Heading, "NAME", 0},
		{Subheading, "bare", 1},
	}, doc.Blocks)
}

func TestRenderClass(t *testing.T) {
	cls := sampleModule().Classes[2]
	doc := RenderClass(cls, "mod")

	assert.Equal(t, "Docstrings to MyClass class of mod module", doc.Title)
	assert.Equal(t, []Block{
		{Heading, "class MyClass", 0},
		{Body, "A class.", 1},
		{Subheading, "METHODS:", 1},
		{Subheading, "__init__(self)", 2},
		{Body, "Init.", 3},
		{Subheading, "my_method(self, x)", 2},
		{Body, "doc", 3},
	}, doc.Blocks)
}

func TestRenderClass_AllPrivateSuppressesMethods(t *testing.T) {
	cls := &extractor.Class{
		Name: "Quiet",
		Functions: []*extractor.Function{
			{Name: "_a", Signature: []string{"self"}, Docstring: strPtr("a")},
			{Name: "__b", Signature: []string{"self"}},
		},
	}
	doc := RenderClass(cls, "mod")

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, Block{Heading, "class Quiet", 0}, doc.Blocks[0])
	for _, b := range doc.Blocks {
		assert.NotEqual(t, "METHODS:", b.Text)
	}
}

func TestRenderClass_PrivateTargetIsRendered(t *testing.T) {
	doc := RenderClass(&extractor.Class{Name: "_Internal", Docstring: strPtr("hidden")}, "mod")
	assert.Equal(t, []Block{
		{Heading, "class _Internal", 0},
		{Body, "hidden", 1},
	}, doc.Blocks)
}

func TestRenderClass_Record(t *testing.T) {
	doc := RenderClass(&extractor.Class{Name: "Point", Docstring: strPtr("Point(x, y)")}, "geo")
	assert.Equal(t, []Block{
		{Heading, "class Point", 0},
		{Body, "Point(x, y)", 1},
	}, doc.Blocks)
}

func TestRenderFunction(t *testing.T) {
	fn := &extractor.Function{Name: "my_method", Signature: []string{"self", "x"}, Docstring: strPtr("doc")}

	t.Run("Method", func(t *testing.T) {
		doc := RenderFunction(fn, "MyClass", "mod")
		assert.Equal(t, "Docstrings to my_method method of MyClass of mod module", doc.Title)
		assert.Equal(t, []Block{
			{Heading, "my_method(self, x)", 0},
			{Body, "doc", 1},
		}, doc.Blocks)
	})

	t.Run("Module function", func(t *testing.T) {
		doc := RenderFunction(fn, "", "mod")
		assert.Equal(t, "Docstrings to my_method method of mod module", doc.Title)
	})

	t.Run("No docstring", func(t *testing.T) {
		doc := RenderFunction(&extractor.Function{Name: "_f", Signature: []string{}}, "", "mod")
		assert.Equal(t, []Block{{Heading, "_f()", 0}}, doc.Blocks)
	})
}

func TestRender_Dispatch(t *testing.T) {
	m := sampleModule()

	res, err := resolver.Resolve(m, resolver.Target{First: "MyClass", Second: "my_method"})
	require.NoError(t, err)
	doc := Render(res)
	assert.Equal(t, "Docstrings to my_method method of MyClass of mod module", doc.Title)

	res, err = resolver.Resolve(m, resolver.Target{First: "Point"})
	require.NoError(t, err)
	assert.Equal(t, "Docstrings to Point class of mod module", Render(res).Title)

	res, err = resolver.Resolve(m, resolver.Target{})
	require.NoError(t, err)
	assert.Equal(t, "Docstrings to mod module", Render(res).Title)
}

func TestRender_Idempotent(t *testing.T) {
	m := sampleModule()
	first := RenderModule(m)
	second := RenderModule(m)
	assert.Equal(t, first, second)

	// Rendering a class in between must not shift later module output.
	_ = RenderClass(m.Classes[2], "mod")
	assert.Equal(t, first, RenderModule(m))
}

func TestWriteText(t *testing.T) {
	doc := Document{
		Title: "Docstrings to mod module",
		Blocks: []Block{
			{Heading, "NAME", 0},
			{Subheading, "mod", 1},
			{Heading, "DESCRIPTION", 0},
			{Body, "one two three four five six", 1},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, doc, 18))

	want := strings.Join([]string{
		"Docstrings to mod module",
		"",
		"NAME",
		"    mod",
		"",
		"DESCRIPTION",
		"    one two three",
		"    four five six",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}
