package resolver

import (
	"errors"
	"testing"

	"pydocpdf/internal/extractor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func fixtureModule() *extractor.Module {
	return &extractor.Module{
		Name:      "test_module",
		Docstring: strPtr("Module docstrings"),
		Classes: []*extractor.Class{
			{Name: "A", Docstring: strPtr("A(x, y)")},
			{Name: "B", Docstring: strPtr("Class docstrings"), Functions: []*extractor.Function{
				{Name: "f", Signature: []string{}, Docstring: strPtr("Func docstrings")},
				{Name: "g", Signature: []string{"arg1", "arg2"}},
			}},
			{Name: "B", Functions: []*extractor.Function{}},
		},
		Functions: []*extractor.Function{
			{Name: "h", Signature: []string{}, Docstring: strPtr("Another docstrings")},
			{Name: "i", Signature: []string{"a", "b", "c", "d"}},
			{Name: "f", Signature: []string{"shadow"}},
		},
	}
}

func TestParseTarget(t *testing.T) {
	cases := []struct {
		in   string
		want Target
	}{
		{"/1/2/3/module", Target{FilePath: "/1/2/3/module.py", ModuleName: "module", FullName: "module"}},
		{"/1/2/3/module.Class", Target{FilePath: "/1/2/3/module.py", ModuleName: "module", First: "Class", FullName: "module.Class"}},
		{"/1/2/3/module.Class.func", Target{FilePath: "/1/2/3/module.py", ModuleName: "module", First: "Class", Second: "func", FullName: "module.Class.func"}},
		{"module", Target{FilePath: "module.py", ModuleName: "module", FullName: "module"}},
		{"pkg/mod.my_func", Target{FilePath: "pkg/mod.py", ModuleName: "mod", First: "my_func", FullName: "mod.my_func"}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTarget(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseTarget_Malformed(t *testing.T) {
	for _, in := range []string{"", "  ", "dir/", "mod..X", "mod.A.b.c", ".hidden"} {
		_, err := ParseTarget(in)
		assert.True(t, errors.Is(err, ErrSourceNotFound), "input %q", in)
	}
}

func TestResolve(t *testing.T) {
	m := fixtureModule()

	t.Run("Module", func(t *testing.T) {
		res, err := Resolve(m, Target{ModuleName: "test_module"})
		require.NoError(t, err)
		assert.Equal(t, KindModule, res.Kind)
		assert.Same(t, m, res.Module)
	})

	t.Run("Class first", func(t *testing.T) {
		res, err := Resolve(m, Target{First: "B"})
		require.NoError(t, err)
		assert.Equal(t, KindClass, res.Kind)
		assert.Same(t, m.Classes[1], res.Class, "first declaration wins")
		require.Len(t, res.Class.Functions, 2)
		assert.Equal(t, "f", res.Class.Functions[0].Name)
		assert.Equal(t, "g", res.Class.Functions[1].Name)
	})

	t.Run("Function fallback", func(t *testing.T) {
		res, err := Resolve(m, Target{First: "h"})
		require.NoError(t, err)
		assert.Equal(t, KindFunction, res.Kind)
		assert.Equal(t, "h", res.Function.Name)
		assert.Empty(t, res.ClassName)
		assert.Equal(t, "test_module", res.ModuleName)
	})

	t.Run("Method", func(t *testing.T) {
		res, err := Resolve(m, Target{First: "B", Second: "g"})
		require.NoError(t, err)
		assert.Equal(t, KindFunction, res.Kind)
		assert.Same(t, m.Classes[1].Functions[1], res.Function)
		assert.Equal(t, "B", res.ClassName)
	})

	t.Run("Missing single segment", func(t *testing.T) {
		_, err := Resolve(m, Target{First: "Nope"})
		assert.True(t, errors.Is(err, ErrLookupFailure))
	})

	t.Run("Two segments never fall back to functions", func(t *testing.T) {
		_, err := Resolve(m, Target{First: "h", Second: "x"})
		assert.True(t, errors.Is(err, ErrLookupFailure))
	})

	t.Run("Missing method", func(t *testing.T) {
		_, err := Resolve(m, Target{First: "B", Second: "zzz"})
		assert.True(t, errors.Is(err, ErrLookupFailure))
	})

	t.Run("Record has no methods", func(t *testing.T) {
		_, err := Resolve(m, Target{First: "A", Second: "x"})
		assert.True(t, errors.Is(err, ErrLookupFailure))
	})
}

func TestFindClass(t *testing.T) {
	m := fixtureModule()
	assert.Equal(t, "Class docstrings", FindClass(m.Classes, "B").Doc())
	assert.Nil(t, FindClass(m.Classes, "b"), "lookup is case sensitive")
	assert.Nil(t, FindClass(nil, "B"))
}

func TestFindFunction(t *testing.T) {
	m := fixtureModule()
	assert.Equal(t, []string{"a", "b", "c", "d"}, FindFunction(m.Functions, "i").Signature)
	assert.Nil(t, FindFunction(m.Functions, "missing"))
}
