package generator

import (
	"fmt"
	"strings"

	"pydocpdf/internal/extractor"
	"pydocpdf/internal/resolver"
)

// builder accumulates blocks for a single render call. It holds no layout
// state; every emit names its own level.
type builder struct {
	blocks []Block
}

func (b *builder) heading(text string, level int) {
	b.blocks = append(b.blocks, Block{Style: Heading, Text: text, Level: level})
}

func (b *builder) subheading(text string, level int) {
	b.blocks = append(b.blocks, Block{Style: Subheading, Text: text, Level: level})
}

// body emits text only when there is some.
func (b *builder) body(text string, level int) {
	if text == "" {
		return
	}
	b.blocks = append(b.blocks, Block{Style: Body, Text: text, Level: level})
}

// Render dispatches on the kind of the resolved target.
func Render(res *resolver.Resolved) Document {
	switch res.Kind {
	case resolver.KindClass:
		return RenderClass(res.Class, res.ModuleName)
	case resolver.KindFunction:
		return RenderFunction(res.Function, res.ClassName, res.ModuleName)
	default:
		return RenderModule(res.Module)
	}
}

// RenderModule lists the module description, its public classes (with their
// public methods) and its public functions.
func RenderModule(m *extractor.Module) Document {
	b := &builder{}

	b.heading("NAME", 0)
	b.subheading(m.Name, 1)

	if doc := m.Doc(); doc != "" {
		b.heading("DESCRIPTION", 0)
		b.body(doc, 1)
	}

	if classes := publicClasses(m.Classes); len(classes) > 0 {
		b.heading("CLASSES", 0)
		for _, cls := range classes {
			b.subheading(cls.Name, 1)
			b.body(cls.Doc(), 2)
			writeFunctions(b, publicFunctions(cls.Functions), 2)
		}
	}

	if functions := publicFunctions(m.Functions); len(functions) > 0 {
		b.heading("FUNCTIONS", 0)
		writeFunctions(b, functions, 1)
	}

	return Document{
		Title:  fmt.Sprintf("Docstrings to %s module", m.Name),
		Blocks: b.blocks,
	}
}

// RenderClass documents a class as the direct target. The METHODS section is
// suppressed when every method is private.
func RenderClass(cls *extractor.Class, moduleName string) Document {
	b := &builder{}

	b.heading("class "+cls.Name, 0)
	b.body(cls.Doc(), 1)

	if methods := publicFunctions(cls.Functions); len(methods) > 0 {
		b.subheading("METHODS:", 1)
		writeFunctions(b, methods, 2)
	}

	return Document{
		Title:  fmt.Sprintf("Docstrings to %s class of %s module", cls.Name, moduleName),
		Blocks: b.blocks,
	}
}

// RenderFunction documents a function or method as the direct target.
// className is empty for module-level functions.
func RenderFunction(fn *extractor.Function, className, moduleName string) Document {
	b := &builder{}

	b.heading(FormatSignature(fn), 0)
	b.body(fn.Doc(), 1)

	title := fmt.Sprintf("Docstrings to %s method of %s module", fn.Name, moduleName)
	if className != "" {
		title = fmt.Sprintf("Docstrings to %s method of %s of %s module", fn.Name, className, moduleName)
	}
	return Document{Title: title, Blocks: b.blocks}
}

// writeFunctions emits one subheading per function at level, with its
// docstring one level deeper.
func writeFunctions(b *builder, functions []*extractor.Function, level int) {
	for _, fn := range functions {
		b.subheading(FormatSignature(fn), level)
		b.body(fn.Doc(), level+1)
	}
}

// FormatSignature renders "name(a, b)".
func FormatSignature(fn *extractor.Function) string {
	return fn.Name + "(" + strings.Join(fn.Signature, ", ") + ")"
}
