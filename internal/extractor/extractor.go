package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// SourceExtension is the file extension of documentable modules.
const SourceExtension = ".py"

// SyntaxError reports source that the Python grammar could not parse cleanly.
type SyntaxError struct {
	Filepath string
	Line     int
	Column   int
	Snippet  string
}

func (e *SyntaxError) Error() string {
	name := e.Filepath
	if name == "" {
		name = "<source>"
	}
	return fmt.Sprintf("invalid syntax in %s at line %d, column %d: %q", name, e.Line, e.Column, e.Snippet)
}

// Extractor parses Python sources and lists their documentation.
type Extractor struct {
	language *sitter.Language
}

// NewExtractor creates an extractor bound to the Python grammar.
func NewExtractor() *Extractor {
	return &Extractor{language: python.GetLanguage()}
}

// ExtractFromFile reads and lists a single module file.
func (e *Extractor) ExtractFromFile(ctx context.Context, filepath string, moduleName string) (*Module, error) {
	sourceCode, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filepath, err)
	}

	module, err := e.ExtractFromSource(ctx, moduleName, sourceCode)
	if err != nil {
		var se *SyntaxError
		if errors.As(err, &se) {
			se.Filepath = filepath
			return nil, se
		}
		return nil, fmt.Errorf("failed to parse file %s: %w", filepath, err)
	}
	return module, nil
}

// ExtractFromSource parses sourceCode and lists it as module moduleName.
func (e *Extractor) ExtractFromSource(ctx context.Context, moduleName string, sourceCode []byte) (*Module, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(e.language)

	tree, err := parser.ParseCtx(ctx, nil, sourceCode)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxErrorAt(firstErrorNode(root), sourceCode)
	}
	if legacy := firstLegacyStatement(root); legacy != nil {
		return nil, syntaxErrorAt(legacy, sourceCode)
	}

	return ListModule(moduleName, root, sourceCode), nil
}

// syntaxErrorAt reports bad, or the start of the source when bad is nil.
func syntaxErrorAt(bad *sitter.Node, sourceCode []byte) *SyntaxError {
	if bad == nil {
		return &SyntaxError{Line: 1, Column: 1}
	}
	snippet := bad.Content(sourceCode)
	if len(snippet) > 40 {
		snippet = snippet[:40]
	}
	return &SyntaxError{
		Line:    int(bad.StartPoint().Row + 1),
		Column:  int(bad.StartPoint().Column + 1),
		Snippet: snippet,
	}
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if found := firstErrorNode(child); found != nil {
			return found
		}
	}
	return nil
}

// Python 2 statements the grammar still accepts.
var legacyStatements = map[string]bool{
	"print_statement": true,
	"exec_statement":  true,
}

func firstLegacyStatement(n *sitter.Node) *sitter.Node {
	if legacyStatements[n.Type()] {
		return n
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if found := firstLegacyStatement(n.NamedChild(i)); found != nil {
			return found
		}
	}
	return nil
}
