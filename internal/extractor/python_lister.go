package extractor

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// tree-sitter-python node kinds used by the lister.
const (
	nodeClassDefinition     = "class_definition"
	nodeFunctionDefinition  = "function_definition"
	nodeDecoratedDefinition = "decorated_definition"
	nodeExpressionStatement = "expression_statement"
	nodeAssignment          = "assignment"
	nodeCall                = "call"
	nodeAttribute           = "attribute"
	nodeIdentifier          = "identifier"
	nodeString              = "string"
	nodeConcatenatedString  = "concatenated_string"
	nodeList                = "list"
	nodeTuple               = "tuple"
	nodeKeywordArgument     = "keyword_argument"
	nodeComment             = "comment"

	nodeTypedParameter        = "typed_parameter"
	nodeDefaultParameter      = "default_parameter"
	nodeTypedDefaultParameter = "typed_default_parameter"
	nodeListSplatPattern      = "list_splat_pattern"
	nodeDictSplatPattern      = "dictionary_splat_pattern"
)

// recordConstructor is the callable that declares a data record.
const recordConstructor = "namedtuple"

// ListModule builds the Module for a parsed source tree. Only direct children
// of the module body are inspected; declaration order is preserved.
func ListModule(moduleName string, root *sitter.Node, sourceCode []byte) *Module {
	module := &Module{
		Name:      moduleName,
		Docstring: extractDocstring(root, sourceCode),
		Classes:   []*Class{},
		Functions: []*Function{},
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := unwrapDecorated(root.NamedChild(i))
		if child == nil {
			continue
		}
		switch child.Type() {
		case nodeClassDefinition:
			if cls := listClass(child, sourceCode); cls != nil {
				module.Classes = append(module.Classes, cls)
			}
		case nodeExpressionStatement:
			if rec := listRecord(child, sourceCode); rec != nil {
				module.Classes = append(module.Classes, rec)
			}
		case nodeFunctionDefinition:
			if fn := listFunction(child, sourceCode); fn != nil {
				module.Functions = append(module.Functions, fn)
			}
		}
	}

	return module
}

// unwrapDecorated returns the definition carried by a decorated_definition.
func unwrapDecorated(node *sitter.Node) *sitter.Node {
	if node == nil || node.Type() != nodeDecoratedDefinition {
		return node
	}
	return node.ChildByFieldName("definition")
}

func listClass(node *sitter.Node, sourceCode []byte) *Class {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	body := node.ChildByFieldName("body")

	functions := []*Function{}
	if body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			member := unwrapDecorated(body.NamedChild(i))
			if member == nil || member.Type() != nodeFunctionDefinition {
				continue
			}
			if fn := listFunction(member, sourceCode); fn != nil {
				functions = append(functions, fn)
			}
		}
	}

	return &Class{
		Name:      nameNode.Content(sourceCode),
		Docstring: extractDocstring(body, sourceCode),
		Functions: functions,
	}
}

func listFunction(node *sitter.Node, sourceCode []byte) *Function {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	return &Function{
		Name:      nameNode.Content(sourceCode),
		Signature: extractSignature(node.ChildByFieldName("parameters"), sourceCode),
		Docstring: extractDocstring(node.ChildByFieldName("body"), sourceCode),
	}
}

// extractSignature collects parameter names in declaration order, splat
// names included. The bare "*" and "/" separators carry no name.
func extractSignature(params *sitter.Node, sourceCode []byte) []string {
	names := []string{}
	if params == nil {
		return names
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		if nameNode := parameterName(params.NamedChild(i)); nameNode != nil {
			names = append(names, nameNode.Content(sourceCode))
		}
	}
	return names
}

func parameterName(param *sitter.Node) *sitter.Node {
	if param == nil {
		return nil
	}
	switch param.Type() {
	case nodeIdentifier:
		return param
	case nodeDefaultParameter, nodeTypedDefaultParameter:
		return parameterName(param.ChildByFieldName("name"))
	case nodeTypedParameter:
		// no name field; the first named child is the identifier or splat
		return parameterName(param.NamedChild(0))
	case nodeListSplatPattern, nodeDictSplatPattern:
		if first := param.NamedChild(0); first != nil && first.Type() == nodeIdentifier {
			return first
		}
	}
	return nil
}

// extractDocstring returns the cleaned docstring of a module or block node:
// its first statement when that statement is a lone str literal.
func extractDocstring(body *sitter.Node, sourceCode []byte) *string {
	if body == nil {
		return nil
	}
	first := firstStatement(body)
	if first == nil || first.Type() != nodeExpressionStatement || first.NamedChildCount() != 1 {
		return nil
	}
	raw, ok := stringValue(first.NamedChild(0), sourceCode)
	if !ok {
		return nil
	}
	doc := cleanDoc(raw)
	return &doc
}

func firstStatement(body *sitter.Node) *sitter.Node {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() == nodeComment {
			continue
		}
		return child
	}
	return nil
}

// stringValue evaluates a str literal or an implicit concatenation of them.
func stringValue(node *sitter.Node, sourceCode []byte) (string, bool) {
	if node == nil {
		return "", false
	}
	switch node.Type() {
	case nodeString:
		return decodeStringLiteral(node.Content(sourceCode))
	case nodeConcatenatedString:
		var sb strings.Builder
		for i := 0; i < int(node.NamedChildCount()); i++ {
			part := node.NamedChild(i)
			if part.Type() == nodeComment {
				continue
			}
			s, ok := stringValue(part, sourceCode)
			if !ok {
				return "", false
			}
			sb.WriteString(s)
		}
		return sb.String(), true
	}
	return "", false
}

// listRecord turns "Name = namedtuple('TypeName', fields)" into a synthetic
// Class. Any other statement yields nil.
func listRecord(stmt *sitter.Node, sourceCode []byte) *Class {
	if stmt.NamedChildCount() != 1 {
		return nil
	}
	assign := stmt.NamedChild(0)
	if assign.Type() != nodeAssignment {
		return nil
	}
	left := assign.ChildByFieldName("left")
	right := assign.ChildByFieldName("right")
	if left == nil || right == nil || left.Type() != nodeIdentifier || right.Type() != nodeCall {
		return nil
	}
	if !isRecordConstructor(right.ChildByFieldName("function"), sourceCode) {
		return nil
	}

	return &Class{
		Name:      left.Content(sourceCode),
		Docstring: recordDocstring(right.ChildByFieldName("arguments"), sourceCode),
		Functions: nil,
	}
}

func isRecordConstructor(fn *sitter.Node, sourceCode []byte) bool {
	if fn == nil {
		return false
	}
	switch fn.Type() {
	case nodeIdentifier:
		return fn.Content(sourceCode) == recordConstructor
	case nodeAttribute:
		attr := fn.ChildByFieldName("attribute")
		obj := fn.ChildByFieldName("object")
		return attr != nil && obj != nil &&
			attr.Content(sourceCode) == recordConstructor &&
			obj.Content(sourceCode) == "collections"
	}
	return false
}

// recordDocstring renders "TypeName(f1, f2)" or nil when the type name or the
// field spec cannot be evaluated statically.
func recordDocstring(args *sitter.Node, sourceCode []byte) *string {
	if args == nil {
		return nil
	}
	typeNameNode, fieldsNode := recordArguments(args, sourceCode)

	typeName, ok := stringValue(typeNameNode, sourceCode)
	if !ok {
		return nil
	}
	fields, ok := evalFieldSpec(fieldsNode, sourceCode)
	if !ok {
		return nil
	}

	doc := fmt.Sprintf("%s(%s)", typeName, strings.Join(fields, ", "))
	return &doc
}

// recordArguments picks the typename and field_names arguments, positional or
// passed by keyword.
func recordArguments(args *sitter.Node, sourceCode []byte) (typeName, fields *sitter.Node) {
	var positional []*sitter.Node
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		switch arg.Type() {
		case nodeComment:
		case nodeKeywordArgument:
			name := arg.ChildByFieldName("name")
			if name == nil {
				continue
			}
			switch name.Content(sourceCode) {
			case "typename":
				typeName = arg.ChildByFieldName("value")
			case "field_names":
				fields = arg.ChildByFieldName("value")
			}
		default:
			positional = append(positional, arg)
		}
	}
	if typeName == nil && len(positional) > 0 {
		typeName = positional[0]
		positional = positional[1:]
	}
	if fields == nil && len(positional) > 0 {
		fields = positional[0]
	}
	return typeName, fields
}

// evalFieldSpec statically evaluates a namedtuple field spec: a string of
// names separated by whitespace and/or commas, or a list/tuple of strings.
// It never fails loudly; ok is false when the field list is not a literal.
func evalFieldSpec(node *sitter.Node, sourceCode []byte) (fields []string, ok bool) {
	if node == nil {
		return nil, false
	}
	switch node.Type() {
	case nodeString, nodeConcatenatedString:
		spec, ok := stringValue(node, sourceCode)
		if !ok {
			return nil, false
		}
		return strings.Fields(strings.ReplaceAll(spec, ",", " ")), true
	case nodeList, nodeTuple:
		fields = []string{}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			elem := node.NamedChild(i)
			if elem.Type() == nodeComment {
				continue
			}
			name, ok := stringValue(elem, sourceCode)
			if !ok {
				return nil, false
			}
			fields = append(fields, strings.TrimSpace(name))
		}
		return fields, true
	}
	return nil, false
}
