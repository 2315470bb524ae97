package parser

import (
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ScriptExtractor handles javascript, typescript and tsx: the three
// dialects share the node kinds this extractor touches.
type ScriptExtractor struct {
	language string
}

func NewScriptExtractor(language string) *ScriptExtractor {
	return &ScriptExtractor{language: language}
}

func (e *ScriptExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: e.language,
		ParsedAt: time.Now(),
	}
	ctx := &ExtractionContext{Source: source, File: file}

	e.collectClasses(ctx, root)
	e.collectFileScope(ctx, root)

	return file, nil
}

func (e *ScriptExtractor) collectClasses(ctx *ExtractionContext, node *sitter.Node) {
	if node == nil {
		return
	}
	if node.Kind() == "class_declaration" {
		e.extractClass(ctx, node)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		e.collectClasses(ctx, node.Child(i))
	}
}

func (e *ScriptExtractor) extractClass(ctx *ExtractionContext, node *sitter.Node) {
	name := ctx.FieldText(node, "name")
	body := node.ChildByFieldName("body")
	if name == "" || body == nil {
		return
	}

	var candidates []memberCandidate
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child.Kind() != "method_definition" {
			continue
		}
		methodName := ctx.FieldText(child, "name")
		// Constructors run on instantiation, not as part of the class
		// reading order; ordering them carries no signal.
		if methodName == "" || methodName == "constructor" {
			continue
		}
		candidates = append(candidates, memberCandidate{
			decl: MemberDecl{
				Name:     methodName,
				Kind:     scriptMethodKind(child),
				Location: ctx.Location(child),
			},
			calls: e.thisCalls(ctx, child.ChildByFieldName("body"), nil),
		})
	}

	ctx.File.Scopes = append(ctx.File.Scopes, finalizeScope(ScopeClass, name, ctx.Location(node), candidates))
}

// thisCalls gathers the property names of this.x(...) calls anywhere in
// the method body. Computed properties and deeper member chains are
// skipped: they cannot be statically attributed to a sibling.
func (e *ScriptExtractor) thisCalls(ctx *ExtractionContext, node *sitter.Node, calls []string) []string {
	if node == nil {
		return calls
	}
	if node.Kind() == "call_expression" {
		fn := node.ChildByFieldName("function")
		if fn != nil && fn.Kind() == "member_expression" {
			object := fn.ChildByFieldName("object")
			property := fn.ChildByFieldName("property")
			if object != nil && object.Kind() == "this" &&
				property != nil && property.Kind() == "property_identifier" {
				calls = append(calls, ctx.Text(property))
			}
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		calls = e.thisCalls(ctx, node.Child(i), calls)
	}
	return calls
}

func (e *ScriptExtractor) collectFileScope(ctx *ExtractionContext, root *sitter.Node) {
	var candidates []memberCandidate
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		decl := child
		if child.Kind() == "export_statement" {
			decl = child.ChildByFieldName("declaration")
		}
		if decl == nil {
			continue
		}
		switch decl.Kind() {
		case "function_declaration", "generator_function_declaration":
		default:
			continue
		}
		name := ctx.FieldText(decl, "name")
		if name == "" {
			continue
		}
		candidates = append(candidates, memberCandidate{
			decl: MemberDecl{
				Name:     name,
				Kind:     KindFunction,
				Location: ctx.Location(decl),
			},
			calls: e.identifierCalls(ctx, decl.ChildByFieldName("body"), nil),
		})
	}

	if len(candidates) > 0 {
		ctx.File.Scopes = append(ctx.File.Scopes, fileScope(ctx.File.Path, candidates))
	}
}

func (e *ScriptExtractor) identifierCalls(ctx *ExtractionContext, node *sitter.Node, calls []string) []string {
	if node == nil {
		return calls
	}
	if node.Kind() == "call_expression" {
		fn := node.ChildByFieldName("function")
		if fn != nil && fn.Kind() == "identifier" {
			calls = append(calls, ctx.Text(fn))
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		calls = e.identifierCalls(ctx, node.Child(i), calls)
	}
	return calls
}

// scriptMethodKind distinguishes accessors by the get/set keyword in
// front of the method name. The ordering algorithm ignores the kind.
func scriptMethodKind(node *sitter.Node) MemberKind {
	for i := uint(0); i < node.ChildCount(); i++ {
		switch node.Child(i).Kind() {
		case "get":
			return KindGetter
		case "set":
			return KindSetter
		}
	}
	return KindMethod
}
