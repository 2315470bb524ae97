package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type PythonExtractor struct{}

func (e *PythonExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "python",
		ParsedAt: time.Now(),
	}
	ctx := &ExtractionContext{Source: source, File: file}

	e.collectClasses(ctx, root)
	e.collectFileScope(ctx, root)

	return file, nil
}

func (e *PythonExtractor) collectClasses(ctx *ExtractionContext, node *sitter.Node) {
	if node == nil {
		return
	}
	if node.Kind() == "class_definition" {
		e.extractClass(ctx, node)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		e.collectClasses(ctx, node.Child(i))
	}
}

func (e *PythonExtractor) extractClass(ctx *ExtractionContext, node *sitter.Node) {
	name := ctx.FieldText(node, "name")
	body := node.ChildByFieldName("body")
	if name == "" || body == nil {
		return
	}

	var candidates []memberCandidate
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		def := child
		kind := KindMethod
		if child.Kind() == "decorated_definition" {
			def = child.ChildByFieldName("definition")
			kind = pythonDecoratedKind(ctx, child)
		}
		if def == nil || def.Kind() != "function_definition" {
			continue
		}
		methodName := ctx.FieldText(def, "name")
		if methodName == "" || methodName == "__init__" {
			continue
		}
		candidates = append(candidates, memberCandidate{
			decl: MemberDecl{
				Name:     methodName,
				Kind:     kind,
				Location: ctx.Location(child),
			},
			calls: e.selfCalls(ctx, def.ChildByFieldName("body"), nil),
		})
	}

	ctx.File.Scopes = append(ctx.File.Scopes, finalizeScope(ScopeClass, name, ctx.Location(node), candidates))
}

// selfCalls gathers attribute calls through self or cls; anything else
// cannot be statically attributed to a sibling.
func (e *PythonExtractor) selfCalls(ctx *ExtractionContext, node *sitter.Node, calls []string) []string {
	if node == nil {
		return calls
	}
	if node.Kind() == "call" {
		fn := node.ChildByFieldName("function")
		if fn != nil && fn.Kind() == "attribute" {
			object := ctx.FieldText(fn, "object")
			if object == "self" || object == "cls" {
				calls = append(calls, ctx.FieldText(fn, "attribute"))
			}
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		calls = e.selfCalls(ctx, node.Child(i), calls)
	}
	return calls
}

func (e *PythonExtractor) collectFileScope(ctx *ExtractionContext, root *sitter.Node) {
	var candidates []memberCandidate
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		def := child
		if child.Kind() == "decorated_definition" {
			def = child.ChildByFieldName("definition")
		}
		if def == nil || def.Kind() != "function_definition" {
			continue
		}
		name := ctx.FieldText(def, "name")
		if name == "" {
			continue
		}
		candidates = append(candidates, memberCandidate{
			decl: MemberDecl{
				Name:     name,
				Kind:     KindFunction,
				Location: ctx.Location(child),
			},
			calls: e.identifierCalls(ctx, def.ChildByFieldName("body"), nil),
		})
	}

	if len(candidates) > 0 {
		ctx.File.Scopes = append(ctx.File.Scopes, fileScope(ctx.File.Path, candidates))
	}
}

func (e *PythonExtractor) identifierCalls(ctx *ExtractionContext, node *sitter.Node, calls []string) []string {
	if node == nil {
		return calls
	}
	if node.Kind() == "call" {
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

func pythonDecoratedKind(ctx *ExtractionContext, node *sitter.Node) MemberKind {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() != "decorator" {
			continue
		}
		text := ctx.Text(child)
		if text == "@property" {
			return KindGetter
		}
		if strings.HasSuffix(text, ".setter") {
			return KindSetter
		}
	}
	return KindMethod
}
