package parser

import (
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// RustExtractor treats each impl block as a class scope and the file's
// top-level functions as the file scope.
type RustExtractor struct{}

func (e *RustExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "rust",
		ParsedAt: time.Now(),
	}
	ctx := &ExtractionContext{Source: source, File: file}

	e.collectImpls(ctx, root)
	e.collectFileScope(ctx, root)

	return file, nil
}

func (e *RustExtractor) collectImpls(ctx *ExtractionContext, node *sitter.Node) {
	if node == nil {
		return
	}
	if node.Kind() == "impl_item" {
		e.extractImpl(ctx, node)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		e.collectImpls(ctx, node.Child(i))
	}
}

func (e *RustExtractor) extractImpl(ctx *ExtractionContext, node *sitter.Node) {
	name := ctx.FieldText(node, "type")
	body := node.ChildByFieldName("body")
	if name == "" || body == nil {
		return
	}

	var candidates []memberCandidate
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child.Kind() != "function_item" {
			continue
		}
		fnName := ctx.FieldText(child, "name")
		if fnName == "" {
			continue
		}
		candidates = append(candidates, memberCandidate{
			decl: MemberDecl{
				Name:     fnName,
				Kind:     KindMethod,
				Location: ctx.Location(child),
			},
			calls: e.selfCalls(ctx, child.ChildByFieldName("body"), nil),
		})
	}

	ctx.File.Scopes = append(ctx.File.Scopes, finalizeScope(ScopeClass, name, ctx.Location(node), candidates))
}

// selfCalls gathers self.m() and Self::m() calls inside an impl method.
func (e *RustExtractor) selfCalls(ctx *ExtractionContext, node *sitter.Node, calls []string) []string {
	if node == nil {
		return calls
	}
	if node.Kind() == "call_expression" {
		fn := node.ChildByFieldName("function")
		if fn != nil {
			switch fn.Kind() {
			case "field_expression":
				if ctx.FieldText(fn, "value") == "self" {
					calls = append(calls, ctx.FieldText(fn, "field"))
				}
			case "scoped_identifier":
				if ctx.FieldText(fn, "path") == "Self" {
					calls = append(calls, ctx.FieldText(fn, "name"))
				}
			}
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		calls = e.selfCalls(ctx, node.Child(i), calls)
	}
	return calls
}

func (e *RustExtractor) collectFileScope(ctx *ExtractionContext, root *sitter.Node) {
	var candidates []memberCandidate
	for i := uint(0); i < root.ChildCount(); i++ {
		node := root.Child(i)
		if node.Kind() != "function_item" {
			continue
		}
		name := ctx.FieldText(node, "name")
		if name == "" {
			continue
		}
		candidates = append(candidates, memberCandidate{
			decl: MemberDecl{
				Name:     name,
				Kind:     KindFunction,
				Location: ctx.Location(node),
			},
			calls: e.identifierCalls(ctx, node.ChildByFieldName("body"), nil),
		})
	}

	if len(candidates) > 0 {
		ctx.File.Scopes = append(ctx.File.Scopes, fileScope(ctx.File.Path, candidates))
	}
}

func (e *RustExtractor) identifierCalls(ctx *ExtractionContext, node *sitter.Node, calls []string) []string {
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
