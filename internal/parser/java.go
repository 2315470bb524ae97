package parser

import (
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// JavaExtractor produces class scopes only: Java has no free functions,
// so no file scope exists.
type JavaExtractor struct{}

func (e *JavaExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "java",
		ParsedAt: time.Now(),
	}
	ctx := &ExtractionContext{Source: source, File: file}

	e.collectClasses(ctx, root)

	return file, nil
}

func (e *JavaExtractor) collectClasses(ctx *ExtractionContext, node *sitter.Node) {
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

func (e *JavaExtractor) extractClass(ctx *ExtractionContext, node *sitter.Node) {
	name := ctx.FieldText(node, "name")
	body := node.ChildByFieldName("body")
	if name == "" || body == nil {
		return
	}

	var candidates []memberCandidate
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child.Kind() != "method_declaration" {
			continue
		}
		methodName := ctx.FieldText(child, "name")
		if methodName == "" {
			continue
		}
		candidates = append(candidates, memberCandidate{
			decl: MemberDecl{
				Name:     methodName,
				Kind:     KindMethod,
				Location: ctx.Location(child),
			},
			calls: e.invocations(ctx, child.ChildByFieldName("body"), nil),
		})
	}

	ctx.File.Scopes = append(ctx.File.Scopes, finalizeScope(ScopeClass, name, ctx.Location(node), candidates))
}

// invocations gathers bare m() and this.m() calls. Calls through any
// other object cannot be attributed to a sibling.
func (e *JavaExtractor) invocations(ctx *ExtractionContext, node *sitter.Node, calls []string) []string {
	if node == nil {
		return calls
	}
	if node.Kind() == "method_invocation" {
		object := node.ChildByFieldName("object")
		if object == nil || object.Kind() == "this" {
			calls = append(calls, ctx.FieldText(node, "name"))
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		calls = e.invocations(ctx, node.Child(i), calls)
	}
	return calls
}
