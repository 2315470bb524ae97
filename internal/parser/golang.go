package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type GoExtractor struct{}

func (e *GoExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "go",
		ParsedAt: time.Now(),
	}
	ctx := &ExtractionContext{Source: source, File: file}

	e.collectMethodScopes(ctx, root)
	e.collectFileScope(ctx, root)

	return file, nil
}

// collectMethodScopes groups method declarations by receiver type; each
// receiver type is treated as one class scope, anchored at its first
// method.
func (e *GoExtractor) collectMethodScopes(ctx *ExtractionContext, root *sitter.Node) {
	byType := make(map[string][]memberCandidate)
	locations := make(map[string]Location)
	var typeOrder []string

	for i := uint(0); i < root.ChildCount(); i++ {
		node := root.Child(i)
		if node.Kind() != "method_declaration" {
			continue
		}
		recvVar, recvType := e.receiver(ctx, node.ChildByFieldName("receiver"))
		name := ctx.FieldText(node, "name")
		if name == "" || recvType == "" {
			continue
		}

		if _, seen := byType[recvType]; !seen {
			typeOrder = append(typeOrder, recvType)
			locations[recvType] = ctx.Location(node)
		}
		byType[recvType] = append(byType[recvType], memberCandidate{
			decl: MemberDecl{
				Name:     name,
				Kind:     KindMethod,
				Location: ctx.Location(node),
			},
			calls: e.receiverCalls(ctx, node.ChildByFieldName("body"), recvVar, nil),
		})
	}

	for _, recvType := range typeOrder {
		ctx.File.Scopes = append(ctx.File.Scopes,
			finalizeScope(ScopeClass, recvType, locations[recvType], byType[recvType]))
	}
}

func (e *GoExtractor) receiver(ctx *ExtractionContext, list *sitter.Node) (recvVar, recvType string) {
	if list == nil {
		return "", ""
	}
	for i := uint(0); i < list.ChildCount(); i++ {
		child := list.Child(i)
		if child.Kind() != "parameter_declaration" {
			continue
		}
		recvVar = ctx.FieldText(child, "name")
		recvType = strings.TrimPrefix(ctx.FieldText(child, "type"), "*")
		return recvVar, recvType
	}
	return "", ""
}

func (e *GoExtractor) receiverCalls(ctx *ExtractionContext, node *sitter.Node, recvVar string, calls []string) []string {
	if node == nil || recvVar == "" {
		return calls
	}
	if node.Kind() == "call_expression" {
		fn := node.ChildByFieldName("function")
		if fn != nil && fn.Kind() == "selector_expression" {
			if ctx.FieldText(fn, "operand") == recvVar {
				calls = append(calls, ctx.FieldText(fn, "field"))
			}
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		calls = e.receiverCalls(ctx, node.Child(i), recvVar, calls)
	}
	return calls
}

func (e *GoExtractor) collectFileScope(ctx *ExtractionContext, root *sitter.Node) {
	var candidates []memberCandidate
	for i := uint(0); i < root.ChildCount(); i++ {
		node := root.Child(i)
		if node.Kind() != "function_declaration" {
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

func (e *GoExtractor) identifierCalls(ctx *ExtractionContext, node *sitter.Node, calls []string) []string {
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
