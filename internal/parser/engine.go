package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ExtractionContext carries shared state/helpers used by all extractors.
type ExtractionContext struct {
	Source []byte
	File   *File
}

func (c *ExtractionContext) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(c.Source[node.StartByte():node.EndByte()])
}

func (c *ExtractionContext) FieldText(node *sitter.Node, field string) string {
	if node == nil {
		return ""
	}
	return c.Text(node.ChildByFieldName(field))
}

func (c *ExtractionContext) Location(node *sitter.Node) Location {
	return Location{
		File:   c.File.Path,
		Line:   int(node.StartPosition().Row) + 1,
		Column: int(node.StartPosition().Column) + 1,
	}
}
