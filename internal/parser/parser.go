package parser

import (
	"errors"
	"fmt"
	"path/filepath"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type Parser struct {
	loader     *GrammarLoader
	extractors map[string]Extractor // language -> extractor
}

type Extractor interface {
	Extract(node *sitter.Node, source []byte, filePath string) (*File, error)
}

func NewParser(loader *GrammarLoader) *Parser {
	p := &Parser{
		loader:     loader,
		extractors: make(map[string]Extractor),
	}
	for _, lang := range loader.Languages() {
		if e, ok := DefaultExtractorForLanguage(lang); ok {
			p.extractors[lang] = e
		}
	}
	return p
}

func DefaultExtractorForLanguage(lang string) (Extractor, bool) {
	switch lang {
	case "go":
		return &GoExtractor{}, true
	case "java":
		return &JavaExtractor{}, true
	case "javascript":
		return NewScriptExtractor("javascript"), true
	case "python":
		return &PythonExtractor{}, true
	case "rust":
		return &RustExtractor{}, true
	case "typescript":
		return NewScriptExtractor("typescript"), true
	case "tsx":
		return NewScriptExtractor("tsx"), true
	default:
		return nil, false
	}
}

func (p *Parser) RegisterExtractor(lang string, e Extractor) {
	p.extractors[lang] = e
}

func (p *Parser) ParseFile(path string, content []byte) (*File, error) {
	lang := DetectLanguage(path)
	if lang == "" {
		return nil, errors.New("unsupported language")
	}

	grammar := p.loader.Language(lang)
	if grammar == nil {
		return nil, fmt.Errorf("grammar not loaded: %s", lang)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.New("parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()

	extractor := p.extractors[lang]
	if extractor == nil {
		return nil, fmt.Errorf("no extractor for: %s", lang)
	}

	return extractor.Extract(root, content, path)
}

func DetectLanguage(path string) string {
	switch filepath.Ext(path) {
	case ".go":
		return "go"
	case ".java":
		return "java"
	case ".js", ".cjs", ".mjs":
		return "javascript"
	case ".py":
		return "python"
	case ".rs":
		return "rust"
	case ".ts":
		return "typescript"
	case ".tsx":
		return "tsx"
	default:
		return ""
	}
}
