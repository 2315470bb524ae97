package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

type GrammarLoader struct {
	languages map[string]*sitter.Language
}

func NewGrammarLoader() *GrammarLoader {
	gl := &GrammarLoader{
		languages: make(map[string]*sitter.Language),
	}

	gl.languages["go"] = sitter.NewLanguage(tree_sitter_go.Language())
	gl.languages["java"] = sitter.NewLanguage(tree_sitter_java.Language())
	gl.languages["javascript"] = sitter.NewLanguage(tree_sitter_javascript.Language())
	gl.languages["python"] = sitter.NewLanguage(tree_sitter_python.Language())
	gl.languages["rust"] = sitter.NewLanguage(tree_sitter_rust.Language())
	gl.languages["typescript"] = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	gl.languages["tsx"] = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())

	return gl
}

func (gl *GrammarLoader) Language(name string) *sitter.Language {
	return gl.languages[name]
}

func (gl *GrammarLoader) Languages() []string {
	names := make([]string, 0, len(gl.languages))
	for name := range gl.languages {
		names = append(names, name)
	}
	return names
}
