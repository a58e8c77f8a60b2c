// # internal/parser/loader.go
package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

type GrammarLoader struct {
	languages map[string]*sitter.Language
}

func NewGrammarLoader() *GrammarLoader {
	gl := &GrammarLoader{
		languages: make(map[string]*sitter.Language),
	}

	pythonLang := sitter.NewLanguage(tree_sitter_python.Language())
	gl.languages["python"] = pythonLang

	return gl
}

func (gl *GrammarLoader) Get(lang string) *sitter.Language {
	return gl.languages[lang]
}
