// # internal/parser/parser.go
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type Parser struct {
	loader   *GrammarLoader
	indexers map[string]Indexer // language -> indexer
}

type Indexer interface {
	Extract(node *sitter.Node, source []byte, filePath string) (*File, error)
}

func NewParser(loader *GrammarLoader) *Parser {
	return &Parser{
		loader:   loader,
		indexers: make(map[string]Indexer),
	}
}

func (p *Parser) RegisterIndexer(lang string, ix Indexer) {
	p.indexers[lang] = ix
}

func (p *Parser) ParseFile(path string, content []byte) (*File, error) {
	lang := p.detectLanguage(path)
	if lang == "" {
		return nil, errors.New("unsupported language")
	}

	grammar := p.loader.Get(lang)
	if grammar == nil {
		return nil, fmt.Errorf("grammar not loaded: %s", lang)
	}

	if !utf8.Valid(content) {
		return nil, errors.New("invalid UTF-8 source")
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
	if root.HasError() {
		return nil, errors.New("syntax error")
	}

	indexer := p.indexers[lang]
	if indexer == nil {
		return nil, fmt.Errorf("no indexer for: %s", lang)
	}

	return indexer.Extract(root, content, path)
}

func (p *Parser) detectLanguage(path string) string {
	if filepath.Ext(path) == ".py" {
		return "python"
	}
	return ""
}
