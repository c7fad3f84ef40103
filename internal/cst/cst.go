// Package cst binds the CST provider the builder walks to a concrete
// implementation: github.com/tree-sitter/go-tree-sitter driving the
// tree-sitter-c-sharp grammar for SRC parsing and the tree-sitter-java
// grammar for DST output validation. One pooled parser per language.
package cst

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_c_sharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// Language identifies which grammar a parser pool was built for.
type Language string

const (
	CSharp Language = "c-sharp"
	Java   Language = "java"
)

var (
	languagesOnce sync.Once
	languages     map[Language]*tree_sitter.Language
	parserPools   map[Language]*sync.Pool
)

func initLanguages() {
	languagesOnce.Do(func() {
		languages = map[Language]*tree_sitter.Language{
			CSharp: tree_sitter.NewLanguage(tree_sitter_c_sharp.Language()),
			Java:   tree_sitter.NewLanguage(tree_sitter_java.Language()),
		}

		parserPools = make(map[Language]*sync.Pool, len(languages))
		for l, tsLang := range languages {
			tsLang := tsLang
			parserPools[l] = &sync.Pool{
				New: func() any {
					p := tree_sitter.NewParser()
					if err := p.SetLanguage(tsLang); err != nil {
						panic(fmt.Sprintf("set language: %v", err))
					}
					return p
				},
			}
		}
	})
}

// Parse parses source into a tree-sitter AST Tree for the given language.
// The caller must call tree.Close() when done.
func Parse(l Language, source []byte) (*tree_sitter.Tree, error) {
	initLanguages()

	pool, ok := parserPools[l]
	if !ok {
		return nil, fmt.Errorf("cst: unsupported language: %s", l)
	}

	p, _ := pool.Get().(*tree_sitter.Parser)
	if p == nil {
		return nil, fmt.Errorf("cst: failed to get parser for language %s", l)
	}
	tree := p.Parse(source, nil)
	pool.Put(p)

	if tree == nil {
		return nil, fmt.Errorf("cst: parse failed for language %s", l)
	}

	return tree, nil
}

// WalkFunc is called for each node during AST traversal. Return false to
// skip that node's children.
type WalkFunc func(node *tree_sitter.Node) bool

// Walk traverses the AST in depth-first order.
func Walk(node *tree_sitter.Node, fn WalkFunc) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil {
			Walk(child, fn)
		}
	}
}

// NodeText returns the text content of a node.
func NodeText(node *tree_sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// ChildByKind returns the first direct child of node whose Kind() matches,
// or nil.
func ChildByKind(node *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}
