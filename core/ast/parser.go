// Package ast parses JavaScript and TypeScript sources with tree-sitter.
package ast

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/tristendillon/scout/core/logger"
)

type Language string

const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
)

// LanguageFor picks a grammar from the file extension. Plain .js files get
// the javascript grammar, which already understands JSX.
func LanguageFor(path string) (Language, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return TypeScript, true
	case ".tsx":
		return TSX, true
	case ".js", ".jsx", ".mjs", ".cjs":
		return JavaScript, true
	}
	return "", false
}

func (l Language) grammar() *sitter.Language {
	switch l {
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// File is a parsed source file. Close releases the tree.
type File struct {
	Path     string
	Language Language
	Source   []byte
	Tree     *sitter.Tree
}

func (f *File) Root() *sitter.Node {
	return f.Tree.RootNode()
}

// Text returns the source text covered by n.
func (f *File) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(f.Source)
}

func (f *File) Close() {
	if f.Tree != nil {
		f.Tree.Close()
		f.Tree = nil
	}
}

// ParseError reports a file tree-sitter could not parse cleanly.
type ParseError struct {
	File   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d:%d: %v", e.File, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var ErrSyntax = errors.New("syntax error")

// Parse parses src as the language implied by path. A tree containing error
// or missing nodes is rejected with a ParseError.
func Parse(ctx context.Context, path string, src []byte) (*File, error) {
	lang, ok := LanguageFor(path)
	if !ok {
		return nil, &ParseError{File: path, Err: fmt.Errorf("unsupported extension %q", filepath.Ext(path))}
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang.grammar())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, &ParseError{File: path, Err: err}
	}

	root := tree.RootNode()
	if root == nil {
		tree.Close()
		return nil, &ParseError{File: path, Err: errors.New("empty tree")}
	}
	if root.HasError() {
		perr := &ParseError{File: path, Err: ErrSyntax}
		if bad := firstError(root); bad != nil {
			perr.Line = int(bad.StartPoint().Row) + 1
			perr.Column = int(bad.StartPoint().Column) + 1
		}
		tree.Close()
		return nil, perr
	}

	logger.Debug("Parsed %s as %s (%d bytes)", path, lang, len(src))
	return &File{Path: path, Language: lang, Source: src, Tree: tree}, nil
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}
