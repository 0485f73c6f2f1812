// Package extractor walks a parsed source file and turns the usage of
// tracked components into a FileRecord.
package extractor

import (
	"errors"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/tristendillon/scout/core/ast"
	"github.com/tristendillon/scout/core/logger"
	"github.com/tristendillon/scout/core/models"
	"github.com/tristendillon/scout/core/props"
	"github.com/tristendillon/scout/core/resolver"
	"github.com/tristendillon/scout/core/tracker"
	"github.com/tristendillon/scout/core/usage"
)

// InvalidInputError aborts the analysis of one file: a malformed attribute
// node or a prop name the categorizer rejects.
type InvalidInputError struct {
	File string
	Line int
	Node string
	Err  error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s:%d: invalid %s: %v", e.File, e.Line, e.Node, e.Err)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

var ErrMissingAttributeName = errors.New("attribute has no name")

type Extractor struct {
	resolver    *resolver.Resolver
	packages    tracker.Packages
	categorizer *props.Categorizer
	log         logger.Reporter
}

func New(res *resolver.Resolver, packages []string, categorizer *props.Categorizer, log logger.Reporter) *Extractor {
	if categorizer == nil {
		categorizer = props.Default()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Extractor{
		resolver:    res,
		packages:    tracker.Packages(packages),
		categorizer: categorizer,
		log:         log,
	}
}

// scan is the state of one file. It is created by Extract and dropped when
// Extract returns, so bindings never reach another file.
type scan struct {
	*Extractor
	file    *ast.File
	table   *usage.Table
	tracker *tracker.Tracker
	imports map[string]struct{}
}

// Extract builds the record of one parsed file.
func (e *Extractor) Extract(f *ast.File) (*models.FileRecord, error) {
	table := usage.NewTable(e.categorizer)
	s := &scan{
		Extractor: e,
		file:      f,
		table:     table,
		tracker:   tracker.New(e.packages, table),
		imports:   make(map[string]struct{}),
	}

	root := f.Root()
	// Import declarations are hoisted, so bind them all before looking at
	// any usage.
	for _, n := range ast.NamedChildren(root) {
		if n.Type() == "import_statement" {
			s.importStatement(n)
		}
	}
	if err := s.visit(root); err != nil {
		return nil, err
	}

	usageMap, totalProps := table.Finalize()
	rec := &models.FileRecord{
		File:       f.Path,
		Module:     e.resolver.ModuleID(f.Path),
		Packages:   s.tracker.Packages(),
		Usage:      usageMap,
		Imports:    s.sortedImports(),
		TotalProps: totalProps,
	}
	e.log.Debug("Extracted %s: %d packages, %d imports, %d props", f.Path, len(rec.Packages), len(rec.Imports), totalProps)
	return rec, nil
}

func (s *scan) visit(n *sitter.Node) error {
	switch n.Type() {
	case "comment", "import_statement":
		return nil
	case "export_statement":
		if src := n.ChildByFieldName("source"); src != nil {
			s.addImport(ast.Unquote(s.file.Text(src)))
		}
	case "call_expression":
		s.callExpression(n)
	case "jsx_element":
		if err := s.element(n); err != nil {
			return err
		}
	case "jsx_self_closing_element":
		if err := s.selfClosing(n); err != nil {
			return err
		}
	}

	for _, c := range ast.NamedChildren(n) {
		if err := s.visit(c); err != nil {
			return err
		}
	}
	return nil
}

// addImport resolves spec and keeps it when it points into the project.
func (s *scan) addImport(spec string) {
	res, err := s.resolver.Resolve(spec, s.file.Path)
	if err != nil {
		s.log.Warn("%v", err)
		return
	}
	if res.External {
		return
	}
	s.imports[res.ID] = struct{}{}
}

func (s *scan) sortedImports() []string {
	out := make([]string, 0, len(s.imports))
	for id := range s.imports {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *scan) invalid(n *sitter.Node, err error) error {
	return &InvalidInputError{
		File: s.file.Path,
		Line: int(n.StartPoint().Row) + 1,
		Node: n.Type(),
		Err:  err,
	}
}
