package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/tristendillon/scout/core/ast"
	"github.com/tristendillon/scout/core/models"
)

// importStatement binds the specifiers of one import declaration. Type-only
// imports still count as a dependency but bind nothing.
func (s *scan) importStatement(n *sitter.Node) {
	src := n.ChildByFieldName("source")
	if src == nil {
		return
	}
	source := ast.Unquote(s.file.Text(src))
	s.addImport(source)

	if hasToken(n, "type") {
		return
	}

	var specs []models.ImportSpecifier
	for _, c := range ast.NamedChildren(n) {
		if c.Type() == "import_clause" {
			specs = append(specs, s.importClause(c)...)
		}
	}
	if len(specs) == 0 {
		return
	}
	if s.tracker.BindImport(specs, source) {
		s.log.Debug("Bound %d specifiers from %s in %s", len(specs), source, s.file.Path)
	}
}

func (s *scan) importClause(n *sitter.Node) []models.ImportSpecifier {
	var specs []models.ImportSpecifier
	for _, c := range ast.NamedChildren(n) {
		switch c.Type() {
		case "identifier":
			specs = append(specs, models.ImportSpecifier{Style: models.Default, Local: s.file.Text(c)})
		case "namespace_import":
			for _, id := range ast.NamedChildren(c) {
				if id.Type() == "identifier" {
					specs = append(specs, models.ImportSpecifier{Style: models.Namespace, Local: s.file.Text(id)})
				}
			}
		case "named_imports":
			for _, spec := range ast.NamedChildren(c) {
				if spec.Type() != "import_specifier" || hasToken(spec, "type") {
					continue
				}
				name := ast.Unquote(s.file.Text(spec.ChildByFieldName("name")))
				local := name
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					local = s.file.Text(alias)
				}
				if name == "default" {
					specs = append(specs, models.ImportSpecifier{Style: models.Default, Local: local})
					continue
				}
				specs = append(specs, models.ImportSpecifier{Style: models.Named, Imported: name, Local: local})
			}
		}
	}
	return specs
}

// hasToken reports an anonymous child token such as the `type` keyword.
func hasToken(n *sitter.Node, token string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if !c.IsNamed() && c.Type() == token {
			return true
		}
	}
	return false
}
