package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/tristendillon/scout/core/ast"
	"github.com/tristendillon/scout/core/models"
	"github.com/tristendillon/scout/core/usage"
)

// Kinds of nested content tallied in ChildrenStats.NodeTypes.
const (
	ElementChild    = "element"
	FragmentChild   = "fragment"
	TextChild       = "text"
	ExpressionChild = "expression"
)

// callExpression handles `Component(...)` calls on a named or default
// binding and dynamic `import("./x")`.
func (s *scan) callExpression(n *sitter.Node) {
	fn := n.ChildByFieldName("function")
	args := n.ChildByFieldName("arguments")
	if fn == nil {
		return
	}

	if fn.Type() == "import" {
		if args == nil {
			return
		}
		if list := ast.NamedChildren(args); len(list) > 0 && list[0].Type() == "string" {
			s.addImport(ast.Unquote(s.file.Text(list[0])))
		}
		return
	}

	if fn.Type() != "identifier" {
		return
	}
	rec, ok := s.tracker.Record(s.file.Text(fn))
	if !ok {
		return
	}

	count := 0
	if args != nil {
		if args.Type() == "arguments" {
			count = len(ast.NamedChildren(args))
		} else {
			// tagged template
			count = 1
		}
	}
	// Call sites carry no props, so Record cannot fail here.
	_ = s.table.Record(rec, usage.Site{Call: true, Args: count})
}

func (s *scan) element(n *sitter.Node) error {
	open := n.ChildByFieldName("open_tag")
	if open == nil {
		return nil
	}
	rec := s.tagRecord(open.ChildByFieldName("name"))
	if rec == nil {
		return nil
	}

	site, err := s.attributes(open)
	if err != nil {
		return err
	}
	for _, c := range ast.NamedChildren(n) {
		if t := c.Type(); t == "jsx_opening_element" || t == "jsx_closing_element" {
			continue
		}
		if kind := s.childKind(c); kind != "" {
			site.Children = append(site.Children, kind)
		}
	}
	return s.record(open, rec, site)
}

func (s *scan) selfClosing(n *sitter.Node) error {
	rec := s.tagRecord(n.ChildByFieldName("name"))
	if rec == nil {
		return nil
	}
	site, err := s.attributes(n)
	if err != nil {
		return err
	}
	return s.record(n, rec, site)
}

func (s *scan) record(n *sitter.Node, rec *models.UsageRecord, site usage.Site) error {
	if err := s.table.Record(rec, site); err != nil {
		return s.invalid(n, err)
	}
	return nil
}

// tagRecord maps a tag name to its usage record. `Local` goes through a
// named or default binding, `Local.Member` through a namespace binding.
func (s *scan) tagRecord(name *sitter.Node) *models.UsageRecord {
	if name == nil {
		return nil
	}
	text := strings.Join(strings.Fields(s.file.Text(name)), "")
	parts := strings.SplitN(text, ".", 2)
	if len(parts) == 1 {
		rec, _ := s.tracker.Record(parts[0])
		return rec
	}
	rec, _ := s.tracker.Member(parts[0], parts[1])
	return rec
}

// attributes collects the attributes and spreads of an opening or
// self-closing tag.
func (s *scan) attributes(tag *sitter.Node) (usage.Site, error) {
	var site usage.Site
	for _, c := range ast.NamedChildren(tag) {
		switch c.Type() {
		case "jsx_attribute":
			attr, err := s.attribute(c)
			if err != nil {
				return site, err
			}
			site.Attributes = append(site.Attributes, attr)
		case "jsx_expression":
			list := ast.NamedChildren(c)
			if len(list) == 1 && list[0].Type() == "spread_element" {
				site.Spreads = append(site.Spreads, s.spread(list[0])...)
			}
		}
	}
	return site, nil
}

func (s *scan) attribute(n *sitter.Node) (usage.Attribute, error) {
	list := ast.NamedChildren(n)
	if len(list) == 0 {
		return usage.Attribute{}, s.invalid(n, ErrMissingAttributeName)
	}
	name := strings.TrimSpace(s.file.Text(list[0]))
	if name == "" {
		return usage.Attribute{}, s.invalid(n, ErrMissingAttributeName)
	}

	attr := usage.Attribute{Name: name, Value: usage.NoValue}
	if len(list) > 1 {
		attr.Value = s.valueKind(list[1])
	}
	return attr, nil
}

func (s *scan) valueKind(v *sitter.Node) usage.ValueKind {
	switch v.Type() {
	case "string":
		return usage.StringValue
	case "true", "false":
		return usage.BooleanValue
	case "jsx_expression":
		inner := ast.NamedChildren(v)
		if len(inner) == 1 {
			return s.valueKind(inner[0])
		}
		return usage.ExpressionValue
	}
	return usage.ExpressionValue
}

// spread turns `{...expr}` into usage spreads. An object literal is
// enumerable, so its keys count as attributes; a spread nested inside it is
// opaque and counted separately.
func (s *scan) spread(n *sitter.Node) []usage.Spread {
	list := ast.NamedChildren(n)
	if len(list) == 0 {
		return []usage.Spread{{}}
	}
	arg := list[0]
	for arg.Type() == "parenthesized_expression" {
		inner := ast.NamedChildren(arg)
		if len(inner) != 1 {
			break
		}
		arg = inner[0]
	}
	if arg.Type() != "object" {
		return []usage.Spread{{}}
	}

	lit := usage.Spread{Literal: true}
	out := []usage.Spread{}
	for _, p := range ast.NamedChildren(arg) {
		switch p.Type() {
		case "pair":
			key := p.ChildByFieldName("key")
			if key == nil || key.Type() == "computed_property_name" {
				continue
			}
			attr := usage.Attribute{Name: ast.Unquote(s.file.Text(key)), Value: usage.ExpressionValue}
			if val := p.ChildByFieldName("value"); val != nil {
				attr.Value = s.valueKind(val)
			}
			lit.Properties = append(lit.Properties, attr)
		case "shorthand_property_identifier":
			lit.Properties = append(lit.Properties, usage.Attribute{Name: s.file.Text(p), Value: usage.ExpressionValue})
		case "method_definition":
			if name := p.ChildByFieldName("name"); name != nil && name.Type() != "computed_property_name" {
				lit.Properties = append(lit.Properties, usage.Attribute{Name: s.file.Text(name), Value: usage.ExpressionValue})
			}
		case "spread_element":
			out = append(out, usage.Spread{})
		}
	}
	return append([]usage.Spread{lit}, out...)
}

// childKind classifies one node nested between an element's tags. Blank
// text and empty expressions do not count.
func (s *scan) childKind(c *sitter.Node) string {
	switch c.Type() {
	case "jsx_element":
		if open := c.ChildByFieldName("open_tag"); open != nil && open.ChildByFieldName("name") == nil {
			return FragmentChild
		}
		return ElementChild
	case "jsx_self_closing_element":
		return ElementChild
	case "jsx_fragment":
		return FragmentChild
	case "jsx_text", "html_character_reference":
		if ast.IsWhitespace(s.file.Text(c)) {
			return ""
		}
		return TextChild
	case "jsx_expression":
		if len(ast.NamedChildren(c)) == 0 {
			return ""
		}
		return ExpressionChild
	}
	return ""
}
