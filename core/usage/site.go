// Package usage folds component usage sites into per-file statistics.
package usage

// ValueKind describes the value side of a JSX attribute.
type ValueKind int

const (
	NoValue ValueKind = iota
	BooleanValue
	StringValue
	ExpressionValue
)

type Attribute struct {
	Name  string
	Value ValueKind
}

// IsBoolean reports a valueless attribute or a literal true/false.
func (a Attribute) IsBoolean() bool {
	return a.Value == NoValue || a.Value == BooleanValue
}

// Spread is a `{...expr}` attribute. Only literal object spreads carry
// properties; anything else is opaque.
type Spread struct {
	Literal    bool
	Properties []Attribute
}

// Site is one usage of a tracked component.
type Site struct {
	Call       bool
	Args       int
	Attributes []Attribute
	Spreads    []Spread
	// Children holds the kind of each nested content node, e.g. "element" or "text".
	Children []string
}
