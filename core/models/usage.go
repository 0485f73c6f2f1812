package models

import "sort"

// UsageMap is package -> component -> record, scoped to one file.
type UsageMap map[string]map[string]*UsageRecord

type UsageRecord struct {
	Package     string         `json:"package"`
	Component   string         `json:"component"`
	ImportStyle ImportStyle    `json:"importStyle"`
	Imported    int            `json:"imported"`
	Used        int            `json:"used"`
	TotalUsage  int            `json:"totalUsage"`
	Props       *PropAggregate `json:"props"`
	Dimensions  Dimensions     `json:"dimensions"`

	BooleanProps map[string]int `json:"booleanProps"`
	Children     ChildrenStats  `json:"children"`
	Args         ArgStats       `json:"args"`
	Spreads      SpreadStats    `json:"spreads"`
	Patterns     PatternStats   `json:"patterns"`
}

// Dimensions holds paired counters; each pair sums to Used once a file completes.
type Dimensions struct {
	WithClassName           int `json:"withClassName"`
	WithoutClassName        int `json:"withoutClassName"`
	WithStyle               int `json:"withStyle"`
	WithoutStyle            int `json:"withoutStyle"`
	WithRef                 int `json:"withRef"`
	WithoutRef              int `json:"withoutRef"`
	WithExplicitChildren    int `json:"withExplicitChildren"`
	WithoutExplicitChildren int `json:"withoutExplicitChildren"`
}

type ChildrenStats struct {
	Implicit  int            `json:"implicit"`
	NodeTypes map[string]int `json:"nodeTypes"`
}

type ArgStats struct {
	NoArgs       int `json:"noArgs"`
	OneArg       int `json:"oneArg"`
	MultipleArgs int `json:"multipleArgs"`
}

type SpreadStats struct {
	Literal int `json:"literal"`
	Dynamic int `json:"dynamic"`
}

type PatternStats struct {
	ControlledComponent   int `json:"controlledComponent"`
	UncontrolledComponent int `json:"uncontrolledComponent"`
}

// PropAggregate totals the attributes seen on a component.
type PropAggregate struct {
	Total      int                       `json:"total"`
	Unique     []string                  `json:"unique"`
	Details    map[string]int            `json:"details"`
	Categories map[string]*CategoryStats `json:"categories"`
}

type CategoryStats struct {
	Count int            `json:"count"`
	Props map[string]int `json:"props"`
}

func NewPropAggregate() *PropAggregate {
	return &PropAggregate{
		Unique:     []string{},
		Details:    make(map[string]int),
		Categories: make(map[string]*CategoryStats),
	}
}

// Add counts one occurrence of name under each of categories.
func (p *PropAggregate) Add(name string, categories []string) {
	p.Total++
	if _, seen := p.Details[name]; !seen {
		p.Unique = append(p.Unique, name)
		sort.Strings(p.Unique)
	}
	p.Details[name]++
	for _, c := range categories {
		stats, ok := p.Categories[c]
		if !ok {
			stats = &CategoryStats{Props: make(map[string]int)}
			p.Categories[c] = stats
		}
		stats.Count++
		stats.Props[name]++
	}
}

// Merge adds other's counts into p.
func (p *PropAggregate) Merge(other *PropAggregate) {
	if other == nil {
		return
	}
	p.Total += other.Total
	for name, n := range other.Details {
		if _, seen := p.Details[name]; !seen {
			p.Unique = append(p.Unique, name)
		}
		p.Details[name] += n
	}
	sort.Strings(p.Unique)
	for c, stats := range other.Categories {
		dst, ok := p.Categories[c]
		if !ok {
			dst = &CategoryStats{Props: make(map[string]int)}
			p.Categories[c] = dst
		}
		dst.Count += stats.Count
		for name, n := range stats.Props {
			dst.Props[name] += n
		}
	}
}

// NewUsageRecord returns a record with every optional counter present.
func NewUsageRecord(id ComponentIdentity) *UsageRecord {
	r := &UsageRecord{
		Package:     id.Package,
		Component:   id.Export,
		ImportStyle: id.Style,
	}
	r.Fill()
	return r
}

// Fill back-fills missing optional counters so every emitted record has the
// same shape.
func (r *UsageRecord) Fill() {
	if r.Props == nil {
		r.Props = NewPropAggregate()
	}
	if r.Props.Unique == nil {
		r.Props.Unique = []string{}
	}
	if r.Props.Details == nil {
		r.Props.Details = make(map[string]int)
	}
	if r.Props.Categories == nil {
		r.Props.Categories = make(map[string]*CategoryStats)
	}
	if r.BooleanProps == nil {
		r.BooleanProps = make(map[string]int)
	}
	if r.Children.NodeTypes == nil {
		r.Children.NodeTypes = make(map[string]int)
	}
}

// Get returns the record for pkg/component if present.
func (m UsageMap) Get(pkg, component string) (*UsageRecord, bool) {
	byName, ok := m[pkg]
	if !ok {
		return nil, false
	}
	r, ok := byName[component]
	return r, ok
}

// Each visits records sorted by package then component.
func (m UsageMap) Each(fn func(*UsageRecord)) {
	pkgs := make([]string, 0, len(m))
	for p := range m {
		pkgs = append(pkgs, p)
	}
	sort.Strings(pkgs)
	for _, p := range pkgs {
		names := make([]string, 0, len(m[p]))
		for n := range m[p] {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fn(m[p][n])
		}
	}
}
