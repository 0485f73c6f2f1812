package usage

import (
	"fmt"

	"github.com/tristendillon/scout/core/models"
	"github.com/tristendillon/scout/core/props"
)

// Table owns the usage map of a single file. It is not safe for concurrent use
// and must not outlive the file it was created for.
type Table struct {
	categorizer *props.Categorizer
	usage       models.UsageMap
}

func NewTable(categorizer *props.Categorizer) *Table {
	if categorizer == nil {
		categorizer = props.Default()
	}
	return &Table{
		categorizer: categorizer,
		usage:       make(models.UsageMap),
	}
}

// Upsert returns the record for id, creating it on first use.
func (t *Table) Upsert(id models.ComponentIdentity) *models.UsageRecord {
	byName, ok := t.usage[id.Package]
	if !ok {
		byName = make(map[string]*models.UsageRecord)
		t.usage[id.Package] = byName
	}
	rec, ok := byName[id.Export]
	if !ok {
		rec = models.NewUsageRecord(id)
		byName[id.Export] = rec
	}
	return rec
}

// Register counts one import of id.
func (t *Table) Register(id models.ComponentIdentity) *models.UsageRecord {
	rec := t.Upsert(id)
	rec.Imported++
	return rec
}

func (t *Table) Get(pkg, component string) (*models.UsageRecord, bool) {
	return t.usage.Get(pkg, component)
}

// Record folds one usage site into rec. Prop names are validated before
// anything is counted, so an invalid site leaves rec untouched.
func (t *Table) Record(rec *models.UsageRecord, site Site) error {
	attrs := make([]Attribute, 0, len(site.Attributes))
	attrs = append(attrs, site.Attributes...)
	for _, s := range site.Spreads {
		if s.Literal {
			attrs = append(attrs, s.Properties...)
		}
	}

	categories := make([][]string, len(attrs))
	for i, a := range attrs {
		cats, err := t.categorizer.Categorize(a.Name)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", rec.Package, rec.Component, err)
		}
		categories[i] = props.Strings(cats)
	}

	rec.Used++
	rec.TotalUsage++

	if site.Call {
		switch {
		case site.Args == 0:
			rec.Args.NoArgs++
		case site.Args == 1:
			rec.Args.OneArg++
		default:
			rec.Args.MultipleArgs++
		}
	}

	for _, s := range site.Spreads {
		if s.Literal {
			rec.Spreads.Literal++
		} else {
			rec.Spreads.Dynamic++
		}
	}

	has := make(map[string]bool, len(attrs))
	for i, a := range attrs {
		has[a.Name] = true
		rec.Props.Add(a.Name, categories[i])
		if a.IsBoolean() {
			rec.BooleanProps[a.Name]++
		}
	}

	d := &rec.Dimensions
	pair(has["className"], &d.WithClassName, &d.WithoutClassName)
	pair(has["style"], &d.WithStyle, &d.WithoutStyle)
	pair(has["ref"], &d.WithRef, &d.WithoutRef)
	pair(has["children"], &d.WithExplicitChildren, &d.WithoutExplicitChildren)

	switch {
	case has["value"] && has["onChange"]:
		rec.Patterns.ControlledComponent++
	case has["defaultValue"] && !has["onChange"]:
		rec.Patterns.UncontrolledComponent++
	}

	if len(site.Children) > 0 {
		rec.Children.Implicit++
		for _, kind := range site.Children {
			rec.Children.NodeTypes[kind]++
		}
	}

	return nil
}

func pair(with bool, yes, no *int) {
	if with {
		*yes++
	} else {
		*no++
	}
}

// Finalize back-fills every record and returns the file's usage map together
// with its total prop count. The table must not be used afterwards.
func (t *Table) Finalize() (models.UsageMap, int) {
	total := 0
	t.usage.Each(func(r *models.UsageRecord) {
		r.Fill()
		total += r.Props.Total
	})
	out := t.usage
	t.usage = nil
	return out, total
}
