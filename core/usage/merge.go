package usage

import (
	"sort"

	"github.com/tristendillon/scout/core/models"
)

// Merge folds the usage of many files into project-wide totals. Records are
// visited in file order so the result does not depend on emission order.
func Merge(records []*models.FileRecord) models.UsageMap {
	sorted := make([]*models.FileRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].File < sorted[j].File })

	out := make(models.UsageMap)
	for _, fr := range sorted {
		fr.Usage.Each(func(r *models.UsageRecord) {
			byName, ok := out[r.Package]
			if !ok {
				byName = make(map[string]*models.UsageRecord)
				out[r.Package] = byName
			}
			dst, ok := byName[r.Component]
			if !ok {
				dst = models.NewUsageRecord(models.ComponentIdentity{
					Package: r.Package,
					Export:  r.Component,
					Style:   r.ImportStyle,
				})
				byName[r.Component] = dst
			}
			add(dst, r)
		})
	}
	return out
}

func add(dst, src *models.UsageRecord) {
	dst.Imported += src.Imported
	dst.Used += src.Used
	dst.TotalUsage += src.TotalUsage
	dst.Props.Merge(src.Props)

	d, s := &dst.Dimensions, src.Dimensions
	d.WithClassName += s.WithClassName
	d.WithoutClassName += s.WithoutClassName
	d.WithStyle += s.WithStyle
	d.WithoutStyle += s.WithoutStyle
	d.WithRef += s.WithRef
	d.WithoutRef += s.WithoutRef
	d.WithExplicitChildren += s.WithExplicitChildren
	d.WithoutExplicitChildren += s.WithoutExplicitChildren

	for k, v := range src.BooleanProps {
		dst.BooleanProps[k] += v
	}
	dst.Children.Implicit += src.Children.Implicit
	for k, v := range src.Children.NodeTypes {
		dst.Children.NodeTypes[k] += v
	}
	dst.Args.NoArgs += src.Args.NoArgs
	dst.Args.OneArg += src.Args.OneArg
	dst.Args.MultipleArgs += src.Args.MultipleArgs
	dst.Spreads.Literal += src.Spreads.Literal
	dst.Spreads.Dynamic += src.Spreads.Dynamic
	dst.Patterns.ControlledComponent += src.Patterns.ControlledComponent
	dst.Patterns.UncontrolledComponent += src.Patterns.UncontrolledComponent
}
