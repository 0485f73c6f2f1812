package usage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tristendillon/scout/core/models"
	"github.com/tristendillon/scout/core/props"
)

var button = models.ComponentIdentity{Package: "@mui/material", Export: "Button", Style: models.Named}

func requireDimensionsReconcile(t *testing.T, r *models.UsageRecord) {
	t.Helper()
	d := r.Dimensions
	assert.Equal(t, r.Used, r.TotalUsage)
	assert.Equal(t, r.Used, d.WithClassName+d.WithoutClassName)
	assert.Equal(t, r.Used, d.WithStyle+d.WithoutStyle)
	assert.Equal(t, r.Used, d.WithRef+d.WithoutRef)
	assert.Equal(t, r.Used, d.WithExplicitChildren+d.WithoutExplicitChildren)
}

func TestRegisterMergesReimports(t *testing.T) {
	tbl := NewTable(nil)
	tbl.Register(button)
	rec := tbl.Register(button)

	assert.Equal(t, 2, rec.Imported)
	assert.Equal(t, 0, rec.Used)
}

func TestRecordClassNameScenario(t *testing.T) {
	tbl := NewTable(nil)
	rec := tbl.Register(button)

	require.NoError(t, tbl.Record(rec, Site{}))
	require.NoError(t, tbl.Record(rec, Site{Attributes: []Attribute{{Name: "className", Value: StringValue}}}))
	require.NoError(t, tbl.Record(rec, Site{}))

	usage, total := tbl.Finalize()
	got, ok := usage.Get("@mui/material", "Button")
	require.True(t, ok)

	assert.Equal(t, 3, got.Used)
	assert.Equal(t, 1, got.Props.Total)
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, got.Props.Categories["styling"].Count)
	assert.Equal(t, 1, got.Dimensions.WithClassName)
	assert.Equal(t, 2, got.Dimensions.WithoutClassName)
	requireDimensionsReconcile(t, got)
}

func TestRecordBooleanProps(t *testing.T) {
	tbl := NewTable(nil)
	rec := tbl.Register(button)

	require.NoError(t, tbl.Record(rec, Site{Attributes: []Attribute{
		{Name: "disabled", Value: NoValue},
		{Name: "fullWidth", Value: BooleanValue},
		{Name: "variant", Value: StringValue},
		{Name: "onClick", Value: ExpressionValue},
	}}))

	assert.Equal(t, map[string]int{"disabled": 1, "fullWidth": 1}, rec.BooleanProps)
	assert.Equal(t, 4, rec.Props.Total)
	assert.Equal(t, 1, rec.Props.Categories["eventHandler"].Count)
}

func TestRecordSpreads(t *testing.T) {
	tbl := NewTable(nil)
	rec := tbl.Register(button)

	require.NoError(t, tbl.Record(rec, Site{Spreads: []Spread{
		{Literal: true, Properties: []Attribute{
			{Name: "className", Value: StringValue},
			{Name: "disabled", Value: BooleanValue},
			{Name: "size", Value: ExpressionValue},
		}},
		{Literal: false},
		{Literal: false},
	}}))

	assert.Equal(t, 1, rec.Spreads.Literal)
	assert.Equal(t, 2, rec.Spreads.Dynamic)
	assert.Equal(t, 3, rec.Props.Total)
	assert.Equal(t, []string{"className", "disabled", "size"}, rec.Props.Unique)
	assert.Equal(t, 1, rec.Dimensions.WithClassName)
	assert.Equal(t, 1, rec.BooleanProps["disabled"])
	requireDimensionsReconcile(t, rec)
}

func TestRecordDynamicSpreadContributesNoProps(t *testing.T) {
	tbl := NewTable(nil)
	rec := tbl.Register(button)

	require.NoError(t, tbl.Record(rec, Site{Spreads: []Spread{{}}}))

	assert.Equal(t, 0, rec.Props.Total)
	assert.Empty(t, rec.Props.Categories)
	assert.Equal(t, 1, rec.Spreads.Dynamic)
}

func TestRecordControlledPatterns(t *testing.T) {
	tbl := NewTable(nil)
	input := tbl.Register(models.ComponentIdentity{Package: "antd", Export: "Input", Style: models.Named})

	sites := []Site{
		{Attributes: []Attribute{{Name: "value", Value: ExpressionValue}, {Name: "onChange", Value: ExpressionValue}}},
		{Attributes: []Attribute{{Name: "defaultValue", Value: StringValue}}},
		{Attributes: []Attribute{{Name: "defaultValue", Value: StringValue}, {Name: "onChange", Value: ExpressionValue}}},
		{Attributes: []Attribute{{Name: "value", Value: ExpressionValue}}},
	}
	for _, s := range sites {
		require.NoError(t, tbl.Record(input, s))
	}

	assert.Equal(t, 1, input.Patterns.ControlledComponent)
	assert.Equal(t, 1, input.Patterns.UncontrolledComponent)
}

func TestRecordChildrenAndExplicitChildren(t *testing.T) {
	tbl := NewTable(nil)
	rec := tbl.Register(button)

	require.NoError(t, tbl.Record(rec, Site{Children: []string{"text", "element", "text"}}))
	require.NoError(t, tbl.Record(rec, Site{Attributes: []Attribute{{Name: "children", Value: ExpressionValue}}}))

	assert.Equal(t, 1, rec.Children.Implicit)
	assert.Equal(t, map[string]int{"text": 2, "element": 1}, rec.Children.NodeTypes)
	assert.Equal(t, 1, rec.Dimensions.WithExplicitChildren)
	assert.Equal(t, 1, rec.Dimensions.WithoutExplicitChildren)
	requireDimensionsReconcile(t, rec)
}

func TestRecordCallArgs(t *testing.T) {
	tbl := NewTable(nil)
	hook := tbl.Register(models.ComponentIdentity{Package: "@mui/material", Export: "useTheme", Style: models.Named})

	for _, n := range []int{0, 1, 2, 5, 0} {
		require.NoError(t, tbl.Record(hook, Site{Call: true, Args: n}))
	}

	assert.Equal(t, models.ArgStats{NoArgs: 2, OneArg: 1, MultipleArgs: 2}, hook.Args)
	assert.Equal(t, 0, hook.Props.Total)
	requireDimensionsReconcile(t, hook)
}

func TestRecordInvalidNameLeavesRecordUntouched(t *testing.T) {
	tbl := NewTable(nil)
	rec := tbl.Register(button)

	err := tbl.Record(rec, Site{Attributes: []Attribute{{Name: "size"}, {Name: ""}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, props.ErrInvalidPropName))
	assert.Equal(t, 0, rec.Used)
	assert.Equal(t, 0, rec.Props.Total)
}

func TestUpsertDoesNotCountImports(t *testing.T) {
	tbl := NewTable(nil)
	id := models.ComponentIdentity{Package: "antd", Export: "Chip", Style: models.Namespace}

	_, ok := tbl.Get("antd", "Chip")
	assert.False(t, ok)

	a := tbl.Upsert(id)
	b := tbl.Upsert(id)
	assert.Same(t, a, b)
	assert.Equal(t, 0, a.Imported)
	assert.Equal(t, models.Namespace, a.ImportStyle)
}

func TestMerge(t *testing.T) {
	build := func(file string, sites int) *models.FileRecord {
		tbl := NewTable(nil)
		rec := tbl.Register(button)
		for i := 0; i < sites; i++ {
			require.NoError(t, tbl.Record(rec, Site{Attributes: []Attribute{{Name: "className", Value: StringValue}}}))
		}
		usage, total := tbl.Finalize()
		return &models.FileRecord{File: file, Usage: usage, TotalProps: total}
	}

	a, b := build("b.tsx", 2), build("a.tsx", 1)
	first := Merge([]*models.FileRecord{a, b})
	second := Merge([]*models.FileRecord{b, a})
	assert.Equal(t, first, second)

	got, ok := first.Get("@mui/material", "Button")
	require.True(t, ok)
	assert.Equal(t, 2, got.Imported)
	assert.Equal(t, 3, got.Used)
	assert.Equal(t, 3, got.Props.Details["className"])
	assert.Equal(t, 3, got.Dimensions.WithClassName)
	requireDimensionsReconcile(t, got)
}
