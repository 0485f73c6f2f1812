package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristendillon/scout/core/logger"
	"github.com/tristendillon/scout/core/models"
)

// rec builds a record for file "x.js" with module "x".
func rec(name string, imports ...string) *models.FileRecord {
	return &models.FileRecord{
		File:     name + ".js",
		Module:   name,
		Packages: []string{},
		Usage:    models.UsageMap{},
		Imports:  imports,
	}
}

func withPackages(r *models.FileRecord, pkgs ...string) *models.FileRecord {
	r.Packages = pkgs
	return r
}

func TestDirectAndIndirectImporters(t *testing.T) {
	g := Build([]*models.FileRecord{rec("a", "b"), rec("b", "c"), rec("c")}, nil)

	assert.Equal(t, []string{"b.js"}, g.DirectImporters("c.js"))
	assert.Equal(t, []string{"a.js"}, g.IndirectImporters("c.js"))
	assert.Equal(t, 2, g.TotalImporters("c.js"))
	assert.Equal(t, []string{"a.js", "b.js"}, g.AffectedFiles("c.js"))

	assert.Empty(t, g.DirectImporters("a.js"))
	assert.Empty(t, g.IndirectImporters("a.js"))
	assert.Equal(t, 0, g.TotalImporters("missing.js"))
	assert.Equal(t, []string{"a.js", "b.js", "c.js"}, g.Files())
}

func TestBuildDropsUnknownAndSelfEdges(t *testing.T) {
	g := Build([]*models.FileRecord{
		rec("a", "b", "b", "a", "react", "src/missing"),
		rec("b"),
		nil,
		{File: ""},
	}, nil)
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []string{"b.js"}, g.Dependencies("a.js"))
	assert.Equal(t, []string{"a.js"}, g.DirectImporters("b.js"))

	f, ok := g.FileForModule("b")
	require.True(t, ok)
	assert.Equal(t, "b.js", f)
	_, ok = g.FileForModule("react")
	assert.False(t, ok)
}

func TestBuildModuleCollisionKeepsFirstFile(t *testing.T) {
	ts := &models.FileRecord{File: "src/Button.tsx", Module: "src/Button"}
	js := &models.FileRecord{File: "src/Button.js", Module: "src/Button"}
	log := logger.NewRecorder()
	g := Build([]*models.FileRecord{ts, js, rec("a", "src/Button"), rec("a")}, log)

	assert.Equal(t, []string{"src/Button.js"}, g.Dependencies("a.js"))

	warns := log.Entries(logger.WARN)
	require.Len(t, warns, 2)
	assert.Contains(t, warns[0].Message, "duplicate record for a.js")
	assert.Contains(t, warns[1].Message, "module src/Button is provided by src/Button.js and src/Button.tsx")
}

func TestCyclesAreTolerated(t *testing.T) {
	g := Build([]*models.FileRecord{rec("a", "b"), rec("b", "c"), rec("c", "a"), rec("d", "c")}, nil)

	assert.Equal(t, []string{"b.js", "d.js"}, g.DirectImporters("c.js"))
	assert.Equal(t, []string{"a.js"}, g.IndirectImporters("c.js"))
	assert.Equal(t, []string{"c.js", "d.js"}, g.IndirectImporters("b.js"))
	assert.Equal(t, 3, g.TotalImporters("b.js"))

	assert.Equal(t, [][]string{{"a.js", "b.js", "c.js"}}, g.DetectCycles())
}

func TestDetectCyclesFindsEveryBackEdge(t *testing.T) {
	g := Build([]*models.FileRecord{rec("a", "b", "c"), rec("b", "a"), rec("c", "a")}, nil)
	assert.Equal(t, [][]string{{"a.js", "b.js"}, {"a.js", "c.js"}}, g.DetectCycles())

	acyclic := Build([]*models.FileRecord{rec("a", "b"), rec("b")}, nil)
	assert.Empty(t, acyclic.DetectCycles())
}

func TestIntersectionFiles(t *testing.T) {
	g := Build([]*models.FileRecord{
		withPackages(rec("a"), "antd", "@mui/material"),
		withPackages(rec("b"), "antd"),
		withPackages(rec("c"), "antd", "@mui/material", "@ui/kit"),
	}, nil)
	assert.Equal(t, []string{"a.js", "c.js"}, g.IntersectionFiles())
}

func TestHubThreshold(t *testing.T) {
	assert.Equal(t, 2, HubThreshold(0, 0))
	assert.Equal(t, 2, HubThreshold(0, 8))
	assert.Equal(t, 3, HubThreshold(0, 9))
	assert.Equal(t, 25, HubThreshold(0, 100))
	assert.Equal(t, 5, HubThreshold(5, 100))
	assert.Equal(t, 2, HubThreshold(-1, 1))
}

func TestHubs(t *testing.T) {
	g := Build([]*models.FileRecord{rec("a", "u", "v"), rec("b", "u", "v"), rec("c", "u"), rec("u"), rec("v")}, nil)
	assert.Equal(t, []string{"u.js", "v.js"}, g.Hubs(2))
	assert.Equal(t, []string{"u.js"}, g.Hubs(3))
	assert.Empty(t, g.Hubs(4))
}

func TestClassify(t *testing.T) {
	// h0 -> h1 -> h2, x -> h1, h3 <- y
	g := Build([]*models.FileRecord{
		rec("h0", "h1"),
		rec("h1", "h2"),
		rec("h2"),
		rec("h3"),
		rec("x", "h1"),
		rec("y", "h3"),
		rec("h4", "h2", "z"),
		rec("z"),
	}, nil)
	byFile, cats := g.Classify([]string{"h4.js", "h3.js", "h2.js", "h1.js", "h0.js"})

	assert.Equal(t, models.MainHub, byFile["h0.js"])
	assert.Equal(t, models.IntermediateHub, byFile["h1.js"])
	assert.Equal(t, models.BaseHub, byFile["h2.js"])

	_, ok := byFile["h3.js"]
	assert.False(t, ok, "a hub without hub neighbours is in no bucket")
	_, ok = byFile["h4.js"]
	assert.False(t, ok, "a hub with a non-hub successor is not main")

	assert.Equal(t, []string{"h2.js"}, cats.BaseHubs)
	assert.Equal(t, []string{"h0.js"}, cats.MainHubs)
	assert.Equal(t, []string{"h1.js"}, cats.IntermediateHubs)
}

func TestClassifyEmpty(t *testing.T) {
	g := Build(nil, nil)
	byFile, cats := g.Classify(nil)
	assert.Empty(t, byFile)
	assert.NotNil(t, cats.BaseHubs)
	assert.NotNil(t, cats.MainHubs)
	assert.NotNil(t, cats.IntermediateHubs)
}

func TestChains(t *testing.T) {
	g := Build([]*models.FileRecord{rec("a", "b", "c", "d"), rec("b", "d"), rec("c", "d"), rec("d")}, nil)

	paths, err := g.Chains(ChainQuery{From: "a.js", To: "d.js", MaxDepth: 2})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"a.js", "b.js", "d.js"},
		{"a.js", "c.js", "d.js"},
		{"a.js", "d.js"},
	}, paths)

	paths, err = g.Chains(ChainQuery{From: "a.js", To: "d.js", MaxDepth: 1})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a.js", "d.js"}}, paths)

	paths, err = g.Chains(ChainQuery{From: "a.js", To: "d.js", MaxDepth: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	paths, err = g.Chains(ChainQuery{From: "d.js", To: "a.js", MaxDepth: 5})
	require.NoError(t, err)
	assert.Empty(t, paths)

	_, err = g.Chains(ChainQuery{From: "nope.js", To: "a.js", MaxDepth: 5})
	assert.Error(t, err)
}

func TestChainsTerminateOnCycles(t *testing.T) {
	g := Build([]*models.FileRecord{rec("a", "b"), rec("b", "a", "c"), rec("c", "b")}, nil)

	paths, err := g.Chains(ChainQuery{From: "a.js", To: "c.js", MaxDepth: 10})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a.js", "b.js", "c.js"}}, paths)

	for _, p := range paths {
		seen := map[string]bool{}
		for _, f := range p {
			assert.False(t, seen[f], "paths are simple")
			seen[f] = true
		}
	}
}

func TestChainsBudget(t *testing.T) {
	g := Build([]*models.FileRecord{rec("a", "b"), rec("b", "c"), rec("c")}, nil)

	paths, err := g.Chains(ChainQuery{From: "a.js", To: "c.js", MaxDepth: 5, Budget: 1})
	assert.ErrorIs(t, err, ErrChainBudget)
	assert.Nil(t, paths)
}

func project() []*models.FileRecord {
	button := models.NewUsageRecord(models.ComponentIdentity{Package: "antd", Export: "Button", Style: models.Named})
	button.Used = 2
	button.Props.Add("onClick", []string{"eventHandler"})

	util := rec("src/util")
	util.Usage = models.UsageMap{"antd": {"Button": button}}

	return []*models.FileRecord{
		withPackages(rec("src/i1", "src/util"), "antd", "@mui/material"),
		withPackages(rec("src/i2", "src/mid"), "antd", "@mui/material"),
		rec("src/mid", "src/util"),
		rec("src/page", "src/util", "src/i1"),
		util,
		rec("src/loop1", "src/loop2"),
		rec("src/loop2", "src/loop1"),
	}
}

func TestReport(t *testing.T) {
	log := logger.NewRecorder()
	report := Build(project(), nil).Report(ReportOptions{RunID: "r1", MaxChainDepth: 4, Log: log})

	assert.Equal(t, "r1", report.RunID)
	assert.Equal(t, 2, report.HubThreshold)

	require.Len(t, report.IntersectionImporters, 2)
	i1 := report.IntersectionImporters[0]
	assert.Equal(t, "src/i1.js", i1.File)
	assert.Equal(t, []string{"src/page.js"}, i1.DirectImporters)
	assert.Empty(t, i1.IndirectImporters)
	assert.Equal(t, 1, i1.TotalImporters)

	require.Len(t, report.GlobalImportHubs, 1)
	hub := report.GlobalImportHubs[0]
	assert.Equal(t, "src/util.js", hub.File)
	assert.Equal(t, []string{"src/i1.js", "src/mid.js", "src/page.js"}, hub.DirectImporters)
	assert.Equal(t, []string{"src/i2.js"}, hub.IndirectImporters)
	assert.Equal(t, 4, hub.TotalImporters)

	require.Len(t, report.GlobalImportHubByIntersection, 1)
	byI := report.GlobalImportHubByIntersection[0]
	assert.Equal(t, []string{"src/i1.js", "src/i2.js"}, byI.Intersections)
	assert.Equal(t, []models.Chain{
		{From: "src/i1.js", Path: []string{"src/i1.js", "src/util.js"}},
		{From: "src/i2.js", Path: []string{"src/i2.js", "src/mid.js", "src/util.js"}},
	}, byI.Chains)

	dep := report.HubDependencies["src/util.js"]
	assert.Empty(t, dep.Dependencies)
	assert.Equal(t, hub.DirectImporters, dep.Dependents)
	assert.Equal(t, models.HubCategory(""), dep.Category)

	assert.Equal(t, []models.ComponentUsage{{Package: "antd", Component: "Button", Used: 2, PropsTotal: 1}}, report.HubUsage["src/util.js"])
	assert.Equal(t, [][]string{{"src/loop1.js", "src/loop2.js"}}, report.Cycles)
	assert.Len(t, log.Entries(logger.WARN), 1)
}

func TestReportChainCap(t *testing.T) {
	report := Build(project(), nil).Report(ReportOptions{MaxChainDepth: 4, MaxChainsPerHub: 1})
	require.Len(t, report.GlobalImportHubByIntersection, 1)
	assert.Len(t, report.GlobalImportHubByIntersection[0].Chains, 1)
}

func TestReportBudgetAnomalyIsNotFatal(t *testing.T) {
	log := logger.NewRecorder()
	report := Build(project(), nil).Report(ReportOptions{MaxChainDepth: 4, StepBudget: 1, Log: log})

	assert.Len(t, report.GlobalImportHubs, 1)
	require.Len(t, report.GlobalImportHubByIntersection, 1)
	assert.Equal(t, []string{"src/i1.js"}, report.GlobalImportHubByIntersection[0].Intersections)

	gaveUp := 0
	for _, e := range log.Entries(logger.WARN) {
		if strings.Contains(e.Message, "gave up") {
			gaveUp++
		}
	}
	assert.Equal(t, 1, gaveUp)
}

func TestReportIsDeterministic(t *testing.T) {
	records := project()
	reversed := make([]*models.FileRecord, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}

	a := Build(records, nil).Report(ReportOptions{RunID: "x", MaxChainDepth: 4})
	b := Build(reversed, nil).Report(ReportOptions{RunID: "x", MaxChainDepth: 4})
	assert.Equal(t, a, b)
}
