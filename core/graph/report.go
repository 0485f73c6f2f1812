package graph

import (
	"errors"
	"sort"

	"github.com/tristendillon/scout/core/logger"
	"github.com/tristendillon/scout/core/models"
)

// ReportOptions configures the graph phase.
type ReportOptions struct {
	RunID           string
	HubThreshold    int // 0 derives it from the intersection count
	MaxChainDepth   int
	MaxChainsPerHub int
	StepBudget      int
	Log             logger.Reporter
}

// Report assembles the cross-file report. It must only run once every
// record of the batch is in the graph.
func (g *Graph) Report(opts ReportOptions) *models.CrossFileReport {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	intersections := g.IntersectionFiles()
	threshold := HubThreshold(opts.HubThreshold, len(intersections))
	hubs := g.Hubs(threshold)
	byFile, cats := g.Classify(hubs)
	log.Info("Graph: %d files, %d intersection files, %d hubs (threshold %d)", g.Len(), len(intersections), len(hubs), threshold)

	report := &models.CrossFileReport{
		RunID:                         opts.RunID,
		HubThreshold:                  threshold,
		IntersectionImporters:         []models.IntersectionImporters{},
		GlobalImportHubs:              []models.ImportHub{},
		GlobalImportHubByIntersection: []models.HubByIntersection{},
		HubDependencies:               make(map[string]models.HubDependency, len(hubs)),
		HubUsage:                      make(map[string][]models.ComponentUsage, len(hubs)),
		HubCategories:                 cats,
		Cycles:                        g.DetectCycles(),
	}

	for _, f := range intersections {
		report.IntersectionImporters = append(report.IntersectionImporters, models.IntersectionImporters{
			File:              f,
			Packages:          g.nodes[f].Packages,
			DirectImporters:   nonNil(g.DirectImporters(f)),
			IndirectImporters: nonNil(g.IndirectImporters(f)),
			TotalImporters:    g.TotalImporters(f),
		})
	}

	for _, h := range hubs {
		report.GlobalImportHubs = append(report.GlobalImportHubs, models.ImportHub{
			File:              h,
			DirectImporters:   nonNil(g.DirectImporters(h)),
			IndirectImporters: nonNil(g.IndirectImporters(h)),
			TotalImporters:    g.TotalImporters(h),
		})
		report.HubDependencies[h] = models.HubDependency{
			Category:     byFile[h],
			Dependencies: nonNil(g.Dependencies(h)),
			Dependents:   nonNil(g.DirectImporters(h)),
		}
		report.HubUsage[h] = g.componentUsage(h)

		if entry, ok := g.hubByIntersection(h, intersections, opts, log); ok {
			report.GlobalImportHubByIntersection = append(report.GlobalImportHubByIntersection, entry)
		}
	}
	sort.SliceStable(report.GlobalImportHubs, func(i, j int) bool {
		return len(report.GlobalImportHubs[i].DirectImporters) > len(report.GlobalImportHubs[j].DirectImporters)
	})

	if len(report.Cycles) > 0 {
		log.Warn("Graph: %d import cycles found", len(report.Cycles))
	}
	return report
}

// hubByIntersection groups the chains from every intersection file to hub.
func (g *Graph) hubByIntersection(hub string, intersections []string, opts ReportOptions, log logger.Reporter) (models.HubByIntersection, bool) {
	entry := models.HubByIntersection{Hub: hub, Intersections: []string{}, Chains: []models.Chain{}}
	for _, from := range intersections {
		if from == hub {
			continue
		}
		limit := 0
		if opts.MaxChainsPerHub > 0 {
			limit = opts.MaxChainsPerHub - len(entry.Chains)
			if limit <= 0 {
				break
			}
		}
		paths, err := g.Chains(ChainQuery{
			From:     from,
			To:       hub,
			MaxDepth: opts.MaxChainDepth,
			Limit:    limit,
			Budget:   opts.StepBudget,
		})
		if err != nil {
			if errors.Is(err, ErrChainBudget) {
				log.Warn("Graph: chain search gave up: %v", err)
			} else {
				log.Warn("Graph: %v", err)
			}
			continue
		}
		if len(paths) == 0 {
			continue
		}
		entry.Intersections = append(entry.Intersections, from)
		for _, p := range paths {
			entry.Chains = append(entry.Chains, models.Chain{From: from, Path: p})
		}
	}
	return entry, len(entry.Intersections) > 0
}

func (g *Graph) componentUsage(file string) []models.ComponentUsage {
	out := []models.ComponentUsage{}
	node, ok := g.nodes[file]
	if !ok || node.Record == nil {
		return out
	}
	node.Record.Usage.Each(func(r *models.UsageRecord) {
		total := 0
		if r.Props != nil {
			total = r.Props.Total
		}
		out = append(out, models.ComponentUsage{
			Package:    r.Package,
			Component:  r.Component,
			Used:       r.Used,
			PropsTotal: total,
		})
	})
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
