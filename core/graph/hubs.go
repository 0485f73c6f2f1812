package graph

import (
	"sort"

	"github.com/tristendillon/scout/core/models"
)

// HubThreshold is the direct-importer count a file needs to be a hub: the
// configured value when positive, else max(2, ceil(intersections/4)).
func HubThreshold(configured, intersections int) int {
	if configured > 0 {
		return configured
	}
	t := (intersections + 3) / 4
	if t < 2 {
		t = 2
	}
	return t
}

// Hubs returns the files with at least threshold direct importers, sorted.
func (g *Graph) Hubs(threshold int) []string {
	var hubs []string
	for _, f := range g.files {
		if len(g.nodes[f].Dependents) >= threshold {
			hubs = append(hubs, f)
		}
	}
	return hubs
}

// Classify sorts hubs into buckets by their hub neighbours:
//
//	intermediate: a hub predecessor and a hub successor
//	base:         only hub predecessors, no hub successor
//	main:         only hub successors, no hub predecessor
//
// A hub matching none of these appears in no bucket.
func (g *Graph) Classify(hubs []string) (map[string]models.HubCategory, models.HubCategories) {
	isHub := make(map[string]bool, len(hubs))
	for _, h := range hubs {
		isHub[h] = true
	}

	sorted := append([]string(nil), hubs...)
	sort.Strings(sorted)

	byFile := make(map[string]models.HubCategory)
	cats := models.HubCategories{
		BaseHubs:         []string{},
		MainHubs:         []string{},
		IntermediateHubs: []string{},
	}
	for _, h := range sorted {
		node, ok := g.nodes[h]
		if !ok {
			continue
		}
		anyPred, allPred := scan(node.Dependents, isHub)
		anySucc, allSucc := scan(node.Dependencies, isHub)

		switch {
		case anyPred && anySucc:
			byFile[h] = models.IntermediateHub
			cats.IntermediateHubs = append(cats.IntermediateHubs, h)
		case allPred && !anySucc:
			byFile[h] = models.BaseHub
			cats.BaseHubs = append(cats.BaseHubs, h)
		case allSucc && !anyPred:
			byFile[h] = models.MainHub
			cats.MainHubs = append(cats.MainHubs, h)
		}
	}
	return byFile, cats
}

// scan reports whether some and whether every one of files is a hub. every
// is false for an empty list.
func scan(files []string, isHub map[string]bool) (some, every bool) {
	if len(files) == 0 {
		return false, false
	}
	every = true
	for _, f := range files {
		if isHub[f] {
			some = true
		} else {
			every = false
		}
	}
	return some, every
}
