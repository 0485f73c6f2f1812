// Package graph builds the cross-file import graph from emitted records and
// classifies the files many others depend on.
package graph

import (
	"sort"
	"strings"

	"github.com/tristendillon/scout/core/logger"
	"github.com/tristendillon/scout/core/models"
)

// Node is one analyzed file.
type Node struct {
	File         string
	Module       string
	Packages     []string
	Dependencies []string // files this one imports
	Dependents   []string // files importing this one
	Record       *models.FileRecord
}

// Graph is immutable once built; it may be read from several goroutines.
type Graph struct {
	nodes    map[string]*Node
	byModule map[string]string
	files    []string
	log      logger.Reporter
}

// Build creates one node per record and an edge A->B whenever A imports the
// module of B. Imports that match no record are dropped. A nil log discards.
func Build(records []*models.FileRecord, log logger.Reporter) *Graph {
	if log == nil {
		log = logger.Nop()
	}
	g := &Graph{
		nodes:    make(map[string]*Node, len(records)),
		byModule: make(map[string]string, len(records)),
		log:      log,
	}

	// First pass: create all nodes
	for _, rec := range records {
		if rec == nil || rec.File == "" {
			continue
		}
		if _, dup := g.nodes[rec.File]; dup {
			g.log.Warn("Graph: duplicate record for %s, keeping the first", rec.File)
			continue
		}
		g.nodes[rec.File] = &Node{
			File:         rec.File,
			Module:       rec.Module,
			Packages:     rec.Packages,
			Dependencies: []string{},
			Dependents:   []string{},
			Record:       rec,
		}
		g.files = append(g.files, rec.File)
	}
	sort.Strings(g.files)

	for _, f := range g.files {
		mod := g.nodes[f].Module
		if mod == "" {
			continue
		}
		if other, taken := g.byModule[mod]; taken {
			g.log.Warn("Graph: module %s is provided by %s and %s, using %s", mod, other, f, other)
			continue
		}
		g.byModule[mod] = f
	}

	// Second pass: build dependency relationships
	dropped := 0
	for _, f := range g.files {
		node := g.nodes[f]
		seen := make(map[string]bool)
		for _, imp := range node.Record.Imports {
			target, ok := g.byModule[imp]
			if !ok {
				dropped++
				continue
			}
			if target == f || seen[target] {
				continue
			}
			seen[target] = true
			node.Dependencies = append(node.Dependencies, target)
			dep := g.nodes[target]
			dep.Dependents = append(dep.Dependents, f)
		}
		sort.Strings(node.Dependencies)
	}
	for _, node := range g.nodes {
		sort.Strings(node.Dependents)
	}

	g.log.Debug("Graph: built %d nodes, dropped %d imports without a matching file", len(g.nodes), dropped)
	return g
}

// Files returns every node key, sorted.
func (g *Graph) Files() []string {
	out := make([]string, len(g.files))
	copy(out, g.files)
	return out
}

func (g *Graph) Len() int {
	return len(g.files)
}

func (g *Graph) Node(file string) (*Node, bool) {
	n, ok := g.nodes[file]
	return n, ok
}

// FileForModule returns the file providing module id.
func (g *Graph) FileForModule(id string) (string, bool) {
	f, ok := g.byModule[id]
	return f, ok
}

func (g *Graph) Dependencies(file string) []string {
	if n, ok := g.nodes[file]; ok {
		return n.Dependencies
	}
	return nil
}

// DirectImporters returns the files with an edge into file.
func (g *Graph) DirectImporters(file string) []string {
	if n, ok := g.nodes[file]; ok {
		return n.Dependents
	}
	return nil
}

// IndirectImporters returns files that reach file only through other
// importers. The walk is a reverse breadth-first search with a visited set,
// so cycles terminate.
func (g *Graph) IndirectImporters(file string) []string {
	direct := g.DirectImporters(file)
	visited := map[string]bool{file: true}
	for _, d := range direct {
		visited[d] = true
	}

	queue := append([]string(nil), direct...)
	var indirect []string
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, imp := range g.DirectImporters(current) {
			if visited[imp] {
				continue
			}
			visited[imp] = true
			indirect = append(indirect, imp)
			queue = append(queue, imp)
		}
	}
	sort.Strings(indirect)
	return indirect
}

// TotalImporters is |direct| + |indirect|.
func (g *Graph) TotalImporters(file string) int {
	return len(g.DirectImporters(file)) + len(g.IndirectImporters(file))
}

// AffectedFiles returns every file that imports file directly or
// transitively, sorted.
func (g *Graph) AffectedFiles(file string) []string {
	out := append([]string(nil), g.DirectImporters(file)...)
	out = append(out, g.IndirectImporters(file)...)
	sort.Strings(out)
	g.log.Debug("Graph: file %s affects %d files", file, len(out))
	return out
}

// IntersectionFiles returns the files importing from two or more tracked
// packages, sorted.
func (g *Graph) IntersectionFiles() []string {
	var out []string
	for _, f := range g.files {
		if g.nodes[f].Record.IsIntersection() {
			out = append(out, f)
		}
	}
	return out
}

// DetectCycles returns every elementary cycle closed by a back edge of a
// depth-first search over sorted nodes. Each cycle starts at its smallest
// file so the output is stable.
func (g *Graph) DetectCycles() [][]string {
	var cycles [][]string
	seen := make(map[string]bool)
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var path []string

	var visit func(f string)
	visit = func(f string) {
		visited[f] = true
		onStack[f] = true
		path = append(path, f)

		for _, dep := range g.nodes[f].Dependencies {
			if !visited[dep] {
				visit(dep)
				continue
			}
			if !onStack[dep] {
				continue
			}
			start := len(path) - 1
			for start >= 0 && path[start] != dep {
				start--
			}
			cycle := rotate(path[start:])
			key := joinKey(cycle)
			if !seen[key] {
				seen[key] = true
				cycles = append(cycles, cycle)
			}
		}

		path = path[:len(path)-1]
		onStack[f] = false
	}

	for _, f := range g.files {
		if !visited[f] {
			visit(f)
		}
	}

	sort.Slice(cycles, func(i, j int) bool { return joinKey(cycles[i]) < joinKey(cycles[j]) })
	if len(cycles) > 0 {
		g.log.Debug("Graph: detected %d cycles", len(cycles))
	}
	return cycles
}

func rotate(cycle []string) []string {
	lo := 0
	for i := range cycle {
		if cycle[i] < cycle[lo] {
			lo = i
		}
	}
	out := make([]string, 0, len(cycle))
	out = append(out, cycle[lo:]...)
	return append(out, cycle[:lo]...)
}

func joinKey(parts []string) string {
	return strings.Join(parts, "\x00")
}
