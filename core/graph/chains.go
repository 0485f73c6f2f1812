package graph

import (
	"errors"
	"fmt"
)

// DefaultStepBudget bounds the edges one chain search may expand.
const DefaultStepBudget = 200000

var ErrChainBudget = errors.New("chain search exceeded its step budget")

// ChainQuery describes a bounded simple-path search.
type ChainQuery struct {
	From     string
	To       string
	MaxDepth int // edges per path
	Limit    int // paths returned, 0 for no limit
	Budget   int // edges expanded, 0 for DefaultStepBudget
}

// Chains enumerates simple import paths From -> ... -> To, following
// Dependencies and never longer than MaxDepth edges. Paths come out in
// lexical order of their files. Exhausting the budget yields no paths and
// ErrChainBudget.
func (g *Graph) Chains(q ChainQuery) ([][]string, error) {
	if _, ok := g.nodes[q.From]; !ok {
		return nil, fmt.Errorf("unknown file %s", q.From)
	}
	if _, ok := g.nodes[q.To]; !ok {
		return nil, fmt.Errorf("unknown file %s", q.To)
	}
	if q.From == q.To || q.MaxDepth <= 0 {
		return nil, nil
	}
	budget := q.Budget
	if budget <= 0 {
		budget = DefaultStepBudget
	}

	var (
		paths   [][]string
		steps   int
		onPath  = map[string]bool{q.From: true}
		path    = []string{q.From}
		errStop = errors.New("stop")
	)

	var walk func(f string) error
	walk = func(f string) error {
		if len(path)-1 >= q.MaxDepth {
			return nil
		}
		for _, next := range g.nodes[f].Dependencies {
			steps++
			if steps > budget {
				return ErrChainBudget
			}
			if onPath[next] {
				continue
			}
			if next == q.To {
				found := make([]string, len(path)+1)
				copy(found, path)
				found[len(path)] = next
				paths = append(paths, found)
				if q.Limit > 0 && len(paths) >= q.Limit {
					return errStop
				}
				continue
			}
			onPath[next] = true
			path = append(path, next)
			err := walk(next)
			path = path[:len(path)-1]
			onPath[next] = false
			if err != nil {
				return err
			}
		}
		return nil
	}

	switch err := walk(q.From); {
	case err == nil, errors.Is(err, errStop):
		return paths, nil
	default:
		return nil, fmt.Errorf("%s -> %s: %w", q.From, q.To, err)
	}
}
