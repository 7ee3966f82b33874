package engine

import (
	"github.com/sirupsen/logrus"

	"key-maze/internal/graph"
	"key-maze/internal/grid"
)

// DijkstraRoute finds the same minimum as ShortestRoute by running Dijkstra
// over (position, remaining keys) states. Edges are the keys reachable from
// a state, weighted by their distance.
func DijkstraRoute(g *grid.Grid, opts Options) (Result, error) {
	start, err := g.Start()
	if err != nil {
		return Result{}, err
	}
	trace := opts.Log != nil && opts.Log.IsLevelEnabled(logrus.DebugLevel)

	// One grid per remaining key set; many positions share it.
	grids := make(map[grid.KeySet]*grid.Grid)
	expanded := 0
	expand := func(s signature) ([]graph.Edge[signature], error) {
		expanded++
		view, ok := grids[s.remaining]
		if !ok {
			view = g.WithoutKeys(s.remaining)
			grids[s.remaining] = view
		}
		hits, err := graph.ReachableKeys(view, s.at, 0)
		if err != nil {
			return nil, err
		}
		edges := make([]graph.Edge[signature], 0, len(hits))
		for _, h := range hits {
			edges = append(edges, graph.Edge[signature]{
				To:     signature{at: h.Coord, remaining: s.remaining.Remove(h.Key)},
				Weight: h.Dist,
			})
		}
		if trace {
			opts.Log.WithFields(logrus.Fields{"sig": s.String(), "edges": len(edges)}).Debug("expand")
		}
		return edges, nil
	}

	steps, path, err := graph.ShortestPath(signature{at: start, remaining: g.Keys()}, expand)
	if err != nil {
		return Result{}, err
	}

	order := make([]byte, 0, len(path))
	for i := 1; i < len(path); i++ {
		order = append(order, (path[i-1].remaining &^ path[i].remaining).Letters()...)
	}
	return Result{
		Strategy: StrategyDijkstra,
		Steps:    steps,
		Order:    string(order),
		States:   expanded,
	}, nil
}
