package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"key-maze/internal/graph"
	"key-maze/internal/grid"
)

// PathNode is one step of a walk. Nodes link to their parent, so a node
// identifies the whole walk from the start.
type PathNode struct {
	Coord  grid.Coord
	Parent *PathNode
	Depth  int
	Keys   grid.KeySet // keys owned after this step
}

// Path returns the coordinates from the start to n.
func (n *PathNode) Path() []grid.Coord {
	path := make([]grid.Coord, 0, n.Depth+1)
	for p := n; p != nil; p = p.Parent {
		path = append(path, p.Coord)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// pickedUp reports whether the step into n collected a key.
func (n *PathNode) pickedUp() bool {
	return n.Parent != nil && n.Parent.Keys != n.Keys
}

// onSegment reports whether c was visited since the last key pickup. The
// segment includes the node where the key was collected.
func (n *PathNode) onSegment(c grid.Coord) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Coord == c {
			return true
		}
		if p.pickedUp() {
			return false
		}
	}
	return false
}

// ExploreOptions configure Explore.
type ExploreOptions struct {
	// MaxSteps stops walks longer than this (0 = unbounded).
	MaxSteps int
	// Prune abandons walks that cannot beat the shortest complete walk found
	// so far; visit is then only called for improvements.
	Prune bool
	Log   *logrus.Logger
}

type explorer struct {
	g     *grid.Grid
	all   grid.KeySet
	opts  ExploreOptions
	best  int
	nodes int
	visit func(path []grid.Coord)
}

// Explore walks g one step at a time from the start and calls visit with
// every walk that collects all keys. A walk never steps onto a cell it has
// already visited since its last key pickup, and passes a door only when it
// owns the key. The number of walks is exponential in the maze size.
func Explore(g *grid.Grid, opts ExploreOptions, visit func(path []grid.Coord)) error {
	_, err := explore(g, opts, visit)
	return err
}

func explore(g *grid.Grid, opts ExploreOptions, visit func(path []grid.Coord)) (*explorer, error) {
	start, err := g.Start()
	if err != nil {
		return nil, err
	}
	e := &explorer{g: g, all: g.Keys(), opts: opts, best: -1, visit: visit}
	root := &PathNode{Coord: start}
	if e.all == 0 {
		e.found(root)
		return e, nil
	}
	if err := e.walk(root); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *explorer) found(n *PathNode) {
	if e.best < 0 || n.Depth < e.best {
		e.best = n.Depth
	}
	if e.opts.Log != nil {
		e.opts.Log.WithFields(logrus.Fields{"steps": n.Depth, "at": n.Coord.Key()}).Debug("complete walk")
	}
	e.visit(n.Path())
}

func (e *explorer) walk(n *PathNode) error {
	e.nodes++
	if e.opts.MaxSteps > 0 && n.Depth >= e.opts.MaxSteps {
		return nil
	}
	if e.opts.Prune && e.best >= 0 && n.Depth+1 >= e.best {
		return nil
	}

	for _, next := range n.Coord.Neighbors() {
		tile := e.g.Get(next)
		keys := n.Keys
		switch {
		case tile == grid.Wall || tile == grid.OutOfBounds:
			continue
		case tile == grid.Floor || tile == grid.Start:
		case grid.IsKey(tile):
			keys = keys.Add(tile)
		case grid.IsDoor(tile):
			if !n.Keys.Has(grid.KeyFor(tile)) {
				continue
			}
		default:
			return fmt.Errorf("walk at %v: %q: %w", next, tile, graph.ErrUnexpectedTile)
		}
		if n.onSegment(next) {
			continue
		}

		child := &PathNode{Coord: next, Parent: n, Depth: n.Depth + 1, Keys: keys}
		if keys.ContainsAll(e.all) {
			e.found(child)
			continue
		}
		if err := e.walk(child); err != nil {
			return err
		}
	}
	return nil
}

// ShortestWalk returns the shortest walk found by Explore.
func ShortestWalk(g *grid.Grid, opts ExploreOptions) (Result, error) {
	var shortest []grid.Coord
	e, err := explore(g, opts, func(path []grid.Coord) {
		if shortest == nil || len(path) < len(shortest) {
			shortest = path
		}
	})
	if err != nil {
		return Result{}, err
	}
	if shortest == nil {
		return Result{}, ErrNoRoute
	}
	return Result{
		Strategy: StrategyExplore,
		Steps:    len(shortest) - 1,
		Order:    pickupOrder(g, shortest),
		Path:     shortest,
		States:   e.nodes,
	}, nil
}

// pickupOrder lists the keys in the order a walk first steps on them.
func pickupOrder(g *grid.Grid, path []grid.Coord) string {
	var owned grid.KeySet
	var keys []byte
	for _, c := range path {
		if t := g.Get(c); grid.IsKey(t) && !owned.Has(t) {
			owned = owned.Add(t)
			keys = append(keys, t)
		}
	}
	return string(keys)
}
