package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"key-maze/internal/graph"
	"key-maze/internal/grid"
)

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrUnreachableKeys = errors.New("keys unreachable from start")
	ErrNoRoute         = errors.New("no walk collects every key")
)

// Strategy selects the route search algorithm.
type Strategy string

const (
	// StrategyMemo is the memoized recursive search over remaining keys.
	StrategyMemo Strategy = "memo"
	// StrategyDijkstra runs Dijkstra over (position, remaining keys) states.
	StrategyDijkstra Strategy = "dijkstra"
	// StrategyExplore enumerates step-by-step walks. Only usable on tiny mazes.
	StrategyExplore Strategy = "explore"
)

// Strategies lists the accepted strategy names.
var Strategies = []Strategy{StrategyMemo, StrategyDijkstra, StrategyExplore}

// ParseStrategy converts a name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Strategies {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
}

// Options configure a solve.
type Options struct {
	// Log receives debug traces of the search. Nil disables tracing.
	Log *logrus.Logger
	// Prune fills dead ends before searching.
	Prune bool
	// Strict rejects mazes whose keys cannot all be reached with every door open.
	Strict bool
	// MaxSteps bounds walk length for StrategyExplore (0 = unbounded).
	MaxSteps int
}

// Result is the outcome of a route search.
type Result struct {
	Strategy Strategy     `json:"strategy"`
	Digest   string       `json:"digest,omitempty"` // set by SolveCache
	Steps    int          `json:"steps"`
	Order    string       `json:"order"`          // keys in collection order
	Path     []grid.Coord `json:"path,omitempty"` // explore only
	States   int          `json:"states"`         // search states evaluated
	MemoHits int          `json:"memo_hits"`
	MemoSize int          `json:"memo_size"`
	Pruned   int          `json:"pruned"` // dead-end cells filled
}

// Solve runs strategy on a private copy of g; g is never modified.
func Solve(g *grid.Grid, strategy Strategy, opts Options) (Result, error) {
	work := g.Clone()
	pruned := 0
	if opts.Prune {
		pruned = work.FillDeadEnds()
	}

	missing, err := graph.UnreachableKeys(work)
	if err != nil {
		return Result{}, err
	}
	if missing != 0 {
		if opts.Strict {
			return Result{}, fmt.Errorf("%s: %w", missing, ErrUnreachableKeys)
		}
		if opts.Log != nil {
			opts.Log.WithField("keys", missing.String()).Warn("keys unreachable from start")
		}
	}

	var res Result
	switch strategy {
	case StrategyMemo:
		res, err = ShortestRoute(work, opts)
	case StrategyDijkstra:
		res, err = DijkstraRoute(work, opts)
	case StrategyExplore:
		res, err = ShortestWalk(work, ExploreOptions{MaxSteps: opts.MaxSteps, Prune: true, Log: opts.Log})
	default:
		return Result{}, fmt.Errorf("%q: %w", strategy, ErrUnknownStrategy)
	}
	if err != nil {
		return Result{}, err
	}
	res.Pruned = pruned
	return res, nil
}

type searcher struct {
	memo   *memo
	log    *logrus.Logger
	trace  bool
	states int
}

// ShortestRoute returns the minimum number of steps needed to collect every
// key obtainable from the start of g. Each branch works on its own clone of
// the grid: collecting a key rewrites the key tile and its door to floor
// before recursing, so the grid itself is the record of owned keys.
func ShortestRoute(g *grid.Grid, opts Options) (Result, error) {
	start, err := g.Start()
	if err != nil {
		return Result{}, err
	}
	s := &searcher{
		memo:  newMemo(),
		log:   opts.Log,
		trace: opts.Log != nil && opts.Log.IsLevelEnabled(logrus.DebugLevel),
	}
	remaining := g.Keys()
	steps, err := s.search(g.Clone(), start, 0, remaining, 0, 0)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Strategy: StrategyMemo,
		Steps:    steps,
		Order:    s.memo.order(start, remaining),
		States:   s.states,
		MemoHits: s.memo.hits,
		MemoSize: s.memo.len(),
	}, nil
}

// search returns the total distance of the best completion from at, given
// that dist steps have already been walked. remaining mirrors the keys still
// present in g.
func (s *searcher) search(g *grid.Grid, at grid.Coord, dist int, remaining grid.KeySet, depth, parentDist int) (int, error) {
	s.states++
	if s.trace {
		s.log.WithFields(logrus.Fields{
			"depth":       depth,
			"at":          at.Key(),
			"dist":        dist,
			"parent_dist": parentDist,
			"remaining":   remaining.String(),
		}).Debug("enter")
	}

	sig := signature{at: at, remaining: remaining}
	if e, ok := s.memo.get(sig); ok {
		return dist + e.cost, nil
	}

	hits, err := graph.ReachableKeys(g, at, dist)
	if err != nil {
		return 0, err
	}
	if len(hits) == 0 {
		return dist, nil
	}

	best := -1
	var bestHit graph.KeyHit
	for _, h := range hits {
		next := g.Clone()
		if _, err := next.Collect(h.Coord); err != nil {
			return 0, err
		}
		total, err := s.search(next, h.Coord, h.Dist, remaining.Remove(h.Key), depth+1, dist)
		if err != nil {
			return 0, err
		}
		if best < 0 || total < best {
			best, bestHit = total, h
		}
	}

	s.memo.put(sig, memoEntry{cost: best - dist, key: bestHit.Key, at: bestHit.Coord})
	if s.trace {
		s.log.WithFields(logrus.Fields{
			"depth": depth,
			"sig":   sig.String(),
			"best":  best,
			"next":  string(bestHit.Key),
		}).Debug("resolved")
	}
	return best, nil
}
