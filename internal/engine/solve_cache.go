package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"key-maze/internal/grid"
)

// solveCacheKey identifies a cached solve.
type solveCacheKey struct {
	Digest   string // sha256 of the normalized maze text
	Strategy Strategy
	Prune    bool
	Strict   bool
	MaxSteps int
}

func (k solveCacheKey) String() string {
	return fmt.Sprintf("%s:%s:%t:%t:%d", k.Digest, k.Strategy, k.Prune, k.Strict, k.MaxSteps)
}

// SolveCache is a thread-safe in-memory cache of solve results keyed by maze
// content. A singleflight.Group prevents duplicate in-flight solves of the
// same maze. Every solve parses its own grid, so cached results never share
// search state.
type SolveCache struct {
	mu      sync.RWMutex
	entries map[solveCacheKey]Result
	group   singleflight.Group
	solves  int
}

// NewSolveCache creates an empty solve cache.
func NewSolveCache() *SolveCache {
	return &SolveCache{
		entries: make(map[solveCacheKey]Result),
	}
}

// Digest returns the content digest used as cache key for a grid.
func Digest(g *grid.Grid) string {
	sum := sha256.Sum256([]byte(g.String()))
	return hex.EncodeToString(sum[:])
}

// Get returns a cached result.
func (c *SolveCache) Get(g *grid.Grid, strategy Strategy, opts Options) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.entries[cacheKeyFor(g, strategy, opts)]
	return r, ok
}

// Put stores a result.
func (c *SolveCache) Put(g *grid.Grid, strategy Strategy, opts Options, r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKeyFor(g, strategy, opts)] = r
}

// Len returns the number of cached results.
func (c *SolveCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Solves returns how many searches actually ran (cache misses).
func (c *SolveCache) Solves() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.solves
}

func cacheKeyFor(g *grid.Grid, strategy Strategy, opts Options) solveCacheKey {
	return solveCacheKey{
		Digest:   Digest(g),
		Strategy: strategy,
		Prune:    opts.Prune,
		Strict:   opts.Strict,
		MaxSteps: opts.MaxSteps,
	}
}

// SolveText parses text and solves it, reusing a cached result for identical
// mazes. Concurrent calls for the same maze share one search.
func (c *SolveCache) SolveText(text string, strategy Strategy, opts Options) (Result, error) {
	g, err := grid.Parse(text)
	if err != nil {
		return Result{}, err
	}
	key := cacheKeyFor(g, strategy, opts)

	v, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		if r, ok := c.Get(g, strategy, opts); ok {
			return r, nil
		}
		r, err := Solve(g, strategy, opts)
		if err != nil {
			return nil, err
		}
		r.Digest = key.Digest
		c.mu.Lock()
		c.entries[key] = r
		c.solves++
		c.mu.Unlock()
		return r, nil
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}
