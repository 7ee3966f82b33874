package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"key-maze/internal/grid"
)

// ErrUnexpectedTile is returned when a scan meets a symbol that is not a
// wall, floor, start, key or door.
var ErrUnexpectedTile = errors.New("unexpected tile")

// KeyHit is a key reachable from a scan origin.
type KeyHit struct {
	Key   byte
	Dist  int // base distance plus steps from the origin
	Coord grid.Coord
}

func (h KeyHit) String() string {
	return fmt.Sprintf("%c@%v+%d", h.Key, h.Coord, h.Dist)
}

type scanItem struct {
	coord grid.Coord
	dist  int
}

// ReachableKeys returns every key reachable from origin without crossing a
// wall or a door. Keys do not block: a scan walks over a key and may report
// keys behind it. Distances are base plus the BFS step count. Results are
// ordered by distance, then letter.
func ReachableKeys(g *grid.Grid, origin grid.Coord, base int) ([]KeyHit, error) {
	var hits []KeyHit
	visited := mapset.New[grid.Coord]()
	visited.Put(origin)

	queue := []scanItem{{coord: origin, dist: base}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range current.coord.Neighbors() {
			if visited.Has(next) {
				continue
			}
			tile := g.Get(next)
			switch {
			case tile == grid.Wall || tile == grid.OutOfBounds || grid.IsDoor(tile):
				continue
			case tile == grid.Floor || tile == grid.Start:
			case grid.IsKey(tile):
				hits = append(hits, KeyHit{Key: tile, Dist: current.dist + 1, Coord: next})
			default:
				return nil, fmt.Errorf("scan at %v: %q: %w", next, tile, ErrUnexpectedTile)
			}
			visited.Put(next)
			queue = append(queue, scanItem{coord: next, dist: current.dist + 1})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Dist == hits[j].Dist {
			return hits[i].Key < hits[j].Key
		}
		return hits[i].Dist < hits[j].Dist
	})
	return hits, nil
}

// UnreachableKeys returns the keys that cannot be reached from the start even
// with every door open. A maze with unreachable keys can never be completed.
func UnreachableKeys(g *grid.Grid) (grid.KeySet, error) {
	start, err := g.Start()
	if err != nil {
		return 0, err
	}
	missing := g.Keys()
	visited := mapset.New[grid.Coord]()
	visited.Put(start)

	queue := []grid.Coord{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		missing = missing.Remove(g.Get(current))

		for _, next := range current.Neighbors() {
			if visited.Has(next) {
				continue
			}
			if tile := g.Get(next); tile == grid.Wall || tile == grid.OutOfBounds {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}
	return missing, nil
}
