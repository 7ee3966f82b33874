package grid

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Tile symbols.
const (
	Wall  byte = '#'
	Floor byte = '.'
	Start byte = '@'

	// OutOfBounds is returned by Get for coordinates outside the grid.
	// Callers treat it like a wall.
	OutOfBounds byte = 0
)

var (
	ErrEmpty        = errors.New("empty maze")
	ErrRagged       = errors.New("maze rows have different lengths")
	ErrOutOfBounds  = errors.New("coordinate out of bounds")
	ErrNoStart      = errors.New("no start marker in maze")
	ErrManyStarts   = errors.New("more than one start marker in maze")
	ErrDuplicateKey = errors.New("key letter appears more than once")
)

// IsKey reports whether tile is a key ('a'..'z').
func IsKey(tile byte) bool { return 'a' <= tile && tile <= 'z' }

// IsDoor reports whether tile is a door ('A'..'Z').
func IsDoor(tile byte) bool { return 'A' <= tile && tile <= 'Z' }

// DoorFor returns the door symbol opened by key.
func DoorFor(key byte) byte { return key - 'a' + 'A' }

// KeyFor returns the key symbol that opens door.
func KeyFor(door byte) byte { return door - 'A' + 'a' }

// Grid is a rectangular maze. Its dimensions are fixed at parse time; only
// cell contents change.
type Grid struct {
	width  int
	height int
	cells  [][]byte
}

// New builds a grid from rows. All rows must have the same length and each
// key letter may appear at most once.
func New(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	w := len(rows[0])
	backing := make([]byte, w*len(rows))
	cells := make([][]byte, len(rows))
	var seen KeySet
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), w, ErrRagged)
		}
		cells[y] = backing[y*w : (y+1)*w]
		copy(cells[y], row)
		for x := 0; x < w; x++ {
			t := row[x]
			if !IsKey(t) {
				continue
			}
			if seen.Has(t) {
				return nil, fmt.Errorf("%q at %d,%d: %w", t, x, y, ErrDuplicateKey)
			}
			seen = seen.Add(t)
		}
	}
	return &Grid{width: w, height: len(rows), cells: cells}, nil
}

// Parse parses maze text: one row per line. Trailing whitespace of the whole
// text and carriage returns are dropped.
func Parse(text string) (*Grid, error) {
	text = strings.TrimRight(text, " \t\r\n")
	if text == "" {
		return nil, ErrEmpty
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return New(lines)
}

// Load reads and parses the maze file at path.
func Load(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read maze: %w", err)
	}
	g, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether c lies within [0,width) x [0,height).
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Get returns the tile at c, or OutOfBounds.
func (g *Grid) Get(c Coord) byte {
	if !g.InBounds(c) {
		return OutOfBounds
	}
	return g.cells[c.Y][c.X]
}

// Set overwrites the tile at c.
func (g *Grid) Set(c Coord, tile byte) error {
	if !g.InBounds(c) {
		return fmt.Errorf("set %v in %dx%d grid: %w", c, g.width, g.height, ErrOutOfBounds)
	}
	g.cells[c.Y][c.X] = tile
	return nil
}

// CoordOf returns the first occurrence of tile in row-major order.
func (g *Grid) CoordOf(tile byte) (Coord, bool) {
	for y, row := range g.cells {
		for x, t := range row {
			if t == tile {
				return Coord{X: x, Y: y}, true
			}
		}
	}
	return Coord{}, false
}

// Start returns the position of the single start marker.
func (g *Grid) Start() (Coord, error) {
	var (
		c     Coord
		found int
	)
	for y, row := range g.cells {
		for x, t := range row {
			if t != Start {
				continue
			}
			if found++; found > 1 {
				return Coord{}, fmt.Errorf("second marker at %d,%d: %w", x, y, ErrManyStarts)
			}
			c = Coord{X: x, Y: y}
		}
	}
	if found == 0 {
		return Coord{}, ErrNoStart
	}
	return c, nil
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	backing := make([]byte, g.width*g.height)
	cells := make([][]byte, g.height)
	for y, row := range g.cells {
		cells[y] = backing[y*g.width : (y+1)*g.width]
		copy(cells[y], row)
	}
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// ListKeys returns every key symbol in scan order.
func (g *Grid) ListKeys() []byte {
	var keys []byte
	for _, row := range g.cells {
		for _, t := range row {
			if IsKey(t) {
				keys = append(keys, t)
			}
		}
	}
	return keys
}

// Keys returns the keys present in g as a set.
func (g *Grid) Keys() KeySet {
	return KeySetOf(g.ListKeys()...)
}

// Collect clears the key tile at c and every door it opens. It returns the
// collected key.
func (g *Grid) Collect(c Coord) (byte, error) {
	key := g.Get(c)
	if !IsKey(key) {
		return 0, fmt.Errorf("collect at %v: tile %q is not a key", c, key)
	}
	if err := g.Set(c, Floor); err != nil {
		return 0, err
	}
	door := DoorFor(key)
	for d, ok := g.CoordOf(door); ok; d, ok = g.CoordOf(door) {
		if err := g.Set(d, Floor); err != nil {
			return 0, err
		}
	}
	return key, nil
}

// WithoutKeys returns a copy of g where every key outside remaining has been
// collected, i.e. its tile and its doors are floor.
func (g *Grid) WithoutKeys(remaining KeySet) *Grid {
	collected := g.Keys() &^ remaining
	out := g.Clone()
	for _, row := range out.cells {
		for x, t := range row {
			if IsKey(t) && collected.Has(t) || IsDoor(t) && collected.Has(KeyFor(t)) {
				row[x] = Floor
			}
		}
	}
	return out
}

// FillDeadEnds walls off floor and door cells surrounded by three walls,
// repeating until nothing changes. Keys and the start are never filled, so
// the answer of any search is unchanged. It returns the number of cells filled.
func (g *Grid) FillDeadEnds() int {
	filled := 0
	for {
		changed := 0
		for y, row := range g.cells {
			for x, t := range row {
				if t != Floor && !IsDoor(t) {
					continue
				}
				walls := 0
				for _, n := range (Coord{X: x, Y: y}).Neighbors() {
					if nt := g.Get(n); nt == Wall || nt == OutOfBounds {
						walls++
					}
				}
				if walls >= 3 {
					row[x] = Wall
					changed++
				}
			}
		}
		if changed == 0 {
			return filled
		}
		filled += changed
	}
}

// String renders the grid as text, one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	for y, row := range g.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.Write(row)
	}
	return sb.String()
}
