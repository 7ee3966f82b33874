package grid

import "fmt"

// Coord is a cell position: X grows to the right, Y grows downwards.
type Coord struct {
	X int
	Y int
}

// Add returns the coordinate offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Neighbors returns the four orthogonal neighbours: up, down, left, right.
func (c Coord) Neighbors() [4]Coord {
	return [4]Coord{
		c.Add(0, -1),
		c.Add(0, 1),
		c.Add(-1, 0),
		c.Add(1, 0),
	}
}

// Key returns a canonical string form usable as a map key outside Go
// (log fields, history records).
func (c Coord) Key() string {
	return fmt.Sprintf("%d_%d", c.X, c.Y)
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}
