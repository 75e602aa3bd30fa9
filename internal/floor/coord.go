// Package floor provides the destructible tile grid: coordinates and
// directions, the per-tile lifecycle state machine, occupant tracking, and
// connectivity queries over the wired neighbor graph.
package floor

import "fmt"

// Coord is a 2D grid position. X grows to the right, Y grows downward
// (screen coordinates). Coords compare by value and key the Grid's tile
// map.
type Coord struct {
	X, Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns the coordinate offset by another coordinate.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Step returns the coordinate one cell away in the given direction.
func (c Coord) Step(d Direction) Coord {
	return c.Add(d.Offset())
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(o Coord) int {
	dx := c.X - o.X
	dy := c.Y - o.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// String returns "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is one of the four cardinal directions used for adjacency,
// support rays, and probe scans.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists the cardinals in their fixed iteration order. Neighbor
// wiring, flood fills, and the collapse engine's neighbor loop all follow
// this order, which keeps traversals deterministic for a given grid.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Offset returns the unit coordinate offset for the direction.
func (d Direction) Offset() Coord {
	switch d {
	case DirUp:
		return Coord{Y: -1}
	case DirDown:
		return Coord{Y: 1}
	case DirLeft:
		return Coord{X: -1}
	case DirRight:
		return Coord{X: 1}
	default:
		return Coord{}
	}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// CompassOffsets is the eight-direction offset set (cardinals plus
// diagonals) used when highlighting the cells around an origin, clockwise
// from straight up.
var CompassOffsets = [8]Coord{
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}
