package avatar

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/nlaracuente/personalspace/internal/floor"
)

// chaseRadius is the Manhattan distance within which a chaser abandons
// wandering and heads straight for its quarry.
const chaseRadius = 6

// Chaser is a hostile actor. It wanders between random reachable tiles
// until its quarry comes close, then walks it down one cardinal step at
// a time.
type Chaser struct {
	id    uuid.UUID
	tile  *floor.Tile
	dest  *floor.Tile
	rng   *rand.Rand
	alive bool
}

// NewChaser creates a living chaser placed nowhere. The rng drives
// wander destination picks, so a seeded source gives reproducible runs.
func NewChaser(rng *rand.Rand) *Chaser {
	return &Chaser{
		id:    uuid.New(),
		rng:   rng,
		alive: true,
	}
}

// ID returns the chaser's unique identifier.
func (c *Chaser) ID() uuid.UUID { return c.id }

// Tile returns the tile the chaser stands on, or nil.
func (c *Chaser) Tile() *floor.Tile { return c.tile }

// Alive reports whether the chaser has not been killed.
func (c *Chaser) Alive() bool { return c.alive }

// PlaceOn moves the chaser's occupancy to t. Passing nil removes the
// chaser from the grid.
func (c *Chaser) PlaceOn(t *floor.Tile) {
	if c.tile != nil {
		c.tile.RemoveOccupant(c)
	}
	c.tile = t
	if t != nil {
		t.AddOccupant(c)
	}
}

// Tick advances the chaser by at most one tile and reports whether it
// moved. The quarry, usually the player's tile, may be nil; the chaser
// then keeps wandering.
func (c *Chaser) Tick(g *floor.Grid, quarry *floor.Tile) bool {
	if !c.alive || c.tile == nil {
		return false
	}

	c.pickDestination(g, quarry)
	if c.dest == nil || c.dest == c.tile {
		return false
	}

	moved := c.stepToward(g, c.dest, quarry)
	if !moved && c.dest != quarry {
		// Wander target unreachable from here, pick a fresh one next tick
		c.dest = nil
	}
	return moved
}

// pickDestination chooses where the chaser is heading this tick.
func (c *Chaser) pickDestination(g *floor.Grid, quarry *floor.Tile) {
	if quarry != nil && quarry.Available() &&
		c.tile.Coord().Manhattan(quarry.Coord()) <= chaseRadius {
		c.dest = quarry
		return
	}
	if c.dest == quarry {
		// Quarry escaped the radius, fall back to wandering
		c.dest = nil
	}
	if c.dest == nil || c.dest == c.tile || !c.dest.Available() {
		c.dest = g.RandomAvailableTile(c.tile.Coord(), c.rng)
	}
}

// stepToward takes one cardinal step that shrinks the Manhattan distance
// to dest, preferring the axis with the larger gap. Steps onto the
// quarry's tile are allowed even though it is occupied.
func (c *Chaser) stepToward(g *floor.Grid, dest, quarry *floor.Tile) bool {
	for _, d := range stepOrder(c.tile.Coord(), dest.Coord()) {
		next := g.TileAt(c.tile.Coord().Step(d))
		if next == nil {
			continue
		}
		if next.AvailableAndEmpty() || (next == quarry && next.Available()) {
			c.PlaceOn(next)
			return true
		}
	}
	return false
}

// stepOrder returns the directions that move from one coordinate toward
// another, larger axis gap first. Both axes aligned returns nothing.
func stepOrder(from, to floor.Coord) []floor.Direction {
	dx, dy := to.X-from.X, to.Y-from.Y

	var horiz, vert floor.Direction
	if dx > 0 {
		horiz = floor.DirRight
	} else {
		horiz = floor.DirLeft
	}
	if dy > 0 {
		vert = floor.DirDown
	} else {
		vert = floor.DirUp
	}

	switch {
	case dx == 0 && dy == 0:
		return nil
	case dy == 0:
		return []floor.Direction{horiz}
	case dx == 0:
		return []floor.Direction{vert}
	case abs(dx) >= abs(dy):
		return []floor.Direction{horiz, vert}
	default:
		return []floor.Direction{vert, horiz}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// =============================================================================
// floor.Occupant implementation
// =============================================================================

// CanBeHit reports whether the chaser is still a valid target.
func (c *Chaser) CanBeHit() bool { return c.alive }

// Hit kills the chaser outright.
func (c *Chaser) Hit() {
	c.alive = false
	c.PlaceOn(nil)
}

// HitProcessed reports true; chasers hold no pending hit state.
func (c *Chaser) HitProcessed() bool { return true }

// DieByFall kills the chaser and removes it from its tile.
func (c *Chaser) DieByFall() {
	c.alive = false
	if c.tile != nil {
		c.tile.RemoveOccupant(c)
		c.tile = nil
	}
}

// Ensure Chaser implements the capability interface
var _ floor.Occupant = (*Chaser)(nil)
