// Package avatar provides the actors that walk the floor grid: the
// controllable player and the chasers that hunt it.
package avatar

import (
	"github.com/google/uuid"

	"github.com/nlaracuente/personalspace/internal/collapse"
	"github.com/nlaracuente/personalspace/internal/floor"
)

// Player is the controllable actor. It occupies one tile at a time and
// faces a cardinal direction that selects its smash target.
type Player struct {
	id         uuid.UUID
	tile       *floor.Tile
	facing     floor.Direction
	alive      bool
	pendingHit bool
}

// NewPlayer creates a living player facing down, placed nowhere.
func NewPlayer() *Player {
	return &Player{
		id:     uuid.New(),
		facing: floor.DirDown,
		alive:  true,
	}
}

// ID returns the player's unique identifier.
func (p *Player) ID() uuid.UUID { return p.id }

// Tile returns the tile the player stands on, or nil.
func (p *Player) Tile() *floor.Tile { return p.tile }

// Alive reports whether the player has not been killed.
func (p *Player) Alive() bool { return p.alive }

// Facing returns the direction the player is turned toward.
func (p *Player) Facing() floor.Direction { return p.facing }

// Face turns the player without moving it.
func (p *Player) Face(d floor.Direction) { p.facing = d }

// PlaceOn moves the player's occupancy to t. Passing nil removes the
// player from the grid.
func (p *Player) PlaceOn(t *floor.Tile) {
	if p.tile != nil {
		p.tile.RemoveOccupant(p)
	}
	p.tile = t
	if t != nil {
		t.AddOccupant(p)
	}
}

// FacingTile returns the tile one step ahead of the player, or nil at
// the grid edge or when the player is not placed.
func (p *Player) FacingTile(g *floor.Grid) *floor.Tile {
	if p.tile == nil {
		return nil
	}
	return g.TileAt(p.tile.Coord().Step(p.facing))
}

// ProcessHit applies a pending hit and reports whether it killed the
// player. The game loop calls this once per tick so a hit lands exactly
// once.
func (p *Player) ProcessHit() bool {
	if !p.pendingHit {
		return false
	}
	p.pendingHit = false
	p.alive = false
	return true
}

// =============================================================================
// floor.Occupant implementation
// =============================================================================

// CanBeHit reports whether a new hit can land on the player.
func (p *Player) CanBeHit() bool { return p.alive && !p.pendingHit }

// Hit marks a hit on the player. The hit takes effect on the next
// ProcessHit call.
func (p *Player) Hit() {
	if p.alive {
		p.pendingHit = true
	}
}

// HitProcessed reports whether no hit is waiting to be applied.
func (p *Player) HitProcessed() bool { return !p.pendingHit }

// DieByFall kills the player outright and removes it from its tile.
func (p *Player) DieByFall() {
	p.alive = false
	p.pendingHit = false
	if p.tile != nil {
		p.tile.RemoveOccupant(p)
		p.tile = nil
	}
}

// =============================================================================
// collapse.AvatarLocator implementation
// =============================================================================

// AvatarTile returns the tile the player stands on, or nil once dead.
func (p *Player) AvatarTile() *floor.Tile {
	if !p.alive {
		return nil
	}
	return p.tile
}

// Ensure Player implements the capability interfaces
var (
	_ floor.Occupant         = (*Player)(nil)
	_ collapse.AvatarLocator = (*Player)(nil)
)
