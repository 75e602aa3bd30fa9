package floor

import (
	"time"

	"github.com/zyedidia/generic/mapset"
)

// State is a tile's lifecycle state.
type State int

const (
	// Active is the default state: walkable and destructible.
	Active State = iota
	// Highlighted is Active with an emphasis cue for rendering. It is
	// functionally identical to Active everywhere else.
	Highlighted
	// Destroyed marks a tile removed by a direct hit. Terminal.
	Destroyed
	// Fallen marks a tile that dropped because it lost support or was cut
	// off. Terminal, kept distinct from Destroyed so collaborators can
	// present the two removals differently.
	Fallen
	// Void marks a cell that exists in the layout but is excluded from
	// play. Assigned at build time only.
	Void
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Highlighted:
		return "highlighted"
	case Destroyed:
		return "destroyed"
	case Fallen:
		return "fallen"
	case Void:
		return "void"
	default:
		return "unknown"
	}
}

// terminal reports whether the state permanently removes the tile from
// play.
func (s State) terminal() bool {
	return s == Destroyed || s == Fallen || s == Void
}

// Occupant is an avatar body currently overlapping a tile's footprint.
// The grid tracks occupants only through this capability set; concrete
// avatar types live outside the core.
type Occupant interface {
	// CanBeHit reports whether a direct hit can currently land on the
	// occupant.
	CanBeHit() bool
	// Hit lands a direct hit on the occupant.
	Hit()
	// HitProcessed reports whether the occupant has finished reacting to
	// the last hit.
	HitProcessed() bool
	// DieByFall kills the occupant because the floor under it dropped
	// away.
	DieByFall()
}

// Tile is a single destructible cell. Its coordinate is fixed at
// placement; destruction only changes state, it never removes the Tile
// from its Grid, so neighbor links stay valid for connectivity queries
// over already-removed regions.
type Tile struct {
	coord     Coord
	state     State
	neighbors []*Tile
	occupants mapset.Set[Occupant]

	// acknowledgeAt is the deadline after which a terminal hit on this
	// tile counts as processed.
	acknowledgeAt time.Time
}

func newTile(c Coord, s State) *Tile {
	return &Tile{coord: c, state: s, occupants: mapset.New[Occupant]()}
}

// Coord returns the tile's grid position.
func (t *Tile) Coord() Coord {
	return t.coord
}

// State returns the current lifecycle state.
func (t *Tile) State() State {
	return t.state
}

// Neighbors returns the tiles at the cardinal offsets that exist in the
// grid, in Directions order. The slice is resolved once by
// Grid.WireNeighbors.
func (t *Tile) Neighbors() []*Tile {
	return t.neighbors
}

// Available reports whether the tile is still part of play: not
// Destroyed, Fallen, or Void.
func (t *Tile) Available() bool {
	return !t.state.terminal()
}

// AvailableAndEmpty reports whether the tile is available and no avatar
// is standing on it.
func (t *Tile) AvailableAndEmpty() bool {
	return t.Available() && t.occupants.Size() == 0
}

// Visible reports whether renderers should draw the tile. Void cells are
// placed but never drawn.
func (t *Tile) Visible() bool {
	return t.state != Void
}

// Barrier reports whether the cell blocks movement without being part of
// play.
func (t *Tile) Barrier() bool {
	return t.state == Void
}

// AddOccupant records an avatar overlapping the tile. Adding the same
// occupant twice is a no-op.
func (t *Tile) AddOccupant(o Occupant) {
	if o == nil {
		return
	}
	t.occupants.Put(o)
}

// RemoveOccupant drops an avatar that left the tile's footprint. Removing
// an occupant that was never added is a no-op.
func (t *Tile) RemoveOccupant(o Occupant) {
	if o == nil {
		return
	}
	t.occupants.Remove(o)
}

// Occupants returns a snapshot of the avatars currently on the tile.
func (t *Tile) Occupants() []Occupant {
	out := make([]Occupant, 0, t.occupants.Size())
	t.occupants.Each(func(o Occupant) {
		out = append(out, o)
	})
	return out
}

// OccupantCount returns how many avatars are on the tile.
func (t *Tile) OccupantCount() int {
	return t.occupants.Size()
}

// Highlight transitions Active to Highlighted and reports whether the
// transition happened. Terminal and already-highlighted tiles are left
// unchanged.
func (t *Tile) Highlight() bool {
	if t.state != Active {
		return false
	}
	t.state = Highlighted
	return true
}

// Unhighlight returns a Highlighted tile to Active. Any other state is
// left unchanged.
func (t *Tile) Unhighlight() {
	if t.state == Highlighted {
		t.state = Active
	}
}

// ToDestroyed transitions the tile to Destroyed after a direct hit and
// stamps the acknowledgment deadline. It reports whether the transition
// happened: terminal states absorb repeated removal and the call changes
// nothing.
func (t *Tile) ToDestroyed(ackAt time.Time) bool {
	if t.state.terminal() {
		return false
	}
	t.state = Destroyed
	t.acknowledgeAt = ackAt
	return true
}

// ToFallen transitions the tile to Fallen after an indirect collapse and
// stamps the acknowledgment deadline. Terminal states absorb, same as
// ToDestroyed.
func (t *Tile) ToFallen(ackAt time.Time) bool {
	if t.state.terminal() {
		return false
	}
	t.state = Fallen
	t.acknowledgeAt = ackAt
	return true
}

// HitAcknowledged reports whether a terminal hit on this tile counts as
// processed at the given instant. Tiles still in play and Void cells are
// never acknowledged.
func (t *Tile) HitAcknowledged(now time.Time) bool {
	if t.state != Destroyed && t.state != Fallen {
		return false
	}
	return !now.Before(t.acknowledgeAt)
}
