// Package collapse implements the structural-integrity engine over a
// wired floor grid: the support predicate, the land-mass-cut heuristic,
// and the destroy orchestration that decides what falls after each hit.
package collapse

import "github.com/nlaracuente/personalspace/internal/floor"

// Support decides whether tiles are structurally held up. A tile is
// supported when enough of its four cardinal rays reach a grid edge
// through available tiles only: leaving the map counts as hitting a
// load-bearing edge, and the first unavailable tile on a ray blocks it.
type Support struct {
	grid       *floor.Grid
	minSupport int
}

// NewSupport returns an analyzer requiring minSupport of the four
// cardinal rays to reach an edge. Thresholds below one are clamped to
// one.
func NewSupport(grid *floor.Grid, minSupport int) *Support {
	if minSupport < 1 {
		minSupport = 1
	}
	return &Support{grid: grid, minSupport: minSupport}
}

// MinSupport returns the ray threshold in effect.
func (s *Support) MinSupport() int {
	return s.minSupport
}

// Supported reports whether the tile is structurally supported. An
// unavailable tile is never supported.
func (s *Support) Supported(t *floor.Tile) bool {
	if t == nil || !t.Available() {
		return false
	}
	supporting := 0
	for _, d := range floor.Directions {
		if s.rayReachesEdge(t.Coord(), d) {
			supporting++
			if supporting >= s.minSupport {
				return true
			}
		}
	}
	return false
}

func (s *Support) rayReachesEdge(c floor.Coord, d floor.Direction) bool {
	for cur := c.Step(d); ; cur = cur.Step(d) {
		t := s.grid.TileAt(cur)
		if t == nil {
			return true
		}
		if !t.Available() {
			return false
		}
	}
}
