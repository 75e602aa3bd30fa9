package floor

import "math/rand"

// wholeGridAttempts bounds the random sampling pass before
// RandomAvailableTile falls back to an ordered scan.
const wholeGridAttempts = 100

// Grid owns every Tile for the current level, keyed by coordinate. It is
// built once per level load and torn down wholesale on reload; tiles are
// never inserted or removed after build.
type Grid struct {
	tiles map[Coord]*Tile
	// all preserves placement order so sampling and iteration stay
	// deterministic for a given seed.
	all []*Tile
	// highlighted remembers the last HighlightAround result so the next
	// call can clear it before recomputing.
	highlighted []*Tile

	maxX, maxY int
	wired      bool
}

// NewGrid returns an empty grid ready for tile placement.
func NewGrid() *Grid {
	return &Grid{tiles: make(map[Coord]*Tile)}
}

// Place creates a tile at c in the given initial state (Active or Void
// from a layout) and returns it. Placing over an existing coordinate
// returns the original tile unchanged. Placement is build-time only and
// panics once the grid is wired.
func (g *Grid) Place(c Coord, s State) *Tile {
	if g.wired {
		panic("floor: Place after WireNeighbors")
	}
	if t, ok := g.tiles[c]; ok {
		return t
	}
	t := newTile(c, s)
	g.tiles[c] = t
	g.all = append(g.all, t)
	if c.X > g.maxX {
		g.maxX = c.X
	}
	if c.Y > g.maxY {
		g.maxY = c.Y
	}
	return t
}

// WireNeighbors resolves each tile's cardinal neighbor links. It must run
// once after all tiles are placed, because resolution needs the complete
// tile set, and it is idempotent: every call rebuilds the links from
// scratch. Wiring an empty grid panics.
func (g *Grid) WireNeighbors() {
	if len(g.all) == 0 {
		panic("floor: WireNeighbors on empty grid")
	}
	for _, t := range g.all {
		t.neighbors = t.neighbors[:0]
		for _, d := range Directions {
			if n := g.tiles[t.coord.Step(d)]; n != nil {
				t.neighbors = append(t.neighbors, n)
			}
		}
	}
	g.wired = true
}

// Wired reports whether neighbor wiring has completed. Queries that walk
// neighbor links require a wired grid.
func (g *Grid) Wired() bool {
	return g.wired
}

// TileAt returns the tile at c, or nil when no tile was placed there.
func (g *Grid) TileAt(c Coord) *Tile {
	return g.tiles[c]
}

// Bounds returns the largest X and Y any tile occupies. Layouts are
// normalized at build so the smallest coordinates are zero.
func (g *Grid) Bounds() (maxX, maxY int) {
	return g.maxX, g.maxY
}

// Len returns the number of placed tiles.
func (g *Grid) Len() int {
	return len(g.all)
}

// Tiles returns all tiles in placement order.
func (g *Grid) Tiles() []*Tile {
	return g.all
}

// AvailableCount returns how many tiles are still in play.
func (g *Grid) AvailableCount() int {
	n := 0
	for _, t := range g.all {
		if t.Available() {
			n++
		}
	}
	return n
}

// HighlightAround recomputes the highlighted set around an origin. The
// previous set is cleared first, then every available-and-empty tile at
// the eight compass offsets from c is highlighted. Calling it twice with
// no state change in between yields the same set.
func (g *Grid) HighlightAround(c Coord) {
	g.mustBeWired("HighlightAround")
	for _, t := range g.highlighted {
		t.Unhighlight()
	}
	g.highlighted = g.highlighted[:0]
	for _, off := range CompassOffsets {
		t := g.tiles[c.Add(off)]
		if t == nil || !t.AvailableAndEmpty() {
			continue
		}
		if t.Highlight() {
			g.highlighted = append(g.highlighted, t)
		}
	}
}

// ClearHighlights returns every highlighted tile to Active.
func (g *Grid) ClearHighlights() {
	for _, t := range g.highlighted {
		t.Unhighlight()
	}
	g.highlighted = g.highlighted[:0]
}

// Highlighted returns the current highlighted set in highlight order.
func (g *Grid) Highlighted() []*Tile {
	return g.highlighted
}

// RandomAvailableTile picks a destination for a wanderer near the given
// origin: a uniformly random member of the available region reachable
// from the tile at near when that region is non-empty, otherwise a
// uniformly random available tile from the whole grid. Callers must
// guarantee at least one available tile exists; when none does, the
// bounded sampling and the ordered scan both come up empty and the result
// is nil.
func (g *Grid) RandomAvailableTile(near Coord, rng *rand.Rand) *Tile {
	g.mustBeWired("RandomAvailableTile")
	if t := g.tiles[near]; t != nil {
		if peers := ReachableAvailable(t); len(peers) > 0 {
			return peers[rng.Intn(len(peers))]
		}
	}
	for i := 0; i < wholeGridAttempts; i++ {
		if t := g.all[rng.Intn(len(g.all))]; t.Available() {
			return t
		}
	}
	for _, t := range g.all {
		if t.Available() {
			return t
		}
	}
	return nil
}

func (g *Grid) mustBeWired(op string) {
	if !g.wired {
		panic("floor: " + op + " before WireNeighbors")
	}
}
