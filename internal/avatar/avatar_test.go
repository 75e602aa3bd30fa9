package avatar

import (
	"math/rand"
	"testing"
	"time"

	"github.com/nlaracuente/personalspace/internal/floor"
)

func rect(t *testing.T, w, h int) *floor.Grid {
	t.Helper()
	g := floor.NewGrid()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Place(floor.C(x, y), floor.Active)
		}
	}
	g.WireNeighbors()
	return g
}

func TestPlayerPlacement(t *testing.T) {
	g := rect(t, 3, 3)
	p := NewPlayer()

	center := g.TileAt(floor.C(1, 1))
	p.PlaceOn(center)
	if p.Tile() != center {
		t.Fatalf("Expected player on (1,1), got %v", p.Tile())
	}
	if center.OccupantCount() != 1 {
		t.Errorf("Expected 1 occupant, got %d", center.OccupantCount())
	}
	if center.AvailableAndEmpty() {
		t.Error("Occupied tile should not be available-and-empty")
	}

	south := g.TileAt(floor.C(1, 2))
	p.PlaceOn(south)
	if center.OccupantCount() != 0 {
		t.Errorf("Expected old tile emptied, got %d occupants", center.OccupantCount())
	}
	if south.OccupantCount() != 1 {
		t.Errorf("Expected 1 occupant on new tile, got %d", south.OccupantCount())
	}

	p.PlaceOn(nil)
	if south.OccupantCount() != 0 {
		t.Errorf("Expected tile emptied after removal, got %d occupants", south.OccupantCount())
	}
	if p.Tile() != nil {
		t.Error("Expected nil tile after removal")
	}
}

func TestPlayerFacing(t *testing.T) {
	g := rect(t, 3, 3)
	p := NewPlayer()

	if p.FacingTile(g) != nil {
		t.Error("Unplaced player should face no tile")
	}

	p.PlaceOn(g.TileAt(floor.C(1, 1)))
	if p.Facing() != floor.DirDown {
		t.Errorf("Expected default facing down, got %v", p.Facing())
	}
	if got := p.FacingTile(g).Coord(); got != floor.C(1, 2) {
		t.Errorf("Expected facing tile (1,2), got %v", got)
	}

	p.Face(floor.DirUp)
	if got := p.FacingTile(g).Coord(); got != floor.C(1, 0) {
		t.Errorf("Expected facing tile (1,0), got %v", got)
	}

	p.PlaceOn(g.TileAt(floor.C(1, 0)))
	if p.FacingTile(g) != nil {
		t.Error("Expected nil facing tile at the grid edge")
	}
}

func TestPlayerHitLifecycle(t *testing.T) {
	p := NewPlayer()

	if !p.CanBeHit() {
		t.Fatal("Fresh player should be hittable")
	}
	if !p.HitProcessed() {
		t.Fatal("Fresh player should have no pending hit")
	}

	p.Hit()
	if p.HitProcessed() {
		t.Error("Hit should be pending until processed")
	}
	if !p.Alive() {
		t.Error("Hit should not kill until processed")
	}
	if p.CanBeHit() {
		t.Error("Pending hit should block further hits")
	}

	if !p.ProcessHit() {
		t.Error("Expected ProcessHit to report the kill")
	}
	if p.Alive() {
		t.Error("Processed hit should kill the player")
	}
	if p.ProcessHit() {
		t.Error("Second ProcessHit should be a noop")
	}

	p.Hit()
	if !p.HitProcessed() {
		t.Error("Hits on a dead player should not pend")
	}
}

func TestPlayerDieByFall(t *testing.T) {
	g := rect(t, 3, 3)
	p := NewPlayer()
	tile := g.TileAt(floor.C(0, 0))
	p.PlaceOn(tile)

	if p.AvatarTile() != tile {
		t.Fatalf("Expected avatar tile (0,0), got %v", p.AvatarTile())
	}

	p.DieByFall()
	if p.Alive() {
		t.Error("Expected player dead after fall")
	}
	if tile.OccupantCount() != 0 {
		t.Errorf("Expected tile emptied by fall, got %d occupants", tile.OccupantCount())
	}
	if p.AvatarTile() != nil {
		t.Error("Dead player should report no avatar tile")
	}
}

func TestChaserChasesNearbyQuarry(t *testing.T) {
	g := rect(t, 5, 1)
	p := NewPlayer()
	p.PlaceOn(g.TileAt(floor.C(4, 0)))

	c := NewChaser(rand.New(rand.NewSource(1)))
	c.PlaceOn(g.TileAt(floor.C(0, 0)))

	for i := 1; i <= 4; i++ {
		if !c.Tick(g, p.Tile()) {
			t.Fatalf("Expected move on tick %d", i)
		}
		want := floor.C(i, 0)
		if got := c.Tile().Coord(); got != want {
			t.Fatalf("Tick %d: expected chaser at %v, got %v", i, want, got)
		}
	}

	if c.Tile() != p.Tile() {
		t.Error("Expected chaser to reach the quarry tile")
	}
}

func TestChaserWanderIsSeeded(t *testing.T) {
	g1, g2 := rect(t, 5, 5), rect(t, 5, 5)

	c1 := NewChaser(rand.New(rand.NewSource(7)))
	c2 := NewChaser(rand.New(rand.NewSource(7)))
	c1.PlaceOn(g1.TileAt(floor.C(2, 2)))
	c2.PlaceOn(g2.TileAt(floor.C(2, 2)))

	for i := 0; i < 30; i++ {
		c1.Tick(g1, nil)
		c2.Tick(g2, nil)
		if c1.Tile().Coord() != c2.Tile().Coord() {
			t.Fatalf("Tick %d: wander diverged, %v != %v", i, c1.Tile().Coord(), c2.Tile().Coord())
		}
	}
}

func TestChaserWanderStaysOnAvailableTiles(t *testing.T) {
	g := rect(t, 5, 5)
	now := time.Now()
	for y := 0; y < 5; y++ {
		g.TileAt(floor.C(4, y)).ToDestroyed(now)
	}

	c := NewChaser(rand.New(rand.NewSource(9)))
	c.PlaceOn(g.TileAt(floor.C(0, 0)))

	for i := 0; i < 40; i++ {
		c.Tick(g, nil)
		if !c.Tile().Available() {
			t.Fatalf("Tick %d: chaser standing on unavailable tile %v", i, c.Tile().Coord())
		}
	}
}

func TestChaserBoxedInStalls(t *testing.T) {
	g := rect(t, 3, 3)
	now := time.Now()
	g.TileAt(floor.C(1, 0)).ToDestroyed(now)
	g.TileAt(floor.C(0, 1)).ToDestroyed(now)

	c := NewChaser(rand.New(rand.NewSource(3)))
	c.PlaceOn(g.TileAt(floor.C(0, 0)))

	for i := 0; i < 10; i++ {
		if c.Tick(g, nil) {
			t.Fatalf("Tick %d: boxed-in chaser moved to %v", i, c.Tile().Coord())
		}
	}
	if got := c.Tile().Coord(); got != (floor.C(0, 0)) {
		t.Errorf("Expected chaser to stay at (0,0), got %v", got)
	}
}

func TestChaserDeath(t *testing.T) {
	g := rect(t, 3, 1)
	c := NewChaser(rand.New(rand.NewSource(5)))
	tile := g.TileAt(floor.C(1, 0))
	c.PlaceOn(tile)

	if !c.CanBeHit() {
		t.Fatal("Living chaser should be hittable")
	}
	c.Hit()
	if c.Alive() {
		t.Error("Expected hit to kill the chaser")
	}
	if tile.OccupantCount() != 0 {
		t.Errorf("Expected tile emptied, got %d occupants", tile.OccupantCount())
	}
	if c.Tick(g, nil) {
		t.Error("Dead chaser should not move")
	}

	c2 := NewChaser(rand.New(rand.NewSource(5)))
	c2.PlaceOn(tile)
	c2.DieByFall()
	if c2.Alive() || c2.Tile() != nil {
		t.Error("Expected fall to kill and unplace the chaser")
	}
}
