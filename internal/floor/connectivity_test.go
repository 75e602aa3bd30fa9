package floor

import (
	"testing"
	"time"
)

func TestReachableAvailableExcludesSeed(t *testing.T) {
	g := buildRect(t, 3, 3)
	seed := g.TileAt(C(1, 1))
	got := ReachableAvailable(seed)
	if len(got) != 8 {
		t.Fatalf("got %d reachable tiles want 8", len(got))
	}
	for _, tile := range got {
		if tile == seed {
			t.Fatal("fill must exclude the seed")
		}
	}
}

func TestReachableAvailableStopsAtRemovedTiles(t *testing.T) {
	g := buildRect(t, 5, 5)
	for y := 0; y < 5; y++ {
		g.TileAt(C(2, y)).ToDestroyed(time.Now())
	}
	got := ReachableAvailable(g.TileAt(C(0, 0)))
	if len(got) != 9 {
		t.Fatalf("got %d reachable tiles want 9", len(got))
	}
	for _, tile := range got {
		if tile.Coord().X >= 2 {
			t.Fatalf("fill crossed the removed column at %v", tile.Coord())
		}
	}
}

func TestReachableAvailableFromRemovedSeed(t *testing.T) {
	g := buildRect(t, 3, 1)
	seed := g.TileAt(C(1, 0))
	seed.ToDestroyed(time.Now())
	got := ReachableAvailable(seed)
	if len(got) != 2 {
		t.Fatalf("removed seed must still reach its available neighbors, got %d", len(got))
	}
}

func TestReachableUnavailableMeasuresCluster(t *testing.T) {
	g := buildRect(t, 5, 5)
	for y := 0; y < 5; y++ {
		g.TileAt(C(2, y)).ToDestroyed(time.Now())
	}
	got := ReachableUnavailable(g.TileAt(C(2, 2)))
	if len(got) != 4 {
		t.Fatalf("got %d cluster tiles want 4", len(got))
	}
	for _, tile := range got {
		if tile.Available() {
			t.Fatalf("cluster fill picked up an available tile at %v", tile.Coord())
		}
	}
}

func TestReachableUnavailableIsolatedSeed(t *testing.T) {
	g := buildRect(t, 3, 3)
	seed := g.TileAt(C(1, 1))
	seed.ToDestroyed(time.Now())
	if got := ReachableUnavailable(seed); len(got) != 0 {
		t.Fatalf("isolated removal must yield an empty cluster, got %d", len(got))
	}
}

func TestReachableNilSeed(t *testing.T) {
	if got := ReachableAvailable(nil); got != nil {
		t.Fatal("nil seed must yield nil")
	}
	if got := ReachableUnavailable(nil); got != nil {
		t.Fatal("nil seed must yield nil")
	}
}

func TestReachableLargeRegionIterative(t *testing.T) {
	// A long corridor would blow a recursive fill's stack; the iterative
	// fill must walk it end to end.
	g := NewGrid()
	const length = 20000
	for x := 0; x < length; x++ {
		g.Place(C(x, 0), Active)
	}
	g.WireNeighbors()
	got := ReachableAvailable(g.TileAt(C(0, 0)))
	if len(got) != length-1 {
		t.Fatalf("got %d reachable tiles want %d", len(got), length-1)
	}
}
