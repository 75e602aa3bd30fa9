package game

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/nlaracuente/personalspace/internal/floor"
	"github.com/nlaracuente/personalspace/internal/fx"
	"github.com/nlaracuente/personalspace/internal/gamedata"
	"github.com/nlaracuente/personalspace/internal/level"
	"github.com/nlaracuente/personalspace/internal/ui"
)

func testTuning() gamedata.TuningDef {
	return gamedata.TuningDef{
		MinSupport:        1,
		DragMin:           0.5,
		DragMax:           1.0,
		LargeCollapseSize: 8,
		AckDelayMS:        30,
		TickMS:            10,
	}
}

// newTestGame builds a ready session from layout text on a simulation
// screen.
func newTestGame(t *testing.T, text string, opts Options) *Game {
	t.Helper()
	screen, _, err := ui.NewSimulationScreen(40, 20)
	if err != nil {
		t.Fatalf("Failed to create simulation screen: %v", err)
	}
	t.Cleanup(screen.Close)

	layout, err := level.ParseText("test", text)
	if err != nil {
		t.Fatalf("Failed to parse layout: %v", err)
	}
	opts.Layout = layout
	if opts.Tuning.TickMS == 0 {
		opts.Tuning = testTuning()
	}
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	opts.Log = zap.NewNop()

	g := New(screen, opts)
	if err := g.setup(context.Background()); err != nil {
		t.Fatalf("Failed to set up game: %v", err)
	}
	return g
}

func TestSetupPlacesActors(t *testing.T) {
	g := newTestGame(t, "C..\n.P.\n...", Options{})

	if g.state != StatePlaying {
		t.Errorf("Expected state playing, got %v", g.state)
	}
	if g.grid.Len() != 9 {
		t.Errorf("Expected 9 tiles, got %d", g.grid.Len())
	}
	if got := g.player.Tile().Coord(); got != floor.C(1, 1) {
		t.Errorf("Expected player at (1,1), got %v", got)
	}
	if len(g.chasers) != 1 {
		t.Fatalf("Expected 1 chaser, got %d", len(g.chasers))
	}
	if got := g.chasers[0].Tile().Coord(); got != floor.C(0, 0) {
		t.Errorf("Expected chaser at (0,0), got %v", got)
	}
	// The chaser occupies one of the eight cells around the spawn
	if got := len(g.grid.Highlighted()); got != 7 {
		t.Errorf("Expected 7 highlighted tiles, got %d", got)
	}
}

func TestSetupSpawnsTunedChasers(t *testing.T) {
	opts := Options{Tuning: testTuning()}
	opts.Tuning.ChaserCount = 2
	g := newTestGame(t, "P....\n.....\n.....", opts)

	if len(g.chasers) != 2 {
		t.Fatalf("Expected 2 chasers, got %d", len(g.chasers))
	}
	for i, c := range g.chasers {
		tile := c.Tile()
		if tile == nil {
			t.Fatalf("Chaser %d not placed", i)
		}
		if tile == g.player.Tile() {
			t.Errorf("Chaser %d spawned on the player", i)
		}
	}
}

func TestTryMoveMovesAndHighlights(t *testing.T) {
	g := newTestGame(t, "C..\n.P.\n...", Options{})

	g.tryMove(floor.DirRight)
	if got := g.player.Tile().Coord(); got != floor.C(2, 1) {
		t.Fatalf("Expected player at (2,1), got %v", got)
	}
	if g.player.Facing() != floor.DirRight {
		t.Errorf("Expected facing right, got %v", g.player.Facing())
	}
	if got := len(g.grid.Highlighted()); got != 5 {
		t.Errorf("Expected 5 highlighted tiles after move, got %d", got)
	}

	// Off the edge: facing turns, position holds
	g.tryMove(floor.DirRight)
	if got := g.player.Tile().Coord(); got != floor.C(2, 1) {
		t.Errorf("Expected player to stay at (2,1), got %v", got)
	}
}

func TestTryMoveBlockedByOccupant(t *testing.T) {
	g := newTestGame(t, "CP.", Options{})

	g.tryMove(floor.DirLeft)
	if got := g.player.Tile().Coord(); got != floor.C(1, 0) {
		t.Errorf("Expected player to stay at (1,0), got %v", got)
	}
	if g.player.Facing() != floor.DirLeft {
		t.Errorf("Expected facing left, got %v", g.player.Facing())
	}

	g.tryMove(floor.DirRight)
	if got := g.player.Tile().Coord(); got != floor.C(2, 0) {
		t.Errorf("Expected player at (2,0), got %v", got)
	}
}

func TestSmashDestroysFacedTile(t *testing.T) {
	g := newTestGame(t, ".P.", Options{})
	ctx := context.Background()

	g.player.Face(floor.DirRight)
	g.smash(ctx)

	target := g.grid.TileAt(floor.C(2, 0))
	if target.Available() {
		t.Fatal("Expected faced tile to be destroyed")
	}
	if g.lastSmashed != target {
		t.Error("Expected the smash to be recorded for acknowledgment gating")
	}

	// A second smash inside the acknowledgment window is ignored
	g.player.Face(floor.DirLeft)
	g.smash(ctx)
	if !g.grid.TileAt(floor.C(0, 0)).Available() {
		t.Fatal("Expected smash inside the acknowledgment window to be ignored")
	}

	time.Sleep(50 * time.Millisecond)
	g.smash(ctx)
	if g.grid.TileAt(floor.C(0, 0)).Available() {
		t.Fatal("Expected smash after acknowledgment to land")
	}
}

func TestSmashFansOutToSound(t *testing.T) {
	rec := &fx.Recorder{}
	g := newTestGame(t, ".P.", Options{Sound: rec})
	ctx := context.Background()

	g.player.Face(floor.DirRight)
	g.smash(ctx)

	if len(rec.Cues) != 1 || rec.Cues[0] != fx.CueTileDestroyed {
		t.Errorf("Expected one destroyed cue, got %v", rec.Cues)
	}
	if len(rec.Drops) != 1 || rec.Drops[0].Coord != floor.C(2, 0) {
		t.Errorf("Expected one drop at (2,0), got %v", rec.Drops)
	}
}

func TestChaserCatchKillsPlayer(t *testing.T) {
	g := newTestGame(t, "C.P", Options{})

	for i := 0; i < 8; i++ {
		g.tick()
	}

	if g.state != StateDead {
		t.Fatalf("Expected state dead after the catch, got %v", g.state)
	}
	if g.player.Alive() {
		t.Error("Expected the player to be dead")
	}
	if got := len(g.grid.Highlighted()); got != 0 {
		t.Errorf("Expected highlights cleared on death, got %d", got)
	}

	// Input is inert once the session is over
	g.tryMove(floor.DirLeft)
	if got := g.player.Tile().Coord(); got != floor.C(2, 0) {
		t.Errorf("Expected no movement after death, player at %v", got)
	}
	g.smash(context.Background())
	if !g.grid.TileAt(floor.C(0, 0)).Available() {
		t.Error("Expected no smash after death")
	}
}

func TestAllChasersDeadClearsFloor(t *testing.T) {
	g := newTestGame(t, "C.P", Options{})

	g.chasers[0].Hit()
	g.tick()

	if g.state != StateCleared {
		t.Errorf("Expected state cleared, got %v", g.state)
	}
}

func TestNoChasersStaysPlaying(t *testing.T) {
	g := newTestGame(t, ".P.", Options{})

	for i := 0; i < 8; i++ {
		g.tick()
	}
	if g.state != StatePlaying {
		t.Errorf("Expected a chaserless floor to stay playing, got %v", g.state)
	}
}

func TestRunDemoHeadless(t *testing.T) {
	layout, err := level.ParseText("demo", "P...\n....\n....\n....")
	if err != nil {
		t.Fatalf("Failed to parse layout: %v", err)
	}
	opts := Options{
		Layout: layout,
		Tuning: testTuning(),
		Seed:   1,
		Log:    zap.NewNop(),
	}

	if err := RunDemo(context.Background(), opts, 3); err != nil {
		t.Fatalf("RunDemo failed: %v", err)
	}
}
