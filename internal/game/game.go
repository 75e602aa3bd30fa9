package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/nlaracuente/personalspace/internal/avatar"
	"github.com/nlaracuente/personalspace/internal/collapse"
	"github.com/nlaracuente/personalspace/internal/floor"
	"github.com/nlaracuente/personalspace/internal/fx"
	"github.com/nlaracuente/personalspace/internal/level"
	"github.com/nlaracuente/personalspace/internal/telemetry"
	"github.com/nlaracuente/personalspace/internal/ui"
)

// chaserStride is how many ticks pass between chaser steps.
const chaserStride = 4

// spawnAttempts bounds the random placement of tuning-mandated chasers.
const spawnAttempts = 50

// Game holds one session: the grid, the collapse engine, and the actors
// on the floor.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	opts     Options
	log      *zap.Logger
	rng      *rand.Rand

	grid    *floor.Grid
	engine  *collapse.Engine
	player  *avatar.Player
	chasers []*avatar.Chaser

	state       State
	running     bool
	lastSmashed *floor.Tile
	lastFrame   time.Time
	ticks       int
}

// New creates a session on the given screen. Run builds the floor and
// starts the loop.
func New(screen *ui.Screen, opts Options) *Game {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, opts.Tuning.Theme),
		opts:     opts,
		log:      log,
		state:    StatePlaying,
		running:  true,
	}
}

// setup builds the grid from the layout and places every actor.
func (g *Game) setup(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.setup")
	defer span.End()

	seed := g.opts.Seed
	if seed == 0 {
		seed = int64(g.opts.Layout.Fingerprint() ^ uint64(time.Now().UnixNano()))
	}
	g.rng = rand.New(rand.NewSource(seed))

	built, err := level.Build(ctx, g.opts.Layout)
	if err != nil {
		return err
	}
	g.grid = built.Grid

	g.player = avatar.NewPlayer()
	g.player.PlaceOn(g.grid.TileAt(built.PlayerSpawn))

	for _, c := range built.ChaserSpawns {
		ch := avatar.NewChaser(g.rng)
		ch.PlaceOn(g.grid.TileAt(c))
		g.chasers = append(g.chasers, ch)
	}
	if len(g.chasers) == 0 {
		// Layout marks no chasers, fall back to the tuned count
		for i := 0; len(g.chasers) < g.opts.Tuning.ChaserCount && i < spawnAttempts; i++ {
			t := g.grid.RandomAvailableTile(built.PlayerSpawn, g.rng)
			if t == nil || !t.AvailableAndEmpty() {
				continue
			}
			ch := avatar.NewChaser(g.rng)
			ch.PlaceOn(t)
			g.chasers = append(g.chasers, ch)
		}
	}

	var sink fx.Sink = g.renderer
	if g.opts.Sound != nil {
		sink = fx.Multi{g.renderer, g.opts.Sound}
	}
	g.engine = collapse.NewEngine(g.grid, sink, g.player, g.rng, g.opts.Tuning.CollapseConfig(), g.log)

	g.grid.HighlightAround(built.PlayerSpawn)

	span.SetAttributes(
		attribute.String("layout", g.opts.Layout.Name),
		attribute.Int("tiles", g.grid.Len()),
		attribute.Int("chasers", len(g.chasers)),
	)
	g.log.Info("session ready",
		zap.String("layout", g.opts.Layout.Name),
		zap.Uint64("fingerprint", g.opts.Layout.Fingerprint()),
		zap.Int64("seed", seed),
		zap.Int("tiles", g.grid.Len()),
		zap.Int("chasers", len(g.chasers)))
	return nil
}

// Run executes the main game loop until the player quits or the
// context is canceled.
func (g *Game) Run(ctx context.Context) error {
	if err := g.setup(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(g.opts.Tuning.TickInterval())
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	g.lastFrame = time.Now()
	for g.running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			g.handleEvent(ctx, ev)
		case <-ticker.C:
			g.tick()
		}
	}
	return nil
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.tryMove(floor.DirUp)
	case tcell.KeyDown:
		g.tryMove(floor.DirDown)
	case tcell.KeyLeft:
		g.tryMove(floor.DirLeft)
	case tcell.KeyRight:
		g.tryMove(floor.DirRight)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'k':
			g.tryMove(floor.DirUp)
		case 'j':
			g.tryMove(floor.DirDown)
		case 'h':
			g.tryMove(floor.DirLeft)
		case 'l':
			g.tryMove(floor.DirRight)
		case ' ':
			g.smash(ctx)
		}
	}
}

// tryMove turns the player and steps it onto the faced tile when that
// tile can carry it.
func (g *Game) tryMove(d floor.Direction) {
	if g.state != StatePlaying {
		return
	}
	g.player.Face(d)

	target := g.player.FacingTile(g.grid)
	if target == nil || !target.AvailableAndEmpty() {
		return
	}
	g.player.PlaceOn(target)
	g.grid.HighlightAround(target.Coord())
}

// smash destroys the faced tile, once the previous smash has been
// acknowledged.
func (g *Game) smash(ctx context.Context) {
	if g.state != StatePlaying {
		return
	}
	if g.lastSmashed != nil && !g.lastSmashed.HitAcknowledged(time.Now()) {
		return
	}

	target := g.player.FacingTile(g.grid)
	if target == nil {
		return
	}

	result := g.engine.Destroy(ctx, target)
	if result.Direct != nil {
		g.lastSmashed = result.Direct
	}
	if len(result.Collapsed) > 0 {
		g.log.Info("collapse",
			zap.Stringer("response", result.Response),
			zap.Int("fell", len(result.Collapsed)),
			zap.Int("cluster_size", result.ClusterSize))
	}

	if g.player.Alive() && g.player.Tile() != nil {
		g.grid.HighlightAround(g.player.Tile().Coord())
	}
}

// tick advances actors and animations, then draws the frame.
func (g *Game) tick() {
	now := time.Now()
	dt := float32(now.Sub(g.lastFrame).Seconds())
	g.lastFrame = now
	g.ticks++

	if g.state == StatePlaying {
		g.advanceChasers()
		g.resolveState()
	}

	g.renderer.Update(dt)
	g.renderer.Render(g.grid, g.player, g.chasers, g.status())
}

// advanceChasers steps every living chaser on its stride and lands
// contact hits on the player.
func (g *Game) advanceChasers() {
	if g.ticks%chaserStride != 0 {
		return
	}
	quarry := g.player.AvatarTile()
	for _, c := range g.chasers {
		if !c.Alive() {
			continue
		}
		c.Tick(g.grid, quarry)
		if quarry != nil && c.Tile() == quarry && g.player.CanBeHit() {
			g.player.Hit()
			g.log.Info("player caught", zap.Stringer("tile", quarry.Coord()))
		}
	}
}

// resolveState applies pending hits and checks the end conditions.
func (g *Game) resolveState() {
	if g.player.ProcessHit() || !g.player.Alive() {
		g.state = StateDead
		g.grid.ClearHighlights()
		g.log.Info("session over", zap.Stringer("state", g.state))
		return
	}
	if len(g.chasers) == 0 {
		return
	}
	for _, c := range g.chasers {
		if c.Alive() {
			return
		}
	}
	g.state = StateCleared
	g.log.Info("session over", zap.Stringer("state", g.state))
}

// status builds the bottom-row message for the current state.
func (g *Game) status() string {
	switch g.state {
	case StateDead:
		return "game over - press q"
	case StateCleared:
		return "floor cleared - press q"
	default:
		alive := 0
		for _, c := range g.chasers {
			if c.Alive() {
				alive++
			}
		}
		return fmt.Sprintf("chasers %d | tiles %d | move: arrows/hjkl  smash: space  quit: q",
			alive, g.grid.AvailableCount())
	}
}
