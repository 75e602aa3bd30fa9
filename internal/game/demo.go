package game

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nlaracuente/personalspace/internal/collapse"
	"github.com/nlaracuente/personalspace/internal/floor"
	"github.com/nlaracuente/personalspace/internal/ui"
)

// RunDemo plays a session without a terminal: it builds the floor on a
// simulation screen, smashes random tiles, and waits for each removal to
// be acknowledged before the next. It stops after steps removals or when
// only one tile is left.
func RunDemo(ctx context.Context, opts Options, steps int) error {
	screen, _, err := ui.NewSimulationScreen(80, 24)
	if err != nil {
		return err
	}
	defer screen.Close()

	g := New(screen, opts)
	if err := g.setup(ctx); err != nil {
		return err
	}

	dt := float32(g.opts.Tuning.TickInterval().Seconds())
	for i := 0; i < steps && g.grid.AvailableCount() > 1; i++ {
		near := floor.C(0, 0)
		if t := g.player.AvatarTile(); t != nil {
			near = t.Coord()
		}
		target := g.grid.RandomAvailableTile(near, g.rng)
		if target == nil || target == g.player.Tile() {
			continue
		}

		result := g.engine.Destroy(ctx, target)
		if result.Direct == nil {
			continue
		}
		if err := collapse.WaitAcknowledged(ctx, result.Direct); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		g.log.Info("demo step",
			zap.Int("step", i),
			zap.Stringer("tile", target.Coord()),
			zap.Stringer("response", result.Response),
			zap.Int("fell", len(result.Collapsed)))

		g.renderer.Update(dt)
		g.renderer.Render(g.grid, g.player, g.chasers, "demo")
	}

	g.log.Info("demo finished", zap.Int("tiles_left", g.grid.AvailableCount()))
	return nil
}
