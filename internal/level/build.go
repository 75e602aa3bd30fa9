package level

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/nlaracuente/personalspace/internal/floor"
	"github.com/nlaracuente/personalspace/internal/telemetry"
)

// Built is a layout realized into a playable grid.
type Built struct {
	Grid *floor.Grid
	// PlayerSpawn is the marked spawn cell, or the first floor cell in
	// row-major order when the layout marks none.
	PlayerSpawn floor.Coord
	// ChaserSpawns lists chaser start cells in row-major order.
	ChaserSpawns []floor.Coord
	// Fingerprint identifies the layout the grid was built from.
	Fingerprint uint64
}

// Build places the layout's cells into a fresh grid, wires neighbors, and
// resolves spawn points. Coordinates are normalized so the smallest
// occupied row and column sit at zero. A layout whose every cell is void
// cannot be played and fails with ErrNoFloor.
func Build(ctx context.Context, l *Layout) (*Built, error) {
	_, span := telemetry.Tracer("level").Start(ctx, "level.build")
	defer span.End()

	cells := l.Cells()
	if len(cells) == 0 {
		return nil, ErrEmptyLayout
	}
	minX, minY, _, _ := l.bounds()

	grid := floor.NewGrid()
	built := &Built{Grid: grid, Fingerprint: l.Fingerprint()}
	playerFound := false
	firstFloorFound := false
	var firstFloor floor.Coord
	for _, cell := range cells {
		c := floor.C(cell.Coord.X-minX, cell.Coord.Y-minY)
		state := floor.Active
		switch cell.Kind {
		case CellVoid:
			state = floor.Void
		case CellPlayerSpawn:
			built.PlayerSpawn = c
			playerFound = true
		case CellChaserSpawn:
			built.ChaserSpawns = append(built.ChaserSpawns, c)
		}
		grid.Place(c, state)
		if state == floor.Active && !firstFloorFound {
			firstFloor = c
			firstFloorFound = true
		}
	}
	if !firstFloorFound {
		return nil, fmt.Errorf("%s: %w", l.Name, ErrNoFloor)
	}
	if !playerFound {
		built.PlayerSpawn = firstFloor
	}
	grid.WireNeighbors()

	span.SetAttributes(
		attribute.String("layout", l.Name),
		attribute.Int("tiles", grid.Len()),
		attribute.Int("chasers", len(built.ChaserSpawns)),
	)
	return built, nil
}
