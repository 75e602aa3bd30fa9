// Package level ingests level layouts from text or image sources and
// builds the floor grid they describe.
package level

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/nlaracuente/personalspace/internal/floor"
)

// Layout errors.
var (
	ErrEmptyLayout     = errors.New("level: layout has no cells")
	ErrNoFloor         = errors.New("level: layout has no floor cells")
	ErrUnknownGlyph    = errors.New("level: unknown glyph")
	ErrMultiplePlayers = errors.New("level: multiple player spawns")
)

// CellKind classifies one layout cell.
type CellKind int

const (
	// CellFloor is a normal destructible tile.
	CellFloor CellKind = iota
	// CellVoid is a placed but non-playable cell.
	CellVoid
	// CellPlayerSpawn is a floor cell that also marks where the player
	// starts.
	CellPlayerSpawn
	// CellChaserSpawn is a floor cell that also marks a chaser start.
	CellChaserSpawn
)

// Text format glyphs. Space is a gap: no cell at all.
const (
	glyphFloor  = '.'
	glyphVoid   = 'x'
	glyphPlayer = 'P'
	glyphChaser = 'C'
	glyphGap    = ' '
)

// Cell pairs a coordinate with its kind.
type Cell struct {
	Coord floor.Coord
	Kind  CellKind
}

// Layout is a source-agnostic level description: which coordinates hold
// cells and of what kind. Coordinates follow the floor convention, X
// right and Y down from the top-left of the source.
type Layout struct {
	Name  string
	cells map[floor.Coord]CellKind
}

// ParseText reads the rune map format: one rune per cell, rows top to
// bottom. '.' is floor, 'x' void, 'P' the player spawn, 'C' a chaser
// spawn, and space a gap with no cell. Ragged rows are fine and a blank
// line is a row of gaps.
func ParseText(name, src string) (*Layout, error) {
	l := &Layout{Name: name, cells: make(map[floor.Coord]CellKind)}
	playerSeen := false
	for y, line := range strings.Split(src, "\n") {
		line = strings.TrimSuffix(line, "\r")
		col := 0
		for _, r := range line {
			c := floor.C(col, y)
			col++
			switch r {
			case glyphGap:
			case glyphFloor:
				l.cells[c] = CellFloor
			case glyphVoid:
				l.cells[c] = CellVoid
			case glyphPlayer:
				if playerSeen {
					return nil, fmt.Errorf("%w: second spawn at line %d col %d", ErrMultiplePlayers, y+1, col)
				}
				playerSeen = true
				l.cells[c] = CellPlayerSpawn
			case glyphChaser:
				l.cells[c] = CellChaserSpawn
			default:
				return nil, fmt.Errorf("%w %q at line %d col %d", ErrUnknownGlyph, r, y+1, col)
			}
		}
	}
	if len(l.cells) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyLayout)
	}
	return l, nil
}

// Len returns the number of cells.
func (l *Layout) Len() int {
	return len(l.cells)
}

// Kind returns the cell kind at c and whether a cell exists there.
func (l *Layout) Kind(c floor.Coord) (CellKind, bool) {
	k, ok := l.cells[c]
	return k, ok
}

// Cells returns the layout's cells in row-major order.
func (l *Layout) Cells() []Cell {
	out := make([]Cell, 0, len(l.cells))
	for c, k := range l.cells {
		out = append(out, Cell{Coord: c, Kind: k})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Coord.Y != out[j].Coord.Y {
			return out[i].Coord.Y < out[j].Coord.Y
		}
		return out[i].Coord.X < out[j].Coord.X
	})
	return out
}

// String renders the layout in its text form, normalized so the first
// occupied row and column sit at the origin.
func (l *Layout) String() string {
	if len(l.cells) == 0 {
		return ""
	}
	minX, minY, maxX, maxY := l.bounds()
	var b strings.Builder
	for y := minY; y <= maxY; y++ {
		var row strings.Builder
		for x := minX; x <= maxX; x++ {
			kind, ok := l.cells[floor.C(x, y)]
			if !ok {
				row.WriteRune(glyphGap)
				continue
			}
			switch kind {
			case CellVoid:
				row.WriteRune(glyphVoid)
			case CellPlayerSpawn:
				row.WriteRune(glyphPlayer)
			case CellChaserSpawn:
				row.WriteRune(glyphChaser)
			default:
				row.WriteRune(glyphFloor)
			}
		}
		b.WriteString(strings.TrimRight(row.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// Fingerprint hashes the normalized text rendering, so the same shape
// ingested from a file, a string, or an image yields the same value.
func (l *Layout) Fingerprint() uint64 {
	return xxhash.Sum64String(l.String())
}

func (l *Layout) bounds() (minX, minY, maxX, maxY int) {
	first := true
	for c := range l.cells {
		if first {
			minX, maxX = c.X, c.X
			minY, maxY = c.Y, c.Y
			first = false
			continue
		}
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}
	return minX, minY, maxX, maxY
}
