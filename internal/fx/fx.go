// Package fx declares the effect seam between the collapse engine and its
// presentation collaborators. The engine reports what happened through a
// Sink; audio and rendering decide how each event looks and sounds.
package fx

import "github.com/nlaracuente/personalspace/internal/floor"

// Cue identifies a one-shot sound event.
type Cue int

const (
	// CueTileDestroyed accompanies a single direct tile removal.
	CueTileDestroyed Cue = iota
	// CueCollapseSmall accompanies a region collapse at or below the
	// large threshold.
	CueCollapseSmall
	// CueCollapseLarge accompanies a region collapse above the large
	// threshold.
	CueCollapseLarge
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueTileDestroyed:
		return "tile_destroyed"
	case CueCollapseSmall:
		return "collapse_small"
	case CueCollapseLarge:
		return "collapse_large"
	default:
		return "unknown"
	}
}

// Sink receives effect events from the collapse engine. Implementations
// are called from the game loop at tick rate and must not block.
type Sink interface {
	// PlayCue fires a one-shot cue.
	PlayCue(c Cue)
	// StartDrop begins a fall animation for a removed tile. Drag scales
	// the fall duration so wide collapses ripple instead of snapping.
	StartDrop(t *floor.Tile, drag float64)
	// LookAt pans the view toward the focus of a collapse.
	LookAt(t *floor.Tile)
}

// Nop discards every event. It stands in for real collaborators in
// headless runs.
type Nop struct{}

func (Nop) PlayCue(Cue)                    {}
func (Nop) StartDrop(*floor.Tile, float64) {}
func (Nop) LookAt(*floor.Tile)             {}

// Multi fans every event out to each sink in order.
type Multi []Sink

func (m Multi) PlayCue(c Cue) {
	for _, s := range m {
		s.PlayCue(c)
	}
}

func (m Multi) StartDrop(t *floor.Tile, drag float64) {
	for _, s := range m {
		s.StartDrop(t, drag)
	}
}

func (m Multi) LookAt(t *floor.Tile) {
	for _, s := range m {
		s.LookAt(t)
	}
}

// Drop is one recorded StartDrop event.
type Drop struct {
	Coord floor.Coord
	Drag  float64
}

// Recorder captures events in arrival order so tests can assert on what
// the engine emitted.
type Recorder struct {
	Cues  []Cue
	Drops []Drop
	Focus []floor.Coord
}

func (r *Recorder) PlayCue(c Cue) {
	r.Cues = append(r.Cues, c)
}

func (r *Recorder) StartDrop(t *floor.Tile, drag float64) {
	r.Drops = append(r.Drops, Drop{Coord: t.Coord(), Drag: drag})
}

func (r *Recorder) LookAt(t *floor.Tile) {
	r.Focus = append(r.Focus, t.Coord())
}

// Reset clears everything recorded so far.
func (r *Recorder) Reset() {
	r.Cues = nil
	r.Drops = nil
	r.Focus = nil
}
