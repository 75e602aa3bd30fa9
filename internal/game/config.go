package game

import (
	"go.uber.org/zap"

	"github.com/nlaracuente/personalspace/internal/fx"
	"github.com/nlaracuente/personalspace/internal/gamedata"
	"github.com/nlaracuente/personalspace/internal/level"
)

// Options holds session configuration.
type Options struct {
	// Layout is the floor to build and play on.
	Layout *level.Layout

	// Tuning carries the collapse and pacing parameters.
	Tuning gamedata.TuningDef

	// Seed drives every random draw in the session. A seed of 0 means
	// seed from the layout fingerprint and the current time.
	Seed int64

	// Sound receives cues alongside the renderer, usually the audio
	// engine. Optional.
	Sound fx.Sink

	// Log receives session events. Optional.
	Log *zap.Logger
}
