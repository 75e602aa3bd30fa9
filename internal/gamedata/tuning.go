package gamedata

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/nlaracuente/personalspace/internal/collapse"
)

// TuningDef defines collapse and pacing parameters loaded from JSON.
type TuningDef struct {
	MinSupport        int      `json:"minSupport"`        // Cardinal rays that must reach open ground (1-4)
	DragMin           float64  `json:"dragMin"`           // Slowest fall drag
	DragMax           float64  `json:"dragMax"`           // Fastest fall drag
	LargeCollapseSize int      `json:"largeCollapseSize"` // Fallen-region size above which the large cue plays
	AckDelayMS        int      `json:"ackDelayMs"`        // Delay before a hit is acknowledged, in milliseconds
	TickMS            int      `json:"tickMs"`            // Simulation tick length in milliseconds
	ChaserCount       int      `json:"chaserCount"`       // Chasers spawned when the layout marks none
	Theme             ThemeDef `json:"theme"`             // Render palette
}

// ThemeDef defines the render palette as hex color strings.
type ThemeDef struct {
	Floor     string `json:"floor"`     // Intact walkable tile
	Highlight string `json:"highlight"` // Tile highlighted around the player
	Destroyed string `json:"destroyed"` // Directly destroyed tile
	Fallen    string `json:"fallen"`    // Tile lost to a collapse
	Void      string `json:"void"`      // Permanent hole
	Player    string `json:"player"`    // Player glyph
	Chaser    string `json:"chaser"`    // Chaser glyph
}

// LoadTuning loads parameters from the embedded tuning.json file.
func LoadTuning() (TuningDef, error) {
	return Load[TuningDef]("tuning.json")
}

// MustLoadTuning loads tuning parameters, panicking on error.
func MustLoadTuning() TuningDef {
	return MustLoad[TuningDef]("tuning.json")
}

// CollapseConfig converts the tuning values into an engine configuration.
func (t TuningDef) CollapseConfig() collapse.Config {
	return collapse.Config{
		MinSupport:        t.MinSupport,
		DragMin:           t.DragMin,
		DragMax:           t.DragMax,
		LargeCollapseSize: t.LargeCollapseSize,
		AckDelay:          time.Duration(t.AckDelayMS) * time.Millisecond,
	}
}

// TickInterval returns the simulation tick length.
func (t TuningDef) TickInterval() time.Duration {
	return time.Duration(t.TickMS) * time.Millisecond
}

// color parses a hex field, falling back when the field is missing or malformed.
func (d ThemeDef) color(hex string, fallback tcell.Color) tcell.Color {
	c, err := ParseHexColor(hex)
	if err != nil {
		return fallback
	}
	return c
}

// FloorColor returns the color for intact tiles.
func (d ThemeDef) FloorColor() tcell.Color { return d.color(d.Floor, tcell.ColorGray) }

// HighlightColor returns the color for highlighted tiles.
func (d ThemeDef) HighlightColor() tcell.Color { return d.color(d.Highlight, tcell.ColorYellow) }

// DestroyedColor returns the color for directly destroyed tiles.
func (d ThemeDef) DestroyedColor() tcell.Color { return d.color(d.Destroyed, tcell.ColorDarkRed) }

// FallenColor returns the color for tiles lost to a collapse.
func (d ThemeDef) FallenColor() tcell.Color { return d.color(d.Fallen, tcell.ColorDarkBlue) }

// VoidColor returns the color for permanent holes.
func (d ThemeDef) VoidColor() tcell.Color { return d.color(d.Void, tcell.ColorBlack) }

// PlayerColor returns the color for the player glyph.
func (d ThemeDef) PlayerColor() tcell.Color { return d.color(d.Player, tcell.ColorGreen) }

// ChaserColor returns the color for chaser glyphs.
func (d ThemeDef) ChaserColor() tcell.Color { return d.color(d.Chaser, tcell.ColorRed) }
