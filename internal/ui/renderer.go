package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/nlaracuente/personalspace/internal/avatar"
	"github.com/nlaracuente/personalspace/internal/floor"
	"github.com/nlaracuente/personalspace/internal/fx"
	"github.com/nlaracuente/personalspace/internal/gamedata"
)

const (
	playerGlyph = '@'
	chaserGlyph = 'c'

	// dropSeconds scales a tile's drag into its fall animation length
	dropSeconds = 0.4

	// focusHold is how long a LookAt keeps the camera off the player
	focusHold = 800 * time.Millisecond
)

// fallRamp is the glyph sequence a tile fades through while dropping.
var fallRamp = [...]rune{'█', '▓', '▒', '░'}

// dropAnim tracks one falling tile.
type dropAnim struct {
	tween *gween.Tween
	depth float32
	color tcell.Color
}

// Renderer draws the grid and actors, and animates collapse feedback.
// It receives drop and camera requests as the engine's fx sink.
type Renderer struct {
	screen     *Screen
	theme      gamedata.ThemeDef
	drops      map[floor.Coord]*dropAnim
	focus      floor.Coord
	focusUntil time.Time
	now        func() time.Time
}

// NewRenderer creates a renderer for the given screen and palette.
func NewRenderer(screen *Screen, theme gamedata.ThemeDef) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  theme,
		drops:  make(map[floor.Coord]*dropAnim),
		now:    time.Now,
	}
}

// Update advances the fall animations by dt seconds.
func (r *Renderer) Update(dt float32) {
	for c, anim := range r.drops {
		depth, finished := anim.tween.Update(dt)
		anim.depth = depth
		if finished {
			delete(r.drops, c)
		}
	}
}

// Render draws one frame: tiles, actors, and a status line at the
// bottom.
func (r *Renderer) Render(g *floor.Grid, player *avatar.Player, chasers []*avatar.Chaser, status string) {
	w, h := r.screen.Size()
	if w < 1 || h < 2 {
		return
	}

	cam := r.camera(g, player)
	offX, offY := w/2-cam.X, (h-1)/2-cam.Y

	r.screen.Clear()

	for _, t := range g.Tiles() {
		glyph, style := r.tileGlyph(t)
		if glyph == 0 {
			continue
		}
		r.drawCell(t.Coord().X+offX, t.Coord().Y+offY, w, h, glyph, style)
	}

	for _, c := range chasers {
		if !c.Alive() || c.Tile() == nil {
			continue
		}
		style := tcell.StyleDefault.Foreground(r.theme.ChaserColor()).Bold(true)
		r.drawCell(c.Tile().Coord().X+offX, c.Tile().Coord().Y+offY, w, h, chaserGlyph, style)
	}

	if player != nil && player.Alive() && player.Tile() != nil {
		style := tcell.StyleDefault.Foreground(r.theme.PlayerColor()).Bold(true)
		r.drawCell(player.Tile().Coord().X+offX, player.Tile().Coord().Y+offY, w, h, playerGlyph, style)
	}

	r.drawStatus(status, w, h)
	r.screen.Show()
}

// drawCell writes one rune, skipping anything outside the playfield.
func (r *Renderer) drawCell(x, y, w, h int, glyph rune, style tcell.Style) {
	if x < 0 || x >= w || y < 0 || y >= h-1 {
		return
	}
	r.screen.SetContent(x, y, glyph, style)
}

// drawStatus writes the message into the reserved bottom row.
func (r *Renderer) drawStatus(msg string, w, h int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	col := 0
	for _, ch := range msg {
		if col >= w {
			break
		}
		r.screen.SetContent(col, h-1, ch, style)
		col++
	}
}

// camera picks the coordinate to center the view on: an active LookAt
// focus first, then the player, then the grid middle.
func (r *Renderer) camera(g *floor.Grid, player *avatar.Player) floor.Coord {
	if r.now().Before(r.focusUntil) {
		return r.focus
	}
	if player != nil && player.Tile() != nil {
		return player.Tile().Coord()
	}
	maxX, maxY := g.Bounds()
	return floor.C(maxX/2, maxY/2)
}

// tileGlyph maps a tile to its rune and style. A zero rune means the
// cell draws nothing: holes and voids render as absence.
func (r *Renderer) tileGlyph(t *floor.Tile) (rune, tcell.Style) {
	if anim, ok := r.drops[t.Coord()]; ok {
		idx := int(anim.depth * float32(len(fallRamp)))
		if idx >= len(fallRamp) {
			idx = len(fallRamp) - 1
		}
		return fallRamp[idx], tcell.StyleDefault.Foreground(anim.color)
	}

	switch t.State() {
	case floor.Active:
		return fallRamp[0], tcell.StyleDefault.Foreground(r.theme.FloorColor())
	case floor.Highlighted:
		return fallRamp[0], tcell.StyleDefault.Foreground(r.theme.HighlightColor())
	default:
		return 0, tcell.StyleDefault
	}
}

// =============================================================================
// fx.Sink implementation
// =============================================================================

// PlayCue is a sound concern; the renderer ignores it.
func (r *Renderer) PlayCue(fx.Cue) {}

// StartDrop begins the fall animation for a removed tile. Drag scales
// the animation length the same way it scales the physical drop.
func (r *Renderer) StartDrop(t *floor.Tile, drag float64) {
	if t == nil {
		return
	}
	color := r.theme.FallenColor()
	if t.State() == floor.Destroyed {
		color = r.theme.DestroyedColor()
	}
	r.drops[t.Coord()] = &dropAnim{
		tween: gween.New(0, 1, float32(dropSeconds*drag), ease.InQuad),
		color: color,
	}
}

// LookAt points the camera at a collapse site for a short while.
func (r *Renderer) LookAt(t *floor.Tile) {
	if t == nil {
		return
	}
	r.focus = t.Coord()
	r.focusUntil = r.now().Add(focusHold)
}

// Ensure Renderer implements the cue sink
var _ fx.Sink = (*Renderer)(nil)
