// Package audio synthesizes the collapse sound cues with beep
// streamers; nothing is loaded from disk.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/nlaracuente/personalspace/internal/floor"
	"github.com/nlaracuente/personalspace/internal/fx"
)

const sampleRate = beep.SampleRate(48000)

// Engine plays cues through the system speaker. Until Initialize
// succeeds every call is a silent no-op, which keeps headless runs
// working without a sound device.
type Engine struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewEngine creates an engine that has not opened the speaker yet.
func NewEngine() *Engine {
	return &Engine{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and starts the mixer.
func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(e.mixer)
	e.initialized = true
	return nil
}

// Cleanup silences the mixer. The engine can be initialized again.
func (e *Engine) Cleanup() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return
	}
	speaker.Lock()
	e.mixer.Clear()
	speaker.Unlock()
	e.initialized = false
}

// PlayCue synthesizes and plays the streamer for a cue.
func (e *Engine) PlayCue(c fx.Cue) {
	e.play(cueStreamer(c))
}

// StartDrop plays a short whoosh for one falling tile. Higher drag
// makes a longer tail.
func (e *Engine) StartDrop(_ *floor.Tile, drag float64) {
	d := time.Duration(40*drag) * time.Millisecond
	whoosh := NewEnvelope(NewOscillator(0, d, WaveNoise, sampleRate), d, d/4, d/2, sampleRate)
	e.play(newVolume(whoosh, 0.25))
}

// LookAt is a camera concern; the audio engine ignores it.
func (e *Engine) LookAt(*floor.Tile) {}

func (e *Engine) play(s beep.Streamer) {
	if s == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return
	}

	// The speaker goroutine streams from the mixer, so mutations need
	// its lock
	speaker.Lock()
	e.mixer.Add(s)
	speaker.Unlock()
}

// cueStreamer builds the recipe for one cue.
func cueStreamer(c fx.Cue) beep.Streamer {
	switch c {
	case fx.CueTileDestroyed:
		hit := NewOscillator(220, 90*time.Millisecond, WaveSquare, sampleRate)
		return newVolume(NewEnvelope(hit, 90*time.Millisecond, 5*time.Millisecond, 60*time.Millisecond, sampleRate), 0.4)
	case fx.CueCollapseSmall:
		tone := NewOscillator(160, 220*time.Millisecond, WaveSine, sampleRate)
		return newVolume(NewEnvelope(tone, 220*time.Millisecond, 10*time.Millisecond, 160*time.Millisecond, sampleRate), 0.5)
	case fx.CueCollapseLarge:
		rumble := NewEnvelope(NewOscillator(0, 450*time.Millisecond, WaveNoise, sampleRate),
			450*time.Millisecond, 20*time.Millisecond, 300*time.Millisecond, sampleRate)
		bass := NewEnvelope(NewOscillator(90, 450*time.Millisecond, WaveSine, sampleRate),
			450*time.Millisecond, 20*time.Millisecond, 350*time.Millisecond, sampleRate)
		return newVolume(beep.Mix(rumble, bass), 0.6)
	default:
		return nil
	}
}

// Ensure Engine implements the cue sink
var _ fx.Sink = (*Engine)(nil)
