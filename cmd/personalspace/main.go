// Package main is the entry point for personalspace.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nlaracuente/personalspace/internal/audio"
	"github.com/nlaracuente/personalspace/internal/game"
	"github.com/nlaracuente/personalspace/internal/gamedata"
	"github.com/nlaracuente/personalspace/internal/level"
	"github.com/nlaracuente/personalspace/internal/logging"
	"github.com/nlaracuente/personalspace/internal/telemetry"
	"github.com/nlaracuente/personalspace/internal/ui"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("personalspace: %v", err)
	}
}

func run() error {
	layoutName := flag.String("layout", "random", "embedded layout name, \"random\", or a path to a .txt/.png/.bmp file")
	generate := flag.String("generate", "", "generate a floor of the given size instead, e.g. 40x16")
	seed := flag.Int64("seed", 0, "rng seed, 0 seeds from the clock")
	logPath := flag.String("log", "personalspace.log", "log file path")
	debug := flag.Bool("debug", false, "log at debug level")
	demo := flag.Bool("demo", false, "run a headless demo instead of the game")
	demoSteps := flag.Int("demo-steps", 40, "tiles the demo smashes before stopping")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	// Load .env file for local development
	// This makes the OTEL_EXPORTER_OTLP_* variables available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	logLevel := zapcore.InfoLevel
	if *debug {
		logLevel = zapcore.DebugLevel
	}
	logger, sync := logging.New(*logPath, logLevel)
	defer sync()

	ctx := context.Background()

	if !telemetry.Enabled() {
		logger.Debug("no OTLP endpoint configured, tracing disabled")
	}
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		// Continue without telemetry - game still works
		logger.Warn("telemetry setup failed, running without it", zap.Error(err))
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Error("telemetry shutdown failed", zap.Error(err))
			}
		}()
	}

	tuning, err := gamedata.LoadTuning()
	if err != nil {
		return err
	}

	layout, err := pickLayout(ctx, *layoutName, *generate, tuning.ChaserCount, *seed)
	if err != nil {
		return err
	}

	opts := game.Options{
		Layout: layout,
		Tuning: tuning,
		Seed:   *seed,
		Log:    logger,
	}

	if *demo {
		return game.RunDemo(ctx, opts, *demoSteps)
	}

	if !*mute {
		sound := audio.NewEngine()
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio unavailable, running muted", zap.Error(err))
		} else {
			defer sound.Cleanup()
			opts.Sound = sound
		}
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	defer screen.Close()

	return game.New(screen, opts).Run(ctx)
}

// pickLayout resolves the layout flags: a size generates a floor, a path
// loads from disk, "random" draws from the embedded set, and anything
// else must be an embedded name.
func pickLayout(ctx context.Context, name, genSize string, chasers int, seed int64) (*level.Layout, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if genSize != "" {
		w, h, err := parseSize(genSize)
		if err != nil {
			return nil, err
		}
		return level.Generate(ctx, "generated", w, h, chasers, rand.New(rand.NewSource(seed)))
	}
	if filepath.Ext(name) != "" {
		return level.LoadFile(name)
	}

	reg, err := gamedata.LoadLayoutRegistry()
	if err != nil {
		return nil, err
	}
	if name == "random" {
		return reg.PickRandom(rand.New(rand.NewSource(seed))), nil
	}
	l := reg.GetByName(name)
	if l == nil {
		return nil, fmt.Errorf("unknown layout %q, embedded layouts: %v", name, reg.Names())
	}
	return l, nil
}

func parseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(s, "x")
	if ok {
		w, err = strconv.Atoi(ws)
		if err == nil {
			h, err = strconv.Atoi(hs)
		}
	}
	if !ok || err != nil || w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("size must look like 40x16, got %q", s)
	}
	return w, h, nil
}
