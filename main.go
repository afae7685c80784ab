package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aisim/config"
	"github.com/pthm-cable/aisim/game"
	"github.com/pthm-cable/aisim/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	archivePath := flag.String("archive", "", "SQLite file to archive telemetry windows into")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	fixedDT := flag.Float64("fixed-dt", 0, "Advance every tick by this many seconds (0 = measured frame time)")
	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:        rngSeed,
		LogStats:    *logStats,
		OutputDir:   *outputDir,
		ArchivePath: *archivePath,
		FixedDT:     *fixedDT,
		MaxTicks:    *maxTicks,
	}

	sim, err := game.New(cfg, opts)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}

	if *headless {
		err = runHeadless(sim, opts)
	} else {
		err = runGraphical(sim, cfg, opts)
	}
	if cerr := sim.Close(); cerr != nil {
		slog.Error("failed to close telemetry", "error", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}

// runHeadless ticks without a window until max ticks, a failed tick, or an
// interrupt.
func runHeadless(sim *game.Simulation, opts game.Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", opts.MaxTicks,
		"fixed_dt", opts.FixedDT,
	)

	sim.Start()
	err := sim.Run(ctx)
	switch {
	case err == nil:
		slog.Info("max ticks reached", "tick", sim.Tick())
	case errors.Is(err, context.Canceled):
		slog.Info("interrupted", "tick", sim.Tick())
		err = nil
	default:
		slog.Error("tick_failed", "tick", sim.Tick(), "error", err)
	}
	return err
}

// runGraphical drives one tick per frame with the measured frame time. The
// simulation starts stopped; the Start button or Space opens the gate.
func runGraphical(sim *game.Simulation, cfg *config.Config, opts game.Options) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "AiSim")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	view := ui.NewView(sim, "AiSim", int32(cfg.Screen.Width), int32(cfg.Screen.Height))
	logged := false

	for !rl.WindowShouldClose() {
		view.HandleInput()

		if err := sim.Advance(float64(rl.GetFrameTime())); err != nil && !logged {
			// The gate is closed now; keep the window up so the last state
			// stays inspectable.
			slog.Error("tick_failed", "tick", sim.Tick(), "error", err)
			logged = true
		}

		rl.BeginDrawing()
		view.Draw()
		rl.EndDrawing()

		if opts.MaxTicks > 0 && sim.Tick() >= opts.MaxTicks {
			break
		}
	}
	return sim.Err()
}
