// Package game runs the simulation: tick orchestration, deferred external
// events, the start/stop gate, the scheduling loop and stats publishing.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/pthm-cable/aisim/components"
	"github.com/pthm-cable/aisim/config"
	"github.com/pthm-cable/aisim/neural"
	"github.com/pthm-cable/aisim/systems"
	"github.com/pthm-cable/aisim/telemetry"
	"github.com/pthm-cable/aisim/world"
)

// ErrTickFailed is wrapped by the error of a tick that aborted the run.
var ErrTickFailed = errors.New("tick failed")

// Options configures a Simulation.
type Options struct {
	Seed          int64
	LogStats      bool    // log stats windows and perf via slog
	OutputDir     string  // CSV logs and config snapshot; empty disables
	ArchivePath   string  // SQLite run archive; empty disables
	FixedDT       float64 // > 0: every tick advances by this much and Run is unpaced
	MaxTicks      int64   // > 0: Run returns after this many ticks
	StatsCallback func(telemetry.WindowStats)
}

// Stats is the per-tick summary published for displays.
type Stats struct {
	Tick       int64
	Time       float64
	TotalUnits int
	AliveUnits int
	Countries  int
	AvgFitness float64
}

// Simulation owns a World and drives it one tick at a time. Ticks are
// single-threaded; SpawnUnit, PlaceCountry and the other event entry points
// may be called from any goroutine and take effect at the next tick
// boundary. Snapshot, GetStats and SelectUnit read the last published state.
type Simulation struct {
	cfg   *config.Config
	opts  Options
	rng   *rand.Rand
	world *world.World
	grid  *systems.SpatialGrid

	tick    atomic.Int64
	running atomic.Bool
	failed  error

	mu      sync.Mutex
	pending []event

	snapshot atomic.Pointer[world.Snapshot]
	stats    atomic.Pointer[Stats]

	// scratch buffer for grid queries
	candidates []int

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	bookmarks *telemetry.BookmarkDetector
	lifetimes *telemetry.LifetimeTracker
	hall      *telemetry.HallOfFame
	output    *telemetry.OutputManager
	archive   *telemetry.Archive
}

// New validates cfg against the sensor layout, seeds the world and opens any
// telemetry sinks named in opts. The simulation starts stopped.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	if cfg.Derived.NumInputs != systems.NumInputs {
		return nil, fmt.Errorf("%w: network takes %d inputs, units provide %d",
			neural.ErrDimensionMismatch, cfg.Derived.NumInputs, systems.NumInputs)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	s := &Simulation{
		cfg:       cfg,
		opts:      opts,
		rng:       rng,
		world:     world.New(cfg, rng),
		grid:      systems.NewSpatialGrid(cfg.Derived.Bounds, cfg.GridSize),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perf:      telemetry.NewPerfCollector(int(cfg.TicksPerSecond)),
		bookmarks: telemetry.NewBookmarkDetector(10),
		lifetimes: telemetry.NewLifetimeTracker(),
		hall:      telemetry.NewHallOfFame(cfg.Telemetry.HallOfFameSize),
	}

	if err := s.world.Populate(); err != nil {
		return nil, fmt.Errorf("populating world: %w", err)
	}
	for _, u := range s.world.Units() {
		s.lifetimes.Register(u.ID, 0)
	}

	var err error
	if s.output, err = telemetry.NewOutputManager(opts.OutputDir); err != nil {
		return nil, err
	}
	if err := s.output.WriteConfig(cfg); err != nil {
		s.output.Close()
		return nil, err
	}
	if s.archive, err = telemetry.OpenArchive(context.Background(), opts.ArchivePath, opts.Seed, cfg); err != nil {
		s.output.Close()
		return nil, err
	}

	s.publish()
	return s, nil
}

// Close writes the hall of fame and releases the telemetry sinks.
func (s *Simulation) Close() error {
	if err := s.output.WriteHallOfFame(s.hall); err != nil {
		slog.Error("telemetry_write_failed", "error", err)
	}
	return errors.Join(s.output.Close(), s.archive.Close())
}

// Start opens the scheduling gate.
func (s *Simulation) Start() {
	if !s.running.Swap(true) {
		slog.Info("simulation_started", "tick", s.Tick(), "seed", s.opts.Seed)
	}
}

// Stop closes the scheduling gate. A tick already running completes.
func (s *Simulation) Stop() {
	if s.running.Swap(false) {
		slog.Info("simulation_stopped", "tick", s.Tick())
	}
}

// Running reports whether the gate is open.
func (s *Simulation) Running() bool { return s.running.Load() }

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int64 { return s.tick.Load() }

// Err returns the error that aborted the run, if any.
func (s *Simulation) Err() error { return s.failed }

// HallOfFame returns the fittest units that have died so far.
func (s *Simulation) HallOfFame() *telemetry.HallOfFame { return s.hall }

// Config returns the configuration the simulation runs with.
func (s *Simulation) Config() *config.Config { return s.cfg }

// Snapshot returns the state published after the last tick.
func (s *Simulation) Snapshot() *world.Snapshot { return s.snapshot.Load() }

// GetStats returns the stats published after the last tick.
func (s *Simulation) GetStats() Stats { return *s.stats.Load() }

// SelectUnit finds the unit nearest to pos within radius in the last
// published snapshot. It never touches the live world.
func (s *Simulation) SelectUnit(pos components.Vec2, radius float64) (components.UnitView, bool) {
	return s.Snapshot().SelectUnit(pos, radius)
}

// publish stores a fresh snapshot and stats for readers.
func (s *Simulation) publish() {
	snap := s.world.Snapshot()
	s.snapshot.Store(snap)

	fitness := make([]float64, 0, len(snap.Units))
	for _, u := range snap.Units {
		if u.Alive {
			fitness = append(fitness, u.Fitness)
		}
	}
	s.stats.Store(&Stats{
		Tick:       s.Tick(),
		Time:       snap.Time,
		TotalUnits: len(snap.Units),
		AliveUnits: len(fitness),
		Countries:  len(snap.Countries),
		AvgFitness: averageFitness(fitness),
	})
}
