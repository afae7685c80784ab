package game

import (
	"context"
	"log/slog"

	"github.com/pthm-cable/aisim/telemetry"
)

// flushTelemetry closes the stats window when it has elapsed and fans the
// result out to the callback, the log, the CSV files and the archive.
// Sink failures are logged and never fail the tick.
func (s *Simulation) flushTelemetry() {
	now := s.world.Time()
	if !s.collector.ShouldFlush(now) {
		return
	}

	stats := s.collector.Flush(s.Tick(), now, s.sample())
	perfStats := s.perf.Stats()

	if s.opts.StatsCallback != nil {
		s.opts.StatsCallback(stats)
	}

	if s.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	ctx := context.Background()
	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Error("telemetry_write_failed", "error", err)
	}
	if err := s.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("telemetry_write_failed", "error", err)
	}
	if err := s.archive.RecordWindow(ctx, stats); err != nil {
		slog.Error("telemetry_write_failed", "error", err)
	}

	for _, bm := range s.bookmarks.Check(stats) {
		if s.opts.LogStats {
			bm.LogBookmark()
		}
		if err := s.output.WriteBookmark(bm); err != nil {
			slog.Error("telemetry_write_failed", "error", err)
		}
		if err := s.archive.RecordBookmark(ctx, bm); err != nil {
			slog.Error("telemetry_write_failed", "error", err)
		}
	}
}

// sample measures the population for the window that is closing.
func (s *Simulation) sample() telemetry.Sample {
	w := s.world
	units := w.Units()
	smp := telemetry.Sample{
		Countries:     len(w.Countries()),
		Energies:      make([]float64, 0, len(units)),
		Ages:          make([]float64, 0, len(units)),
		Fitness:       make([]float64, 0, len(units)),
		ResourceStock: w.TotalStock(),
	}

	for _, u := range units {
		if !u.Alive {
			continue
		}
		smp.Units++
		if u.IsMilitary() {
			smp.Military++
		}
		if u.IsWorker {
			smp.Workers++
		}
		if u.Pregnant {
			smp.Pregnant++
		}
		smp.Energies = append(smp.Energies, u.Energy)
		smp.Ages = append(smp.Ages, u.Age)
		smp.Fitness = append(smp.Fitness, u.Brain.Fitness)
		smp.MaxGeneration = max(smp.MaxGeneration, u.Brain.Generation)
	}
	for _, c := range w.Countries() {
		smp.TerritoryVertices += len(c.Territory)
	}
	return smp
}
