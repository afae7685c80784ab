package game

import (
	"context"
	"time"
)

// Advance runs one tick of dt if the gate is open. It is the entry point for
// frame-driven loops that measure their own dt. With Options.FixedDT set, dt
// is ignored.
func (s *Simulation) Advance(dt float64) error {
	if s.failed != nil {
		return s.failed
	}
	if !s.running.Load() {
		return nil
	}
	if s.opts.FixedDT > 0 {
		dt = s.opts.FixedDT
	}
	return s.Step(dt)
}

// Run schedules ticks until ctx is done, a tick fails, or MaxTicks is
// reached. Ticks are paced at ticks_per_second with dt measured from the
// wall clock; with FixedDT set, ticks run back to back instead. Ticks are
// skipped while the gate is closed.
func (s *Simulation) Run(ctx context.Context) error {
	if s.opts.FixedDT > 0 {
		return s.runUnpaced(ctx)
	}

	ticker := time.NewTicker(s.cfg.Derived.TickPeriod)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if err := s.Advance(dt); err != nil {
				return err
			}
			if s.done() {
				return nil
			}
		}
	}
}

func (s *Simulation) runUnpaced(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.running.Load() {
			// Closed gate: wait a period instead of spinning.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.cfg.Derived.TickPeriod):
			}
			continue
		}
		if err := s.Advance(s.opts.FixedDT); err != nil {
			return err
		}
		if s.done() {
			return nil
		}
	}
}

func (s *Simulation) done() bool {
	return s.opts.MaxTicks > 0 && s.Tick() >= s.opts.MaxTicks
}
