package game

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/aisim/components"
	"github.com/pthm-cable/aisim/systems"
	"github.com/pthm-cable/aisim/telemetry"
)

// Step runs exactly one tick of dt seconds, regardless of the gate. Pending
// events are applied first. A failing tick stops the simulation and every
// later Step returns the same error.
func (s *Simulation) Step(dt float64) error {
	if s.failed != nil {
		return s.failed
	}
	if err := s.step(dt); err != nil {
		s.failed = fmt.Errorf("%w at tick %d: %w", ErrTickFailed, s.Tick(), err)
		s.running.Store(false)
		return s.failed
	}
	return nil
}

func (s *Simulation) step(dt float64) error {
	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseEvents)
	if err := s.applyEvents(); err != nil {
		return fmt.Errorf("applying events: %w", err)
	}

	s.perf.StartPhase(telemetry.PhaseInference)
	if err := s.infer(); err != nil {
		return err
	}

	s.perf.StartPhase(telemetry.PhaseReproduction)
	s.reproduce()

	s.perf.StartPhase(telemetry.PhaseBirth)
	s.birth()

	s.perf.StartPhase(telemetry.PhaseCombat)
	s.combat()

	s.perf.StartPhase(telemetry.PhaseWorld)
	s.reward(dt)
	report := s.world.Update(dt)
	for _, d := range report.Deaths {
		s.retire(d.Unit, d.Cause)
	}
	s.collector.RecordLifecycleDeaths(report.Starved, report.OldAge)
	s.collector.RecordGathered(report.Gathered)
	if err := s.checkInvariants(); err != nil {
		return err
	}

	s.tick.Add(1)

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.publish()
	s.flushTelemetry()

	s.perf.EndTick()
	return nil
}

// infer runs every living unit's brain and applies its outputs.
func (s *Simulation) infer() error {
	w := s.world
	for _, u := range w.Units() {
		if !u.Alive {
			continue
		}
		inputs := systems.BuildInputs(u, w, &s.cfg.Unit)
		outputs, err := u.Brain.Think(inputs)
		if err != nil {
			return fmt.Errorf("inference for %s: %w", u.ID, err)
		}
		systems.ApplyOutputs(u, outputs, s.cfg.Unit.MaxSpeed)
	}
	return nil
}

// reproduce pairs each eligible female that passes the chance gate with the
// first compatible male in unit order.
func (s *Simulation) reproduce() {
	rc := &s.cfg.Reproduction
	units := s.world.Units()
	now := s.world.Time()
	s.grid.Rebuild(units)

	for _, f := range units {
		if !systems.CanConceive(f, rc) || s.rng.Float64() >= rc.Chance {
			continue
		}
		s.candidates = s.grid.QueryInto(s.candidates[:0], f.Position, rc.PairingRadius)
		for _, i := range s.candidates {
			m := units[i]
			if systems.IsCompatibleMate(f, m, rc) {
				systems.Pair(f, m, now)
				s.collector.RecordPairing()
				break
			}
		}
	}
}

// birth delivers every due pregnancy. Newborns are appended after the scan
// bound so they are not considered this tick.
func (s *Simulation) birth() {
	rc := &s.cfg.Reproduction
	now := s.world.Time()
	n := len(s.world.Units())

	for i := 0; i < n; i++ {
		f := s.world.Units()[i]
		if !systems.Gestated(f, now, rc) {
			continue
		}
		litter := systems.Deliver(f, s.rng, rc)
		for _, o := range litter {
			c := s.world.SpawnChild(o)
			s.lifetimes.Register(c.ID, now)
		}
		s.collector.RecordBirths(len(litter))
	}
}

// combat resolves at most one engagement per ordered pair of countries: the
// first pair of opposing military units in range, in unit order.
func (s *Simulation) combat() {
	radius := s.cfg.Combat.EngagementRadius
	units := s.world.Units()
	countries := s.world.Countries()
	s.grid.Rebuild(units)

	for _, ca := range countries {
		for _, cb := range countries {
			if ca.ID == cb.ID {
				continue
			}
			s.engage(units, ca.ID, cb.ID, radius)
		}
	}
}

func (s *Simulation) engage(units []*components.Unit, countryA, countryB string, radius float64) {
	for _, a := range units {
		if a.CountryID != countryA || !a.Alive || !a.IsMilitary() {
			continue
		}
		s.candidates = s.grid.QueryInto(s.candidates[:0], a.Position, radius)
		for _, i := range s.candidates {
			b := units[i]
			if b.CountryID != countryB || !systems.Engaged(a, b, radius) {
				continue
			}
			loser := systems.ResolveCombat(a, b)
			winner := a
			if loser == a {
				winner = b
			}
			s.lifetimes.RecordKill(winner.ID)
			s.retire(loser, systems.KilledInCombat)
			s.collector.RecordCombatDeath()
			return
		}
	}
}

// retire stops tracking a dead unit and offers it to the hall of fame.
func (s *Simulation) retire(u *components.Unit, cause systems.DeathCause) {
	stats := s.lifetimes.Remove(u.ID)
	if s.hall.Qualifies(u.Brain.Fitness) {
		s.hall.Consider(telemetry.NewHallEntry(u, cause.String(), s.world.Time(), stats))
	}
}

// reward credits survival time to every living unit.
func (s *Simulation) reward(dt float64) {
	for _, u := range s.world.Units() {
		if u.Alive {
			u.Brain.Reward(dt)
		}
	}
}

// checkInvariants rejects state that would silently corrupt later ticks.
func (s *Simulation) checkInvariants() error {
	for _, u := range s.world.Units() {
		if !u.Alive {
			return fmt.Errorf("dead unit %s survived the purge", u.ID)
		}
		if math.IsNaN(u.Energy) || math.IsNaN(u.Position.X) || math.IsNaN(u.Position.Y) {
			return fmt.Errorf("unit %s has non-finite state", u.ID)
		}
		if u.Pregnant && !u.IsFemale() {
			return fmt.Errorf("unit %s is pregnant but not female", u.ID)
		}
	}
	return nil
}

// averageFitness divides by at least one so an empty world averages to 0.
func averageFitness(fitness []float64) float64 {
	return floats.Sum(fitness) / math.Max(float64(len(fitness)), 1)
}
