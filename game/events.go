package game

import (
	"log/slog"

	"github.com/pthm-cable/aisim/components"
)

type eventKind uint8

const (
	eventSpawnUnit eventKind = iota
	eventSpawnRandom
	eventPlaceCountry
	eventPlaceRandomCountry
)

// event is an external request queued until the next tick boundary.
type event struct {
	kind      eventKind
	pos       components.Vec2
	countryID string
	military  bool
}

// SpawnUnit queues a new unit for countryID at pos.
func (s *Simulation) SpawnUnit(pos components.Vec2, countryID string, military bool) {
	s.enqueue(event{kind: eventSpawnUnit, pos: pos, countryID: countryID, military: military})
}

// SpawnRandomUnit queues a unit at pos for a random existing country, with a
// random military flag. The choice is made when the event is applied.
func (s *Simulation) SpawnRandomUnit(pos components.Vec2) {
	s.enqueue(event{kind: eventSpawnRandom, pos: pos})
}

// PlaceCountry queues a new country with its capital at pos, no territory
// and no population.
func (s *Simulation) PlaceCountry(pos components.Vec2) {
	s.enqueue(event{kind: eventPlaceCountry, pos: pos})
}

// PlaceRandomCountry queues a country at a random padded position.
func (s *Simulation) PlaceRandomCountry() {
	s.enqueue(event{kind: eventPlaceRandomCountry})
}

func (s *Simulation) enqueue(e event) {
	s.mu.Lock()
	s.pending = append(s.pending, e)
	s.mu.Unlock()
}

// applyEvents drains the queue in arrival order. It runs only between
// ticks' phases, never during a scan.
func (s *Simulation) applyEvents() error {
	s.mu.Lock()
	events := s.pending
	s.pending = nil
	s.mu.Unlock()

	w := s.world
	for _, e := range events {
		switch e.kind {
		case eventSpawnRandom:
			countries := w.Countries()
			if len(countries) == 0 {
				slog.Warn("spawn_rejected", "reason", "no countries")
				continue
			}
			e.countryID = countries[s.rng.Intn(len(countries))].ID
			e.military = s.rng.Float64() < 0.5
			fallthrough
		case eventSpawnUnit:
			if _, ok := w.CountryByID(e.countryID); !ok {
				slog.Warn("spawn_rejected", "reason", "unknown country", "country", e.countryID)
				continue
			}
			u, err := w.SpawnUnit(e.pos, e.countryID, e.military)
			if err != nil {
				return err
			}
			s.lifetimes.Register(u.ID, w.Time())
			slog.Debug("unit_spawned", "unit", u.ID, "country", u.CountryID, "military", u.IsMilitary())
		case eventPlaceRandomCountry:
			e.pos = w.RandomCapital()
			fallthrough
		case eventPlaceCountry:
			c := w.AddCountry(e.pos)
			slog.Info("country_placed", "country", c.ID, "x", c.Capital.X, "y", c.Capital.Y)
		}
	}
	return nil
}
