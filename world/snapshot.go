package world

import (
	"math"

	"github.com/pthm-cable/aisim/components"
)

// Snapshot is an immutable copy of the world taken between ticks. Renderers
// and stats consumers read snapshots, never the live world.
type Snapshot struct {
	Time      float64
	Bounds    components.Bounds
	GridSize  float64
	Units     []components.UnitView
	Countries []components.Country
	Resources []components.Resource
}

// Snapshot copies the current state.
func (w *World) Snapshot() *Snapshot {
	s := &Snapshot{
		Time:      w.time,
		Bounds:    w.bounds,
		GridSize:  w.gridSize,
		Units:     make([]components.UnitView, 0, len(w.units)),
		Countries: make([]components.Country, 0, len(w.countries)),
		Resources: w.Resources(),
	}
	for _, u := range w.units {
		s.Units = append(s.Units, u.View())
	}
	for _, c := range w.countries {
		s.Countries = append(s.Countries, c.Clone())
	}
	return s
}

// SelectUnit returns the unit nearest to pos within radius. The earliest
// unit in spawn order wins ties.
func (s *Snapshot) SelectUnit(pos components.Vec2, radius float64) (components.UnitView, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i := range s.Units {
		d := components.Dist(pos, s.Units[i].Position)
		if d <= radius && d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return components.UnitView{}, false
	}
	return s.Units[best], true
}

// Country looks up a country by id.
func (s *Snapshot) Country(id string) (components.Country, bool) {
	for _, c := range s.Countries {
		if c.ID == id {
			return c, true
		}
	}
	return components.Country{}, false
}

// Unit looks up a unit by id.
func (s *Snapshot) Unit(id string) (components.UnitView, bool) {
	for _, u := range s.Units {
		if u.ID == id {
			return u, true
		}
	}
	return components.UnitView{}, false
}
