// Package world owns the authoritative simulation state: units, countries,
// resource nodes, the clock, and the per-tick world transition.
package world

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aisim/components"
	"github.com/pthm-cable/aisim/config"
	"github.com/pthm-cable/aisim/neural"
	"github.com/pthm-cable/aisim/systems"
)

// World holds the units in spawn order, the countries in creation order and
// the resource nodes. It is single-writer: only the simulation mutates it,
// between or during ticks.
type World struct {
	cfg      *config.Config
	rng      *rand.Rand
	bounds   components.Bounds
	gridSize float64
	time     float64

	units     []*components.Unit
	unitIndex map[string]*components.Unit

	countries    []*components.Country
	countryIndex map[string]*components.Country

	// Resource nodes are ECS entities; nodes keeps creation order for scans.
	ecs        *ecs.World
	nodeMapper *ecs.Map2[components.Position, components.ResourceNode]
	nodeFilter *ecs.Filter2[components.Position, components.ResourceNode]
	posMap     *ecs.Map1[components.Position]
	nodeMap    *ecs.Map1[components.ResourceNode]
	nodes      []ecs.Entity

	// id allocators
	nextUnit     int
	nextCountry  int
	nextResource int
}

// TickReport summarizes what the world transition did in one tick.
type TickReport struct {
	Starved  int
	OldAge   int
	Gathered float64
	Grown    int // territory vertices added

	// Deaths lists the units that died of age or starvation this tick, in
	// unit order. They are already purged from the world.
	Deaths []Death
}

// Death is a unit that died during the world transition.
type Death struct {
	Unit  *components.Unit
	Cause systems.DeathCause
}

// New creates an empty world. rng drives every random choice the world makes.
func New(cfg *config.Config, rng *rand.Rand) *World {
	ew := ecs.NewWorld()
	return &World{
		cfg:          cfg,
		rng:          rng,
		bounds:       cfg.Derived.Bounds,
		gridSize:     cfg.GridSize,
		unitIndex:    make(map[string]*components.Unit),
		countryIndex: make(map[string]*components.Country),
		ecs:          ew,
		nodeMapper:   ecs.NewMap2[components.Position, components.ResourceNode](ew),
		nodeFilter:   ecs.NewFilter2[components.Position, components.ResourceNode](ew),
		posMap:       ecs.NewMap1[components.Position](ew),
		nodeMap:      ecs.NewMap1[components.ResourceNode](ew),
	}
}

// Bounds returns the world extent.
func (w *World) Bounds() components.Bounds { return w.bounds }

// Units returns the live unit slice in spawn order. Callers must not append
// to or reorder it.
func (w *World) Units() []*components.Unit { return w.units }

// Countries returns the countries in creation order.
func (w *World) Countries() []*components.Country { return w.countries }

// Time returns the simulation clock.
func (w *World) Time() float64 { return w.time }

// GridSize returns the display grid spacing.
func (w *World) GridSize() float64 { return w.gridSize }

// UnitByID resolves a unit id. Unknown ids and ids of purged or dead units
// report false.
func (w *World) UnitByID(id string) (*components.Unit, bool) {
	u, ok := w.unitIndex[id]
	if !ok || !u.Alive {
		return nil, false
	}
	return u, true
}

// CountryByID resolves a country id.
func (w *World) CountryByID(id string) (*components.Country, bool) {
	c, ok := w.countryIndex[id]
	return c, ok
}

// AliveCount returns the number of living units.
func (w *World) AliveCount() int {
	n := 0
	for _, u := range w.units {
		if u.Alive {
			n++
		}
	}
	return n
}

// SpawnUnit creates a unit with a fresh random brain at pos. It does not check
// that the country exists.
func (w *World) SpawnUnit(pos components.Vec2, countryID string, military bool) (*components.Unit, error) {
	brain, err := neural.NewBrain(w.rng, w.cfg.NeuralNetworkShape)
	if err != nil {
		return nil, fmt.Errorf("creating brain: %w", err)
	}

	uc := &w.cfg.Unit
	u := &components.Unit{
		Type:      components.Civilian,
		Gender:    randomGender(w.rng),
		Position:  pos,
		Velocity:  systems.Jitter(w.rng, uc.InitialJitter),
		Health:    uc.InitialHealth,
		Energy:    uc.InitialEnergy,
		Brain:     brain,
		CountryID: countryID,
		Alive:     true,
	}
	if military {
		u.Type = components.Military
	}
	w.insert(u)
	return u, nil
}

// SpawnChild creates a newborn from an offspring description. The child gets
// its own copy of the parent's brain.
func (w *World) SpawnChild(o systems.Offspring) *components.Unit {
	rc := &w.cfg.Reproduction
	u := &components.Unit{
		Type:      o.Type,
		Gender:    o.Gender,
		IsWorker:  o.IsWorker,
		Age:       rc.ChildAge,
		Position:  o.Position,
		Health:    w.cfg.Unit.InitialHealth,
		Energy:    rc.ChildEnergy,
		Brain:     o.Parent.Brain.Inherit(),
		CountryID: o.CountryID,
		Alive:     true,
		LastRepro: w.time,
	}
	w.insert(u)
	return u
}

func (w *World) insert(u *components.Unit) {
	w.nextUnit++
	u.ID = fmt.Sprintf("unit_%d", w.nextUnit)
	w.units = append(w.units, u)
	w.unitIndex[u.ID] = u
}

// AddCountry creates a country with its capital at pos, an empty territory
// and zero population.
func (w *World) AddCountry(pos components.Vec2) *components.Country {
	w.nextCountry++
	colors := w.cfg.Countries.Colors
	c := &components.Country{
		ID:        fmt.Sprintf("country_%d", w.nextCountry),
		Name:      fmt.Sprintf("Country %d", w.nextCountry),
		Color:     colors[(w.nextCountry-1)%len(colors)],
		Resources: w.cfg.Countries.Treasury,
		Capital:   pos,
	}
	w.countries = append(w.countries, c)
	w.countryIndex[c.ID] = c
	return c
}

// Update runs the per-tick world transition: advance the clock, age and move
// every living unit, run the gathering state machine for workers, decay elder
// health, purge the dead, then recount populations and grow territories.
func (w *World) Update(dt float64) TickReport {
	var report TickReport
	w.time += dt

	uc := &w.cfg.Unit
	for _, u := range w.units {
		if !u.Alive {
			continue
		}

		switch cause := systems.UpdateLifecycle(u, dt, uc, w.rng); cause {
		case systems.Starved:
			report.Starved++
			report.Deaths = append(report.Deaths, Death{Unit: u, Cause: cause})
			continue
		case systems.OldAge:
			report.OldAge++
			report.Deaths = append(report.Deaths, Death{Unit: u, Cause: cause})
			continue
		}

		if u.IsWorker {
			if e, ok := w.nearestNode(u.Position); ok {
				report.Gathered += systems.Gather(u, w.nodeMap.Get(e), w.posMap.Get(e).Vec(), &w.cfg.Gathering)
			}
		}

		systems.ApplyFrailty(u, uc)
	}

	w.purgeDead()
	report.Grown = w.updateCountries()
	return report
}

// purgeDead removes dead units, preserving the order of the survivors.
func (w *World) purgeDead() {
	alive := w.units[:0]
	for _, u := range w.units {
		if u.Alive {
			alive = append(alive, u)
		} else {
			delete(w.unitIndex, u.ID)
		}
	}
	clear(w.units[len(alive):])
	w.units = alive
}

// updateCountries recomputes every population from scratch and grows the
// territories that qualify.
func (w *World) updateCountries() int {
	for _, c := range w.countries {
		c.Population = 0
	}
	for _, u := range w.units {
		if !u.Alive {
			continue
		}
		if c, ok := w.countryIndex[u.CountryID]; ok {
			c.Population++
		}
	}

	grown := 0
	for _, c := range w.countries {
		if systems.GrowTerritory(c, &w.cfg.Territory) {
			grown++
		}
	}
	return grown
}

func randomGender(rng *rand.Rand) components.Gender {
	if rng.Float64() < 0.5 {
		return components.Female
	}
	return components.Male
}
