package world

import (
	"fmt"

	"github.com/pthm-cable/aisim/components"
	"github.com/pthm-cable/aisim/systems"
)

// Populate seeds the configured number of countries, each with its starting
// units, and scatters the resource nodes.
func (w *World) Populate() error {
	for i := 0; i < w.cfg.Countries.Initial; i++ {
		if _, err := w.FoundCountry(w.RandomCapital()); err != nil {
			return err
		}
	}
	w.GenerateResources(w.cfg.Resources.Count)
	return nil
}

// RandomCapital picks a point at least Padding away from every edge. Worlds
// too small for the padding fall back to the centre.
func (w *World) RandomCapital() components.Vec2 {
	pad := w.cfg.Countries.Padding
	spanX := w.bounds.Max.X - w.bounds.Min.X - 2*pad
	spanY := w.bounds.Max.Y - w.bounds.Min.Y - 2*pad
	if spanX <= 0 || spanY <= 0 {
		return components.Vec2{
			X: (w.bounds.Min.X + w.bounds.Max.X) / 2,
			Y: (w.bounds.Min.Y + w.bounds.Max.Y) / 2,
		}
	}
	return components.Vec2{
		X: w.bounds.Min.X + pad + w.rng.Float64()*spanX,
		Y: w.bounds.Min.Y + pad + w.rng.Float64()*spanY,
	}
}

// FoundCountry creates a country with a square territory around capital and
// spawns its starting units inside the square. Every WorkerEvery-th unit is a
// worker and every MilitaryEvery-th is military, counting from the first.
func (w *World) FoundCountry(capital components.Vec2) (*components.Country, error) {
	c := w.AddCountry(capital)
	half := w.cfg.Territory.InitialHalfExtent
	c.Territory = systems.SquareTerritory(capital, half)

	uc := &w.cfg.Unit
	for i := 0; i < w.cfg.StartingUnitsPerCountry; i++ {
		pos := components.Vec2{
			X: capital.X + (w.rng.Float64()*2-1)*half,
			Y: capital.Y + (w.rng.Float64()*2-1)*half,
		}
		u, err := w.SpawnUnit(pos, c.ID, i%uc.MilitaryEvery == 0)
		if err != nil {
			return nil, fmt.Errorf("spawning starting unit for %s: %w", c.ID, err)
		}
		u.IsWorker = i%uc.WorkerEvery == 0
		u.Age = uc.StartingAgeMin
		if uc.StartingAgeSpan > 0 {
			u.Age += float64(w.rng.Intn(uc.StartingAgeSpan))
		}
		c.Population++
	}
	return c, nil
}
