// Package systems holds the per-unit rules of the simulation: sensing,
// actuation, aging, gathering, mating, combat and territory growth.
package systems

import (
	"math"

	"github.com/pthm-cable/aisim/components"
	"github.com/pthm-cable/aisim/config"
)

// NumInputs is the width of the vector produced by BuildInputs.
const NumInputs = 8

// Output slots read by ApplyOutputs.
const (
	OutHeadingX = iota
	OutHeadingY
	OutSpeed
)

// WorldView is the read-only slice of the world that sensing needs.
type WorldView interface {
	Bounds() components.Bounds
	Units() []*components.Unit
}

// BuildInputs returns the sensor vector for u:
// [x/maxX, y/maxY, vx/scale, vy/scale, health/100, energy/100, dx/enemy, dy/enemy]
// where (dx, dy) points to the nearest living unit of another country, or is
// (0, 0) when there is none.
func BuildInputs(u *components.Unit, view WorldView, cfg *config.UnitConfig) []float64 {
	b := view.Bounds()
	inputs := make([]float64, NumInputs)
	inputs[0] = safeDiv(u.Position.X, b.Max.X)
	inputs[1] = safeDiv(u.Position.Y, b.Max.Y)
	inputs[2] = safeDiv(u.Velocity.X, cfg.VelocityScale)
	inputs[3] = safeDiv(u.Velocity.Y, cfg.VelocityScale)
	inputs[4] = u.Health / 100
	inputs[5] = u.Energy / 100

	if enemy, ok := NearestEnemy(u, view.Units()); ok {
		inputs[6] = safeDiv(enemy.Position.X-u.Position.X, cfg.EnemyScale)
		inputs[7] = safeDiv(enemy.Position.Y-u.Position.Y, cfg.EnemyScale)
	}
	return inputs
}

// NearestEnemy scans all units for the closest living unit of a different
// country. The first unit in slice order wins ties.
func NearestEnemy(u *components.Unit, units []*components.Unit) (*components.Unit, bool) {
	var best *components.Unit
	bestDist := math.Inf(1)
	for _, other := range units {
		if other.ID == u.ID || other.CountryID == u.CountryID || !other.Alive {
			continue
		}
		if d := components.Dist(u.Position, other.Position); d < bestDist {
			bestDist = d
			best = other
		}
	}
	return best, best != nil
}

// ApplyOutputs sets velocity from the network outputs: slots 0 and 1 are an
// unnormalized heading, slot 2 a speed scalar. Missing slots count as zero.
func ApplyOutputs(u *components.Unit, outputs []float64, maxSpeed float64) {
	speed := math.Abs(slot(outputs, OutSpeed)) * maxSpeed
	u.Velocity.X = slot(outputs, OutHeadingX) * speed
	u.Velocity.Y = slot(outputs, OutHeadingY) * speed
}

func slot(outputs []float64, i int) float64 {
	if i < len(outputs) {
		return outputs[i]
	}
	return 0
}
