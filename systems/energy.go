package systems

import (
	"math/rand"

	"github.com/pthm-cable/aisim/components"
	"github.com/pthm-cable/aisim/config"
)

// DeathCause records why a unit died.
type DeathCause uint8

const (
	Survived DeathCause = iota
	Starved
	OldAge
	KilledInCombat
)

// String returns the display name for a DeathCause.
func (c DeathCause) String() string {
	switch c {
	case Starved:
		return "starved"
	case OldAge:
		return "old_age"
	case KilledInCombat:
		return "combat"
	default:
		return "alive"
	}
}

// UpdateLifecycle ages u, charges metabolism and integrates its position.
// Energy only goes down here. A unit that runs out of energy, or draws the
// elder death chance, is killed on the spot: it neither moves nor gathers for
// the rest of the tick.
func UpdateLifecycle(u *components.Unit, dt float64, cfg *config.UnitConfig, rng *rand.Rand) DeathCause {
	if !u.Alive {
		return Survived
	}

	u.Age += dt * cfg.AgingRate
	u.Energy -= dt*cfg.EnergyBaseRate + safeDiv(u.Age, cfg.EnergyAgeDivisor)
	if u.Energy <= 0 {
		u.Kill()
		return Starved
	}

	if u.Age > cfg.ElderAge && rng.Float64() < cfg.ElderDeathChance {
		u.Kill()
		return OldAge
	}

	u.Position.X += u.Velocity.X * dt
	u.Position.Y += u.Velocity.Y * dt
	return Survived
}

// ApplyFrailty decays the health of units past the frail age.
func ApplyFrailty(u *components.Unit, cfg *config.UnitConfig) {
	if u.Alive && u.Age > cfg.FrailAge {
		u.Health *= cfg.FrailHealthDecay
	}
}
