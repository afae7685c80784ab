package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/aisim/components"
	"github.com/pthm-cable/aisim/config"
)

// CanConceive reports whether a female is eligible to look for a mate this
// tick, before the probability gate.
func CanConceive(f *components.Unit, cfg *config.ReproductionConfig) bool {
	return f.Alive &&
		f.IsFemale() &&
		!f.Pregnant &&
		f.Age >= cfg.MinAge &&
		f.Energy >= cfg.FemaleMinEnergy
}

// IsCompatibleMate reports whether m can pair with the female f.
func IsCompatibleMate(f, m *components.Unit, cfg *config.ReproductionConfig) bool {
	if m.ID == f.ID || !m.Alive || m.Gender == f.Gender {
		return false
	}
	if m.Energy < cfg.MaleMinEnergy {
		return false
	}
	if math.Abs(m.Age-f.Age) > cfg.MaxAgeGap {
		return false
	}
	return components.Dist(f.Position, m.Position) < cfg.PairingRadius
}

// Pair marks f pregnant by m and stamps both with the current time.
func Pair(f, m *components.Unit, now float64) {
	f.Pregnant = true
	f.SpouseID = m.ID
	m.SpouseID = f.ID
	f.LastRepro = now
	m.LastRepro = now
}

// Gestated reports whether a pregnant female is due to give birth.
func Gestated(f *components.Unit, now float64, cfg *config.ReproductionConfig) bool {
	return f.Alive && f.Pregnant && now-f.LastRepro > cfg.Gestation
}

// LitterSize draws a uniform litter size in [MinLitter, MaxLitter].
func LitterSize(rng *rand.Rand, cfg *config.ReproductionConfig) int {
	return cfg.MinLitter + rng.Intn(cfg.MaxLitter-cfg.MinLitter+1)
}

// Offspring describes one child to spawn. The caller assigns the id.
type Offspring struct {
	Position  components.Vec2
	Type      components.UnitType
	Gender    components.Gender
	IsWorker  bool
	CountryID string
	Parent    *components.Unit
}

// Deliver clears the pregnancy, credits the litter to the mother and returns
// the children to spawn. Children inherit type and country from the mother.
func Deliver(f *components.Unit, rng *rand.Rand, cfg *config.ReproductionConfig) []Offspring {
	n := LitterSize(rng, cfg)
	f.Pregnant = false
	f.Children += n

	litter := make([]Offspring, n)
	for i := range litter {
		pos := components.Vec2{
			X: f.Position.X + (rng.Float64()-0.5)*cfg.ChildOffset,
			Y: f.Position.Y + (rng.Float64()-0.5)*cfg.ChildOffset,
		}
		gender := components.Male
		if rng.Float64() < 0.5 {
			gender = components.Female
		}
		litter[i] = Offspring{
			Position:  pos,
			Type:      f.Type,
			Gender:    gender,
			IsWorker:  rng.Float64() < cfg.WorkerChance,
			CountryID: f.CountryID,
			Parent:    f,
		}
	}
	return litter
}
