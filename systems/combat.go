package systems

import (
	"github.com/pthm-cable/aisim/components"
)

// Engaged reports whether a and b are opposing military units close enough
// to fight.
func Engaged(a, b *components.Unit, radius float64) bool {
	if !a.Alive || !b.Alive || !a.IsMilitary() || !b.IsMilitary() {
		return false
	}
	if a.CountryID == b.CountryID {
		return false
	}
	return components.Dist(a.Position, b.Position) < radius
}

// ResolveCombat kills the weaker of two engaged units and returns the loser.
// Equal energy is broken by id: the lexicographically greater id dies.
func ResolveCombat(a, b *components.Unit) *components.Unit {
	loser := b
	switch {
	case a.Energy < b.Energy:
		loser = a
	case a.Energy == b.Energy && a.ID > b.ID:
		loser = a
	}
	loser.Kill()
	return loser
}
