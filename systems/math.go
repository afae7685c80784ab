package systems

import (
	"math/rand"

	"github.com/pthm-cable/aisim/components"
)

// clampInt clamps v between minVal and maxVal.
func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// safeDiv returns 0 instead of dividing by zero.
func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Jitter returns a vector with both components uniform in [-r, r].
func Jitter(rng *rand.Rand, r float64) components.Vec2 {
	return components.Vec2{
		X: (rng.Float64()*2 - 1) * r,
		Y: (rng.Float64()*2 - 1) * r,
	}
}
