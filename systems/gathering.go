package systems

import (
	"math"

	"github.com/pthm-cable/aisim/components"
	"github.com/pthm-cable/aisim/config"
)

// Gather runs one step of the worker state machine against the nearest
// non-empty node. Within the harvest radius the unit takes
// min(energy/divisor, amount, cap), paid for with the same amount of energy,
// and the amount taken is returned. Otherwise the unit is steered towards the
// node at the seek speed and 0 is returned. Passing a nil node is a no-op.
func Gather(u *components.Unit, node *components.ResourceNode, nodePos components.Vec2, cfg *config.GatheringConfig) float64 {
	if !u.Alive || !u.IsWorker || node == nil || node.Amount <= 0 {
		return 0
	}

	d := components.Dist(u.Position, nodePos)
	if d < cfg.HarvestRadius {
		take := math.Min(math.Min(u.Energy/cfg.EnergyDivisor, node.Amount), cfg.MaxPerTick)
		if take <= 0 {
			return 0
		}
		u.Resources += take
		node.Amount -= take
		u.Energy = math.Max(0, u.Energy-take)
		return take
	}

	if d > 0.1 {
		u.Velocity.X = (nodePos.X - u.Position.X) / d * cfg.SeekSpeed
		u.Velocity.Y = (nodePos.Y - u.Position.Y) / d * cfg.SeekSpeed
	}
	return 0
}
