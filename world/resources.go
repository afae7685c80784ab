package world

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aisim/components"
)

// AddResource creates a resource node entity.
func (w *World) AddResource(pos components.Vec2, kind components.ResourceKind, amount float64) string {
	w.nextResource++
	node := components.ResourceNode{
		ID:     fmt.Sprintf("resource_%d", w.nextResource),
		Kind:   kind,
		Amount: amount,
	}
	p := components.Position{X: pos.X, Y: pos.Y}
	e := w.nodeMapper.NewEntity(&p, &node)
	w.nodes = append(w.nodes, e)
	return node.ID
}

// GenerateResources scatters n nodes uniformly over the world with integer
// amounts in [MinAmount, MaxAmount).
func (w *World) GenerateResources(n int) {
	rc := &w.cfg.Resources
	for i := 0; i < n; i++ {
		pos := components.Vec2{
			X: w.bounds.Min.X + w.rng.Float64()*(w.bounds.Max.X-w.bounds.Min.X),
			Y: w.bounds.Min.Y + w.rng.Float64()*(w.bounds.Max.Y-w.bounds.Min.Y),
		}
		kind := components.Wood
		if w.rng.Float64() < rc.FoodChance {
			kind = components.Food
		}
		amount := rc.MinAmount
		if span := rc.MaxAmount - rc.MinAmount; span > 0 {
			amount += w.rng.Intn(span)
		}
		w.AddResource(pos, kind, float64(amount))
	}
}

// nearestNode returns the closest node that still has stock. Nodes are
// scanned in creation order and the first wins ties.
func (w *World) nearestNode(p components.Vec2) (ecs.Entity, bool) {
	var best ecs.Entity
	found := false
	bestDist := math.Inf(1)
	for _, e := range w.nodes {
		if w.nodeMap.Get(e).Amount <= 0 {
			continue
		}
		if d := components.Dist(p, w.posMap.Get(e).Vec()); d < bestDist {
			bestDist = d
			best = e
			found = true
		}
	}
	return best, found
}

// Resources returns a copy of every node, including depleted ones.
func (w *World) Resources() []components.Resource {
	out := make([]components.Resource, 0, len(w.nodes))
	query := w.nodeFilter.Query()
	for query.Next() {
		pos, node := query.Get()
		out = append(out, components.Resource{
			ID:       node.ID,
			Position: pos.Vec(),
			Kind:     node.Kind,
			Amount:   node.Amount,
		})
	}
	return out
}

// TotalStock returns the sum of all node amounts.
func (w *World) TotalStock() float64 {
	total := 0.0
	query := w.nodeFilter.Query()
	for query.Next() {
		_, node := query.Get()
		total += node.Amount
	}
	return total
}
