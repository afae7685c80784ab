package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/aisim/components"
	"github.com/pthm-cable/aisim/config"
)

// ShouldGrow reports whether a country has outgrown its territory.
func ShouldGrow(c *components.Country, cfg *config.TerritoryConfig) bool {
	n := len(c.Territory)
	return n < cfg.MaxVertices && float64(c.Population) > float64(n)*cfg.GrowthFactor
}

// NextVertex extends the outline outward from its last vertex, along the
// direction from the capital. The capital stands in for the last vertex when
// the territory is empty, and a degenerate direction falls back to the
// (+1, +1) diagonal.
func NextVertex(c *components.Country, step float64) components.Vec2 {
	last := c.Capital
	if n := len(c.Territory); n > 0 {
		last = c.Territory[n-1]
	}

	dir := r2.Sub(last, c.Capital)
	if norm := r2.Norm(dir); norm > 1e-9 {
		return r2.Add(last, r2.Scale(step/norm, dir))
	}
	return r2.Add(last, components.Vec2{X: step, Y: step})
}

// GrowTerritory appends one vertex when the country qualifies and reports
// whether it did.
func GrowTerritory(c *components.Country, cfg *config.TerritoryConfig) bool {
	if !ShouldGrow(c, cfg) {
		return false
	}
	c.Territory = append(c.Territory, NextVertex(c, cfg.Step))
	return true
}

// SquareTerritory returns the initial four-vertex outline around a capital.
func SquareTerritory(capital components.Vec2, half float64) []components.Vec2 {
	return []components.Vec2{
		{X: capital.X - half, Y: capital.Y - half},
		{X: capital.X + half, Y: capital.Y - half},
		{X: capital.X + half, Y: capital.Y + half},
		{X: capital.X - half, Y: capital.Y + half},
	}
}
