package components

import "gonum.org/v1/gonum/spatial/r2"

// Position is the ECS component holding a resource node's location.
type Position struct {
	X, Y float64
}

// Vec returns the position as a vector.
func (p Position) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(b, a))
}
