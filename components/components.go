// Package components defines the data carried by units, countries and resource nodes.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Vec2 is a plain 2D point or vector.
type Vec2 = r2.Vec

// Bounds is the world extent; Min holds (minX, minY) and Max holds (maxX, maxY).
type Bounds = r2.Box

// UnitType separates civilians from soldiers.
type UnitType uint8

const (
	Civilian UnitType = iota
	Military
)

// String returns the display name for a UnitType.
func (t UnitType) String() string {
	if t == Military {
		return "military"
	}
	return "civilian"
}

// Gender of a unit. Only females can become pregnant.
type Gender uint8

const (
	Male Gender = iota
	Female
)

// String returns the display name for a Gender.
func (g Gender) String() string {
	if g == Female {
		return "female"
	}
	return "male"
}

// ResourceKind is the type of a resource node.
type ResourceKind uint8

const (
	Wood ResourceKind = iota
	Food
)

// String returns the display name for a ResourceKind.
func (k ResourceKind) String() string {
	if k == Food {
		return "food"
	}
	return "wood"
}
