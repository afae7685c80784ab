package systems

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/pthm-cable/aisim/components"
)

func TestSpatialGrid_MatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	bounds := components.Bounds{Max: components.Vec2{X: 1000, Y: 1000}}
	grid := NewSpatialGrid(bounds, 100)

	units := make([]*components.Unit, 300)
	for i := range units {
		// Some units drift outside the bounds and land in edge cells.
		units[i] = testUnit("u", "a", rng.Float64()*1200-100, rng.Float64()*1200-100)
	}
	grid.Rebuild(units)

	var buf []int
	for q := 0; q < 50; q++ {
		p := components.Vec2{X: rng.Float64() * 1000, Y: rng.Float64() * 1000}
		radius := rng.Float64() * 150

		var want []int
		for i, u := range units {
			if components.Dist(p, u.Position) < radius {
				want = append(want, i)
			}
		}

		buf = grid.QueryInto(buf[:0], p, radius)
		var got []int
		for _, i := range buf {
			if components.Dist(p, units[i].Position) < radius {
				got = append(got, i)
			}
		}

		if !slices.Equal(got, want) {
			t.Fatalf("query %d: got %v, want %v", q, got, want)
		}
	}
}

func TestSpatialGrid_SortedCandidates(t *testing.T) {
	bounds := components.Bounds{Max: components.Vec2{X: 300, Y: 300}}
	grid := NewSpatialGrid(bounds, 100)
	grid.Insert(0, components.Vec2{X: 250, Y: 250})
	grid.Insert(1, components.Vec2{X: 50, Y: 50})
	grid.Insert(2, components.Vec2{X: 150, Y: 150})

	got := grid.QueryInto(nil, components.Vec2{X: 150, Y: 150}, 150)
	if !slices.IsSorted(got) || len(got) != 3 {
		t.Errorf("candidates %v, want 3 sorted indices", got)
	}

	grid.Clear()
	if got := grid.QueryInto(nil, components.Vec2{X: 150, Y: 150}, 500); len(got) != 0 {
		t.Errorf("cleared grid returned %v", got)
	}
}
