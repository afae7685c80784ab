package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/aisim/components"
	"github.com/pthm-cable/aisim/config"
)

func TestShouldGrow(t *testing.T) {
	cfg := config.Default()
	c := &components.Country{
		Capital:   components.Vec2{X: 500, Y: 500},
		Territory: SquareTerritory(components.Vec2{X: 500, Y: 500}, 50),
	}

	c.Population = 8
	if ShouldGrow(c, &cfg.Territory) {
		t.Error("population 8 with 4 vertices should not grow")
	}
	c.Population = 9
	if !ShouldGrow(c, &cfg.Territory) {
		t.Error("population 9 with 4 vertices should grow")
	}
}

func TestGrowTerritory_CapsAtMaxVertices(t *testing.T) {
	cfg := config.Default()
	c := &components.Country{
		Capital:    components.Vec2{X: 500, Y: 500},
		Territory:  SquareTerritory(components.Vec2{X: 500, Y: 500}, 50),
		Population: 1000,
	}

	for i := 0; i < 20; i++ {
		GrowTerritory(c, &cfg.Territory)
	}
	if len(c.Territory) != cfg.Territory.MaxVertices {
		t.Errorf("territory has %d vertices, want %d", len(c.Territory), cfg.Territory.MaxVertices)
	}
}

func TestNextVertex_ExtendsOutward(t *testing.T) {
	c := &components.Country{
		Capital:   components.Vec2{X: 0, Y: 0},
		Territory: []components.Vec2{{X: 30, Y: 40}},
	}

	v := NextVertex(c, 10)
	if math.Abs(v.X-36) > 1e-9 || math.Abs(v.Y-48) > 1e-9 {
		t.Errorf("next vertex = %v, want (36, 48)", v)
	}
}

func TestNextVertex_Degenerate(t *testing.T) {
	c := &components.Country{Capital: components.Vec2{X: 100, Y: 100}}

	v := NextVertex(c, 18)
	if v.X != 118 || v.Y != 118 {
		t.Errorf("empty territory vertex = %v, want (118, 118)", v)
	}
}

func TestSquareTerritory(t *testing.T) {
	sq := SquareTerritory(components.Vec2{X: 100, Y: 200}, 50)
	if len(sq) != 4 {
		t.Fatalf("got %d vertices, want 4", len(sq))
	}
	if sq[0] != (components.Vec2{X: 50, Y: 150}) || sq[2] != (components.Vec2{X: 150, Y: 250}) {
		t.Errorf("unexpected square %v", sq)
	}
}
