package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/aisim/components"
	"github.com/pthm-cable/aisim/config"
)

// testView is a minimal WorldView over a fixed unit list.
type testView struct {
	bounds components.Bounds
	units  []*components.Unit
}

func (v *testView) Bounds() components.Bounds   { return v.bounds }
func (v *testView) Units() []*components.Unit { return v.units }

func newView(units ...*components.Unit) *testView {
	return &testView{
		bounds: components.Bounds{Max: components.Vec2{X: 2000, Y: 2000}},
		units:  units,
	}
}

func testUnit(id, country string, x, y float64) *components.Unit {
	return &components.Unit{
		ID:        id,
		CountryID: country,
		Position:  components.Vec2{X: x, Y: y},
		Health:    100,
		Energy:    100,
		Alive:     true,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ---------- BuildInputs ----------

func TestBuildInputs_Normalization(t *testing.T) {
	cfg := config.Default()
	u := testUnit("unit_1", "country_1", 500, 1000)
	u.Velocity = components.Vec2{X: 25, Y: -50}
	u.Health = 80
	u.Energy = 40

	enemy := testUnit("unit_2", "country_2", 750, 900)
	in := BuildInputs(u, newView(u, enemy), &cfg.Unit)

	want := []float64{0.25, 0.5, 0.5, -1, 0.8, 0.4, 0.5, -0.2}
	if len(in) != NumInputs {
		t.Fatalf("got %d inputs, want %d", len(in), NumInputs)
	}
	for i := range want {
		if !almostEqual(in[i], want[i]) {
			t.Errorf("input[%d] = %v, want %v", i, in[i], want[i])
		}
	}
}

func TestBuildInputs_NoEnemy(t *testing.T) {
	cfg := config.Default()
	u := testUnit("unit_1", "country_1", 100, 100)
	friend := testUnit("unit_2", "country_1", 110, 100)
	dead := testUnit("unit_3", "country_2", 120, 100)
	dead.Kill()

	in := BuildInputs(u, newView(u, friend, dead), &cfg.Unit)
	if in[6] != 0 || in[7] != 0 {
		t.Errorf("enemy displacement = (%v, %v), want (0, 0)", in[6], in[7])
	}
}

// ---------- NearestEnemy ----------

func TestNearestEnemy_PicksClosestLiving(t *testing.T) {
	u := testUnit("unit_1", "a", 0, 0)
	far := testUnit("unit_2", "b", 100, 0)
	near := testUnit("unit_3", "c", 10, 0)
	deadNearer := testUnit("unit_4", "b", 5, 0)
	deadNearer.Kill()
	ally := testUnit("unit_5", "a", 1, 0)

	got, ok := NearestEnemy(u, []*components.Unit{u, far, near, deadNearer, ally})
	if !ok || got != near {
		t.Errorf("NearestEnemy = %v, want unit_3", got)
	}
}

func TestNearestEnemy_TieGoesToFirst(t *testing.T) {
	u := testUnit("unit_1", "a", 0, 0)
	first := testUnit("unit_2", "b", 10, 0)
	second := testUnit("unit_3", "b", -10, 0)

	got, _ := NearestEnemy(u, []*components.Unit{u, first, second})
	if got != first {
		t.Errorf("tie resolved to %s, want unit_2", got.ID)
	}
}

// ---------- ApplyOutputs ----------

func TestApplyOutputs(t *testing.T) {
	tests := []struct {
		name    string
		outputs []float64
		want    components.Vec2
	}{
		{"full", []float64{0.5, -1, 0.5}, components.Vec2{X: 7.5, Y: -15}},
		{"negative speed uses magnitude", []float64{1, 1, -1}, components.Vec2{X: 30, Y: 30}},
		{"missing speed", []float64{1, 1}, components.Vec2{}},
		{"empty", nil, components.Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := testUnit("unit_1", "a", 0, 0)
			u.Velocity = components.Vec2{X: 99, Y: 99}
			ApplyOutputs(u, tt.outputs, 30)
			if !almostEqual(u.Velocity.X, tt.want.X) || !almostEqual(u.Velocity.Y, tt.want.Y) {
				t.Errorf("velocity = %v, want %v", u.Velocity, tt.want)
			}
		})
	}
}
