package components

import (
	"math"
	"testing"
)

func TestKillClampsHealth(t *testing.T) {
	u := &Unit{Alive: true, Health: 70}
	u.Kill()
	if u.Alive || u.Health != 0 {
		t.Errorf("after Kill alive=%v health=%v, want false/0", u.Alive, u.Health)
	}
}

func TestDist(t *testing.T) {
	d := Dist(Vec2{X: 0, Y: 0}, Vec2{X: 3, Y: 4})
	if math.Abs(d-5) > 1e-12 {
		t.Errorf("Dist = %v, want 5", d)
	}
}

func TestCountryCloneIndependent(t *testing.T) {
	c := &Country{ID: "country_0", Territory: []Vec2{{X: 1, Y: 1}}}
	cp := c.Clone()
	cp.Territory[0].X = 99
	if c.Territory[0].X != 1 {
		t.Error("Clone shares territory storage")
	}
}

func TestDescribe(t *testing.T) {
	u := UnitView{ID: "unit_3", Type: Military, IsWorker: true, Gender: Female, Pregnant: true}
	fields := Describe(u)

	byLabel := make(map[string]string)
	for _, f := range fields {
		byLabel[f.Label] = f.Value
	}
	if byLabel["Role"] != "military, worker" {
		t.Errorf("Role = %q", byLabel["Role"])
	}
	if byLabel["Spouse"] != "-" {
		t.Errorf("Spouse = %q, want -", byLabel["Spouse"])
	}
	if _, ok := byLabel["Pregnant"]; !ok {
		t.Error("pregnant unit should list the Pregnant field")
	}
}
