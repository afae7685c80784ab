package game

import (
	"testing"

	"github.com/pthm-cable/aisim/components"
	"github.com/pthm-cable/aisim/config"
)

// ---------- combat ----------

func TestCombat_RecordsKillAndHallEntry(t *testing.T) {
	s := emptySim(t, nil)
	a := s.world.AddCountry(components.Vec2{X: 400, Y: 400})
	b := s.world.AddCountry(components.Vec2{X: 600, Y: 600})

	winner := addUnit(t, s, a.ID, 500, 500, true)
	winner.Energy = 80
	loser := addUnit(t, s, b.ID, 510, 500, true)
	loser.Energy = 40

	s.combat()

	if got := s.lifetimes.Get(winner.ID); got == nil || got.Kills != 1 {
		t.Errorf("winner stats = %+v, want 1 kill", got)
	}
	if s.lifetimes.Get(loser.ID) != nil {
		t.Error("dead unit still tracked")
	}

	entries := s.HallOfFame().Entries()
	if len(entries) != 1 {
		t.Fatalf("hall has %d entries, want 1", len(entries))
	}
	if entries[0].UnitID != loser.ID || entries[0].Cause != "combat" || entries[0].CountryID != b.ID {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestLifecycleDeath_EntersHallOfFame(t *testing.T) {
	s := emptySim(t, nil)
	c := s.world.AddCountry(components.Vec2{X: 400, Y: 400})
	u := addUnit(t, s, c.ID, 500, 500, false)
	u.Energy = 0

	mustStep(t, s, testDT)

	entries := s.HallOfFame().Entries()
	if len(entries) != 1 || entries[0].UnitID != u.ID || entries[0].Cause != "starved" {
		t.Errorf("entries = %+v", entries)
	}
	if s.lifetimes.Count() != 0 {
		t.Errorf("%d units still tracked", s.lifetimes.Count())
	}
}

func TestCombat_WeakerUnitDies(t *testing.T) {
	s := emptySim(t, nil)
	a := s.world.AddCountry(components.Vec2{X: 400, Y: 400})
	b := s.world.AddCountry(components.Vec2{X: 600, Y: 600})

	strong := addUnit(t, s, a.ID, 500, 500, true)
	strong.Energy = 80
	weak := addUnit(t, s, b.ID, 510, 500, true)
	weak.Energy = 40

	mustStep(t, s, testDT)

	if weak.Alive {
		t.Error("energy-40 unit survived")
	}
	if !strong.Alive {
		t.Error("energy-80 unit died")
	}
	if _, ok := s.world.UnitByID(weak.ID); ok {
		t.Error("dead unit still resolvable after the tick")
	}
	if len(s.world.Units()) != 1 {
		t.Errorf("%d units left, want 1", len(s.world.Units()))
	}
}

func TestCombat_OneEngagementPerOrderedPair(t *testing.T) {
	s := emptySim(t, nil)
	a := s.world.AddCountry(components.Vec2{X: 100, Y: 100})
	b := s.world.AddCountry(components.Vec2{X: 900, Y: 900})

	// Three separate skirmishes, all in range.
	for i := 0; i < 3; i++ {
		y := 200 + float64(i)*300
		ua := addUnit(t, s, a.ID, 500, y, true)
		ua.Energy = 90
		ub := addUnit(t, s, b.ID, 505, y, true)
		ub.Energy = 30
	}

	s.combat()

	dead := 0
	for _, u := range s.world.Units() {
		if !u.Alive {
			dead++
		}
	}
	// (a, b) and (b, a) each resolve their first contact.
	if dead != 2 {
		t.Errorf("%d deaths, want 2", dead)
	}
}

func TestCombat_IgnoresCiviliansAndAllies(t *testing.T) {
	s := emptySim(t, nil)
	a := s.world.AddCountry(components.Vec2{X: 100, Y: 100})
	b := s.world.AddCountry(components.Vec2{X: 900, Y: 900})

	addUnit(t, s, a.ID, 500, 500, true)
	addUnit(t, s, a.ID, 505, 500, true)
	addUnit(t, s, b.ID, 500, 510, false)

	s.combat()
	for _, u := range s.world.Units() {
		if !u.Alive {
			t.Errorf("%s died without an opposing soldier", u.ID)
		}
	}
}

// ---------- reproduction ----------

func couple(t *testing.T, s *Simulation, dist float64) (f, m *components.Unit) {
	t.Helper()
	c := s.world.AddCountry(components.Vec2{X: 500, Y: 500})
	f = addUnit(t, s, c.ID, 500, 500, false)
	f.Gender = components.Female
	f.Age = 25
	f.Energy = 60
	m = addUnit(t, s, c.ID, 500+dist, 500, false)
	m.Gender = components.Male
	m.Age = 30
	m.Energy = 70
	return f, m
}

func certainConception(cfg *config.Config) { cfg.Reproduction.Chance = 1 }

func TestReproduce_OutOfRange(t *testing.T) {
	s := emptySim(t, certainConception)
	f, m := couple(t, s, 35)

	s.reproduce()
	if f.Pregnant || f.SpouseID != "" || m.SpouseID != "" {
		t.Error("paired beyond the 32 pairing radius")
	}
}

func TestReproduce_InRange(t *testing.T) {
	s := emptySim(t, func(cfg *config.Config) {
		certainConception(cfg)
		cfg.Reproduction.PairingRadius = 40
	})
	f, m := couple(t, s, 20)

	mustStep(t, s, testDT)
	if !f.Pregnant || m.Pregnant {
		t.Errorf("pregnant f=%v m=%v, want only the female", f.Pregnant, m.Pregnant)
	}
	if f.SpouseID != m.ID || m.SpouseID != f.ID {
		t.Errorf("spouses %q/%q", f.SpouseID, m.SpouseID)
	}
	if f.LastRepro != 0 || m.LastRepro != 0 {
		t.Error("lastRepro should be the tick start time")
	}
}

func TestReproduce_YoungMaleWithinAgeGap(t *testing.T) {
	s := emptySim(t, certainConception)
	f, m := couple(t, s, 10)
	f.Age = 20
	m.Age = 10

	s.reproduce()
	if !f.Pregnant || f.SpouseID != m.ID {
		t.Errorf("female aged 20 did not pair with male aged 10: pregnant=%v spouse=%q", f.Pregnant, f.SpouseID)
	}
}

func TestReproduce_ConstraintViolations(t *testing.T) {
	tests := []struct {
		name   string
		modify func(f, m *components.Unit)
	}{
		{"female too weak", func(f, m *components.Unit) { f.Energy = 49 }},
		{"male too weak", func(f, m *components.Unit) { m.Energy = 64 }},
		{"age gap", func(f, m *components.Unit) { m.Age = 41 }},
		{"same gender", func(f, m *components.Unit) { m.Gender = components.Female; m.Age = 25 }},
		{"male dead", func(f, m *components.Unit) { m.Kill() }},
		{"female too young", func(f, m *components.Unit) { f.Age = 17 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := emptySim(t, certainConception)
			f, m := couple(t, s, 10)
			tt.modify(f, m)

			s.reproduce()
			for _, u := range s.world.Units() {
				if u.Pregnant || u.SpouseID != "" {
					t.Errorf("%s paired despite violation", u.ID)
				}
			}
		})
	}
}

func TestReproduce_FirstMatchWins(t *testing.T) {
	s := emptySim(t, certainConception)
	f, first := couple(t, s, 10)
	second := addUnit(t, s, f.CountryID, 495, 500, false)
	second.Gender = components.Male
	second.Age = 30
	second.Energy = 70

	s.reproduce()
	if f.SpouseID != first.ID {
		t.Errorf("spouse = %s, want the earlier unit %s", f.SpouseID, first.ID)
	}
	if second.SpouseID != "" {
		t.Error("second male paired too")
	}
}

// ---------- birth ----------

func TestBirth_Litter(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		s := emptySim(t, nil)
		s.rng.Seed(seed)
		f, m := couple(t, s, 10)
		f.Type = components.Military
		f.Pregnant = true
		f.SpouseID = m.ID
		f.LastRepro = -9

		s.birth()

		children := s.world.Units()[2:]
		if n := len(children); n < 1 || n > 3 {
			t.Fatalf("seed %d: litter of %d", seed, n)
		}
		if f.Pregnant || f.Children != len(children) {
			t.Fatalf("seed %d: pregnant=%v children=%d", seed, f.Pregnant, f.Children)
		}
		for _, c := range children {
			if c.Age != s.cfg.Reproduction.ChildAge || c.Energy != s.cfg.Reproduction.ChildEnergy {
				t.Errorf("child age=%v energy=%v", c.Age, c.Energy)
			}
			if c.Type != f.Type || c.CountryID != f.CountryID {
				t.Error("child did not inherit type and country")
			}
			if !c.Brain.Network.Equal(f.Brain.Network) || c.Brain.Network == f.Brain.Network {
				t.Error("child brain must be an equal, separate copy")
			}
			if c.Velocity != (components.Vec2{}) {
				t.Error("newborn should start still")
			}
		}
	}
}

func TestBirth_WaitsForGestation(t *testing.T) {
	s := emptySim(t, nil)
	f, m := couple(t, s, 10)
	f.Pregnant = true
	f.SpouseID = m.ID
	f.LastRepro = -s.cfg.Reproduction.Gestation

	s.birth()
	if !f.Pregnant || len(s.world.Units()) != 2 {
		t.Error("birth before gestation elapsed")
	}
}

func TestStaleSpouseTolerated(t *testing.T) {
	s := emptySim(t, certainConception)
	f, m := couple(t, s, 10)
	f.Pregnant = true
	f.SpouseID = m.ID
	f.LastRepro = 0
	m.Kill()

	mustStep(t, s, testDT)
	if _, ok := s.world.UnitByID(f.SpouseID); ok {
		t.Error("dead spouse should not resolve")
	}
	if !f.Alive {
		t.Error("female died")
	}
}
