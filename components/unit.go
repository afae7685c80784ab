package components

import "github.com/pthm-cable/aisim/neural"

// Unit is an agent. Its Brain is exclusively owned; CountryID and SpouseID are
// lookup keys only and may refer to entities that no longer exist.
type Unit struct {
	ID        string
	Type      UnitType
	Gender    Gender
	IsWorker  bool
	Age       float64
	Position  Vec2
	Velocity  Vec2
	Health    float64 // [0,100], 0 once dead
	Energy    float64
	Brain     *neural.Brain
	CountryID string
	Alive     bool
	Resources float64 // gathered by workers
	Children  int
	SpouseID  string // "" = none
	Pregnant  bool   // only ever true for females
	LastRepro float64
}

// IsMilitary reports whether the unit fights in combat.
func (u *Unit) IsMilitary() bool {
	return u.Type == Military
}

// IsFemale reports whether the unit can carry children.
func (u *Unit) IsFemale() bool {
	return u.Gender == Female
}

// Kill marks the unit dead and clamps its health.
func (u *Unit) Kill() {
	u.Alive = false
	u.Health = 0
}

// View returns a value copy without the brain network, safe to hand to readers.
func (u *Unit) View() UnitView {
	v := UnitView{
		ID:        u.ID,
		Type:      u.Type,
		Gender:    u.Gender,
		IsWorker:  u.IsWorker,
		Age:       u.Age,
		Position:  u.Position,
		Velocity:  u.Velocity,
		Health:    u.Health,
		Energy:    u.Energy,
		CountryID: u.CountryID,
		Alive:     u.Alive,
		Resources: u.Resources,
		Children:  u.Children,
		SpouseID:  u.SpouseID,
		Pregnant:  u.Pregnant,
		LastRepro: u.LastRepro,
	}
	if u.Brain != nil {
		v.Fitness = u.Brain.Fitness
		v.Generation = u.Brain.Generation
	}
	return v
}

// UnitView is a read-only copy of a unit for renderers and stats consumers.
type UnitView struct {
	ID         string
	Type       UnitType
	Gender     Gender
	IsWorker   bool
	Age        float64
	Position   Vec2
	Velocity   Vec2
	Health     float64
	Energy     float64
	CountryID  string
	Alive      bool
	Resources  float64
	Children   int
	SpouseID   string
	Pregnant   bool
	LastRepro  float64
	Fitness    float64
	Generation int
}
