package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/pthm-cable/aisim/components"
	"github.com/pthm-cable/aisim/neural"
)

// HallEntry records a dead unit's achievements and its network.
type HallEntry struct {
	UnitID     string                `json:"unit_id"`
	CountryID  string                `json:"country_id"`
	Type       string                `json:"type"`
	Cause      string                `json:"cause"`
	Fitness    float64               `json:"fitness"`
	Generation int                   `json:"generation"`
	Lifespan   float64               `json:"lifespan_sec"`
	Age        float64               `json:"age"`
	Children   int                   `json:"children"`
	Kills      int                   `json:"kills"`
	Gathered   float64               `json:"gathered"`
	DiedAt     float64               `json:"died_at"`
	Brain      []neural.LayerWeights `json:"brain,omitempty"`
}

// NewHallEntry builds an entry from a dead unit. stats may be nil for units
// that were never registered.
func NewHallEntry(u *components.Unit, cause string, now float64, stats *LifetimeStats) HallEntry {
	e := HallEntry{
		UnitID:    u.ID,
		CountryID: u.CountryID,
		Type:      u.Type.String(),
		Cause:     cause,
		Age:       u.Age,
		Children:  u.Children,
		Gathered:  u.Resources,
		DiedAt:    now,
	}
	if u.Brain != nil {
		e.Fitness = u.Brain.Fitness
		e.Generation = u.Brain.Generation
		e.Brain = u.Brain.Network.Export()
	}
	if stats != nil {
		e.Lifespan = now - stats.BornAt
		e.Kills = stats.Kills
	}
	return e
}

// HallOfFame keeps the fittest units that died during the run, sorted by
// fitness, highest first.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
}

// NewHallOfFame creates a hall holding at most maxSize entries. A size of 0
// disables it.
func NewHallOfFame(maxSize int) *HallOfFame {
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Qualifies reports whether an entry with this fitness would be kept, so
// callers can skip building entries that would be dropped.
func (hof *HallOfFame) Qualifies(fitness float64) bool {
	if hof.maxSize <= 0 {
		return false
	}
	return len(hof.entries) < hof.maxSize || fitness > hof.entries[len(hof.entries)-1].Fitness
}

// Consider inserts the entry if it qualifies and reports whether it did.
// Among equal fitness the earlier entry ranks first.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	if !hof.Qualifies(entry.Fitness) {
		return false
	}

	// Find insertion point (sorted descending by fitness)
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return hof.entries[i].Fitness < entry.Fitness
	})

	hof.entries = append(hof.entries, HallEntry{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = entry

	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// Entries returns the hall, fittest first. Callers must not modify it.
func (hof *HallOfFame) Entries() []HallEntry {
	return hof.entries
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// TopFitness returns the highest fitness in the hall, or 0 if it is empty.
func (hof *HallOfFame) TopFitness() float64 {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].Fitness
}

// MarshalJSON serializes the hall as a ranked list.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.entries, "", "  ")
}

// WriteFile saves the hall as JSON.
func (hof *HallOfFame) WriteFile(path string) error {
	data, err := hof.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding hall of fame: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing hall of fame: %w", err)
	}
	return nil
}
