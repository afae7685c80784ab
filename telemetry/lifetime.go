package telemetry

// LifetimeStats tracks what a unit did over its life that the unit itself
// does not record.
type LifetimeStats struct {
	BornAt float64 // sim seconds
	Kills  int
}

// LifetimeTracker manages per-unit lifetime statistics, keyed by unit id.
type LifetimeTracker struct {
	stats map[string]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[string]*LifetimeStats),
	}
}

// Register starts tracking a unit born at simTime.
func (lt *LifetimeTracker) Register(id string, simTime float64) {
	lt.stats[id] = &LifetimeStats{BornAt: simTime}
}

// Get returns the lifetime stats for a unit, or nil if not tracked.
func (lt *LifetimeTracker) Get(id string) *LifetimeStats {
	return lt.stats[id]
}

// Remove stops tracking a unit and returns its stats, or nil if it was not
// tracked.
func (lt *LifetimeTracker) Remove(id string) *LifetimeStats {
	s := lt.stats[id]
	delete(lt.stats, id)
	return s
}

// RecordKill increments kill count.
func (lt *LifetimeTracker) RecordKill(id string) {
	if s := lt.stats[id]; s != nil {
		s.Kills++
	}
}

// Count returns the number of tracked units.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
