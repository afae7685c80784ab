package telemetry

import (
	"gonum.org/v1/gonum/floats"
)

// Sample is the population state the caller measures at window end.
type Sample struct {
	Units             int
	Countries         int
	Military          int
	Workers           int
	Pregnant          int
	Energies          []float64
	Ages              []float64
	Fitness           []float64
	MaxGeneration     int
	ResourceStock     float64
	TerritoryVertices int
}

// Collector accumulates events within windows of simulation time and
// produces WindowStats.
type Collector struct {
	windowSec float64

	windowStartTick int64
	windowStartTime float64

	births       int
	pairings     int
	combatDeaths int
	starved      int
	oldAge       int
	gathered     float64
}

// NewCollector creates a collector that flushes every windowSec simulation
// seconds. Non-positive windows flush every tick.
func NewCollector(windowSec float64) *Collector {
	return &Collector{windowSec: windowSec}
}

// RecordBirths records n newborns.
func (c *Collector) RecordBirths(n int) { c.births += n }

// RecordPairing records a new couple.
func (c *Collector) RecordPairing() { c.pairings++ }

// RecordCombatDeath records a unit killed in combat.
func (c *Collector) RecordCombatDeath() { c.combatDeaths++ }

// RecordLifecycleDeaths records starvation and old-age deaths.
func (c *Collector) RecordLifecycleDeaths(starved, oldAge int) {
	c.starved += starved
	c.oldAge += oldAge
}

// RecordGathered records resources harvested by workers.
func (c *Collector) RecordGathered(amount float64) { c.gathered += amount }

// ShouldFlush reports whether the current window has elapsed.
func (c *Collector) ShouldFlush(simTime float64) bool {
	return simTime-c.windowStartTime >= c.windowSec
}

// Flush produces a WindowStats from the counters and the sample, then resets
// the counters for the next window.
func (c *Collector) Flush(tick int64, simTime float64, s Sample) WindowStats {
	energyMean, p10, p50, p90 := Distribution(s.Energies)
	ageMean, _, ageP50, _ := Distribution(s.Ages)

	var fitnessMean, fitnessMax float64
	if len(s.Fitness) > 0 {
		fitnessMean = floats.Sum(s.Fitness) / float64(len(s.Fitness))
		fitnessMax = floats.Max(s.Fitness)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		SimTime:         simTime,

		Units:     s.Units,
		Countries: s.Countries,
		Military:  s.Military,
		Workers:   s.Workers,
		Pregnant:  s.Pregnant,

		Births:       c.births,
		Pairings:     c.pairings,
		CombatDeaths: c.combatDeaths,
		Starved:      c.starved,
		OldAge:       c.oldAge,
		Gathered:     c.gathered,

		ResourceStock:     s.ResourceStock,
		TerritoryVertices: s.TerritoryVertices,

		EnergyMean: energyMean,
		EnergyP10:  p10,
		EnergyP50:  p50,
		EnergyP90:  p90,
		AgeMean:    ageMean,
		AgeP50:     ageP50,

		FitnessMean:   fitnessMean,
		FitnessMax:    fitnessMax,
		MaxGeneration: s.MaxGeneration,
	}

	c.windowStartTick = tick
	c.windowStartTime = simTime
	c.births = 0
	c.pairings = 0
	c.combatDeaths = 0
	c.starved = 0
	c.oldAge = 0
	c.gathered = 0

	return stats
}
