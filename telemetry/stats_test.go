package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	ten := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", ten, 0.0, 1},
		{"p100", ten, 1.0, 10},
		{"p10", ten, 0.1, 1},
		{"p50", ten, 0.5, 5},
		{"p90", ten, 0.9, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestDistribution(t *testing.T) {
	values := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}
	mean, p10, p50, p90 := Distribution(values)

	if math.Abs(mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	if p10 != 1 || p50 != 5 || p90 != 9 {
		t.Errorf("percentiles = %v/%v/%v, want 1/5/9", p10, p50, p90)
	}
	if values[0] != 10 {
		t.Error("Distribution sorted the caller's slice")
	}
}

func TestDistributionEmpty(t *testing.T) {
	mean, p10, p50, p90 := Distribution(nil)
	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestCollector_FlushResetsCounters(t *testing.T) {
	c := NewCollector(10)
	if c.ShouldFlush(9.99) {
		t.Error("flushed before the window elapsed")
	}
	if !c.ShouldFlush(10) {
		t.Error("expected flush at window end")
	}

	c.RecordBirths(3)
	c.RecordPairing()
	c.RecordCombatDeath()
	c.RecordCombatDeath()
	c.RecordLifecycleDeaths(4, 1)
	c.RecordGathered(2.5)

	s := c.Flush(600, 10, Sample{
		Units:    3,
		Energies: []float64{20, 40, 60},
		Fitness:  []float64{1, 2, 6},
	})
	if s.Births != 3 || s.Pairings != 1 || s.CombatDeaths != 2 || s.Starved != 4 || s.OldAge != 1 {
		t.Errorf("event counts wrong: %+v", s)
	}
	if s.Gathered != 2.5 || s.Units != 3 {
		t.Errorf("gathered=%v units=%d", s.Gathered, s.Units)
	}
	if s.EnergyMean != 40 || s.FitnessMean != 3 || s.FitnessMax != 6 {
		t.Errorf("energy_mean=%v fitness_mean=%v fitness_max=%v", s.EnergyMean, s.FitnessMean, s.FitnessMax)
	}

	if c.ShouldFlush(15) {
		t.Error("window did not restart at the flush time")
	}
	next := c.Flush(900, 20, Sample{})
	if next.WindowStartTick != 600 || next.Births != 0 || next.CombatDeaths != 0 || next.Gathered != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.FitnessMean != 0 {
		t.Error("empty fitness sample should average to 0")
	}
}
