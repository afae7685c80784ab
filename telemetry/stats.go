// Package telemetry provides windowed population statistics, performance
// timing, bookmarks, CSV output and a SQLite run archive.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of simulation time.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTime         float64 `csv:"sim_time"`

	// Population at window end
	Units     int `csv:"units"`
	Countries int `csv:"countries"`
	Military  int `csv:"military"`
	Workers   int `csv:"workers"`
	Pregnant  int `csv:"pregnant"`

	// Events during window
	Births       int     `csv:"births"`
	Pairings     int     `csv:"pairings"`
	CombatDeaths int     `csv:"combat_deaths"`
	Starved      int     `csv:"starved"`
	OldAge       int     `csv:"old_age"`
	Gathered     float64 `csv:"gathered"`

	// World state at window end
	ResourceStock     float64 `csv:"resource_stock"`
	TerritoryVertices int     `csv:"territory_vertices"`

	// Distributions (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`
	AgeMean    float64 `csv:"age_mean"`
	AgeP50     float64 `csv:"age_p50"`

	FitnessMean   float64 `csv:"fitness_mean"`
	FitnessMax    float64 `csv:"fitness_max"`
	MaxGeneration int     `csv:"max_generation"`
}

// Percentile returns the p-th empirical quantile of a sorted slice: the
// smallest sample that at least a fraction p of the samples do not exceed.
// Returns 0 for an empty slice.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	switch {
	case p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[len(sorted)-1]
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Distribution calculates the mean and 10th/50th/90th percentiles.
func Distribution(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	return mean, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTime),
		slog.Int("units", s.Units),
		slog.Int("countries", s.Countries),
		slog.Int("births", s.Births),
		slog.Int("combat_deaths", s.CombatDeaths),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("fitness_mean", s.FitnessMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTime,
		"units", s.Units,
		"countries", s.Countries,
		"military", s.Military,
		"workers", s.Workers,
		"pregnant", s.Pregnant,
		"births", s.Births,
		"pairings", s.Pairings,
		"combat_deaths", s.CombatDeaths,
		"starved", s.Starved,
		"old_age", s.OldAge,
		"gathered", s.Gathered,
		"resource_stock", s.ResourceStock,
		"territory_vertices", s.TerritoryVertices,
		"energy_mean", s.EnergyMean,
		"energy_p10", s.EnergyP10,
		"energy_p50", s.EnergyP50,
		"energy_p90", s.EnergyP90,
		"age_mean", s.AgeMean,
		"age_p50", s.AgeP50,
		"fitness_mean", s.FitnessMean,
		"fitness_max", s.FitnessMax,
		"max_generation", s.MaxGeneration,
	)
}
