// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	WorldSize               WorldSizeConfig `yaml:"world_size"`
	GridSize                float64         `yaml:"grid_size"` // display-only grid spacing
	StartingUnitsPerCountry int             `yaml:"starting_units_per_country"`
	NeuralNetworkShape      []int           `yaml:"neural_network_shape"` // [inputs, ...hidden, outputs]
	MutationRate            float64         `yaml:"mutation_rate"`
	TicksPerSecond          float64         `yaml:"ticks_per_second"` // advisory pace, dt is measured

	Screen       ScreenConfig       `yaml:"screen"`
	Unit         UnitConfig         `yaml:"unit"`
	Gathering    GatheringConfig    `yaml:"gathering"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Combat       CombatConfig       `yaml:"combat"`
	Territory    TerritoryConfig    `yaml:"territory"`
	Resources    ResourcesConfig    `yaml:"resources"`
	Countries    CountriesConfig    `yaml:"countries"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldSizeConfig holds the world extents.
type WorldSizeConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ScreenConfig holds display settings for graphical mode.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// UnitConfig holds per-unit movement, sensing and aging parameters.
type UnitConfig struct {
	MaxSpeed         float64 `yaml:"max_speed"`      // velocity = heading * |speed output| * MaxSpeed
	VelocityScale    float64 `yaml:"velocity_scale"` // input normalization for velocity
	EnemyScale       float64 `yaml:"enemy_scale"`    // input normalization for enemy displacement
	InitialEnergy    float64 `yaml:"initial_energy"`
	InitialHealth    float64 `yaml:"initial_health"`
	InitialJitter    float64 `yaml:"initial_jitter"` // spawn velocity drawn from ±jitter
	AgingRate        float64 `yaml:"aging_rate"`     // age += dt * AgingRate
	EnergyBaseRate   float64 `yaml:"energy_base_rate"`
	EnergyAgeDivisor float64 `yaml:"energy_age_divisor"` // energy -= dt*base + age/divisor
	ElderAge         float64 `yaml:"elder_age"`
	ElderDeathChance float64 `yaml:"elder_death_chance"`
	FrailAge         float64 `yaml:"frail_age"`
	FrailHealthDecay float64 `yaml:"frail_health_decay"`
	StartingAgeMin   float64 `yaml:"starting_age_min"`
	StartingAgeSpan  int     `yaml:"starting_age_span"`
	WorkerEvery      int     `yaml:"worker_every"`
	MilitaryEvery    int     `yaml:"military_every"`
}

// GatheringConfig holds the worker harvesting parameters.
type GatheringConfig struct {
	HarvestRadius float64 `yaml:"harvest_radius"`
	EnergyDivisor float64 `yaml:"energy_divisor"` // harvest capped by energy / divisor
	MaxPerTick    float64 `yaml:"max_per_tick"`
	SeekSpeed     float64 `yaml:"seek_speed"`
}

// ReproductionConfig holds pairing and birth parameters.
type ReproductionConfig struct {
	MinAge          float64 `yaml:"min_age"`
	FemaleMinEnergy float64 `yaml:"female_min_energy"`
	MaleMinEnergy   float64 `yaml:"male_min_energy"`
	MaxAgeGap       float64 `yaml:"max_age_gap"`
	Chance          float64 `yaml:"chance"` // per-tick gate for each eligible female
	PairingRadius   float64 `yaml:"pairing_radius"`
	Gestation       float64 `yaml:"gestation"`
	MinLitter       int     `yaml:"min_litter"`
	MaxLitter       int     `yaml:"max_litter"`
	ChildOffset     float64 `yaml:"child_offset"`
	ChildAge        float64 `yaml:"child_age"`
	ChildEnergy     float64 `yaml:"child_energy"`
	WorkerChance    float64 `yaml:"worker_chance"`
}

// CombatConfig holds military engagement parameters.
type CombatConfig struct {
	EngagementRadius float64 `yaml:"engagement_radius"`
}

// TerritoryConfig holds territory growth parameters.
type TerritoryConfig struct {
	GrowthFactor      float64 `yaml:"growth_factor"` // grow when population > vertices * factor
	MaxVertices       int     `yaml:"max_vertices"`
	Step              float64 `yaml:"step"`
	InitialHalfExtent float64 `yaml:"initial_half_extent"`
}

// ResourcesConfig holds resource node generation parameters.
type ResourcesConfig struct {
	Count      int     `yaml:"count"`
	MinAmount  int     `yaml:"min_amount"`
	MaxAmount  int     `yaml:"max_amount"`
	FoodChance float64 `yaml:"food_chance"`
}

// CountriesConfig holds initial country parameters.
type CountriesConfig struct {
	Initial  int      `yaml:"initial"`
	Padding  float64  `yaml:"padding"`
	Treasury float64  `yaml:"treasury"`
	Colors   []string `yaml:"colors"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow    float64 `yaml:"stats_window"`      // simulation seconds per window
	HallOfFameSize int     `yaml:"hall_of_fame_size"` // fittest dead units kept
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Bounds     r2.Box        // world extent anchored at the origin
	TickPeriod time.Duration // 1 / TicksPerSecond
	NumInputs  int           // NeuralNetworkShape[0]
	NumOutputs int           // last entry of NeuralNetworkShape
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults. It panics if they do not parse,
// which can only happen if defaults.yaml is broken.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects out-of-range values. Derived values are refreshed on success.
func (c *Config) Validate() error {
	if math.IsNaN(c.MutationRate) || c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("%w: mutation_rate %v outside [0,1]", ErrInvalid, c.MutationRate)
	}
	if len(c.NeuralNetworkShape) < 2 {
		return fmt.Errorf("%w: neural_network_shape needs at least 2 layers, got %d", ErrInvalid, len(c.NeuralNetworkShape))
	}
	for i, w := range c.NeuralNetworkShape {
		if w <= 0 {
			return fmt.Errorf("%w: neural_network_shape[%d] = %d must be positive", ErrInvalid, i, w)
		}
	}
	if c.WorldSize.Width <= 0 || c.WorldSize.Height <= 0 {
		return fmt.Errorf("%w: world_size %vx%v must be positive", ErrInvalid, c.WorldSize.Width, c.WorldSize.Height)
	}
	if c.GridSize <= 0 {
		return fmt.Errorf("%w: grid_size %v must be positive", ErrInvalid, c.GridSize)
	}
	if c.TicksPerSecond <= 0 {
		return fmt.Errorf("%w: ticks_per_second %v must be positive", ErrInvalid, c.TicksPerSecond)
	}
	if c.StartingUnitsPerCountry < 0 {
		return fmt.Errorf("%w: starting_units_per_country %d is negative", ErrInvalid, c.StartingUnitsPerCountry)
	}
	r := c.Reproduction
	if r.MinLitter < 1 || r.MaxLitter < r.MinLitter {
		return fmt.Errorf("%w: litter range [%d,%d]", ErrInvalid, r.MinLitter, r.MaxLitter)
	}
	if math.IsNaN(r.Chance) || r.Chance < 0 || r.Chance > 1 {
		return fmt.Errorf("%w: reproduction.chance %v outside [0,1]", ErrInvalid, r.Chance)
	}
	if r.PairingRadius < 0 || c.Combat.EngagementRadius < 0 || c.Gathering.HarvestRadius < 0 {
		return fmt.Errorf("%w: radii must not be negative", ErrInvalid)
	}
	if c.Gathering.EnergyDivisor <= 0 {
		return fmt.Errorf("%w: gathering.energy_divisor must be positive", ErrInvalid)
	}
	if c.Unit.WorkerEvery <= 0 || c.Unit.MilitaryEvery <= 0 {
		return fmt.Errorf("%w: unit.worker_every and unit.military_every must be positive", ErrInvalid)
	}
	if c.Resources.MaxAmount < c.Resources.MinAmount {
		return fmt.Errorf("%w: resources amount range [%d,%d]", ErrInvalid, c.Resources.MinAmount, c.Resources.MaxAmount)
	}
	if len(c.Countries.Colors) == 0 {
		return fmt.Errorf("%w: countries.colors is empty", ErrInvalid)
	}
	if c.Telemetry.StatsWindow <= 0 || c.Telemetry.HallOfFameSize < 0 {
		return fmt.Errorf("%w: telemetry.stats_window must be positive and hall_of_fame_size not negative", ErrInvalid)
	}
	c.computeDerived()
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Bounds = r2.Box{
		Min: r2.Vec{X: 0, Y: 0},
		Max: r2.Vec{X: c.WorldSize.Width, Y: c.WorldSize.Height},
	}
	if c.TicksPerSecond > 0 {
		c.Derived.TickPeriod = time.Duration(float64(time.Second) / c.TicksPerSecond)
	}
	if n := len(c.NeuralNetworkShape); n > 0 {
		c.Derived.NumInputs = c.NeuralNetworkShape[0]
		c.Derived.NumOutputs = c.NeuralNetworkShape[n-1]
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
