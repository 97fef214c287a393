package simconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"orbsim/internal/env"
	"orbsim/internal/physics"
	"orbsim/internal/population"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file location, relative to the process working directory.
const DefaultPath = "config/orbsim.yaml"

// EnvPrefix prefixes every environment override, e.g. ORBSIM_G or ORBSIM_MERGE.
const EnvPrefix = "ORBSIM_"

// Config holds the start-of-run constants. Nothing here changes while a world is running
// except Merge, which the viewer can toggle. Field names match physics.Params and
// population.Options so the two can be filled by name.
type Config struct {
	// Physics
	G       float64 `yaml:"g"`
	Epsilon float64 `yaml:"epsilon"`
	Merge   bool    `yaml:"merge"`
	Theta   float64 `yaml:"theta,omitempty"`
	Workers int     `yaml:"workers,omitempty"`

	// Seeding
	Count      int     `yaml:"count"`
	HalfExtent float64 `yaml:"half_extent"`
	MassMin    float64 `yaml:"mass_min"`
	MassMax    float64 `yaml:"mass_max"`
	Density    float64 `yaml:"density"`
	Seed       uint64  `yaml:"seed,omitempty"`

	// Frame loop
	MaxStep      float64 `yaml:"max_step"`
	WindowWidth  int     `yaml:"window_width"`
	WindowHeight int     `yaml:"window_height"`
	LogPath      string  `yaml:"log_path,omitempty"`
}

// Default returns the constants the simulation was tuned with: G = 1, epsilon = 0.001,
// merging on, 256 bodies of density 10 and mass 1..100 in a 128×128 square.
func Default() Config {
	p := physics.DefaultParams()
	o := population.DefaultOptions()
	return Config{
		G:            p.G,
		Epsilon:      p.Epsilon,
		Merge:        p.Merge,
		Count:        o.Count,
		HalfExtent:   o.HalfExtent,
		MassMin:      o.MassMin,
		MassMax:      o.MassMax,
		Density:      o.Density,
		MaxStep:      1.0 / 30,
		WindowWidth:  1280,
		WindowHeight: 800,
		LogPath:      "logs/orbsim.txt",
	}
}

// Load reads the config at path on top of Default. A missing file yields Default and no
// error. A file that cannot be parsed yields Default and the parse error, so callers can
// log it and keep running.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("simconfig: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("simconfig: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from ORBSIM_* environment variables that are set.
func (c *Config) ApplyEnv() error {
	var errs []error
	float := func(name string, dst *float64) {
		v, ok, err := env.Float(EnvPrefix + name)
		if err != nil {
			errs = append(errs, err)
		} else if ok {
			*dst = v
		}
	}
	integer := func(name string, dst *int) {
		v, ok, err := env.Int(EnvPrefix + name)
		if err != nil {
			errs = append(errs, err)
		} else if ok {
			*dst = v
		}
	}

	float("G", &c.G)
	float("EPSILON", &c.Epsilon)
	float("THETA", &c.Theta)
	float("HALF_EXTENT", &c.HalfExtent)
	float("MASS_MIN", &c.MassMin)
	float("MASS_MAX", &c.MassMax)
	float("DENSITY", &c.Density)
	float("MAX_STEP", &c.MaxStep)
	integer("WORKERS", &c.Workers)
	integer("COUNT", &c.Count)

	if v, ok, err := env.Bool(EnvPrefix + "MERGE"); err != nil {
		errs = append(errs, err)
	} else if ok {
		c.Merge = v
	}
	if v, ok, err := env.Uint(EnvPrefix + "SEED"); err != nil {
		errs = append(errs, err)
	} else if ok {
		c.Seed = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_PATH"); v != "" {
		c.LogPath = v
	}
	return errors.Join(errs...)
}

// Validate reports every constant that would make the simulation degenerate.
func (c Config) Validate() error {
	var errs []error
	if !(c.Epsilon >= 0) {
		errs = append(errs, fmt.Errorf("epsilon must be >= 0, got %v", c.Epsilon))
	}
	if c.Theta < 0 {
		errs = append(errs, fmt.Errorf("theta must be >= 0, got %v", c.Theta))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.Count < 0 {
		errs = append(errs, fmt.Errorf("count must be >= 0, got %d", c.Count))
	}
	if !(c.HalfExtent > 0) {
		errs = append(errs, fmt.Errorf("half_extent must be > 0, got %v", c.HalfExtent))
	}
	if !(c.MassMin > 0) || c.MassMax < c.MassMin {
		errs = append(errs, fmt.Errorf("mass range [%v, %v) must be positive and non-empty", c.MassMin, c.MassMax))
	}
	if !(c.Density > 0) {
		errs = append(errs, fmt.Errorf("density must be > 0, got %v", c.Density))
	}
	if !(c.MaxStep > 0) {
		errs = append(errs, fmt.Errorf("max_step must be > 0, got %v", c.MaxStep))
	}
	return errors.Join(errs...)
}

// Physics returns the simulation constants as physics.Params.
func (c Config) Physics() (physics.Params, error) {
	var p physics.Params
	if err := copier.Copy(&p, &c); err != nil {
		return p, fmt.Errorf("simconfig: physics params: %w", err)
	}
	return p, nil
}

// Population returns the seeding constants as population.Options.
func (c Config) Population() (population.Options, error) {
	var o population.Options
	if err := copier.Copy(&o, &c); err != nil {
		return o, fmt.Errorf("simconfig: population options: %w", err)
	}
	return o, nil
}

// ClampStep limits a wall-clock frame delta to [0, MaxStep].
func (c Config) ClampStep(dt float64) float64 {
	return max(0, min(dt, c.MaxStep))
}
