// Package config holds the YAML run configuration: which system to
// build, which force model options to apply, how to run it, and where
// the output goes.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCutoff = 10.0 // A
	DefaultDt     = 1.0  // fs
	DefaultSteps  = 5000
	DefaultTemp   = 120.0 // K
	DefaultGamma  = 0.1   // 1/fs
	DefaultStride = 10
)

type Config struct {
	System SystemConfig `yaml:"system"`
	Model  ModelConfig  `yaml:"model"`
	Run    RunConfig    `yaml:"run"`
	Output OutputConfig `yaml:"output"`
}

// SystemConfig names the initial structure: a built-in preset, or an
// XYZ file. Box lengths of zero leave the system open (no periodic
// boundaries).
type SystemConfig struct {
	Preset string     `yaml:"preset"`
	XYZ    string     `yaml:"xyz"`
	Box    [3]float64 `yaml:"box"`
}

type ModelConfig struct {
	Cutoff     float64 `yaml:"cutoff"`
	Coulomb    bool    `yaml:"coulomb"`
	Bonded     bool    `yaml:"bonded"`
	RestraintK float64 `yaml:"restraint_k"`
}

type RunConfig struct {
	Mode      string  `yaml:"mode"` // minimize, nvt, nve
	Dt        float64 `yaml:"dt"`
	Steps     int     `yaml:"steps"`
	Temp      float64 `yaml:"temperature"`
	TempFinal float64 `yaml:"temperature_final"`
	Gamma     float64 `yaml:"gamma"`
	Seed      int64   `yaml:"seed"`
	Equil     int     `yaml:"equilibration"` // steps discarded from averages
	Minimize  bool    `yaml:"minimize"`      // minimize before dynamics
	InitTemp  float64 `yaml:"init_temperature"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Stride int    `yaml:"stride"`
	Format string `yaml:"format"` // xyz, xyz.zst, csv
	Report bool   `yaml:"report"`
}

func DefaultConfig() *Config {
	return &Config{
		System: SystemConfig{Preset: "argon-lattice"},
		Model:  ModelConfig{Cutoff: DefaultCutoff},
		Run: RunConfig{
			Mode:     "nvt",
			Dt:       DefaultDt,
			Steps:    DefaultSteps,
			Temp:     DefaultTemp,
			Gamma:    DefaultGamma,
			InitTemp: DefaultTemp,
		},
		Output: OutputConfig{
			Dir:    "runs",
			Stride: DefaultStride,
			Format: "xyz",
		},
	}
}

// Load reads path on top of the defaults, so partial files are valid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch c.Run.Mode {
	case "minimize", "nvt", "nve":
	default:
		return fmt.Errorf("unknown run mode %q", c.Run.Mode)
	}
	if c.Run.Mode != "minimize" {
		if c.Run.Dt <= 0 {
			return fmt.Errorf("dt must be positive, got %g", c.Run.Dt)
		}
		if c.Run.Steps <= 0 {
			return fmt.Errorf("steps must be positive, got %d", c.Run.Steps)
		}
	}
	if c.Run.Mode == "nvt" && c.Run.Temp <= 0 {
		return fmt.Errorf("temperature must be positive, got %g", c.Run.Temp)
	}
	if c.Model.Cutoff <= 0 {
		return fmt.Errorf("cutoff must be positive, got %g", c.Model.Cutoff)
	}
	if c.System.Preset != "" && c.System.XYZ != "" {
		return fmt.Errorf("set either system.preset or system.xyz, not both")
	}
	if c.System.Preset != "" {
		if _, ok := Presets[c.System.Preset]; !ok {
			return fmt.Errorf("unknown preset %q", c.System.Preset)
		}
	}
	switch c.Output.Format {
	case "", "xyz", "xyz.zst", "csv":
	default:
		return fmt.Errorf("unknown trajectory format %q", c.Output.Format)
	}
	if c.Output.Stride < 1 {
		return fmt.Errorf("stride must be at least 1, got %d", c.Output.Stride)
	}
	return nil
}
