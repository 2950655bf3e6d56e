package config

import "sort"

// Presets are complete run configurations for the built-in systems.
// The preset name doubles as the experiment registry key.
var Presets = map[string]*Config{
	"argon-pair": {
		System: SystemConfig{Preset: "argon-pair"},
		Model:  ModelConfig{Cutoff: DefaultCutoff},
		Run: RunConfig{
			Mode: "minimize",
		},
		Output: OutputConfig{Dir: "runs", Stride: 1, Format: "xyz"},
	},
	"argon-lattice": {
		System: SystemConfig{Preset: "argon-lattice"},
		Model:  ModelConfig{Cutoff: DefaultCutoff},
		Run: RunConfig{
			Mode: "nvt", Dt: 1.0, Steps: 10000,
			Temp: 120, Gamma: 0.1, InitTemp: 120, Equil: 2000,
		},
		Output: OutputConfig{Dir: "runs", Stride: 10, Format: "xyz"},
	},
	"argon-gas": {
		System: SystemConfig{Preset: "argon-gas", Box: [3]float64{30, 30, 30}},
		Model:  ModelConfig{Cutoff: DefaultCutoff},
		Run: RunConfig{
			Mode: "nvt", Dt: 2.0, Steps: 20000,
			Temp: 300, Gamma: 0.05, InitTemp: 300, Equil: 5000,
		},
		Output: OutputConfig{Dir: "runs", Stride: 20, Format: "xyz.zst"},
	},
	"nacl-rocksalt": {
		System: SystemConfig{Preset: "nacl-rocksalt"},
		Model:  ModelConfig{Cutoff: 8.0, Coulomb: true},
		Run: RunConfig{
			Mode: "nvt", Dt: 1.0, Steps: 10000,
			Temp: 300, Gamma: 0.1, InitTemp: 300, Equil: 2000, Minimize: true,
		},
		Output: OutputConfig{Dir: "runs", Stride: 10, Format: "xyz"},
	},
	"butane": {
		System: SystemConfig{Preset: "butane"},
		Model:  ModelConfig{Cutoff: DefaultCutoff, Bonded: true},
		Run: RunConfig{
			Mode: "nvt", Dt: 0.5, Steps: 20000,
			Temp: 300, Gamma: 0.2, InitTemp: 300, Equil: 4000, Minimize: true,
		},
		Output: OutputConfig{Dir: "runs", Stride: 20, Format: "xyz"},
	},
	"polymer-chain": {
		System: SystemConfig{Preset: "polymer-chain"},
		Model:  ModelConfig{Cutoff: DefaultCutoff, Bonded: true, RestraintK: 0.5},
		Run: RunConfig{
			Mode: "nvt", Dt: 1.0, Steps: 30000,
			Temp: 300, Gamma: 0.1, InitTemp: 300, Equil: 5000, Minimize: true,
		},
		Output: OutputConfig{Dir: "runs", Stride: 50, Format: "xyz.zst"},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
