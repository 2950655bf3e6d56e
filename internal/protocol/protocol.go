// Package protocol runs scripted multi-stage scenarios: minimize,
// draw velocities, run dynamics, align against a reference, in any
// order, with force evaluations chained across stages.
package protocol

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/atomsim/internal/align"
	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/forces"
	"github.com/san-kum/atomsim/internal/integrators"
	"github.com/san-kum/atomsim/internal/xyz"
)

type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Stages      []Stage `yaml:"stages"`
}

// Stage is one scenario step. Kind selects which of the parameter
// groups applies; unset numbers fall back to stage defaults.
type Stage struct {
	Kind string `yaml:"kind"` // minimize, velocities, dynamics, align

	// minimize
	MaxSteps int     `yaml:"max_steps"`
	EpsF     float64 `yaml:"eps_f"`

	// velocities and dynamics
	Temp float64 `yaml:"temperature"`

	// dynamics
	Mode      string  `yaml:"mode"` // nvt (default) or nve
	Dt        float64 `yaml:"dt"`
	Steps     int     `yaml:"steps"`
	TempFinal float64 `yaml:"temperature_final"` // >0 ramps linearly, annealing
	Gamma     float64 `yaml:"gamma"`

	// align
	Reference string `yaml:"reference"` // xyz path
}

// StageResult is the telemetry of one executed stage.
type StageResult struct {
	Kind     string
	Minimize *integrators.FIREResult
	NVT      *integrators.LangevinResult
	NVE      *integrators.VerletResult
	Align    *align.Result
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	if len(sc.Stages) == 0 {
		return fmt.Errorf("no stages")
	}
	for i, st := range sc.Stages {
		switch st.Kind {
		case "minimize":
		case "velocities":
			if st.Temp <= 0 {
				return fmt.Errorf("stage %d: velocities needs a positive temperature", i+1)
			}
		case "dynamics":
			switch st.Mode {
			case "", "nvt", "nve":
			default:
				return fmt.Errorf("stage %d: unknown dynamics mode %q", i+1, st.Mode)
			}
			if st.Steps <= 0 {
				return fmt.Errorf("stage %d: dynamics needs positive steps", i+1)
			}
		case "align":
			if st.Reference == "" {
				return fmt.Errorf("stage %d: align needs a reference", i+1)
			}
		default:
			return fmt.Errorf("stage %d: unknown kind %q", i+1, st.Kind)
		}
	}
	return nil
}

// Run executes the scenario stages in order against s. Forces computed
// by one stage carry into the next; stages that move atoms outside the
// integrators (align) invalidate them again.
func Run(ctx context.Context, sc *Scenario, s *atoms.State, model forces.Model, rng *rand.Rand) ([]StageResult, error) {
	results := make([]StageResult, 0, len(sc.Stages))
	forcesValid := false

	for i, st := range sc.Stages {
		res := StageResult{Kind: st.Kind}
		var err error

		switch st.Kind {
		case "minimize":
			p := integrators.DefaultFIREParams()
			if st.MaxSteps > 0 {
				p.MaxSteps = st.MaxSteps
			}
			if st.EpsF > 0 {
				p.EpsF = st.EpsF
			}
			var fr integrators.FIREResult
			fr, err = integrators.Minimize(ctx, s, model, p)
			res.Minimize = &fr
			forcesValid = err == nil

		case "velocities":
			err = integrators.ThermalVelocities(s, st.Temp, rng)

		case "dynamics":
			switch st.Mode {
			case "", "nvt":
				p := integrators.DefaultLangevinParams()
				p.Steps = st.Steps
				p.ForcesValid = forcesValid
				if st.Dt > 0 {
					p.Dt = st.Dt
				}
				if st.Temp > 0 {
					p.Temp = st.Temp
				}
				if st.Gamma > 0 {
					p.Gamma = st.Gamma
				}
				p.TempFinal = st.TempFinal
				var lr integrators.LangevinResult
				lr, err = integrators.Langevin(ctx, s, model, p, rng)
				res.NVT = &lr
			case "nve":
				p := integrators.DefaultVerletParams()
				p.Steps = st.Steps
				p.ForcesValid = forcesValid
				if st.Dt > 0 {
					p.Dt = st.Dt
				}
				var vr integrators.VerletResult
				vr, err = integrators.Verlet(ctx, s, model, p)
				res.NVE = &vr
			}
			forcesValid = err == nil

		case "align":
			var ref *atoms.State
			ref, err = xyz.ReadFile(st.Reference)
			if err == nil {
				ar := align.Kabsch(s, ref)
				res.Align = &ar
				forcesValid = false
			}
		}

		if err != nil {
			return results, fmt.Errorf("stage %d (%s): %w", i+1, st.Kind, err)
		}
		results = append(results, res)
	}
	return results, nil
}
