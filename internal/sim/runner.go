// Package sim orchestrates simulation pipelines over a single State:
// optional energy minimization, velocity initialization, then dynamics
// with observers attached. Ensemble fans a pipeline out over
// independent replicas.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/forces"
	"github.com/san-kum/atomsim/internal/integrators"
)

// Mode selects the dynamics stage of a pipeline.
type Mode string

const (
	ModeMinimize Mode = "minimize" // minimization only, no dynamics
	ModeNVT      Mode = "nvt"      // Langevin thermostat
	ModeNVE      Mode = "nve"      // velocity Verlet
)

// RunParams configures a pipeline. Minimize and InitTemp gate the
// optional preparation stages; Mode picks the dynamics.
type RunParams struct {
	Mode     Mode
	Minimize bool
	InitTemp float64 // K; >0 draws Maxwell-Boltzmann velocities
	Seed     int64

	FIRE     integrators.FIREParams
	Langevin integrators.LangevinParams
	Verlet   integrators.VerletParams
}

func DefaultRunParams() RunParams {
	return RunParams{
		Mode:     ModeNVT,
		FIRE:     integrators.DefaultFIREParams(),
		Langevin: integrators.DefaultLangevinParams(),
		Verlet:   integrators.DefaultVerletParams(),
	}
}

// RunResult aggregates the telemetry of every stage that ran.
type RunResult struct {
	Minimize *integrators.FIREResult
	NVT      *integrators.LangevinResult
	NVE      *integrators.VerletResult
	Steps    int
	Elapsed  time.Duration
}

// Runner drives one pipeline over one State. The State is mutated in
// place; clone it first to keep the input.
type Runner struct {
	Model     forces.Model
	Params    RunParams
	observers []Observer
}

func NewRunner(model forces.Model, p RunParams) *Runner {
	return &Runner{Model: model, Params: p}
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) notify(step int, s *atoms.State) {
	for _, o := range r.observers {
		o.OnStep(step, s)
	}
}

// Run executes the configured pipeline. Dynamics errors come back
// wrapped in a StepError carrying the failing step.
func (r *Runner) Run(ctx context.Context, s *atoms.State) (*RunResult, error) {
	p := r.Params
	start := time.Now()
	res := &RunResult{}

	if p.Minimize || p.Mode == ModeMinimize {
		fr, err := integrators.Minimize(ctx, s, r.Model, p.FIRE)
		if err != nil {
			return nil, fmt.Errorf("minimize: %w", err)
		}
		res.Minimize = &fr
		res.Steps += fr.Steps
	}
	if p.Mode == ModeMinimize {
		res.Elapsed = time.Since(start)
		return res, nil
	}

	if p.InitTemp > 0 {
		rng := rand.New(rand.NewSource(p.Seed))
		if err := integrators.ThermalVelocities(s, p.InitTemp, rng); err != nil {
			return nil, fmt.Errorf("velocities: %w", err)
		}
	}

	lastStep := 0
	hook := func(step int, st *atoms.State) {
		lastStep = step
		r.notify(step, st)
	}

	switch p.Mode {
	case ModeNVT:
		lp := p.Langevin
		lp.OnStep = hook
		rng := rand.New(rand.NewSource(p.Seed))
		lr, err := integrators.Langevin(ctx, s, r.Model, lp, rng)
		if err != nil {
			return nil, StepError{Step: lastStep, Time: float64(lastStep) * lp.Dt, Err: err}
		}
		res.NVT = &lr
		res.Steps += lr.Steps
	case ModeNVE:
		vp := p.Verlet
		vp.OnStep = hook
		vr, err := integrators.Verlet(ctx, s, r.Model, vp)
		if err != nil {
			return nil, StepError{Step: lastStep, Time: float64(lastStep) * vp.Dt, Err: err}
		}
		res.NVE = &vr
		res.Steps += vr.Steps
	default:
		return nil, fmt.Errorf("sim: unknown mode %q", p.Mode)
	}

	res.Elapsed = time.Since(start)
	return res, nil
}
