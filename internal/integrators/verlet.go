package integrators

import (
	"context"
	"fmt"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/forces"
	"github.com/san-kum/atomsim/internal/thermo"
)

// VerletParams configures the microcanonical (NVE) propagator.
type VerletParams struct {
	Dt        float64
	Steps     int
	PrintFreq int
	Verbose   bool

	ForcesValid bool
	OnStep      func(step int, s *atoms.State)
}

func DefaultVerletParams() VerletParams {
	return VerletParams{Dt: 1.0, Steps: 1000, PrintFreq: 100}
}

type VerletResult struct {
	Steps    int
	EInitial float64
	EFinal   float64
	EDrift   float64
	TAvg     float64
	KEAvg    float64
	PEAvg    float64
}

// Verlet runs velocity Verlet NVE dynamics. Total energy drift is the
// primary health metric; it is returned, not judged.
func Verlet(ctx context.Context, s *atoms.State, model forces.Model, p VerletParams) (VerletResult, error) {
	if !s.IsValid() {
		return VerletResult{}, fmt.Errorf("verlet: %w", atoms.ErrInvalidState)
	}

	if !p.ForcesValid {
		if err := model.Evaluate(s); err != nil {
			return VerletResult{}, err
		}
	}

	res := VerletResult{
		EInitial: s.E.Total() + thermo.KineticEnergy(s),
	}
	if p.Verbose {
		fmt.Printf("verlet: dt=%.3g fs steps=%d E0=%.3f kcal/mol T0=%.1f K\n",
			p.Dt, p.Steps, res.EInitial, thermo.Temperature(s, 0))
	}

	var tStats, keStats, peStats thermo.OnlineStats

	for step := 0; step < p.Steps; step++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		halfKick(s, p.Dt)
		drift(s, p.Dt)
		if err := model.Evaluate(s); err != nil {
			return res, fmt.Errorf("step %d: %w", step, err)
		}
		halfKick(s, p.Dt)

		pe := s.E.Total()
		ke := thermo.KineticEnergy(s)
		tStats.Add(thermo.Temperature(s, 0))
		keStats.Add(ke)
		peStats.Add(pe)
		res.Steps++

		if p.Verbose && p.PrintFreq > 0 && (step+1)%p.PrintFreq == 0 {
			fmt.Printf("  step %6d  T=%7.1f K  E=%10.3f  dE=%+.4f\n",
				step+1, thermo.Temperature(s, 0), pe+ke, pe+ke-res.EInitial)
		}
		if p.OnStep != nil {
			p.OnStep(step, s)
		}
	}

	res.EFinal = s.E.Total() + thermo.KineticEnergy(s)
	res.EDrift = res.EFinal - res.EInitial
	res.TAvg = tStats.Mean()
	res.KEAvg = keStats.Mean()
	res.PEAvg = peStats.Mean()
	return res, nil
}
