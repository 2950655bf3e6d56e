package protocol

import (
	"context"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/forces"
	"github.com/san-kum/atomsim/internal/integrators"
	"github.com/san-kum/atomsim/internal/thermo"
)

// TemperatureSweep runs the same system at each point of a temperature
// grid and summarizes the measured energetics per point. Every point
// starts from a fresh clone of the initial state with its own seed.
type TemperatureSweep struct {
	TMin   float64
	TMax   float64
	Points int

	Dt    float64
	Gamma float64
	Equil int // steps discarded before measuring
	Steps int // measured steps
	Seed  int64

	Verbose bool
}

// SweepPoint is the summary of one grid temperature.
type SweepPoint struct {
	Temp  float64 // target temperature
	TAvg  float64
	TStd  float64
	EMean float64 // mean total energy, kcal/mol
	EStd  float64
	Cv    float64 // heat capacity per particle, kcal/mol/K
}

func (ts TemperatureSweep) Run(ctx context.Context, s0 *atoms.State, model forces.Model) ([]SweepPoint, error) {
	if ts.Points < 2 {
		return nil, fmt.Errorf("sweep: need at least 2 points, got %d", ts.Points)
	}
	if ts.TMax <= ts.TMin {
		return nil, fmt.Errorf("sweep: TMax must exceed TMin")
	}
	if ts.Steps <= 0 {
		return nil, fmt.Errorf("sweep: measured steps must be positive")
	}

	dt := ts.Dt
	if dt <= 0 {
		dt = 1.0
	}
	gamma := ts.Gamma
	if gamma <= 0 {
		gamma = 0.1
	}

	step := (ts.TMax - ts.TMin) / float64(ts.Points-1)
	points := make([]SweepPoint, 0, ts.Points)

	for i := 0; i < ts.Points; i++ {
		target := ts.TMin + float64(i)*step
		rng := rand.New(rand.NewSource(ts.Seed + int64(i)))

		s := s0.Clone()
		if err := integrators.ThermalVelocities(s, target, rng); err != nil {
			return points, fmt.Errorf("sweep T=%.1f: %w", target, err)
		}

		energies := make([]float64, 0, ts.Steps)
		temps := make([]float64, 0, ts.Steps)
		p := integrators.LangevinParams{
			Dt:    dt,
			Steps: ts.Equil + ts.Steps,
			Temp:  target,
			Gamma: gamma,
			OnStep: func(stepIdx int, st *atoms.State) {
				if stepIdx < ts.Equil {
					return
				}
				energies = append(energies, st.E.Total()+thermo.KineticEnergy(st))
				temps = append(temps, thermo.Temperature(st, 0))
			},
		}
		if _, err := integrators.Langevin(ctx, s, model, p, rng); err != nil {
			return points, fmt.Errorf("sweep T=%.1f: %w", target, err)
		}

		eMean, eStd := stat.MeanStdDev(energies, nil)
		tAvg, tStd := stat.MeanStdDev(temps, nil)
		points = append(points, SweepPoint{
			Temp:  target,
			TAvg:  tAvg,
			TStd:  tStd,
			EMean: eMean,
			EStd:  eStd,
			Cv:    thermo.HeatCapacity(energies, tAvg),
		})

		if ts.Verbose {
			fmt.Printf("sweep %d/%d: T=%.1f K  <T>=%.1f K  <E>=%.3f kcal/mol\n",
				i+1, ts.Points, target, tAvg, eMean)
		}
	}
	return points, nil
}
