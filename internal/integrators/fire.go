// Package integrators advances an atoms.State in time: FIRE geometry
// minimization, Langevin (NVT) stochastic dynamics and velocity Verlet
// (NVE). Every run loop takes a context and calls the force model once per
// step; stochastic integrators require an explicit *rand.Rand.
package integrators

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/forces"
	"github.com/san-kum/atomsim/internal/linalg"
)

// FIREParams tunes the Fast Inertial Relaxation Engine.
type FIREParams struct {
	Dt       float64
	DtMax    float64
	Alpha    float64
	FInc     float64
	FDec     float64
	FAlpha   float64
	NMin     int
	EpsF     float64
	EpsU     float64
	MaxSteps int
}

func DefaultFIREParams() FIREParams {
	return FIREParams{
		Dt:       1e-3,
		DtMax:    0.1,
		Alpha:    0.1,
		FInc:     1.1,
		FDec:     0.5,
		FAlpha:   0.99,
		NMin:     5,
		EpsF:     1e-6,
		EpsU:     1e-10,
		MaxSteps: 5000,
	}
}

// FIREResult is the minimizer telemetry. Exhausting MaxSteps is reported
// with Converged=false, not as an error.
type FIREResult struct {
	Steps     int
	U         float64
	DUPerAtom float64
	FRMS      float64
	Alpha     float64
	Dt        float64
	Converged bool
}

func rmsForce(s *atoms.State) float64 {
	acc := 0.0
	for i := range s.F {
		acc += s.F[i].Norm2()
	}
	return math.Sqrt(acc / float64(s.N))
}

// Minimize relaxes the state toward a local energy minimum. FIRE is a
// discrete feedback controller on the power P = V.F: uphill motion zeroes
// the velocities and shrinks the step, sustained downhill motion grows it.
// Energy is not guaranteed to decrease on any single step.
func Minimize(ctx context.Context, s *atoms.State, model forces.Model, p FIREParams) (FIREResult, error) {
	if !s.IsValid() {
		return FIREResult{}, fmt.Errorf("fire: %w", atoms.ErrInvalidState)
	}

	if err := model.Evaluate(s); err != nil {
		return FIREResult{}, err
	}

	// Seed velocities along the force direction so the first power check
	// is positive instead of deadlocking at P=0.
	fnorm := 0.0
	for i := range s.F {
		fnorm += s.F[i].Norm2()
	}
	fnorm = math.Sqrt(fnorm)
	if fnorm > 0 {
		scale := p.Dt / fnorm
		for i := range s.V {
			s.V[i] = s.F[i].Scale(scale)
		}
	}

	dt := p.Dt
	alpha := p.Alpha
	npos := 0
	uPrev := math.Inf(1)

	for t := 0; t < p.MaxSteps; t++ {
		select {
		case <-ctx.Done():
			return FIREResult{}, ctx.Err()
		default:
		}

		if err := model.Evaluate(s); err != nil {
			return FIREResult{}, err
		}
		u := s.E.Total()
		frms := rmsForce(s)

		// Allow two iterations of velocity build-up before testing.
		if t > 1 {
			duPerAtom := math.Abs(u-uPrev) / float64(s.N)
			if frms < p.EpsF || duPerAtom < p.EpsU {
				return FIREResult{
					Steps: t, U: u, DUPerAtom: duPerAtom, FRMS: frms,
					Alpha: alpha, Dt: dt, Converged: true,
				}, nil
			}
		}
		uPrev = u

		power := 0.0
		vnorm2 := 0.0
		fnorm2 := 0.0
		for i := 0; i < s.N; i++ {
			power += s.V[i].Dot(s.F[i])
			vnorm2 += s.V[i].Norm2()
			fnorm2 += s.F[i].Norm2()
		}
		vnorm := math.Sqrt(vnorm2)
		fnorm := math.Sqrt(fnorm2)

		// V <- (1-alpha) V + alpha |V| F_hat, global norms.
		if vnorm > 0 && fnorm > 0 {
			mix := alpha * vnorm / fnorm
			for i := range s.V {
				s.V[i] = s.V[i].Scale(1 - alpha).Add(s.F[i].Scale(mix))
			}
		}

		if power > 0 {
			npos++
			if npos > p.NMin {
				dt = math.Min(dt*p.FInc, p.DtMax)
				alpha *= p.FAlpha
			}
		} else {
			npos = 0
			dt *= p.FDec
			alpha = p.Alpha
			for i := range s.V {
				s.V[i] = linalg.Vec3{}
			}
		}

		for i := range s.X {
			s.X[i] = s.X[i].Add(s.V[i].Scale(dt))
		}
	}

	// Exhausted: evaluate once more so the telemetry matches the final X.
	if err := model.Evaluate(s); err != nil {
		return FIREResult{}, err
	}
	u := s.E.Total()
	return FIREResult{
		Steps: p.MaxSteps, U: u,
		DUPerAtom: math.Abs(u-uPrev) / float64(s.N),
		FRMS:      rmsForce(s), Alpha: alpha, Dt: dt,
	}, nil
}
