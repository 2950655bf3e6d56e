// Package thermo provides read-only thermodynamic observables over an
// atoms.State, plus the few explicit velocity mutators (COM removal and
// thermostat rescaling).
package thermo

import (
	"math"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/linalg"
)

// KineticEnergy returns sum(1/2 m v^2) in kcal/mol.
func KineticEnergy(s *atoms.State) float64 {
	ke := 0.0
	for i := 0; i < s.N; i++ {
		ke += 0.5 * s.M[i] * s.V[i].Norm2()
	}
	return ke * atoms.KEConv
}

// Temperature returns the instantaneous kinetic temperature in K via
// equipartition: T = 2K / ((3N - c) kB). nConstraints removes frozen
// degrees of freedom (e.g. 3 for removed COM motion).
func Temperature(s *atoms.State, nConstraints int) float64 {
	dof := 3*s.N - nConstraints
	if dof <= 0 {
		return 0
	}
	return 2 * KineticEnergy(s) / (float64(dof) * atoms.KB)
}

// Virial returns -sum(x_i . F_i) over the current forces.
func Virial(s *atoms.State) float64 {
	w := 0.0
	for i := 0; i < s.N; i++ {
		w -= s.X[i].Dot(s.F[i])
	}
	return w
}

// Pressure returns (N kB T + W/3) / V in kcal/(mol*A^3).
func Pressure(s *atoms.State, volume float64, nConstraints int) float64 {
	if volume <= 0 {
		return 0
	}
	t := Temperature(s, nConstraints)
	return (float64(s.N)*atoms.KB*t + Virial(s)/3) / volume
}

func PressureAtm(p float64) float64 { return p * atoms.PressureToAtm }
func PressureBar(p float64) float64 { return p * atoms.PressureToBar }

// RadiusOfGyration returns the mass-weighted Rg in Angstrom.
func RadiusOfGyration(s *atoms.State) float64 {
	total := s.TotalMass()
	if total <= 0 {
		return 0
	}
	com := s.CenterOfMass()
	rg2 := 0.0
	for i := 0; i < s.N; i++ {
		rg2 += s.M[i] * s.X[i].Sub(com).Norm2()
	}
	return math.Sqrt(rg2 / total)
}

func LinearMomentum(s *atoms.State) linalg.Vec3 {
	var p linalg.Vec3
	for i := 0; i < s.N; i++ {
		p = p.Add(s.V[i].Scale(s.M[i]))
	}
	return p
}

// AngularMomentum returns L = sum(m x cross v) about the origin.
func AngularMomentum(s *atoms.State) linalg.Vec3 {
	var l linalg.Vec3
	for i := 0; i < s.N; i++ {
		l = l.Add(s.X[i].Cross(s.V[i]).Scale(s.M[i]))
	}
	return l
}

// HeatCapacity estimates Cv per particle from total-energy fluctuations:
// Cv = kB + Var(E) / (kB T^2).
func HeatCapacity(eTraj []float64, tAvg float64) float64 {
	if len(eTraj) < 2 || tAvg <= 0 {
		return 0
	}
	var st OnlineStats
	for _, e := range eTraj {
		st.Add(e)
	}
	return atoms.KB + st.Var()/(atoms.KB*tAvg*tAvg)
}

// RemoveCOMMotion subtracts the center-of-mass velocity from every atom.
func RemoveCOMMotion(s *atoms.State) {
	total := s.TotalMass()
	if total <= 0 {
		return
	}
	vcom := LinearMomentum(s).Scale(1 / total)
	for i := range s.V {
		s.V[i] = s.V[i].Sub(vcom)
	}
}

// RescaleVelocities scales all velocities so the kinetic temperature hits
// tTarget exactly.
func RescaleVelocities(s *atoms.State, tTarget float64) {
	t := Temperature(s, 0)
	if t < 1e-6 {
		return
	}
	scale := math.Sqrt(tTarget / t)
	for i := range s.V {
		s.V[i] = s.V[i].Scale(scale)
	}
}

// BerendsenRescale applies a weak-coupling rescale toward tTarget with
// time constant tau: lambda^2 = 1 + (dt/tau)(Tt/Tc - 1), clamped at zero.
func BerendsenRescale(s *atoms.State, tTarget, tau, dt float64) {
	t := Temperature(s, 0)
	if t < 1e-6 || tau <= 0 {
		return
	}
	lambda2 := 1 + (dt/tau)*(tTarget/t-1)
	lambda := math.Sqrt(math.Max(0, lambda2))
	for i := range s.V {
		s.V[i] = s.V[i].Scale(lambda)
	}
}
