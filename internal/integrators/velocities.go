package integrators

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/thermo"
)

// ThermalVelocities draws Maxwell-Boltzmann velocities for temperature T
// and removes the resulting center-of-mass drift. The random source is
// owned by the caller; there is no package-level RNG.
func ThermalVelocities(s *atoms.State, T float64, rng *rand.Rand) error {
	if !s.IsValid() {
		return fmt.Errorf("velocities: %w", atoms.ErrInvalidState)
	}
	if rng == nil {
		return errors.New("velocities: nil random source")
	}

	for i := 0; i < s.N; i++ {
		sigma := math.Sqrt(atoms.KB*T/s.M[i]) * atoms.VelConv
		s.V[i].X = sigma * rng.NormFloat64()
		s.V[i].Y = sigma * rng.NormFloat64()
		s.V[i].Z = sigma * rng.NormFloat64()
	}
	thermo.RemoveCOMMotion(s)
	return nil
}
