package forces

import (
	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/linalg"
)

// Restraint tethers every atom harmonically to a reference position:
// U = K * sum |xi - refi|^2, accumulated into the External energy term.
// Used by annealing protocols to keep a scaffold in place.
type Restraint struct {
	K   float64
	Ref []linalg.Vec3
}

// NewRestraint captures the state's current positions as the tether.
func NewRestraint(s *atoms.State, k float64) *Restraint {
	ref := make([]linalg.Vec3, s.N)
	copy(ref, s.X)
	return &Restraint{K: k, Ref: ref}
}

func (r *Restraint) Evaluate(s *atoms.State) error {
	s.ZeroForces()
	s.E.Clear()
	return r.AddTo(s)
}

func (r *Restraint) AddTo(s *atoms.State) error {
	n := s.N
	if len(r.Ref) < n {
		n = len(r.Ref)
	}
	for i := 0; i < n; i++ {
		d := s.X[i].Sub(r.Ref[i])
		s.E.External += r.K * d.Norm2()
		s.F[i] = s.F[i].Add(d.Scale(-2 * r.K))
	}
	return nil
}
