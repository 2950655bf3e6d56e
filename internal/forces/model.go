// Package forces evaluates interatomic forces and potential energies over
// an atoms.State. Models are pure functions of positions, charges, types
// and bonded topology; parameters are immutable after construction.
package forces

import (
	"errors"
	"fmt"

	"github.com/san-kum/atomsim/internal/atoms"
)

// ErrNonFinite signals a numerical blow-up: a force evaluation produced an
// infinite or NaN component. Callers must abort rather than integrate on.
var ErrNonFinite = errors.New("forces: non-finite force component")

// Model evaluates forces and energies for a state. Evaluate owns zeroing
// s.F and resetting s.E on every call; stale values are never read.
type Model interface {
	Evaluate(s *atoms.State) error
}

// Term accumulates forces and energies into a state without zeroing,
// allowing several terms to compose into one model.
type Term interface {
	AddTo(s *atoms.State) error
}

// Composite is a Model built from an ordered list of terms. Forces and the
// energy ledger are zeroed once, then each term accumulates.
type Composite []Term

func (c Composite) Evaluate(s *atoms.State) error {
	s.ZeroForces()
	s.E.Clear()
	for _, t := range c {
		if err := t.AddTo(s); err != nil {
			return err
		}
	}
	return nil
}

// checkFinite scans the force array and reports the first bad atom.
func checkFinite(s *atoms.State) error {
	for i := range s.F {
		if !s.F[i].IsFinite() {
			return fmt.Errorf("atom %d: %w", i, ErrNonFinite)
		}
	}
	return nil
}
