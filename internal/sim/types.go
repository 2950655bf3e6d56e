package sim

import (
	"fmt"

	"github.com/san-kum/atomsim/internal/atoms"
)

// Observer receives the live state after each dynamics step. The state
// is owned by the run loop; observers must copy anything they keep.
type Observer interface {
	OnStep(step int, s *atoms.State)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(step int, s *atoms.State)

func (f ObserverFunc) OnStep(step int, s *atoms.State) { f(step, s) }

// StepError wraps an error surfaced from inside a run loop with the
// step index and simulation time at which it occurred.
type StepError struct {
	Step int
	Time float64 // fs
	Err  error
}

func (e StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.1f fs): %v", e.Step, e.Time, e.Err)
}

func (e StepError) Unwrap() error { return e.Err }
