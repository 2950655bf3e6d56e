package sim

import (
	"context"
	"sync"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/forces"
)

// Ensemble runs independent replicas of one pipeline concurrently.
// Each replica owns a clone of the initial state and a distinct seed,
// so the goroutines never share mutable data.
type Ensemble struct {
	Runs      int
	SeedStart int64
}

// Replica is one finished ensemble member.
type Replica struct {
	Seed   int64
	State  *atoms.State
	Result *RunResult
	Err    error
}

// Run fans the pipeline out over e.Runs clones of s0 and waits for all
// of them. The returned error is the first replica error in index
// order; per-replica errors stay available on the Replica records.
func (e Ensemble) Run(ctx context.Context, s0 *atoms.State, model forces.Model, p RunParams) ([]Replica, error) {
	n := e.Runs
	if n < 1 {
		n = 1
	}
	replicas := make([]Replica, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			rp := p
			rp.Seed = e.SeedStart + int64(idx)
			st := s0.Clone()

			runner := NewRunner(model, rp)
			res, err := runner.Run(ctx, st)
			replicas[idx] = Replica{Seed: rp.Seed, State: st, Result: res, Err: err}
		}(i)
	}
	wg.Wait()

	for _, r := range replicas {
		if r.Err != nil {
			return replicas, r.Err
		}
	}
	return replicas, nil
}
