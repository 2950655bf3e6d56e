package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/elements"
	"github.com/san-kum/atomsim/internal/forces"
	"github.com/san-kum/atomsim/internal/integrators"
	"github.com/san-kum/atomsim/internal/linalg"
)

func argonPair(sep float64) *atoms.State {
	s := atoms.New(2)
	for i := range s.M {
		s.M[i] = 39.948
		s.Type[i] = 18
	}
	s.X[1] = linalg.Vec3{X: sep}
	return s
}

func pairModel() forces.Model {
	m := forces.NewLJCoulomb()
	m.Table = elements.Table{18: {Sigma: 3.4, Epsilon: 0.238}}
	return m
}

func TestRunnerMinimizeOnly(t *testing.T) {
	s := argonPair(4.5)
	p := DefaultRunParams()
	p.Mode = ModeMinimize
	p.FIRE.Dt = 0.02
	p.FIRE.DtMax = 0.5
	p.FIRE.EpsF = 0.05

	res, err := NewRunner(pairModel(), p).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Minimize == nil {
		t.Fatal("expected minimize telemetry")
	}
	if res.NVT != nil || res.NVE != nil {
		t.Error("minimize mode ran dynamics")
	}
	r0 := 3.4 * math.Pow(2, 1.0/6)
	if sep := s.X[0].Dist(s.X[1]); math.Abs(sep-r0) > 0.1 {
		t.Errorf("separation after minimize = %.3f, want ~%.3f", sep, r0)
	}
}

func TestRunnerNVEPipeline(t *testing.T) {
	s := argonPair(3.4 * math.Pow(2, 1.0/6))
	p := DefaultRunParams()
	p.Mode = ModeNVE
	p.InitTemp = 50
	p.Seed = 7
	p.Verlet.Dt = 1.0
	p.Verlet.Steps = 200

	rec := NewRecorder(10)
	runner := NewRunner(pairModel(), p)
	runner.AddObserver(rec)

	res, err := runner.Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.NVE == nil {
		t.Fatal("expected NVE telemetry")
	}
	if res.Steps != 200 {
		t.Errorf("Steps = %d, want 200", res.Steps)
	}
	if got := len(rec.Frames()); got != 20 {
		t.Errorf("recorded frames = %d, want 20", got)
	}
	if len(rec.Energies()) != len(rec.Frames()) {
		t.Error("energies length mismatch")
	}
}

func TestRunnerNVT(t *testing.T) {
	s := argonPair(3.9)
	p := DefaultRunParams()
	p.Mode = ModeNVT
	p.Seed = 3
	p.Langevin.Dt = 1.0
	p.Langevin.Steps = 100
	p.Langevin.Temp = 120
	p.Langevin.Gamma = 0.1

	res, err := NewRunner(pairModel(), p).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.NVT == nil || res.NVT.Steps != 100 {
		t.Fatal("expected 100 NVT steps")
	}
}

func TestRunnerUnknownMode(t *testing.T) {
	s := argonPair(3.9)
	p := DefaultRunParams()
	p.Mode = Mode("npt")
	if _, err := NewRunner(pairModel(), p).Run(context.Background(), s); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestRunnerInvalidState(t *testing.T) {
	s := argonPair(3.9)
	s.X[0].X = math.NaN()
	p := DefaultRunParams()
	p.Mode = ModeNVE
	p.Verlet.Steps = 10

	_, err := NewRunner(pairModel(), p).Run(context.Background(), s)
	if err == nil {
		t.Fatal("expected error for NaN state")
	}
	if !errors.Is(err, atoms.ErrInvalidState) {
		t.Errorf("error chain missing ErrInvalidState: %v", err)
	}
}

func TestStepErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := StepError{Step: 42, Time: 42.0, Err: inner}
	if !errors.Is(err, inner) {
		t.Error("Unwrap does not reach inner error")
	}
	if err.Error() == "" {
		t.Error("empty error string")
	}
}

func TestRecorderStride(t *testing.T) {
	rec := NewRecorder(5)
	s := argonPair(3.9)
	for step := 0; step < 20; step++ {
		rec.OnStep(step, s)
	}
	if got := len(rec.Frames()); got != 4 {
		t.Errorf("frames = %d, want 4", got)
	}
	if rec.Frames()[1].Step != 5 {
		t.Errorf("second frame step = %d, want 5", rec.Frames()[1].Step)
	}
	if rec.Frames()[0].V != nil {
		t.Error("velocities recorded without opt-in")
	}

	rec.Reset()
	if len(rec.Frames()) != 0 {
		t.Error("Reset left frames behind")
	}
}

func TestRecorderCopiesState(t *testing.T) {
	rec := NewRecorder(1)
	rec.Velocities = true
	s := argonPair(3.9)
	s.V[0] = linalg.Vec3{X: 0.01}
	rec.OnStep(0, s)

	s.X[0].X = 99
	s.V[0].X = 99
	if rec.Frames()[0].X[0].X == 99 || rec.Frames()[0].V[0].X == 99 {
		t.Error("recorder aliases live state")
	}
}

func TestEnsembleReplicas(t *testing.T) {
	s0 := argonPair(3.9)
	p := DefaultRunParams()
	p.Mode = ModeNVT
	p.InitTemp = 120
	p.Langevin.Dt = 1.0
	p.Langevin.Steps = 50
	p.Langevin.Temp = 120

	reps, err := Ensemble{Runs: 4, SeedStart: 100}.Run(context.Background(), s0, pairModel(), p)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(reps) != 4 {
		t.Fatalf("replicas = %d, want 4", len(reps))
	}
	for i, r := range reps {
		if r.Seed != 100+int64(i) {
			t.Errorf("replica %d seed = %d", i, r.Seed)
		}
		if r.State == s0 {
			t.Error("replica shares the initial state")
		}
		if r.Result == nil || r.Result.NVT == nil {
			t.Errorf("replica %d missing telemetry", i)
		}
	}
	// Initial state untouched by any replica.
	if s0.X[1].X != 3.9 || s0.V[0] != (linalg.Vec3{}) {
		t.Error("ensemble mutated the input state")
	}
	// Distinct seeds must give distinct trajectories.
	if reps[0].State.X[0] == reps[1].State.X[0] {
		t.Error("replicas with different seeds coincide")
	}
}

func TestEnsembleFirstError(t *testing.T) {
	s0 := argonPair(3.9)
	s0.X[0].X = math.NaN()
	p := DefaultRunParams()
	p.Mode = ModeNVE
	p.Verlet.Steps = 5

	reps, err := Ensemble{Runs: 2}.Run(context.Background(), s0, pairModel(), p)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(reps) != 2 {
		t.Fatalf("replicas = %d, want 2", len(reps))
	}
}

func TestRunnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := argonPair(3.9)
	p := DefaultRunParams()
	p.Mode = ModeNVE
	p.Verlet.Steps = 1000

	if _, err := NewRunner(pairModel(), p).Run(ctx, s); !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

// Guard against param drift between the runner defaults and the
// integrator defaults.
func TestDefaultRunParams(t *testing.T) {
	p := DefaultRunParams()
	if p.Mode != ModeNVT {
		t.Errorf("default mode = %q", p.Mode)
	}
	if p.Langevin.Dt != integrators.DefaultLangevinParams().Dt {
		t.Error("langevin defaults drifted")
	}
	if p.FIRE.MaxSteps != integrators.DefaultFIREParams().MaxSteps {
		t.Error("fire defaults drifted")
	}
}
