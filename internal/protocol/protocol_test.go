package protocol

import (
	"context"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/elements"
	"github.com/san-kum/atomsim/internal/forces"
	"github.com/san-kum/atomsim/internal/linalg"
)

func argonPair(sep float64) *atoms.State {
	s := atoms.New(2)
	for i := range s.M {
		s.Type[i] = 18
		s.M[i] = 39.948
	}
	s.X[1] = linalg.Vec3{X: sep}
	return s
}

func pairModel() forces.Model {
	m := forces.NewLJCoulomb()
	m.Table = elements.Table{18: {Sigma: 3.4, Epsilon: 0.238}}
	return m
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anneal.yaml")
	doc := `
name: anneal
description: minimize then cool
stages:
  - kind: minimize
    max_steps: 500
  - kind: velocities
    temperature: 300
  - kind: dynamics
    mode: nvt
    steps: 100
    temperature: 300
    temperature_final: 50
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Name != "anneal" || len(sc.Stages) != 3 {
		t.Fatalf("name=%q stages=%d", sc.Name, len(sc.Stages))
	}
	if sc.Stages[2].TempFinal != 50 {
		t.Errorf("TempFinal = %g, want 50", sc.Stages[2].TempFinal)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		stages []Stage
		ok     bool
	}{
		{"empty", nil, false},
		{"minimize", []Stage{{Kind: "minimize"}}, true},
		{"unknown kind", []Stage{{Kind: "heat"}}, false},
		{"velocities no temp", []Stage{{Kind: "velocities"}}, false},
		{"dynamics no steps", []Stage{{Kind: "dynamics"}}, false},
		{"dynamics bad mode", []Stage{{Kind: "dynamics", Mode: "npt", Steps: 10}}, false},
		{"dynamics nve", []Stage{{Kind: "dynamics", Mode: "nve", Steps: 10}}, true},
		{"align no reference", []Stage{{Kind: "align"}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sc := Scenario{Stages: tc.stages}
			err := sc.Validate()
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunPipeline(t *testing.T) {
	sc := &Scenario{
		Name: "prep",
		Stages: []Stage{
			{Kind: "minimize", MaxSteps: 2000, EpsF: 0.05},
			{Kind: "velocities", Temp: 120},
			{Kind: "dynamics", Mode: "nvt", Steps: 200, Temp: 120, Gamma: 0.1},
		},
	}
	if err := sc.Validate(); err != nil {
		t.Fatal(err)
	}

	s := argonPair(4.2)
	rng := rand.New(rand.NewSource(11))
	results, err := Run(context.Background(), sc, s, pairModel(), rng)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if results[0].Minimize == nil {
		t.Error("minimize stage missing telemetry")
	}
	if results[2].NVT == nil || results[2].NVT.Steps != 200 {
		t.Error("dynamics stage missing telemetry")
	}
	if !s.IsValid() {
		t.Error("state corrupted by pipeline")
	}
}

func TestRunNVEStage(t *testing.T) {
	sc := &Scenario{Stages: []Stage{
		{Kind: "dynamics", Mode: "nve", Steps: 100, Dt: 1.0},
	}}
	s := argonPair(3.4 * math.Pow(2, 1.0/6))
	results, err := Run(context.Background(), sc, s, pairModel(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if results[0].NVE == nil {
		t.Fatal("missing NVE telemetry")
	}
	if math.Abs(results[0].NVE.EDrift) > 1e-3 {
		t.Errorf("energy drift %g at the minimum", results[0].NVE.EDrift)
	}
}

func TestRunAlignStage(t *testing.T) {
	refPath := filepath.Join(t.TempDir(), "ref.xyz")
	ref := "2\nreference\nAr 0 0 0\nAr 0 3.9 0\n"
	if err := os.WriteFile(refPath, []byte(ref), 0644); err != nil {
		t.Fatal(err)
	}

	sc := &Scenario{Stages: []Stage{{Kind: "align", Reference: refPath}}}
	s := argonPair(3.9) // same pair, rotated 90 degrees from the reference
	results, err := Run(context.Background(), sc, s, pairModel(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Align == nil {
		t.Fatal("missing align telemetry")
	}
	if results[0].Align.RMSDAfter > 1e-9 {
		t.Errorf("RMSD after align = %g", results[0].Align.RMSDAfter)
	}
}

func TestRunStageError(t *testing.T) {
	sc := &Scenario{Stages: []Stage{{Kind: "align", Reference: "does-not-exist.xyz"}}}
	s := argonPair(3.9)
	_, err := Run(context.Background(), sc, s, pairModel(), nil)
	if err == nil {
		t.Fatal("expected error for missing reference")
	}
}

func TestAnnealingRamp(t *testing.T) {
	sc := &Scenario{Stages: []Stage{
		{Kind: "velocities", Temp: 300},
		{Kind: "dynamics", Mode: "nvt", Steps: 2000, Temp: 300, TempFinal: 20, Gamma: 0.5},
	}}
	s := argonPair(3.9)
	rng := rand.New(rand.NewSource(5))
	results, err := Run(context.Background(), sc, s, pairModel(), rng)
	if err != nil {
		t.Fatal(err)
	}
	// With a strong thermostat the trajectory mean sits between the
	// endpoints, well below the starting temperature.
	tAvg := results[1].NVT.TAvg
	if tAvg > 290 || tAvg < 10 {
		t.Errorf("ramp average T = %.1f K, want between endpoints", tAvg)
	}
}
