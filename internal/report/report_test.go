package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/integrators"
	"github.com/san-kum/atomsim/internal/sim"
)

func reportState() *atoms.State {
	s := atoms.New(8)
	for i := range s.M {
		s.Type[i] = 18
		s.M[i] = 39.948
	}
	s.Box = atoms.NewBox(17.2, 17.2, 17.2)
	s.E.VdW = -3.21
	s.E.Coulomb = -1.05
	return s
}

func TestMarkdownMinimize(t *testing.T) {
	res := &sim.RunResult{
		Minimize: &integrators.FIREResult{
			Steps: 240, U: -4.26, FRMS: 0.008, DUPerAtom: 1e-11,
			Alpha: 0.1, Dt: 0.05, Converged: true,
		},
	}
	md := Markdown(reportState(), res)

	for _, want := range []string{
		"# Simulation Report",
		"$N=8$",
		"(periodic)",
		"## Minimization",
		"converged: true",
		"F\\|_{RMS}",
		"$U_{vdW}=-3.210000$",
		"$U_{Coul}=-1.050000$",
		"## Energy decomposition",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(md, "## Dynamics") {
		t.Error("dynamics section without dynamics telemetry")
	}
}

func TestMarkdownDynamics(t *testing.T) {
	res := &sim.RunResult{
		NVT: &integrators.LangevinResult{Steps: 5000, TAvg: 118.4, TStd: 21.0, EAvg: -2.4},
	}
	md := Markdown(reportState(), res)
	if !strings.Contains(md, "## Dynamics (NVT)") {
		t.Error("missing NVT section")
	}
	if !strings.Contains(md, "118.40") {
		t.Error("missing temperature average")
	}
}

func TestMarkdownNilResult(t *testing.T) {
	md := Markdown(reportState(), nil)
	if !strings.Contains(md, "## Energy decomposition") {
		t.Error("bare state report missing decomposition")
	}
}

func TestSparkline(t *testing.T) {
	series := []float64{1, 3, 2, 5, 4, 6, 5, 7}
	out := Sparkline(series, "total energy")
	if !strings.Contains(out, "total energy") {
		t.Error("caption missing")
	}
	if len(strings.Split(out, "\n")) < 5 {
		t.Error("sparkline suspiciously short")
	}

	if Sparkline([]float64{1}, "x") != "" {
		t.Error("expected empty output for a single point")
	}
}

func TestEnergyPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "energy.png")
	err := EnergyPlot(path, "argon-lattice", 10,
		Series{Name: "total", Y: []float64{-3.0, -2.9, -3.1, -3.0}},
		Series{Name: "kinetic", Y: []float64{0.5, 0.6, 0.4, 0.5}},
	)
	if err != nil {
		t.Fatalf("EnergyPlot: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty plot file")
	}
}

func TestEnergyPlotNoSeries(t *testing.T) {
	if err := EnergyPlot(filepath.Join(t.TempDir(), "x.png"), "t", 1); err == nil {
		t.Error("expected error with no series")
	}
}
