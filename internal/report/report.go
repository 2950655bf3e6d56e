// Package report renders run results for humans: a Markdown summary,
// a PNG energy plot, and terminal sparklines.
package report

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/sim"
)

// Markdown builds a report for a finished pipeline: per-stage
// telemetry plus the energy decomposition of the final state.
func Markdown(s *atoms.State, res *sim.RunResult) string {
	var o strings.Builder
	o.WriteString("# Simulation Report\n\n")

	o.WriteString("## State\n")
	fmt.Fprintf(&o, "- $N=%d$\n", s.N)
	fmt.Fprintf(&o, "- bonds: %d\n", len(s.Bonds))
	if s.Box.Enabled() {
		fmt.Fprintf(&o, "- box: %.3f x %.3f x %.3f A (periodic)\n", s.Box.L.X, s.Box.L.Y, s.Box.L.Z)
	}
	o.WriteString("\n")

	if res != nil && res.Minimize != nil {
		m := res.Minimize
		o.WriteString("## Minimization\n")
		fmt.Fprintf(&o, "- steps: %d (converged: %v)\n", m.Steps, m.Converged)
		fmt.Fprintf(&o, "- $U=%.12g$\n", m.U)
		fmt.Fprintf(&o, "- $\\|F\\|_{RMS}=%g$\n", m.FRMS)
		fmt.Fprintf(&o, "- $\\Delta U/N=%g$\n", m.DUPerAtom)
		fmt.Fprintf(&o, "- $\\alpha=%g$, $\\Delta t=%g$\n\n", m.Alpha, m.Dt)

		o.WriteString("### Update rule\n")
		o.WriteString("$$F = -\\nabla_X U(S)$$\n")
		o.WriteString("$$X_{t+1} = X_t + \\Delta t\\,V_t$$\n")
		o.WriteString("$$V_{t+1} = (1-\\alpha)V_t + \\alpha\\,\\frac{F_t}{\\|F_t\\|}\\,\\|V_t\\|$$\n\n")
	}

	if res != nil && res.NVT != nil {
		d := res.NVT
		o.WriteString("## Dynamics (NVT)\n")
		fmt.Fprintf(&o, "- steps: %d\n", d.Steps)
		fmt.Fprintf(&o, "- $\\langle T\\rangle=%.2f \\pm %.2f$ K\n", d.TAvg, d.TStd)
		fmt.Fprintf(&o, "- $\\langle KE\\rangle=%.4f$, $\\langle PE\\rangle=%.4f$ kcal/mol\n", d.KEAvg, d.PEAvg)
		fmt.Fprintf(&o, "- $\\langle E\\rangle=%.4f$ kcal/mol\n\n", d.EAvg)
	}

	if res != nil && res.NVE != nil {
		d := res.NVE
		o.WriteString("## Dynamics (NVE)\n")
		fmt.Fprintf(&o, "- steps: %d\n", d.Steps)
		fmt.Fprintf(&o, "- $E_0=%.6f$, $E_f=%.6f$ kcal/mol\n", d.EInitial, d.EFinal)
		fmt.Fprintf(&o, "- drift: %.3g kcal/mol\n", d.EDrift)
		fmt.Fprintf(&o, "- $\\langle T\\rangle=%.2f$ K\n\n", d.TAvg)
	}

	o.WriteString("## Energy decomposition\n")
	fmt.Fprintf(&o, "- $U_{bond}=%.6f$\n", s.E.Bond)
	fmt.Fprintf(&o, "- $U_{angle}=%.6f$\n", s.E.Angle)
	fmt.Fprintf(&o, "- $U_{tors}=%.6f$\n", s.E.Torsion)
	fmt.Fprintf(&o, "- $U_{vdW}=%.6f$\n", s.E.VdW)
	fmt.Fprintf(&o, "- $U_{Coul}=%.6f$\n", s.E.Coulomb)
	if s.E.External != 0 {
		fmt.Fprintf(&o, "- $U_{ext}=%.6f$\n", s.E.External)
	}
	fmt.Fprintf(&o, "- $U_{total}=%.6f$ kcal/mol\n", s.E.Total())

	return o.String()
}

// Sparkline renders a compact terminal trace of a series.
func Sparkline(series []float64, caption string) string {
	if len(series) < 2 {
		return ""
	}
	return asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(72),
		asciigraph.Caption(caption),
	)
}
