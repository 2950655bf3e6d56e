// Package tui is the interactive terminal front end: a live wireframe of
// the running system with an energy trace and thermodynamic readout.
package tui

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/config"
	"github.com/san-kum/atomsim/internal/experiment"
	"github.com/san-kum/atomsim/internal/forces"
	"github.com/san-kum/atomsim/internal/integrators"
	"github.com/san-kum/atomsim/internal/report"
	"github.com/san-kum/atomsim/internal/thermo"
	"github.com/san-kum/atomsim/internal/viz"
)

const (
	frameInterval = 33 * time.Millisecond
	historyLen    = 120
	maxSpeed      = 64
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model drives the live view. Physics advances in batches on each frame
// tick, so the render cadence stays fixed while the steps-per-frame
// speed factor varies.
type Model struct {
	cfg   *config.Config
	state *atoms.State
	model forces.Model
	rng   *rand.Rand
	cam   *viz.Camera

	step    int
	speed   int
	paused  bool
	err     error
	history []float64

	theme  viz.Theme
	styles viz.Styles

	width  int
	height int
}

// NewModel builds the view for a validated config. The system starts
// with thermal velocities and runs until quit.
func NewModel(cfg *config.Config) (*Model, error) {
	m := &Model{
		cfg:    cfg,
		speed:  4,
		theme:  viz.GetTheme(""),
		width:  80,
		height: 24,
	}
	m.styles = viz.NewStyles(m.theme)
	if err := m.reset(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) reset() error {
	s, fm, err := experiment.Build(m.cfg)
	if err != nil {
		return err
	}
	m.rng = rand.New(rand.NewSource(m.cfg.Run.Seed))
	t0 := m.cfg.Run.InitTemp
	if t0 <= 0 {
		t0 = m.cfg.Run.Temp
	}
	if t0 > 0 {
		if err := integrators.ThermalVelocities(s, t0, m.rng); err != nil {
			return err
		}
	}
	if err := fm.Evaluate(s); err != nil {
		return err
	}
	m.state = s
	m.model = fm
	m.step = 0
	m.err = nil
	m.history = m.history[:0]
	m.cam = viz.NewCamera()
	viz.FitCamera(m.cam, s)
	return nil
}

// advance runs one frame's worth of dynamics. Forces are already valid
// from the previous batch, so the integrator skips the initial
// evaluation.
func (m *Model) advance() {
	switch m.cfg.Run.Mode {
	case "nve":
		p := integrators.DefaultVerletParams()
		p.Dt = m.cfg.Run.Dt
		p.Steps = m.speed
		p.ForcesValid = true
		if _, err := integrators.Verlet(context.Background(), m.state, m.model, p); err != nil {
			m.err = err
			m.paused = true
			return
		}
	default:
		p := integrators.DefaultLangevinParams()
		p.Dt = m.cfg.Run.Dt
		p.Steps = m.speed
		p.Temp = m.cfg.Run.Temp
		p.Gamma = m.cfg.Run.Gamma
		p.ForcesValid = true
		if _, err := integrators.Langevin(context.Background(), m.state, m.model, p, m.rng); err != nil {
			m.err = err
			m.paused = true
			return
		}
	}
	m.step += m.speed

	e := m.state.E.Total() + thermo.KineticEnergy(m.state)
	m.history = append(m.history, e)
	if len(m.history) > historyLen {
		m.history = m.history[1:]
	}
}

func (m *Model) Init() tea.Cmd { return tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		if !m.paused && m.err == nil {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
	case "r":
		if err := m.reset(); err != nil {
			m.err = err
		}
		m.paused = false
	case "t":
		m.theme = viz.NextTheme(m.theme.Name)
		m.styles = viz.NewStyles(m.theme)
	case "up":
		m.cam.RotateX(0.15)
	case "down":
		m.cam.RotateX(-0.15)
	case "left":
		m.cam.RotateY(0.15)
	case "right":
		m.cam.RotateY(-0.15)
	case "+", "=":
		m.cam.ZoomIn()
	case "-", "_":
		m.cam.ZoomOut()
	case "]":
		if m.speed < maxSpeed {
			m.speed *= 2
		}
	case "[":
		if m.speed > 1 {
			m.speed /= 2
		}
	}
	return m, nil
}

func (m *Model) View() string {
	cw := m.width - 30
	ch := m.height - 8
	if cw < 40 {
		cw = 40
	}
	if ch < 10 {
		ch = 10
	}

	canvas := viz.NewCanvas(cw, ch)
	viz.Render(canvas, viz.MoleculeWireframe(m.state), m.cam)

	var b strings.Builder

	status := m.styles.StatusRunning.Render("● running")
	if m.paused {
		status = m.styles.StatusPaused.Render("○ paused")
	}
	system := m.cfg.System.Preset
	if system == "" {
		system = m.cfg.System.XYZ
	}
	b.WriteString(fmt.Sprintf(" %s  %s  %s\n",
		m.styles.Title.Render("atomsim"),
		m.styles.Value.Render(system),
		status))

	panel := m.statsPanel()
	view := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Panel.Render(canvas.String()),
		" ",
		panel)
	b.WriteString(view + "\n")

	if len(m.history) > 1 {
		b.WriteString(report.Sparkline(m.history, "E total (kcal/mol)") + "\n")
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render("error: "+m.err.Error()) + "\n")
	}
	b.WriteString(m.styles.KeyHint.Render(
		" space pause  r reset  t theme  arrows rotate  +/- zoom  [/] speed  q quit"))

	return b.String()
}

func (m *Model) statsPanel() string {
	temp := thermo.Temperature(m.state, 0)
	ke := thermo.KineticEnergy(m.state)
	pe := m.state.E.Total()

	row := func(label string, format string, args ...any) string {
		return m.styles.Label.Render(fmt.Sprintf("%-8s", label)) +
			m.styles.Value.Render(fmt.Sprintf(format, args...))
	}

	lines := []string{
		row("atoms", "%d", m.state.N),
		row("step", "%d", m.step),
		row("time", "%.1f fs", float64(m.step)*m.cfg.Run.Dt),
		row("speed", "%dx", m.speed),
		"",
		row("T", "%.1f K", temp),
		row("KE", "%.3f", ke),
		row("PE", "%.3f", pe),
		row("E", "%.3f", ke+pe),
	}
	if m.state.Box.Enabled() {
		lines = append(lines, "", row("box", "%.1f Å", m.state.Box.L.X))
	}
	return m.styles.Panel.Render(strings.Join(lines, "\n"))
}

// Run starts the live view and blocks until the user quits.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
