package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/atomsim/internal/config"
)

func pairModel(t *testing.T) *Model {
	t.Helper()
	cfg := config.GetPreset("argon-pair")
	if cfg == nil {
		t.Fatal("argon-pair preset missing")
	}
	m, err := NewModel(cfg)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func TestTickAdvancesDynamics(t *testing.T) {
	m := pairModel(t)
	for i := 0; i < 5; i++ {
		m.Update(tickMsg(time.Now()))
	}
	if m.step == 0 {
		t.Fatal("step counter did not advance")
	}
	if len(m.history) != 5 {
		t.Fatalf("history = %d samples, want 5", len(m.history))
	}
}

func TestPauseStopsStepping(t *testing.T) {
	m := pairModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if !m.paused {
		t.Fatal("space did not pause")
	}
	m.Update(tickMsg(time.Now()))
	if m.step != 0 {
		t.Fatal("paused simulation advanced")
	}
}

func TestResetRestoresStart(t *testing.T) {
	m := pairModel(t)
	for i := 0; i < 3; i++ {
		m.Update(tickMsg(time.Now()))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if m.step != 0 || len(m.history) != 0 {
		t.Fatalf("reset left step=%d history=%d", m.step, len(m.history))
	}
}

func TestThemeCycles(t *testing.T) {
	m := pairModel(t)
	first := m.theme.Name
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	if m.theme.Name == first {
		t.Fatal("theme did not change")
	}
}

func TestViewContainsStats(t *testing.T) {
	m := pairModel(t)
	m.Update(tickMsg(time.Now()))
	view := m.View()
	for _, want := range []string{"atomsim", "argon-pair", "atoms", "T"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestQuitKey(t *testing.T) {
	m := pairModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
}
