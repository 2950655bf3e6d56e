package viz

import "github.com/charmbracelet/lipgloss"

// Styles derived from a theme, shared by the TUI and the CLI's styled
// output.
type Styles struct {
	Panel         lipgloss.Style
	Title         lipgloss.Style
	StatusRunning lipgloss.Style
	StatusPaused  lipgloss.Style
	Label         lipgloss.Style
	Value         lipgloss.Style
	KeyHint       lipgloss.Style
	Error         lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		StatusRunning: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Good),
		StatusPaused: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Warn),
		Label: lipgloss.NewStyle().
			Foreground(t.Muted),
		Value: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),
		KeyHint: lipgloss.NewStyle().
			Foreground(t.Muted).
			Italic(true),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Bad),
	}
}
