package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a TUI color scheme.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Good      lipgloss.Color
	Warn      lipgloss.Color
	Bad       lipgloss.Color
}

var (
	ThemeLab = Theme{
		Name:      "lab",
		Primary:   lipgloss.Color("#00ffff"),
		Secondary: lipgloss.Color("#0088ff"),
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666688"),
		Good:      lipgloss.Color("#00ff88"),
		Warn:      lipgloss.Color("#ffaa00"),
		Bad:       lipgloss.Color("#ff4444"),
	}

	ThemePhosphor = Theme{
		Name:      "phosphor",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Good:      lipgloss.Color("#88ff88"),
		Warn:      lipgloss.Color("#ffff00"),
		Bad:       lipgloss.Color("#ff0000"),
	}

	ThemePaper = Theme{
		Name:      "paper",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Good:      lipgloss.Color("#00ff00"),
		Warn:      lipgloss.Color("#ffaa00"),
		Bad:       lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{ThemeLab, ThemePhosphor, ThemePaper}
)

// GetTheme resolves a theme by name, defaulting to the first.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme cycles through the theme list.
func NextTheme(current string) Theme {
	for i, t := range Themes {
		if t.Name == current {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
