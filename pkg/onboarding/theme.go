package onboarding

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles used to draw onboarding panels.
//
// Names: dark | light | catppuccin (catppuccin-mocha, mocha) | none (off) | auto.
// auto picks dark unless NO_COLOR is set or TERM is dumb.
type Theme struct {
	Name string

	Title     lipgloss.Style
	Border    lipgloss.Style
	Highlight lipgloss.Style
	Accent    lipgloss.Style
	Plain     lipgloss.Style
	Detail    lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Help      lipgloss.Style
}

// ThemeByName resolves a configured theme name. Unknown names fall back to auto.
func ThemeByName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "off", "disabled":
		return NoTheme()
	case "catppuccin", "catppuccin-mocha", "mocha":
		return CatppuccinMochaTheme()
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return AutoTheme()
	}
}

// NoTheme renders everything unstyled.
func NoTheme() Theme {
	s := lipgloss.NewStyle()
	return Theme{
		Name:      "none",
		Title:     s,
		Border:    s,
		Highlight: s,
		Accent:    s,
		Plain:     s,
		Detail:    s,
		Error:     s,
		Success:   s,
		Help:      s,
	}
}

// AutoTheme enables colors whenever the terminal likely supports them.
func AutoTheme() Theme {
	if !terminalSupportsColor() {
		return NoTheme()
	}
	return DarkTheme()
}

// DarkTheme is the default palette for dark terminals.
func DarkTheme() Theme {
	return Theme{
		Name:      "dark",
		Title:     lipgloss.NewStyle().Bold(true),
		Border:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Plain:     lipgloss.NewStyle(),
		Detail:    lipgloss.NewStyle().Faint(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// LightTheme is a palette for light terminals.
func LightTheme() Theme {
	return Theme{
		Name:      "light",
		Title:     lipgloss.NewStyle().Bold(true),
		Border:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		Plain:     lipgloss.NewStyle(),
		Detail:    lipgloss.NewStyle().Faint(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	}
}

// CatppuccinMochaTheme approximates Catppuccin Mocha with 256-color codes.
func CatppuccinMochaTheme() Theme {
	// mauve 183, lavender 147, peach 216, teal 44, subtext 245
	return Theme{
		Name:      "catppuccin",
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("183")),
		Border:    lipgloss.NewStyle().Foreground(lipgloss.Color("147")),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("216")),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("216")),
		Plain:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("44")),
	}
}

// SelectedPrefix returns the row indicator for a highlighted or plain row.
func (t Theme) SelectedPrefix(selected bool) string {
	if !selected {
		return "  "
	}
	return t.Accent.Render("> ")
}

// Row styles an account label: bold accent when highlighted.
func (t Theme) Row(selected bool, s string) string {
	if selected {
		return t.Highlight.Render(s)
	}
	return t.Plain.Render(s)
}

// ActionRow styles a non-account entry: accent without bold when highlighted.
func (t Theme) ActionRow(selected bool, s string) string {
	if selected {
		return t.Accent.Render(s)
	}
	return t.Plain.Render(s)
}

func terminalSupportsColor() bool {
	// https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	return term != "" && term != "dumb"
}
