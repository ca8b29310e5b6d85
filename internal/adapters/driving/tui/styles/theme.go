// Package styles defines the colour theme and the shared lipgloss
// styles used across the TUI views and components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
}

// DefaultTheme returns the default palette.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#2563EB"),
		Secondary:  lipgloss.Color("#0D9488"),
		Background: lipgloss.Color("#1E1E2E"),
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
	}
}

// Styles holds the pre-built lipgloss styles. Views take a *Styles so
// the whole UI re-themes from one place.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style

	// Selected highlights the active list entry.
	Selected lipgloss.Style

	// Chip and ChipActive render the category filter row.
	Chip       lipgloss.Style
	ChipActive lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// InputField frames text inputs.
	InputField lipgloss.Style

	StatusBar lipgloss.Style
	Help      lipgloss.Style
	Border    lipgloss.Style
}

// NewStyles builds the style set from a theme. A nil theme selects the
// default palette.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	base := lipgloss.NewStyle()
	bordered := base.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(theme.Border)

	return &Styles{
		theme: theme,

		Title:    base.Bold(true).Foreground(theme.Primary),
		Subtitle: base.Bold(true).Foreground(theme.Secondary),
		Normal:   base.Foreground(theme.Foreground),
		Muted:    base.Foreground(theme.Muted),

		Selected: base.Bold(true).Foreground(theme.Foreground).Background(theme.Primary),

		Chip:       base.Foreground(theme.Muted).Padding(0, 1),
		ChipActive: base.Bold(true).Foreground(theme.Foreground).Background(theme.Secondary).Padding(0, 1),

		Error:   base.Foreground(theme.Error),
		Success: base.Foreground(theme.Success),
		Warning: base.Foreground(theme.Warning),

		InputField: bordered.Padding(0, 1),

		StatusBar: base.Foreground(theme.Muted).Background(lipgloss.Color("#181825")).Padding(0, 1),
		Help:      base.Foreground(theme.Muted),
		Border:    bordered,
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
