// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	// Accent marks titles and the selected menu item.
	Accent lipgloss.Color

	// Secondary marks labels and paths.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for hints and less important text.
	Muted lipgloss.Color

	// Success marks completed operations.
	Success lipgloss.Color

	// Partial marks operations that skipped some inputs.
	Partial lipgloss.Color

	// Failure marks failed operations.
	Failure lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#E0613A"), // Vermilion
		Secondary:  lipgloss.Color("#5FA8D3"), // Steel blue
		Foreground: lipgloss.Color("#E6E1D6"), // Paper
		Muted:      lipgloss.Color("#7D7A73"),
		Success:    lipgloss.Color("#8FC07A"),
		Partial:    lipgloss.Color("#E8C15A"),
		Failure:    lipgloss.Color("#E5646E"),
		Border:     lipgloss.Color("#4A4741"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style

	// Selected is the highlighted menu or list row.
	Selected lipgloss.Style

	// Label precedes a value, as in "Output:".
	Label lipgloss.Style

	// Path renders file and folder paths.
	Path lipgloss.Style

	Success lipgloss.Style
	Partial lipgloss.Style
	Failure lipgloss.Style

	// InputField frames the active prompt.
	InputField lipgloss.Style

	StatusBar lipgloss.Style
	Help      lipgloss.Style

	// Panel frames a result summary.
	Panel lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Label: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Width(10),

		Path: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Italic(true),

		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Success),

		Partial: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Partial),

		Failure: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Failure),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#22201C")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
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
