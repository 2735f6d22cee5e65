// Package styles provides the colour theme shared by the TUI and the CLI
// summaries. Quality levels map to the success, warning and error colours.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

// Theme is the colour palette.
type Theme struct {
	// Primary marks titles, selections and legal clauses.
	Primary lipgloss.Color

	// Secondary marks chunk IDs, entities and tables.
	Secondary lipgloss.Color

	// Panel is the status bar background.
	Panel lipgloss.Color

	Foreground lipgloss.Color
	Muted      lipgloss.Color

	// Rule draws input frames and the chunk gutter.
	Rule lipgloss.Color

	// Success, Warning and Error double as high, medium and low quality.
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// DefaultTheme returns the default palette: navy accents on a slate panel.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#5B8DEF"),
		Secondary:  lipgloss.Color("#C792EA"),
		Panel:      lipgloss.Color("#1B2333"),
		Foreground: lipgloss.Color("#E3E8F0"),
		Muted:      lipgloss.Color("#7A8499"),
		Rule:       lipgloss.Color("#3A4560"),
		Success:    lipgloss.Color("#7FD88F"),
		Warning:    lipgloss.Color("#F2C14E"),
		Error:      lipgloss.Color("#EF6F6C"),
	}
}

// Styles holds the lipgloss styles built from a theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style

	// Chunk frames a chunk body with a left gutter.
	Chunk lipgloss.Style

	Entity lipgloss.Style
}

// NewStyles creates styles from a theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Normal:   lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Panel).
			Background(theme.Primary),

		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Rule).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Panel).
			Padding(0, 1),

		Chunk: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(theme.Rule).
			PaddingLeft(1),

		Entity: lipgloss.NewStyle().Foreground(theme.Secondary),
	}
}

// Quality returns the style of a quality level.
func (s *Styles) Quality(level domain.QualityLevel) lipgloss.Style {
	switch level {
	case domain.QualityHigh:
		return s.Success
	case domain.QualityMedium:
		return s.Warning
	default:
		return s.Error
	}
}

// ContentType returns the style used to label a chunk's content type.
func (s *Styles) ContentType(ct domain.ContentType) lipgloss.Style {
	switch ct {
	case domain.ContentLegalClause, domain.ContentObligations, domain.ContentConditions:
		return s.Title
	case domain.ContentTable, domain.ContentFinancial:
		return s.Subtitle
	case domain.ContentGuarantees, domain.ContentSafetySecurity:
		return s.Warning
	case domain.ContentNarrative, "":
		return s.Muted
	default:
		return s.Normal
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
