package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

func TestDefaultTheme_ColoursAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	seen := make(map[lipgloss.Color]bool)
	for _, c := range []lipgloss.Color{theme.Primary, theme.Secondary, theme.Success, theme.Warning, theme.Error} {
		assert.NotEmpty(t, string(c))
		assert.False(t, seen[c], "duplicate colour %s", c)
		seen[c] = true
	}
}

func TestNewStyles(t *testing.T) {
	t.Run("with theme", func(t *testing.T) {
		theme := DefaultTheme()
		s := NewStyles(theme)
		require.NotNil(t, s)
		assert.Same(t, theme, s.Theme())
	})

	t.Run("nil theme uses default", func(t *testing.T) {
		s := NewStyles(nil)
		require.NotNil(t, s)
		assert.Equal(t, DefaultTheme(), s.Theme())
	})
}

func TestStyles_Quality(t *testing.T) {
	s := DefaultStyles()
	theme := s.Theme()

	tests := []struct {
		level domain.QualityLevel
		want  lipgloss.Color
	}{
		{domain.QualityHigh, theme.Success},
		{domain.QualityMedium, theme.Warning},
		{domain.QualityLow, theme.Error},
		{domain.QualityLevel("unknown"), theme.Error},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.want, s.Quality(tt.level).GetForeground())
		})
	}
}

func TestStyles_RenderKeepsText(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.Title.Render("CONTRAT DE BAIL"), "CONTRAT DE BAIL")
	assert.Contains(t, s.Entity.Render("850 €"), "850 €")
	assert.Contains(t, s.Chunk.Render("Article 1"), "Article 1")
}

func TestStyles_ContentType(t *testing.T) {
	s := DefaultStyles()
	theme := s.Theme()

	tests := []struct {
		ct   domain.ContentType
		want lipgloss.Color
	}{
		{domain.ContentLegalClause, theme.Primary},
		{domain.ContentObligations, theme.Primary},
		{domain.ContentTable, theme.Secondary},
		{domain.ContentFinancial, theme.Secondary},
		{domain.ContentGuarantees, theme.Warning},
		{domain.ContentNarrative, theme.Muted},
		{domain.ContentType(""), theme.Muted},
		{domain.ContentDefinitions, theme.Foreground},
	}

	for _, tt := range tests {
		t.Run(string(tt.ct), func(t *testing.T) {
			assert.Equal(t, tt.want, s.ContentType(tt.ct).GetForeground())
		})
	}
}

func TestNewStyles_StatusBarUsesPanel(t *testing.T) {
	theme := DefaultTheme()
	s := NewStyles(theme)

	assert.Equal(t, theme.Panel, s.StatusBar.GetBackground())
	assert.Equal(t, theme.Panel, s.Selected.GetForeground())
}
