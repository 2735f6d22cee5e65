package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/legalchunk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driving"
)

// previewWidth is the number of characters shown per chunk in summaries.
const previewWidth = 72

func renderResult(result *domain.ChunkingResult, settings domain.ChunkingSettings) string {
	s := styles.DefaultStyles()
	stats := result.DocumentStats
	info := stats.DocumentInfo

	var b strings.Builder
	title := info.Title
	if title == "" {
		title = info.DocumentID
	}
	b.WriteString(s.Title.Render(title) + "\n")
	writeField(&b, s, "Document", info.DocumentID)
	writeField(&b, s, "Type", fmt.Sprintf("%s (confidence %.2f)", stats.DocumentType, stats.Confidence))
	writeField(&b, s, "Date", info.Date)
	writeField(&b, s, "Project", info.Project)
	writeField(&b, s, "Location", info.Location)
	writeField(&b, s, "Source", info.Source)
	for _, role := range sortedKeys(info.Parties) {
		writeField(&b, s, "Party", role+": "+info.Parties[role])
	}

	dist := stats.QualityDistribution
	b.WriteString("\n")
	b.WriteString(s.Subtitle.Render(fmt.Sprintf("%d chunks", stats.TotalChunks)))
	b.WriteString(s.Muted.Render(fmt.Sprintf("  avg quality %.3f  ", stats.AvgChunkQuality)))
	b.WriteString(s.Quality(domain.QualityHigh).Render(fmt.Sprintf("%d high", dist.High)) + " ")
	b.WriteString(s.Quality(domain.QualityMedium).Render(fmt.Sprintf("%d medium", dist.Medium)) + " ")
	b.WriteString(s.Quality(domain.QualityLow).Render(fmt.Sprintf("%d low", dist.Low)) + "\n\n")

	for _, c := range result.Chunks {
		score := s.Quality(settings.Level(c.Metadata.QualityScore)).
			Render(fmt.Sprintf("%.3f", c.Metadata.QualityScore))
		b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
			s.Normal.Render(c.Content.ChunkID),
			score,
			s.Muted.Render(fmt.Sprintf("%4d words", c.Metadata.WordCount)),
			s.ContentType(c.Metadata.ContentType).Render(string(c.Metadata.ContentType)),
		))
		b.WriteString("    " + s.Muted.Render(preview(c.Content.Text, previewWidth)) + "\n")
	}
	return b.String()
}

func renderClassification(c *domain.Classification) string {
	s := styles.DefaultStyles()
	var b strings.Builder
	b.WriteString(s.Title.Render(c.Label) + "\n")
	writeField(&b, s, "Type", string(c.Type))
	writeField(&b, s, "Confidence", fmt.Sprintf("%.2f", c.Confidence))
	writeField(&b, s, "Band", formatBand(c.Params.Band))
	if len(c.Matched) > 0 {
		writeField(&b, s, "Matched", strings.Join(c.Matched, ", "))
	}

	types := make([]domain.DocumentType, 0, len(c.Scores))
	for t := range c.Scores {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if c.Scores[types[i]] != c.Scores[types[j]] {
			return c.Scores[types[i]] > c.Scores[types[j]]
		}
		return types[i] < types[j]
	})
	if len(types) > 0 {
		b.WriteString("\n" + s.Subtitle.Render("Scores") + "\n")
		for _, t := range types {
			b.WriteString(fmt.Sprintf("  %-26s %.4f\n", t, c.Scores[t]))
		}
	}
	return b.String()
}

func renderTypes(types []driving.DocumentTypeInfo) string {
	s := styles.DefaultStyles()
	var b strings.Builder
	for _, t := range types {
		b.WriteString(s.Title.Render(t.Label) + " " + s.Muted.Render(string(t.Type)) + "\n")
		writeField(&b, s, "Band", formatBand(t.Band))
		if len(t.Roles) > 0 {
			writeField(&b, s, "Roles", strings.Join(t.Roles, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeField(b *strings.Builder, s *styles.Styles, label, value string) {
	if value == "" {
		return
	}
	key := lipgloss.NewStyle().Width(11).Render(label)
	b.WriteString("  " + s.Muted.Render(key) + s.Normal.Render(value) + "\n")
}

func formatBand(band domain.Band) string {
	return fmt.Sprintf("%d-%d words (target %d)", band.Min, band.Max, band.Target)
}

// preview collapses whitespace and truncates to width runes.
func preview(text string, width int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= width {
		return flat
	}
	return string(runes[:width-3]) + "..."
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
