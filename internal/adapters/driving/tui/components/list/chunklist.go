// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/legalchunk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

// linesPerChunk is the height of one rendered chunk: header and preview.
const linesPerChunk = 2

// ChunkList displays the chunks of a document in a navigable list.
type ChunkList struct {
	chunks   []domain.ChunkRecord
	settings domain.ChunkingSettings
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewChunkList creates a new chunk list component. The settings decide
// which colour each quality score gets.
func NewChunkList(s *styles.Styles, settings domain.ChunkingSettings) *ChunkList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ChunkList{
		settings: settings,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the chunk list.
func (l *ChunkList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *ChunkList) Update(msg tea.Msg) (*ChunkList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.chunks) > 0 {
				l.selected = len(l.chunks) - 1
			}
		}
	}
	return l, nil
}

// View renders the chunk list.
func (l *ChunkList) View() string {
	if len(l.chunks) == 0 {
		return l.styles.Muted.Render("No chunks")
	}

	visible := max((l.height-2)/linesPerChunk, 1)
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.chunks))

	lines := make([]string, 0, (end-start)+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Chunks (%d)", len(l.chunks))), "")
	for i := start; i < end; i++ {
		lines = append(lines, l.renderChunk(i, &l.chunks[i]))
	}
	return strings.Join(lines, "\n")
}

// renderChunk formats one chunk as a header line and a preview line.
func (l *ChunkList) renderChunk(index int, c *domain.ChunkRecord) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	prefix := fmt.Sprintf("%s%-3d ", indicator, index+1)
	kind := fmt.Sprintf("%-24s", c.Metadata.ContentType)
	words := fmt.Sprintf(" %4d words", c.Metadata.WordCount)
	score := l.styles.Quality(l.settings.Level(c.Metadata.QualityScore)).
		Render(fmt.Sprintf("%.3f", c.Metadata.QualityScore))

	var headerLine string
	if index == l.selected {
		headerLine = l.styles.Selected.Render(prefix+kind+words) + "  " + score
	} else {
		headerLine = l.styles.Normal.Render(prefix) +
			l.styles.ContentType(c.Metadata.ContentType).Render(kind) +
			l.styles.Normal.Render(words) + "  " + score
	}

	previewLine := l.styles.Muted.Render("    " + Preview(c.Content.Text, max(l.width-6, 20)))
	return headerLine + "\n" + previewLine
}

// Preview collapses whitespace and truncates text to width runes.
func Preview(text string, width int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= width {
		return flat
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// SetChunks replaces the chunks and resets the selection.
func (l *ChunkList) SetChunks(chunks []domain.ChunkRecord) {
	l.chunks = chunks
	l.selected = 0
}

// Chunks returns the current chunks.
func (l *ChunkList) Chunks() []domain.ChunkRecord {
	return l.chunks
}

// Selected returns the index of the selected chunk.
func (l *ChunkList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index. Out of range values are ignored.
func (l *ChunkList) SetSelected(index int) {
	if index >= 0 && index < len(l.chunks) {
		l.selected = index
	}
}

// SelectedChunk returns the currently selected chunk, or nil if none.
func (l *ChunkList) SelectedChunk() *domain.ChunkRecord {
	if l.selected < 0 || l.selected >= len(l.chunks) {
		return nil
	}
	return &l.chunks[l.selected]
}

// MoveUp moves selection up.
func (l *ChunkList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ChunkList) MoveDown() {
	if l.selected < len(l.chunks)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ChunkList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of chunks.
func (l *ChunkList) Count() int {
	return len(l.chunks)
}

// IsEmpty returns whether the list is empty.
func (l *ChunkList) IsEmpty() bool {
	return len(l.chunks) == 0
}
