package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/legalchunk/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/legalchunk/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/legalchunk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/legalchunk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/legalchunk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/legalchunk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

// chromeHeight is the number of lines taken by the header and status bar.
const chromeHeight = 4

// Options configures the chunk requests the TUI makes.
type Options struct {
	// UserID and ProjectID are stamped on every chunk.
	UserID    string
	ProjectID string

	// TargetChunkSize and OverlapSize are passed through when set.
	TargetChunkSize *int
	OverlapSize     *int

	// Path is chunked on start when set.
	Path string

	// Settings decide the colour of quality scores.
	Settings domain.ChunkingSettings
}

// App is the chunk browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	opts  Options
	ctx   context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	pathInput *input.PathInput
	chunkList *list.ChunkList
	statusBar *status.Bar
	detail    viewport.Model

	// result is the last successful chunking result.
	result *domain.ChunkingResult

	// path is the file the result belongs to.
	path string

	currentView  messages.ViewType
	previousView messages.ViewType

	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports, opts Options) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	probe := domain.ChunkRequest{
		Text:            "-",
		UserID:          opts.UserID,
		ProjectID:       opts.ProjectID,
		TargetChunkSize: opts.TargetChunkSize,
		OverlapSize:     opts.OverlapSize,
	}
	if err := probe.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		opts:        opts,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		pathInput:   input.NewPathInput(s),
		chunkList:   list.NewChunkList(s, opts.Settings),
		statusBar:   status.NewBar(s, km),
		detail:      viewport.New(80, 20),
		currentView: messages.ViewOpen,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It chunks the start file, if any.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("legalchunk")}
	if a.opts.Path != "" {
		a.statusBar.SetState(status.StateChunking)
		a.statusBar.SetMessage(filepath.Base(a.opts.Path))
		cmds = append(cmds, a.chunkFile(a.opts.Path))
	} else {
		cmds = append(cmds, a.pathInput.Init())
	}
	return tea.Batch(cmds...)
}

// chunkFile loads and chunks a file off the update loop.
func (a *App) chunkFile(path string) tea.Cmd {
	ctx := a.ctx
	ports := a.ports
	req := domain.ChunkRequest{
		UserID:          a.opts.UserID,
		ProjectID:       a.opts.ProjectID,
		TargetChunkSize: a.opts.TargetChunkSize,
		OverlapSize:     a.opts.OverlapSize,
	}
	return func() tea.Msg {
		text, err := ports.Loader.Load(ctx, path)
		if err != nil {
			return messages.DocumentChunked{Path: path, Err: err}
		}
		req.Text = text
		result, err := ports.Chunking.Chunk(ctx, req)
		return messages.DocumentChunked{Path: path, Result: result, Err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKey(msg)

	case messages.DocumentRequested:
		a.statusBar.SetState(status.StateChunking)
		a.statusBar.SetMessage(filepath.Base(msg.Path))
		return a, a.chunkFile(msg.Path)

	case messages.DocumentChunked:
		return a.handleChunked(msg)

	case messages.ChunkSelected:
		a.openChunk(msg.Index)
		return a, nil

	case messages.ViewChanged:
		a.switchView(msg.View)
		return a, nil

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	if a.currentView == messages.ViewOpen {
		var cmd tea.Cmd
		a.pathInput, cmd = a.pathInput.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewOpen:
		switch {
		case keymap.Matches(key, a.keymap.Load):
			path := strings.TrimSpace(a.pathInput.Value())
			if path == "" {
				return a, nil
			}
			return a.Update(messages.DocumentRequested{Path: path})
		case keymap.Matches(key, a.keymap.Back):
			if a.result != nil {
				a.switchView(messages.ViewChunks)
				return a, nil
			}
			return a, tea.Quit
		}
		a.pathInput, cmd = a.pathInput.Update(msg)
		return a, cmd

	case messages.ViewChunks:
		switch {
		case keymap.Matches(key, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(key, a.keymap.Help):
			a.switchView(messages.ViewHelp)
		case keymap.Matches(key, a.keymap.Open):
			a.switchView(messages.ViewOpen)
			return a, a.pathInput.Focus()
		case keymap.Matches(key, a.keymap.Select):
			a.openChunk(a.chunkList.Selected())
		default:
			a.chunkList, cmd = a.chunkList.Update(msg)
		}
		return a, cmd

	case messages.ViewDetail:
		switch {
		case keymap.Matches(key, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(key, a.keymap.Back):
			a.switchView(messages.ViewChunks)
		case keymap.Matches(key, a.keymap.Help):
			a.switchView(messages.ViewHelp)
		case keymap.Matches(key, a.keymap.Next):
			a.openChunk(a.chunkList.Selected() + 1)
		case keymap.Matches(key, a.keymap.Prev):
			a.openChunk(a.chunkList.Selected() - 1)
		default:
			a.detail, cmd = a.detail.Update(msg)
		}
		return a, cmd

	case messages.ViewHelp:
		switch {
		case keymap.Matches(key, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(key, a.keymap.Back), keymap.Matches(key, a.keymap.Help):
			a.switchView(a.previousView)
		}
	}
	return a, nil
}

func (a *App) handleChunked(msg messages.DocumentChunked) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.setError(fmt.Errorf("%s: %w", filepath.Base(msg.Path), msg.Err))
		a.switchView(messages.ViewOpen)
		a.pathInput.SetValue(msg.Path)
		return a, a.pathInput.Focus()
	}

	a.err = nil
	a.result = msg.Result
	a.path = msg.Path
	a.chunkList.SetChunks(msg.Result.Chunks)
	a.statusBar.SetMessage("")
	a.statusBar.SetStats(&msg.Result.DocumentStats)
	a.pathInput.Reset()
	a.switchView(messages.ViewChunks)
	return a, nil
}

// openChunk shows the chunk at index. Out of range indexes are ignored.
func (a *App) openChunk(index int) {
	if a.result == nil || index < 0 || index >= len(a.result.Chunks) {
		return
	}
	a.chunkList.SetSelected(index)
	a.detail.SetContent(a.renderDetail(&a.result.Chunks[index]))
	a.detail.GotoTop()
	a.switchView(messages.ViewDetail)
}

func (a *App) switchView(v messages.ViewType) {
	if v == messages.ViewHelp && a.currentView != messages.ViewHelp {
		a.previousView = a.currentView
	}
	a.currentView = v

	switch v {
	case messages.ViewOpen:
		if a.err == nil {
			a.statusBar.SetState(status.StateReady)
		}
	case messages.ViewChunks:
		a.statusBar.SetState(status.StateChunks)
	case messages.ViewDetail:
		a.statusBar.SetState(status.StateDetail)
	case messages.ViewHelp:
		a.statusBar.SetState(status.StateHelp)
	}
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
}

func (a *App) setDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	body := max(height-chromeHeight, 1)
	a.pathInput.SetWidth(width)
	a.chunkList.SetDimensions(width, body)
	a.statusBar.SetWidth(width)
	a.detail.Width = width
	a.detail.Height = body
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewOpen:
		body = a.viewOpen()
	case messages.ViewChunks:
		body = a.chunkList.View()
	case messages.ViewDetail:
		body = a.detail.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	}

	return a.viewHeader() + "\n\n" + body + "\n" + a.statusBar.View()
}

func (a *App) viewHeader() string {
	if a.result == nil {
		return a.styles.Title.Render("legalchunk")
	}
	info := a.result.DocumentStats.DocumentInfo
	title := info.Title
	if title == "" {
		title = filepath.Base(a.path)
	}
	return a.styles.Title.Render(list.Preview(title, max(a.width-30, 20))) + "  " +
		a.styles.Muted.Render(info.DocumentID)
}

func (a *App) viewOpen() string {
	lines := []string{
		a.styles.Normal.Render("Enter the path of a document to chunk (text, Markdown, HTML or DOCX)."),
		"",
		a.pathInput.View(),
	}
	if a.err != nil {
		lines = append(lines, "", a.styles.Error.Render(a.err.Error()))
	}
	return strings.Join(lines, "\n")
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Subtitle.Render("Keys") + "\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Muted.Render("[esc] back"))
	return b.String()
}

// renderDetail renders one chunk with its metadata and entities.
func (a *App) renderDetail(c *domain.ChunkRecord) string {
	s := a.styles
	level := a.opts.Settings.Level(c.Metadata.QualityScore)

	var b strings.Builder
	b.WriteString(s.Subtitle.Render(c.Content.ChunkID) + "  ")
	b.WriteString(s.Quality(level).Render(fmt.Sprintf("%.3f %s", c.Metadata.QualityScore, level)) + "  ")
	b.WriteString(s.Muted.Render(fmt.Sprintf("%d words | ", c.Metadata.WordCount)))
	b.WriteString(s.ContentType(c.Metadata.ContentType).Render(string(c.Metadata.ContentType)))
	b.WriteString("\n\n")
	b.WriteString(s.Chunk.Width(max(a.width-4, 20)).Render(c.Content.Text))
	b.WriteString("\n\n")

	if c.Metadata.Entities.Count() > 0 {
		b.WriteString(s.Subtitle.Render("Entities") + "\n")
		for _, cat := range domain.EntityCategories {
			values := c.Metadata.Entities[cat]
			if len(values) == 0 {
				continue
			}
			b.WriteString(fmt.Sprintf("  %-18s %s\n", cat, s.Entity.Render(strings.Join(values, " · "))))
		}
		b.WriteString("\n")
	}

	info := c.DocumentInfo
	b.WriteString(s.Subtitle.Render("Document") + "\n")
	for _, f := range [][2]string{
		{"date", info.Date},
		{"project", info.Project},
		{"location", info.Location},
		{"source", info.Source},
	} {
		if f[1] != "" {
			b.WriteString(fmt.Sprintf("  %-18s %s\n", f[0], f[1]))
		}
	}
	roles := make([]string, 0, len(info.Parties))
	for role := range info.Parties {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		b.WriteString(fmt.Sprintf("  %-18s %s\n", role, info.Parties[role]))
	}
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Result returns the last chunking result, or nil.
func (a *App) Result() *domain.ChunkingResult {
	return a.result
}

// SelectedIndex returns the index of the selected chunk.
func (a *App) SelectedIndex() int {
	return a.chunkList.Selected()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}
