// Package app wires adapters and services into a running application.
// Every driving adapter (CLI, HTTP, MCP, TUI) receives its services from here.
package app

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/custodia-labs/legalchunk/internal/adapters/driven/config/file"
	"github.com/custodia-labs/legalchunk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/legalchunk/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/legalchunk/internal/classifier"
	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
	"github.com/custodia-labs/legalchunk/internal/core/services"
	"github.com/custodia-labs/legalchunk/internal/extractor"
	"github.com/custodia-labs/legalchunk/internal/idgen"
	"github.com/custodia-labs/legalchunk/internal/lexicon"
	"github.com/custodia-labs/legalchunk/internal/logger"
	"github.com/custodia-labs/legalchunk/internal/normalisers"
	"github.com/custodia-labs/legalchunk/internal/normalisers/docx"
	"github.com/custodia-labs/legalchunk/internal/normalisers/html"
	"github.com/custodia-labs/legalchunk/internal/normalisers/markdown"
	"github.com/custodia-labs/legalchunk/internal/normalisers/plaintext"
	"github.com/custodia-labs/legalchunk/internal/postprocessors"
)

// Options configures New.
type Options struct {
	// ConfigDir holds config.toml and the data directory.
	// Empty means ~/.legalchunk.
	ConfigDir string

	// ConfigStore replaces the TOML file store when set.
	ConfigStore driven.ConfigStore

	// DataDir holds the run journal. Empty means <ConfigDir>/data.
	DataDir string
}

// App holds the wired services.
type App struct {
	Settings    *domain.AppSettings
	ConfigStore driven.ConfigStore

	Chunking        *services.ChunkingService
	SettingsService *services.SettingsService
	History         *services.HistoryService
	Loader          *services.LoaderService

	closers []io.Closer
}

// New loads the settings and builds every service.
func New(opts Options) (*App, error) {
	store := opts.ConfigStore
	if store == nil {
		fileStore, err := file.NewConfigStore(opts.ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("opening config: %w", err)
		}
		store = fileStore
	}

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	a := &App{
		Settings:        settings,
		ConfigStore:     store,
		SettingsService: settingsService,
		Loader:          services.NewLoaderService(NewNormaliserRegistry()),
	}

	runs := a.openRunStore(opts, settings.History)
	a.History = services.NewHistoryService(runs)

	chunking, err := NewChunkingService(*settings, runs)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Chunking = chunking

	return a, nil
}

// Close releases the run journal.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// openRunStore returns the journal, or nil when history is off.
// A journal that cannot be opened degrades to memory for this process.
func (a *App) openRunStore(opts Options, history domain.HistorySettings) driven.RunStore {
	if !history.Enabled {
		return nil
	}

	dataDir := opts.DataDir
	if dataDir == "" && opts.ConfigDir != "" {
		dataDir = filepath.Join(opts.ConfigDir, "data")
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("run journal unavailable, keeping runs in memory", "error", err)
		return memory.NewRunStore()
	}
	a.closers = append(a.closers, store)
	logger.Debug("run journal opened", "path", store.Path())
	return store.RunStore()
}

// NewChunkingService builds the pipeline from settings. runs may be nil.
func NewChunkingService(settings domain.AppSettings, runs driven.RunStore) (*services.ChunkingService, error) {
	lex, err := lexicon.Load()
	if err != nil {
		return nil, fmt.Errorf("loading lexicon: %w", err)
	}

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry, lex)
	pipeline, err := postprocessors.BuildPipeline(registry, settings.Pipeline)
	if err != nil {
		return nil, fmt.Errorf("building pipeline: %w", err)
	}

	ids, err := idgen.New()
	if err != nil {
		return nil, fmt.Errorf("creating id generator: %w", err)
	}

	opts := []services.ChunkingOption{services.WithChunkingSettings(settings.Chunking)}
	if runs != nil {
		opts = append(opts, services.WithRunStore(runs, settings.History.Keep))
	}

	logger.Debug("pipeline ready", "processors", pipeline.Names(), "terms", lex.TermCount())
	return services.NewChunkingService(
		classifier.New(lex),
		extractor.New(lex),
		pipeline,
		ids,
		lex,
		opts...,
	), nil
}

// NewNormaliserRegistry registers every file format the loader reads.
func NewNormaliserRegistry() *normalisers.Registry {
	return normalisers.NewRegistry(
		plaintext.New(),
		markdown.New(),
		html.New(),
		docx.New(),
	)
}
