// Package watch chunks documents as they appear in a directory.
// Each processed file gets a sibling <file>.chunks.json holding the
// chunking result.
package watch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driving"
	"github.com/custodia-labs/legalchunk/internal/logger"
)

// OutputSuffix is appended to a source file name to form its result file.
const OutputSuffix = ".chunks.json"

// DefaultDebounce is how long a file must stay quiet before it is chunked.
const DefaultDebounce = 300 * time.Millisecond

// ErrMissingChunkingService is returned when the chunking service is not provided.
var ErrMissingChunkingService = errors.New("watch: chunking service is required")

// ErrMissingLoader is returned when the document loader is not provided.
var ErrMissingLoader = errors.New("watch: document loader is required")

// Ports aggregates the driving ports the watcher uses.
type Ports struct {
	Chunking driving.ChunkingService
	Loader   driving.DocumentLoader
}

// Config describes what to watch and how to stamp the chunks.
type Config struct {
	Dir       string
	UserID    string
	ProjectID string

	// TargetChunkSize and OverlapSize are passed through when set.
	TargetChunkSize *int
	OverlapSize     *int

	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration

	// Initial chunks files already present when Run starts.
	Initial bool

	// OnProcessed is called after every attempt. Optional.
	OnProcessed func(path string, err error)
}

// Watcher chunks files written to a directory.
type Watcher struct {
	ports *Ports
	cfg   Config

	mu     sync.Mutex
	timers map[string]*pending
	wg     sync.WaitGroup
}

// pending is a debounced file waiting to be chunked.
type pending struct {
	timer *time.Timer
}

// New validates the ports and configuration.
func New(ports *Ports, cfg Config) (*Watcher, error) {
	if ports == nil || ports.Chunking == nil {
		return nil, ErrMissingChunkingService
	}
	if ports.Loader == nil {
		return nil, ErrMissingLoader
	}
	if cfg.Dir == "" {
		return nil, fmt.Errorf("%w: directory is required", domain.ErrInvalidInput)
	}
	req := domain.ChunkRequest{
		Text:            "-",
		UserID:          cfg.UserID,
		ProjectID:       cfg.ProjectID,
		TargetChunkSize: cfg.TargetChunkSize,
		OverlapSize:     cfg.OverlapSize,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &Watcher{
		ports:  ports,
		cfg:    cfg,
		timers: make(map[string]*pending),
	}, nil
}

// Run watches the directory until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.cfg.Dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, w.cfg.Dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.cfg.Dir, err)
	}
	logger.Info("watching directory", "dir", w.cfg.Dir, "debounce", w.cfg.Debounce)

	if w.cfg.Initial {
		w.processExisting(ctx)
	}

	defer w.stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.schedule(ctx, event.Name)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

// schedule restarts the quiet period of a file.
func (w *Watcher) schedule(ctx context.Context, path string) {
	if !Eligible(path) {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if p, ok := w.timers[path]; ok && p.timer.Stop() {
		w.wg.Done()
	}
	p := &pending{}
	w.wg.Add(1)
	p.timer = time.AfterFunc(w.cfg.Debounce, func() {
		defer w.wg.Done()
		w.mu.Lock()
		if w.timers[path] == p {
			delete(w.timers, path)
		}
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		w.report(path, w.Process(ctx, path))
	})
	w.timers[path] = p
	logger.Debug("file change debounced", "file", path)
}

// stop cancels pending timers and waits for running ones.
func (w *Watcher) stop() {
	w.mu.Lock()
	for path, p := range w.timers {
		if p.timer.Stop() {
			w.wg.Done()
		}
		delete(w.timers, path)
	}
	w.mu.Unlock()
	w.wg.Wait()
}

func (w *Watcher) processExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		logger.Warn("failed to list directory", "dir", w.cfg.Dir, "error", err)
		return
	}
	for _, e := range entries {
		path := filepath.Join(w.cfg.Dir, e.Name())
		if e.IsDir() || !Eligible(path) {
			continue
		}
		if ctx.Err() != nil {
			return
		}
		w.report(path, w.Process(ctx, path))
	}
}

func (w *Watcher) report(path string, err error) {
	if err != nil {
		logger.Warn("failed to chunk file", "file", path, "error", err)
	}
	if w.cfg.OnProcessed != nil {
		w.cfg.OnProcessed(path, err)
	}
}

// Process chunks one file and writes its result file.
func (w *Watcher) Process(ctx context.Context, path string) error {
	text, err := w.ports.Loader.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}

	result, err := w.ports.Chunking.Chunk(ctx, domain.ChunkRequest{
		Text:            text,
		UserID:          w.cfg.UserID,
		ProjectID:       w.cfg.ProjectID,
		TargetChunkSize: w.cfg.TargetChunkSize,
		OverlapSize:     w.cfg.OverlapSize,
	})
	if err != nil {
		return fmt.Errorf("chunk %s: %w", filepath.Base(path), err)
	}

	out := OutputPath(path)
	if err := writeJSON(out, result); err != nil {
		return err
	}
	logger.Info("wrote chunks",
		"file", path,
		"output", out,
		"chunks", result.DocumentStats.TotalChunks)
	return nil
}

// OutputPath returns the result file of a source file.
func OutputPath(path string) string {
	return path + OutputSuffix
}

// Eligible reports whether a file should be chunked. Result files, hidden
// files and editor temporaries are skipped.
func Eligible(path string) bool {
	name := filepath.Base(path)
	switch {
	case name == "" || name == "." || strings.HasPrefix(name, "."):
		return false
	case strings.HasSuffix(name, OutputSuffix):
		return false
	case strings.HasSuffix(name, "~"), strings.HasSuffix(name, ".tmp"), strings.HasSuffix(name, ".swp"):
		return false
	}
	return true
}

// writeJSON writes through a hidden temporary file and renames it into
// place so readers never see a partial result.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
