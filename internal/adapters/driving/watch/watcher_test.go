package watch

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

func testConfig(dir string) Config {
	return Config{
		Dir:       dir,
		UserID:    "user-1",
		ProjectID: "project-1",
		Debounce:  20 * time.Millisecond,
	}
}

func TestNew_Validation(t *testing.T) {
	ports := &Ports{Chunking: &mockChunkingService{}, Loader: mockLoader{}}
	overlap := 30
	target := 20

	tests := []struct {
		name    string
		ports   *Ports
		mutate  func(*Config)
		wantErr error
	}{
		{"nil ports", nil, nil, ErrMissingChunkingService},
		{"missing loader", &Ports{Chunking: &mockChunkingService{}}, nil, ErrMissingLoader},
		{"missing dir", ports, func(c *Config) { c.Dir = "" }, domain.ErrInvalidInput},
		{"missing user", ports, func(c *Config) { c.UserID = " " }, domain.ErrMissingUserID},
		{"missing project", ports, func(c *Config) { c.ProjectID = "" }, domain.ErrMissingProjectID},
		{"overlap above target", ports, func(c *Config) {
			c.TargetChunkSize = &target
			c.OverlapSize = &overlap
		}, domain.ErrInvalidOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t.TempDir())
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			_, err := New(tt.ports, cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_DefaultDebounce(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Debounce = 0

	w, err := New(&Ports{Chunking: &mockChunkingService{}, Loader: mockLoader{}}, cfg)

	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.cfg.Debounce)
}

func TestEligible(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/docs/bail.txt", true},
		{"/docs/cctp.docx", true},
		{"/docs/bail.txt.chunks.json", false},
		{"/docs/.bail.txt.chunks.json.tmp", false},
		{"/docs/.hidden", false},
		{"/docs/notes.txt~", false},
		{"/docs/draft.swp", false},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			assert.Equal(t, tt.want, Eligible(tt.path))
		})
	}
}

func TestProcess_WritesResultFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bail.txt")
	require.NoError(t, os.WriteFile(src, []byte("Le loyer est fixé à 850 €.\n"), 0o600))
	chunking := &mockChunkingService{}
	w, err := New(&Ports{Chunking: chunking, Loader: mockLoader{}}, testConfig(dir))
	require.NoError(t, err)

	require.NoError(t, w.Process(context.Background(), src))

	data, err := os.ReadFile(OutputPath(src))
	require.NoError(t, err)
	var result domain.ChunkingResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.True(t, result.Success)
	require.Len(t, result.Chunks, 1)
	assert.Equal(t, "Le loyer est fixé à 850 €.", result.Chunks[0].Content.Text)
	assert.Equal(t, "user-1", result.Chunks[0].UserID)
	assert.Equal(t, "project-1", result.Chunks[0].ProjectID)

	leftovers, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestProcess_Errors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bail.txt")
	require.NoError(t, os.WriteFile(src, []byte("texte"), 0o600))

	t.Run("missing file", func(t *testing.T) {
		w, err := New(&Ports{Chunking: &mockChunkingService{}, Loader: mockLoader{}}, testConfig(dir))
		require.NoError(t, err)

		err = w.Process(context.Background(), filepath.Join(dir, "absent.txt"))

		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("chunking failure", func(t *testing.T) {
		boom := errors.New("boom")
		w, err := New(&Ports{Chunking: &mockChunkingService{err: boom}, Loader: mockLoader{}}, testConfig(dir))
		require.NoError(t, err)

		err = w.Process(context.Background(), src)

		assert.ErrorIs(t, err, boom)
		assert.NoFileExists(t, OutputPath(src))
	})
}

func TestRun_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	w, err := New(&Ports{Chunking: &mockChunkingService{}, Loader: mockLoader{}}, testConfig(file))
	require.NoError(t, err)

	err = w.Run(context.Background())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRun_ChunksNewAndExistingFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.txt")
	require.NoError(t, os.WriteFile(existing, []byte("Article 1. Objet du contrat."), 0o600))

	var (
		mu        sync.Mutex
		processed []string
	)
	cfg := testConfig(dir)
	cfg.Initial = true
	cfg.OnProcessed = func(path string, err error) {
		assert.NoError(t, err)
		mu.Lock()
		processed = append(processed, filepath.Base(path))
		mu.Unlock()
	}
	chunking := &mockChunkingService{}
	w, err := New(&Ports{Chunking: chunking, Loader: mockLoader{}}, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(OutputPath(existing))
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	added := filepath.Join(dir, "added.txt")
	require.NoError(t, os.WriteFile(added, []byte("Le prix est de 1 000 euros."), 0o600))

	require.Eventually(t, func() bool {
		_, err := os.Stat(OutputPath(added))
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, processed, "existing.txt")
	assert.Contains(t, processed, "added.txt")
	assert.NotContains(t, processed, "existing.txt.chunks.json")
	assert.NotContains(t, processed, "added.txt.chunks.json")
}
