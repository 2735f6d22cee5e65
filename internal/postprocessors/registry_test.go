package postprocessors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
	"github.com/custodia-labs/legalchunk/internal/lexicon"
)

func newDefaultRegistry(t *testing.T) *Registry {
	t.Helper()
	lex, err := lexicon.Load()
	require.NoError(t, err)
	r := NewRegistry()
	RegisterDefaults(r, lex)
	return r
}

func TestRegistry_RegisterAndBuild(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Names())

	r.Register("echo", func(cfg map[string]any) (driven.PostProcessor, error) {
		name, _ := cfg["name"].(string)
		return &mockProcessor{name: name}, nil
	})

	assert.True(t, r.Has("echo"))
	assert.False(t, r.Has("missing"))

	proc, err := r.Build("echo", map[string]any{"name": "custom"})
	require.NoError(t, err)
	assert.Equal(t, "custom", proc.Name())

	_, err = r.Build("missing", nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := newDefaultRegistry(t)

	assert.Equal(t, []string{"entities", "quality", "segmenter"}, r.Names())
}

func TestRegisterDefaults_BuildWithConfig(t *testing.T) {
	r := newDefaultRegistry(t)

	tests := []struct {
		name string
		cfg  map[string]any
	}{
		{"segmenter", nil},
		{"segmenter", map[string]any{"min_words": 20, "target_words": 30, "max_words": int64(40), "overlap": 5}},
		{"entities", nil},
		{"quality", nil},
		{"quality", map[string]any{"density": 0.5, "length": 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc, err := r.Build(tt.name, tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.name, proc.Name())
		})
	}
}

func TestRegisterDefaults_SegmenterFallbackBand(t *testing.T) {
	r := newDefaultRegistry(t)
	proc, err := r.Build("segmenter", map[string]any{"min_words": 5, "target_words": 8, "max_words": 10, "overlap": 0})
	require.NoError(t, err)

	doc := &domain.Document{ID: "doc", Content: "Un deux trois quatre cinq. Six sept huit neuf dix. Onze douze treize quatorze quinze."}
	chunks, err := proc.Process(context.Background(), doc, nil)
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.Equal(t, 10, chunks[0].WordCount)
	assert.Zero(t, chunks[1].OverlapWords)
}

func TestGetIntFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      map[string]any
		key      string
		expected int
	}{
		{"int value", map[string]any{"size": 100}, "size", 100},
		{"int64 value", map[string]any{"size": int64(200)}, "size", 200},
		{"float64 value", map[string]any{"size": float64(300)}, "size", 300},
		{"string value", map[string]any{"size": "400"}, "size", 0},
		{"missing key", map[string]any{"other": 100}, "size", 0},
		{"nil config", nil, "size", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getIntFromConfig(tt.cfg, tt.key))
		})
	}
}

func TestGetFloatFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      map[string]any
		expected float64
	}{
		{"float value", map[string]any{"w": 0.4}, 0.4},
		{"int value", map[string]any{"w": 1}, 1},
		{"negative falls back", map[string]any{"w": -0.1}, 0.25},
		{"wrong type falls back", map[string]any{"w": "0.4"}, 0.25},
		{"missing falls back", map[string]any{}, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getFloatFromConfig(tt.cfg, "w", 0.25))
		})
	}
}
