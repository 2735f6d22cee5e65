package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

func TestChunkCmd_Use(t *testing.T) {
	assert.Equal(t, "chunk [file|-]", chunkCmd.Use)
}

func TestChunkCmd_Flags(t *testing.T) {
	for _, name := range []string{"user", "project", "target", "overlap", "format", "output"} {
		t.Run(name, func(t *testing.T) {
			assert.NotNil(t, chunkCmd.Flags().Lookup(name))
		})
	}
	assert.Equal(t, "u", chunkCmd.Flags().Lookup("user").Shorthand)
	assert.Equal(t, "p", chunkCmd.Flags().Lookup("project").Shorthand)
	assert.Equal(t, formatAuto, chunkCmd.Flags().Lookup("format").DefValue)
}

func TestChunkCmd_NotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	chunkingService = nil

	_, err := executeCommand("chunk", "bail.txt", "-u", "u1", "-p", "p1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunking service not configured")
}

func TestChunkCmd_FileToJSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("chunk", "bail.txt", "--user", "user-1", "--project", "project-1")
	require.NoError(t, err)

	var result domain.ChunkingResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
	require.Len(t, result.Chunks, 2)
	assert.Equal(t, "user-1", result.Chunks[0].UserID)
	assert.Equal(t, "project-1", result.Chunks[1].ProjectID)
	assert.Equal(t, 2, result.DocumentStats.TotalChunks)

	mock := chunkingService.(*mockChunkingService)
	assert.Contains(t, mock.lastReq.Text, "CONTRAT DE BAIL")
	assert.Nil(t, mock.lastReq.TargetChunkSize)
	assert.Nil(t, mock.lastReq.OverlapSize)
}

func TestChunkCmd_JSONFieldNames(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("chunk", "bail.txt", "-u", "u1", "-p", "p1", "--format", "json")
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	assert.Contains(t, raw, "success")
	assert.Contains(t, raw, "chunks")
	assert.Contains(t, raw, "document_stats")

	chunk := raw["chunks"].([]any)[0].(map[string]any)
	assert.Contains(t, chunk, "content")
	assert.Contains(t, chunk, "metadata")
	assert.Contains(t, chunk, "document_info")
	assert.Equal(t, "u1", chunk["userId"])
	assert.Equal(t, "p1", chunk["projectId"])
}

func TestChunkCmd_Stdin(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	tests := []struct {
		name string
		args []string
	}{
		{"dash argument", []string{"chunk", "-", "-u", "u1", "-p", "p1"}},
		{"no argument", []string{"chunk", "-u", "u1", "-p", "p1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommandWithInput("Le loyer est payable le 5 de chaque mois.", tt.args...)
			require.NoError(t, err)
			mock := chunkingService.(*mockChunkingService)
			assert.Equal(t, "Le loyer est payable le 5 de chaque mois.", mock.lastReq.Text)
		})
	}
}

func TestChunkCmd_SizeOverrides(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("chunk", "bail.txt", "-u", "u1", "-p", "p1", "--target", "120", "--overlap", "0")
	require.NoError(t, err)

	mock := chunkingService.(*mockChunkingService)
	require.NotNil(t, mock.lastReq.TargetChunkSize)
	require.NotNil(t, mock.lastReq.OverlapSize)
	assert.Equal(t, 120, *mock.lastReq.TargetChunkSize)
	assert.Equal(t, 0, *mock.lastReq.OverlapSize)
}

func TestChunkCmd_ValidationErrors(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	tests := []struct {
		name    string
		input   string
		args    []string
		wantErr error
	}{
		{
			name:    "missing user",
			args:    []string{"chunk", "bail.txt", "-p", "p1"},
			wantErr: domain.ErrMissingUserID,
		},
		{
			name:    "missing project",
			args:    []string{"chunk", "bail.txt", "-u", "u1"},
			wantErr: domain.ErrMissingProjectID,
		},
		{
			name:    "empty stdin",
			input:   "   \n",
			args:    []string{"chunk", "-", "-u", "u1", "-p", "p1"},
			wantErr: domain.ErrEmptyText,
		},
		{
			name:    "zero target",
			args:    []string{"chunk", "bail.txt", "-u", "u1", "-p", "p1", "--target", "0"},
			wantErr: domain.ErrInvalidChunkSize,
		},
		{
			name:    "negative overlap",
			args:    []string{"chunk", "bail.txt", "-u", "u1", "-p", "p1", "--overlap=-3"},
			wantErr: domain.ErrInvalidOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommandWithInput(tt.input, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestChunkCmd_UnknownFormat(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("chunk", "bail.txt", "-u", "u1", "-p", "p1", "--format", "xml")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), `unknown format "xml"`)
}

func TestChunkCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("chunk", "absent.txt", "-u", "u1", "-p", "p1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load absent.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChunkCmd_Summary(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("chunk", "bail.txt", "-u", "u1", "-p", "p1", "-f", "summary")
	require.NoError(t, err)

	assert.Contains(t, out, "doc_20150403_120000_0042")
	assert.Contains(t, out, "bail_habitation")
	assert.Contains(t, out, "doc_20150403_120000_0042_chunk_001")
	assert.Contains(t, out, "legal_clause")
	assert.NotContains(t, out, `"success"`)
}

func TestChunkCmd_OutputFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "bail.chunks.json")
	out, err := executeCommand("chunk", "bail.txt", "-u", "u1", "-p", "p1", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 chunks to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var result domain.ChunkingResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, 2, result.DocumentStats.TotalChunks)
}

func TestChunkCmd_OutputFileUnwritable(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "missing", "out.json")
	_, err := executeCommand("chunk", "bail.txt", "-u", "u1", "-p", "p1", "-o", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write")
}
