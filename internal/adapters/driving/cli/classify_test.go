package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driving"
)

func TestClassifyCmd_Summary(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("classify", "bail.txt")
	require.NoError(t, err)

	assert.Contains(t, out, "Bail d'habitation")
	assert.Contains(t, out, "bail_habitation")
	assert.Contains(t, out, "0.82")
	assert.Contains(t, out, "80-160 words (target 120)")
	assert.Contains(t, out, "bailleur, locataire, loyer")

	// Scores are listed best first.
	assert.Less(t, strings.Index(out, "0.0412"), strings.Index(out, "0.0091"))
}

func TestClassifyCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("classify", "bail.txt", "--json")
	require.NoError(t, err)

	var c domain.Classification
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, domain.ResidentialLease, c.Type)
	assert.InDelta(t, 0.82, c.Confidence, 1e-9)
	assert.Equal(t, 120, c.Params.Band.Target)
}

func TestClassifyCmd_Stdin(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommandWithInput("Le preneur exploite un fonds de commerce.", "classify")
	require.NoError(t, err)

	mock := chunkingService.(*mockChunkingService)
	assert.Equal(t, "Le preneur exploite un fonds de commerce.", mock.lastClassify)
}

func TestClassifyCmd_Errors(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		_, err := executeCommandWithInput("", "classify", "-")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmptyText)
		assert.Contains(t, err.Error(), "classification failed")
	})

	t.Run("not configured", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		chunkingService = nil

		_, err := executeCommand("classify", "bail.txt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chunking service not configured")
	})
}

func TestTypesCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	t.Run("summary", func(t *testing.T) {
		out, err := executeCommand("types")
		require.NoError(t, err)
		assert.Contains(t, out, "Contrat de réservation VEFA")
		assert.Contains(t, out, "contrat_reservation_vefa")
		assert.Contains(t, out, "120-240 words (target 180)")
		assert.Contains(t, out, "reservant, reservataire")
		assert.Contains(t, out, "Contrat général")
	})

	t.Run("json", func(t *testing.T) {
		out, err := executeCommand("types", "--json")
		require.NoError(t, err)

		var types []driving.DocumentTypeInfo
		require.NoError(t, json.Unmarshal([]byte(out), &types))
		require.Len(t, types, 2)
		assert.Equal(t, domain.ReservationContract, types[0].Type)
		assert.Equal(t, domain.GeneralContract, types[1].Type)
	})

	t.Run("rejects arguments", func(t *testing.T) {
		_, err := executeCommand("types", "extra")
		require.Error(t, err)
	})
}
