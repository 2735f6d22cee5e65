package quality

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

func TestProcessor_Name(t *testing.T) {
	assert.Equal(t, "quality", New(newTestScorer(t, DefaultWeights)).Name())
}

func TestProcessor_Process(t *testing.T) {
	p := New(newTestScorer(t, DefaultWeights))
	doc := &domain.Document{
		ID:             "20120915120000001",
		Classification: domain.Classification{Type: domain.ReservationContract},
		Params:         domain.AdaptiveParams{Band: domain.Band{Min: 45, Target: 65, Max: 85}},
	}
	in := []domain.Chunk{
		{Content: "Le prix de vente est payable à la signature.", WordCount: 8, StartsAtBoundary: false, EndsAtBoundary: false},
		{Content: "Poste | Prix", WordCount: 3, ContentType: domain.ContentTable, StartsAtBoundary: true},
	}

	out, err := p.Process(context.Background(), doc, in)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// The first chunk always starts on a boundary, the last always ends on one.
	assert.Equal(t, 0.7, out[0].Quality.Completeness)
	assert.Equal(t, 1.0, out[1].Quality.Completeness)

	assert.Equal(t, domain.ContentFinancial, out[0].ContentType)
	assert.Equal(t, domain.ContentTable, out[1].ContentType)

	for _, c := range out {
		assert.GreaterOrEqual(t, c.Score, 0.0)
		assert.LessOrEqual(t, c.Score, 1.0)
	}

	assert.Zero(t, in[0].Score)
}

func TestProcessor_Process_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(newTestScorer(t, DefaultWeights)).Process(ctx, &domain.Document{}, []domain.Chunk{{Content: "x"}})

	assert.ErrorIs(t, err, context.Canceled)
}
