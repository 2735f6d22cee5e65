package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

func TestHistoryService_Disabled(t *testing.T) {
	svc := NewHistoryService(nil)

	assert.False(t, svc.Enabled())
	_, err := svc.Recent(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrHistoryDisabled)
	_, err = svc.Get(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrHistoryDisabled)
}

func TestHistoryService_Recent(t *testing.T) {
	store := &mockRunStore{}
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.SaveRun(context.Background(), &domain.RunSummary{ID: id}))
	}
	svc := NewHistoryService(store)

	runs, err := svc.Recent(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestHistoryService_RecentError(t *testing.T) {
	svc := NewHistoryService(&mockRunStore{listErr: errStore})

	_, err := svc.Recent(context.Background(), 1)

	assert.ErrorIs(t, err, errStore)
}

func TestHistoryService_Get(t *testing.T) {
	store := &mockRunStore{}
	require.NoError(t, store.SaveRun(context.Background(), &domain.RunSummary{ID: "run-1", TotalChunks: 4}))
	svc := NewHistoryService(store)

	run, err := svc.Get(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, 4, run.TotalChunks)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
