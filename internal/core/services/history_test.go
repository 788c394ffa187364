package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/framescope/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/framescope/internal/core/domain"
)

func TestHistoryService_RecordPrependsAndFills(t *testing.T) {
	svc := NewHistoryService(memory.NewHistoryStore())
	fixed := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, domain.SearchContext{Query: "first"}))
	require.NoError(t, svc.Record(ctx, domain.SearchContext{Query: "second"}))

	entries, err := svc.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Query)
	assert.Equal(t, "first", entries[1].Query)
	assert.NotEmpty(t, entries[0].ID)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
	assert.Equal(t, fixed, entries[0].Timestamp)
}

func TestHistoryService_CapsAtMax(t *testing.T) {
	svc := NewHistoryService(memory.NewHistoryStore())
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, svc.Record(ctx, domain.SearchContext{Query: fmt.Sprintf("q%d", i)}))
	}

	entries, err := svc.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, domain.MaxHistory)
	assert.Equal(t, "q24", entries[0].Query)
	assert.Equal(t, "q5", entries[domain.MaxHistory-1].Query)
}

func TestHistoryService_PreviousQuery(t *testing.T) {
	svc := NewHistoryService(memory.NewHistoryStore())
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, domain.SearchContext{Query: "short"}))
	assert.Equal(t, "short", svc.PreviousQuery())

	long := "a person walking a dog in the park next to a river at sunset"
	require.NoError(t, svc.Record(ctx, domain.SearchContext{Query: long}))
	assert.Equal(t, domain.TruncateQuery(long), svc.PreviousQuery())
	assert.Equal(t, 15+3+20, len([]rune(svc.PreviousQuery())))
}

func TestHistoryService_GetAndLatest(t *testing.T) {
	svc := NewHistoryService(memory.NewHistoryStore())
	ctx := context.Background()

	_, err := svc.Latest(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Record(ctx, domain.SearchContext{Query: "a"}))
	require.NoError(t, svc.Record(ctx, domain.SearchContext{Query: "b"}))

	latest, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", latest.Query)

	entry, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", entry.Query)

	_, err = svc.Get(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Get(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryService_Clear(t *testing.T) {
	svc := NewHistoryService(memory.NewHistoryStore())
	ctx := context.Background()
	require.NoError(t, svc.Record(ctx, domain.SearchContext{Query: "a"}))

	require.NoError(t, svc.Clear(ctx))

	entries, err := svc.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, svc.PreviousQuery())
}

func TestHistoryService_StoreErrors(t *testing.T) {
	storeErr := errors.New("disk full")
	svc := NewHistoryService(&failingHistoryStore{err: storeErr})
	ctx := context.Background()

	assert.ErrorIs(t, svc.Record(ctx, domain.SearchContext{Query: "a"}), storeErr)
	assert.ErrorIs(t, svc.Clear(ctx), storeErr)
	_, err := svc.Entries(ctx)
	assert.ErrorIs(t, err, storeErr)
}

func TestHistoryService_PreservesResults(t *testing.T) {
	svc := NewHistoryService(memory.NewHistoryStore())
	ctx := context.Background()
	rs := temporalSet(2)

	require.NoError(t, svc.Record(ctx, domain.SearchContext{Query: "a. b.", QueryType: domain.QueryTemporal, Results: rs}))

	latest, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ShapeTemporal, latest.Results.Shape)
	assert.Len(t, latest.Results.Rows, 2)
}
