package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

func entryAt(id string, started time.Time) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:        id,
		Operation: domain.OpEncrypt,
		Status:    domain.StatusSucceeded,
		Inputs:    []string{"in.pdf"},
		Output:    "out.pdf",
		StartedAt: started,
		EndedAt:   started,
	}
}

func TestHistoryStore_RecordAndGet(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, entryAt("a", time.Now())))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.OpEncrypt, got.Operation)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.Record(ctx, entryAt("", time.Now())), domain.ErrInvalidInput)
}

func TestHistoryStore_RecordCopiesInputs(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	entry := entryAt("a", time.Now())
	require.NoError(t, store.Record(ctx, entry))
	entry.Inputs[0] = "changed.pdf"

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"in.pdf"}, got.Inputs)
}

func TestHistoryStore_ListOrderAndLimit(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, entryAt("first", base)))
	require.NoError(t, store.Record(ctx, entryAt("third", base.Add(2*time.Second))))
	require.NoError(t, store.Record(ctx, entryAt("second", base.Add(time.Second))))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].ID)
	assert.Equal(t, "second", all[1].ID)
	assert.Equal(t, "first", all[2].ID)

	top, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "third", top[0].ID)
}

func TestHistoryStore_PruneAndClear(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	base := time.Now()

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Record(ctx, entryAt(id, base.Add(time.Duration(i)*time.Second))))
	}

	require.NoError(t, store.Prune(ctx, 1))
	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "c", all[0].ID)

	assert.ErrorIs(t, store.Prune(ctx, -1), domain.ErrInvalidInput)

	require.NoError(t, store.Clear(ctx))
	all, err = store.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}
