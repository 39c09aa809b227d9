package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
)

func TestHistoryStore_RecordAndList(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	base := time.Now().UTC()
	require.NoError(t, store.Record(ctx, domain.PublishAttempt{
		ID:        "a",
		PublishID: "v_pub_1",
		CreatedAt: base,
	}))
	require.NoError(t, store.Record(ctx, domain.PublishAttempt{
		ID:        "b",
		PublishID: "v_pub_2",
		CreatedAt: base.Add(time.Minute),
	}))

	attempts, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, "v_pub_2", attempts[0].PublishID)
	assert.Equal(t, "v_pub_1", attempts[1].PublishID)
}

func TestHistoryStore_ListLimit(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Record(ctx, domain.PublishAttempt{ID: id}))
	}

	attempts, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, attempts, 2)
}

func TestHistoryStore_RecordUpdates(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, domain.PublishAttempt{
		ID:     "a",
		Status: domain.StatusProcessing,
	}))
	require.NoError(t, store.Record(ctx, domain.PublishAttempt{
		ID:         "a",
		Status:     domain.StatusFailed,
		FailReason: "download_timeout",
	}))

	attempts, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, domain.StatusFailed, attempts[0].Status)
	assert.Equal(t, "download_timeout", attempts[0].FailReason)
}

func TestHistoryStore_RecordRejectsEmptyID(t *testing.T) {
	store := NewHistoryStore()

	err := store.Record(context.Background(), domain.PublishAttempt{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
