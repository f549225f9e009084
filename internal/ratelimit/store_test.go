package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreIncrement(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		count, resetAt, err := store.Increment(ctx, "user-1", "generate-week", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, count)
		assert.True(t, resetAt.After(time.Now()))
	}

	// A different bucket for the same identifier counts independently.
	count, _, err := store.Increment(ctx, "user-1", "parse-url", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// As does the same bucket for a different identifier.
	count, _, err = store.Increment(ctx, "user-2", "generate-week", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemoryStoreWindowRollover(t *testing.T) {
	now := time.Now()
	store := &memoryStore{
		windows: make(map[string]*windowEntry),
		now:     func() time.Time { return now },
	}
	ctx := context.Background()

	count, _, err := store.Increment(ctx, "user-1", "generate-week", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, _, err = store.Increment(ctx, "user-1", "generate-week", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	now = now.Add(time.Minute + time.Second)

	count, _, err = store.Increment(ctx, "user-1", "generate-week", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "expired window restarts at one")
}

func TestMemoryStoreGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	count, _, err := store.Get(ctx, "user-1", "generate-week")
	require.NoError(t, err)
	assert.Zero(t, count)

	_, _, err = store.Increment(ctx, "user-1", "generate-week", time.Minute)
	require.NoError(t, err)

	count, resetAt, err := store.Get(ctx, "user-1", "generate-week")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.False(t, resetAt.IsZero())
}

func TestMemoryStoreResetExpired(t *testing.T) {
	now := time.Now()
	store := &memoryStore{
		windows: make(map[string]*windowEntry),
		now:     func() time.Time { return now },
	}
	ctx := context.Background()

	_, _, err := store.Increment(ctx, "user-1", "generate-week", time.Minute)
	require.NoError(t, err)
	_, _, err = store.Increment(ctx, "user-2", "generate-week", time.Hour)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	require.NoError(t, store.ResetExpired(ctx))

	assert.Len(t, store.windows, 1)
	_, ok := store.windows[storeKey("user-2", "generate-week")]
	assert.True(t, ok)
}
