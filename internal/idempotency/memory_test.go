package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Reserve(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(0)
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	ok, err := s.Reserve(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Reserve(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second reservation must fail while the first is live")

	require.NoError(t, s.Release(ctx, "k"))

	ok, err = s.Reserve(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "a released key can be reserved again")
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(0)
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }

	ok, _ := s.Reserve(ctx, "k", time.Second)
	require.True(t, ok)

	now = now.Add(2 * time.Second)

	ok, err := s.Reserve(ctx, "k", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_Cleanup(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(10 * time.Millisecond)
	t.Cleanup(func() { _ = s.Close() })

	_, _ = s.Reserve(context.Background(), "short", time.Millisecond)
	_, _ = s.Reserve(context.Background(), "long", time.Hour)

	assert.Eventually(t, func() bool { return s.len() == 1 }, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_CloseTwice(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(0)

	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}
