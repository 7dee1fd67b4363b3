package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestMemoryStoreGetSetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	value := []byte(`{"a":1}`)
	require.NoError(t, store.Set(ctx, "k", value, 0))
	value[0] = 'X'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, store.Delete(ctx, "k", "other"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	store := NewMemoryStore()
	store.now = clock.Now

	require.NoError(t, store.Set(ctx, "chat", []byte("x"), time.Hour))
	require.NoError(t, store.Set(ctx, "answers", []byte("y"), 0))

	clock.Advance(59 * time.Minute)
	_, err := store.Get(ctx, "chat")
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, err = store.Get(ctx, "chat")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, store.Len())

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreDeletePrefix(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, k := range []string{"client:a:x", "client:a:y", "client:ab:x", "client:b:x"} {
		require.NoError(t, store.Set(ctx, k, []byte("1"), 0))
	}

	n, err := store.DeletePrefix(ctx, "client:a:")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, store.Len())
}
