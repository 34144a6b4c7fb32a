package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPutGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "record:abc", []byte(`{"id":"abc"}`)))

	raw, found, err := store.Get(ctx, "record:abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"id":"abc"}`, string(raw))
}

func TestGetMissingKey(t *testing.T) {
	store := newTestStore(t)

	_, found, err := store.Get(context.Background(), "record:missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPutOverwritesExistingKey(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "record:abc", []byte("v1")))
	require.NoError(t, store.Put(ctx, "record:abc", []byte("v2")))

	raw, found, err := store.Get(ctx, "record:abc")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "v2", string(raw))
}

func TestQueryPrefixFiltersAndLimits(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "chat:abc:2025-03-01T10:00:00Z", []byte("a")))
	require.NoError(t, store.Put(ctx, "chat:abc:2025-03-01T11:00:00Z", []byte("b")))
	require.NoError(t, store.Put(ctx, "chat:abc:2025-03-01T12:00:00Z", []byte("c")))
	require.NoError(t, store.Put(ctx, "chat:abcdef:2025-03-01T10:00:00Z", []byte("other")))
	require.NoError(t, store.Put(ctx, "record:abc", []byte("rec")))

	items, err := store.QueryPrefix(ctx, "chat:abc:", 0)
	require.NoError(t, err)
	assert.Len(t, items, 3)
	for _, item := range items {
		assert.Contains(t, item.Key, "chat:abc:")
	}

	limited, err := store.QueryPrefix(ctx, "chat:abc:", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestQueryPrefixEmptyResult(t *testing.T) {
	store := newTestStore(t)

	items, err := store.QueryPrefix(context.Background(), "chat:nope:", 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}
