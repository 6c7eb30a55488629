package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGet(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "configuration:trx.percentage.vat", "0.15", NoExpiry))

	value, ok, err := store.Get(ctx, "configuration:trx.percentage.vat")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "0.15", value)
}

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	value, ok, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "short-lived", "v", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, ok, err := store.Get(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreNoExpiryPersists(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "forever", "v", NoExpiry))
	time.Sleep(20 * time.Millisecond)

	_, ok, err := store.Get(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", "1", NoExpiry))
	require.NoError(t, store.Set(ctx, "b", "2", NoExpiry))
	require.NoError(t, store.Delete(ctx, "a", "b", "not-there"))

	assert.Equal(t, 0, store.Count())
}

func TestJSONRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}

	in := payload{Name: "trx.expiry.days", Value: "6"}
	require.NoError(t, SetJSON(ctx, store, "configuration:trx.expiry.days", in, NoExpiry))

	out, ok, err := GetJSON[payload](ctx, store, "configuration:trx.expiry.days")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestGetJSONMiss(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	out, ok, err := GetJSON[map[string]string](context.Background(), store, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, out)
}
