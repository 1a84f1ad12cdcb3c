package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blitzforge/linked-roles/internal/domain/linkage"
	"github.com/blitzforge/linked-roles/internal/testutil"
)

func testRecord() linkage.TokenRecord {
	return linkage.TokenRecord{
		UserID:       "42",
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
		ExpiresAt:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestTokenStore_SaveGetDelete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	store := NewTokenStore(client)
	rec := testRecord()

	require.NoError(t, store.Save(ctx, rec))

	got, err := store.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	require.NoError(t, store.Delete(ctx, "42"))

	_, err = store.Get(ctx, "42")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTokenStore_SaveReplacesWholesale(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	store := NewTokenStore(client)

	require.NoError(t, store.Save(ctx, testRecord()))

	updated := testRecord()
	updated.AccessToken = "at-2"
	updated.RefreshToken = "rt-2"
	require.NoError(t, store.Save(ctx, updated))

	got, err := store.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "at-2", got.AccessToken)
	assert.Equal(t, "rt-2", got.RefreshToken)
}

func TestTokenStore_KeyHasNoTTL(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	store := NewTokenStore(client)
	require.NoError(t, store.Save(ctx, testRecord()))

	// The refresh token outlives access expiry; the key must not expire.
	ttl, err := client.TTL(ctx, "tokens:42").Result()
	require.NoError(t, err)
	assert.Equal(t, -1*time.Second, ttl)
}

func TestTokenStore_GetMissing(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() { _ = client.Close() }()

	store := NewTokenStore(client)

	_, err := store.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTokenStore_SaveValidation(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() { _ = client.Close() }()

	store := NewTokenStore(client)

	err := store.Save(context.Background(), linkage.TokenRecord{})
	require.Error(t, err)
}

func TestTokenStore_DeleteMissingIsNoop(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() { _ = client.Close() }()

	store := NewTokenStore(client)

	assert.NoError(t, store.Delete(context.Background(), "nobody"))
	assert.NoError(t, store.Delete(context.Background(), ""))
}

func TestTokenStore_CustomPrefix(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	store := NewTokenStoreWithPrefix(client, "ledger:")
	require.NoError(t, store.Save(ctx, testRecord()))

	exists, err := client.Exists(ctx, "ledger:42").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}
