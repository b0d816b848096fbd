package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volunteerhub/webclient/internal/session"
	"github.com/volunteerhub/webclient/internal/testutil"
)

func TestTokenStoreRoundTrip(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewTokenStoreWithKey(client, "test:token")
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNoToken)

	require.NoError(t, store.Save(ctx, "tok-redis"))

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-redis", token)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNoToken)
}

func TestTokenStoreClearIsIdempotent(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewTokenStore(client)
	ctx := context.Background()

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
}

func TestTokenStoreDefaultKey(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewTokenStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok"))
	val, err := client.Get(ctx, "volunteerhub:token").Result()
	require.NoError(t, err)
	assert.Equal(t, "tok", val)
}
