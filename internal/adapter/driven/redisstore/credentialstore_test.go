package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/shipadmin/internal/domain/model"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestCredentialStore_SaveAndLoad(t *testing.T) {
	mr, client := setupRedis(t)
	store := NewCredentialStore(client, "default")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, model.Credential{AccessToken: "A", RefreshToken: "B"}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.Credential{AccessToken: "A", RefreshToken: "B"}, *got)
	assert.Equal(t, "A", mr.HGet("shipadmin:credentials:default", "access_token"))
}

func TestCredentialStore_LoadEmpty(t *testing.T) {
	_, client := setupRedis(t)

	got, err := NewCredentialStore(client, "default").Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCredentialStore_Clear(t *testing.T) {
	mr, client := setupRedis(t)
	store := NewCredentialStore(client, "default")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, model.Credential{AccessToken: "A", RefreshToken: "B"}))
	require.NoError(t, store.Clear(ctx))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("shipadmin:credentials:default"))
}

func TestCredentialStore_PartialHashIsAbsent(t *testing.T) {
	mr, client := setupRedis(t)
	mr.HSet("shipadmin:credentials:default", "access_token", "A")

	got, err := NewCredentialStore(client, "default").Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCredentialStore_SharedScope(t *testing.T) {
	_, client := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, NewCredentialStore(client, "ops").Save(ctx,
		model.Credential{AccessToken: "A", RefreshToken: "B"}))

	got, err := NewCredentialStore(client, "ops").Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "B", got.RefreshToken)

	other, err := NewCredentialStore(client, "other").Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestCredentialStore_ServerDown(t *testing.T) {
	mr, client := setupRedis(t)
	store := NewCredentialStore(client, "default")
	mr.Close()

	_, err := store.Load(context.Background())
	assert.Error(t, err)
}

func TestNewClient_EmptyURL(t *testing.T) {
	_, err := NewClient(context.Background(), "")
	assert.Error(t, err)
}
