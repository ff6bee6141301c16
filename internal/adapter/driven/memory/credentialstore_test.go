package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/shipadmin/internal/domain/model"
)

func TestCredentialStore_SaveLoadClear(t *testing.T) {
	store := NewCredentialStore()
	ctx := context.Background()

	pairs := []model.Credential{
		{AccessToken: "A", RefreshToken: "B"},
		{AccessToken: "eyJhbGciOi.x.y", RefreshToken: "eyJhbGciOi.z.w"},
		{AccessToken: " spaced ", RefreshToken: "ünïcode"},
	}
	for _, c := range pairs {
		require.NoError(t, store.Save(ctx, c))
		got, err := store.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, c, *got)
	}

	require.NoError(t, store.Clear(ctx))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCredentialStore_LoadReturnsCopy(t *testing.T) {
	store := NewCredentialStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, model.Credential{AccessToken: "A", RefreshToken: "B"}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	got.AccessToken = "mutated"

	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", again.AccessToken)
}

func TestCredentialStore_PartialIsAbsent(t *testing.T) {
	store := NewCredentialStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, model.Credential{AccessToken: "A"}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}
