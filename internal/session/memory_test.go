package session

import (
	"context"
	"testing"

	"salonadmin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := &Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         &models.User{ID: 3, Name: "Grace", Role: models.RoleAdmin},
	}

	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "access", got.AccessToken)
	require.NotNil(t, got.User)
	assert.Equal(t, "Grace", got.User.Name)

	assert.NotEmpty(t, store.Get(KeyAccessToken))
	assert.NotEmpty(t, store.Get(KeyRefreshToken))
	assert.NotEmpty(t, store.Get(KeyUser))
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Session{AccessToken: "a", RefreshToken: "r"}))
	require.NoError(t, store.Clear(ctx))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Empty(t, store.Get(KeyAccessToken))
	assert.Empty(t, store.Get(KeyRefreshToken))
	assert.Empty(t, store.Get(KeyUser))

	require.NoError(t, store.Clear(ctx))
}

func TestMemoryStoreRejectsPartialSession(t *testing.T) {
	store := NewMemoryStore()
	err := store.Save(context.Background(), &Session{AccessToken: "only-access"})
	assert.ErrorIs(t, err, ErrPartialSession)
}

func TestSessionIsAuthenticated(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.IsAuthenticated())
	assert.False(t, (&Session{}).IsAuthenticated())
	assert.True(t, (&Session{AccessToken: "a"}).IsAuthenticated())
}
