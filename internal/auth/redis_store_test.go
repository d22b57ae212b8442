package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_SessionRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	s := &Session{
		UserID:      "user-1",
		Email:       "user@example.com",
		DisplayName: "User One",
		Role:        "user",
		Theme:       "dark",
		CreatedAt:   time.Now().UTC(),
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user@example.com", got.Email)
	assert.Equal(t, "dark", got.Theme)
}

func TestRedisStore_SessionMissing(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_SessionExpired(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	s := &Session{
		UserID:    "user-1",
		ExpiresAt: time.Now().UTC().Add(time.Minute),
	}
	require.NoError(t, store.Save(ctx, s))

	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	s := &Session{UserID: "user-1", ExpiresAt: time.Now().UTC().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, s))
	require.NoError(t, store.Delete(ctx, "user-1"))

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_ResetToken(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "tok-1", "user-1", time.Minute))

	userID, err := store.Consume(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	// single use
	userID, err = store.Consume(ctx, "tok-1")
	require.NoError(t, err)
	assert.Empty(t, userID)
}

func TestRedisStore_ResetTokenExpired(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "tok-1", "user-1", time.Minute))
	mr.FastForward(2 * time.Minute)

	userID, err := store.Consume(ctx, "tok-1")
	require.NoError(t, err)
	assert.Empty(t, userID)
}
