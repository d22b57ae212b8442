package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knowledgehub/internal/model"
)

func TestNewTokenManager(t *testing.T) {
	_, err := NewTokenManager("", time.Minute)
	assert.Error(t, err)

	tm, err := NewTokenManager("secret", time.Minute)
	assert.NoError(t, err)
	assert.NotNil(t, tm)
}

func TestTokenManager_GenerateAndParse(t *testing.T) {
	tm, err := NewTokenManager("test-secret", 15*time.Minute)
	require.NoError(t, err)

	p := &model.Profile{
		ID:    "user-1",
		Email: "user@example.com",
		Role:  model.RoleAdmin,
	}

	token, err := tm.Generate(p)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestTokenManager_ParseExpired(t *testing.T) {
	tm, err := NewTokenManager("test-secret", -time.Minute)
	require.NoError(t, err)

	token, err := tm.Generate(&model.Profile{ID: "user-1", Role: model.RoleUser})
	require.NoError(t, err)

	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_ParseWrongSecret(t *testing.T) {
	tm1, _ := NewTokenManager("secret-one", time.Minute)
	tm2, _ := NewTokenManager("secret-two", time.Minute)

	token, err := tm1.Generate(&model.Profile{ID: "user-1", Role: model.RoleUser})
	require.NoError(t, err)

	_, err = tm2.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_ParseGarbage(t *testing.T) {
	tm, _ := NewTokenManager("secret", time.Minute)

	_, err := tm.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
	assert.False(t, CheckPassword("not-a-hash", "hunter2"))
}
