package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"knowledgehub/internal/auth"
	"knowledgehub/internal/model"
	repoMocks "knowledgehub/internal/repository/mocks"
)

func newAuthFixture(t *testing.T) (*repoMocks.MockProfileRepository, AuthService) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := auth.NewRedisStore(client)

	tm, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	mProfiles := new(repoMocks.MockProfileRepository)
	svc := NewAuthService(mProfiles, tm, store, store, nil, time.Hour, 15*time.Minute)
	return mProfiles, svc
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path issues token and session", func(t *testing.T) {
		mProfiles, svc := newAuthFixture(t)
		mProfiles.On("FindByEmail", ctx, "new@example.com").Return(nil, sql.ErrNoRows)
		mProfiles.On("Create", ctx, mock.MatchedBy(func(p *model.Profile) bool {
			return p.Email == "new@example.com" &&
				p.Role == model.RoleUser &&
				p.IsActive &&
				p.PasswordHash != "" &&
				p.PasswordHash != "s3cret-pass"
		})).Return(&model.Profile{
			ID: "user-1", Email: "new@example.com", DisplayName: "New User", Role: model.RoleUser, IsActive: true,
		}, nil)

		res, err := svc.Register(ctx, " New@Example.com ", "s3cret-pass", "New User")

		assert.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "user-1", res.Profile.ID)

		sess, err := svc.Session(ctx, "user-1")
		assert.NoError(t, err)
		assert.Equal(t, "new@example.com", sess.Email)
		mProfiles.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mProfiles, svc := newAuthFixture(t)
		mProfiles.On("FindByEmail", ctx, "taken@example.com").
			Return(&model.Profile{ID: "user-9", Email: "taken@example.com"}, nil)

		_, err := svc.Register(ctx, "taken@example.com", "s3cret-pass", "")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("short password", func(t *testing.T) {
		_, svc := newAuthFixture(t)
		_, err := svc.Register(ctx, "new@example.com", "short", "")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)

	active := &model.Profile{
		ID: "user-1", Email: "user@example.com", Role: model.RoleUser, IsActive: true, PasswordHash: hash,
	}

	t.Run("happy path", func(t *testing.T) {
		mProfiles, svc := newAuthFixture(t)
		mProfiles.On("FindByEmail", ctx, "user@example.com").Return(active, nil)

		res, err := svc.Login(ctx, "user@example.com", "s3cret-pass")
		assert.NoError(t, err)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		mProfiles, svc := newAuthFixture(t)
		mProfiles.On("FindByEmail", ctx, "user@example.com").Return(active, nil)

		_, err := svc.Login(ctx, "user@example.com", "wrong-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to the same error", func(t *testing.T) {
		mProfiles, svc := newAuthFixture(t)
		mProfiles.On("FindByEmail", ctx, "ghost@example.com").Return(nil, sql.ErrNoRows)

		_, err := svc.Login(ctx, "ghost@example.com", "whatever-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		disabled := *active
		disabled.IsActive = false
		mProfiles, svc := newAuthFixture(t)
		mProfiles.On("FindByEmail", ctx, "user@example.com").Return(&disabled, nil)

		_, err := svc.Login(ctx, "user@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})
}

func TestAuthService_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	profile := &model.Profile{ID: "user-1", Email: "user@example.com", IsActive: true, PasswordHash: hash}

	mProfiles, svc := newAuthFixture(t)
	mProfiles.On("FindByEmail", ctx, "user@example.com").Return(profile, nil)

	_, err = svc.Login(ctx, "user@example.com", "s3cret-pass")
	require.NoError(t, err)

	// Theme preference sticks to the session.
	sess, err := svc.SetTheme(ctx, "user-1", "dark")
	assert.NoError(t, err)
	assert.Equal(t, "dark", sess.Theme)

	sess, err = svc.Session(ctx, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "dark", sess.Theme)

	// Logging in again keeps the theme.
	_, err = svc.Login(ctx, "user@example.com", "s3cret-pass")
	assert.NoError(t, err)
	sess, err = svc.Session(ctx, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "dark", sess.Theme)

	// Logout clears the session.
	assert.NoError(t, svc.Logout(ctx, "user-1"))
	_, err = svc.Session(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthService_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("old-password")
	require.NoError(t, err)
	profile := &model.Profile{ID: "user-1", PasswordHash: hash}

	t.Run("happy path", func(t *testing.T) {
		mProfiles, svc := newAuthFixture(t)
		mProfiles.On("FindByID", ctx, "user-1").Return(profile, nil)
		mProfiles.On("UpdatePassword", ctx, "user-1", mock.MatchedBy(func(h string) bool {
			return auth.CheckPassword(h, "new-password")
		})).Return(nil)

		assert.NoError(t, svc.UpdatePassword(ctx, "user-1", "old-password", "new-password"))
		mProfiles.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		mProfiles, svc := newAuthFixture(t)
		mProfiles.On("FindByID", ctx, "user-1").Return(profile, nil)

		err := svc.UpdatePassword(ctx, "user-1", "not-the-password", "new-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	ctx := context.Background()
	profile := &model.Profile{ID: "user-1", Email: "user@example.com"}

	t.Run("full round trip", func(t *testing.T) {
		mProfiles, svc := newAuthFixture(t)
		mProfiles.On("FindByEmail", ctx, "user@example.com").Return(profile, nil)
		mProfiles.On("UpdatePassword", ctx, "user-1", mock.MatchedBy(func(h string) bool {
			return auth.CheckPassword(h, "brand-new-pass")
		})).Return(nil)

		token, err := svc.RequestReset(ctx, "user@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		assert.NoError(t, svc.ConfirmReset(ctx, token, "brand-new-pass"))

		// Tokens are single use.
		err = svc.ConfirmReset(ctx, token, "another-new-pass")
		assert.ErrorIs(t, err, ErrInvalidResetToken)
		mProfiles.AssertExpectations(t)
	})

	t.Run("unknown email does not leak existence", func(t *testing.T) {
		mProfiles, svc := newAuthFixture(t)
		mProfiles.On("FindByEmail", ctx, "ghost@example.com").Return(nil, sql.ErrNoRows)

		token, err := svc.RequestReset(ctx, "ghost@example.com")
		assert.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, svc := newAuthFixture(t)
		err := svc.ConfirmReset(ctx, "not-a-token", "brand-new-pass")
		assert.ErrorIs(t, err, ErrInvalidResetToken)
	})
}
