package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"knowledgehub/internal/auth"
	"knowledgehub/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestApp(t *testing.T) (*fiber.App, *auth.TokenManager) {
	t.Helper()
	tm, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", Auth(tm), func(c *fiber.Ctx) error {
		claims := ClaimsFromCtx(c)
		return c.JSON(fiber.Map{"user_id": claims.UserID})
	})
	app.Get("/admin", Auth(tm), RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, tm
}

func TestAuth(t *testing.T) {
	app, tm := newAuthTestApp(t)

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Basic abc123")
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		shortTM, err := auth.NewTokenManager("test-secret", -time.Minute)
		require.NoError(t, err)
		token, err := shortTM.Generate(&model.Profile{ID: "user-1", Role: model.RoleUser})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := tm.Generate(&model.Profile{ID: "user-1", Email: "u@example.com", Role: model.RoleUser})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestRequireAdmin(t *testing.T) {
	app, tm := newAuthTestApp(t)

	t.Run("user role rejected", func(t *testing.T) {
		token, err := tm.Generate(&model.Profile{ID: "user-1", Role: model.RoleUser})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin role allowed", func(t *testing.T) {
		token, err := tm.Generate(&model.Profile{ID: "admin-1", Role: model.RoleAdmin})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	app := fiber.New()
	app.Use(rl.Handler())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// Burst of 2 passes, the third request in the same instant is rejected.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	resp, _ := app.Test(req)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get(fiber.HeaderRetryAfter))
}

func TestRateLimiterPerSubject(t *testing.T) {
	tm, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	rl := NewRateLimiter(1, 1)

	app := fiber.New()
	app.Get("/ping", Auth(tm), rl.Handler(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	tokenA, err := tm.Generate(&model.Profile{ID: "user-a", Role: model.RoleUser})
	require.NoError(t, err)
	tokenB, err := tm.Generate(&model.Profile{ID: "user-b", Role: model.RoleUser})
	require.NoError(t, err)

	// user-a drains their bucket.
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+tokenA)
	resp, _ := app.Test(req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+tokenA)
	resp, _ = app.Test(req)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// user-b has a bucket of their own, so their first request still passes.
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+tokenB)
	resp, _ = app.Test(req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Contains(t, rl.entries, "sub:user-a")
	assert.Contains(t, rl.entries, "sub:user-b")
}

func TestRateLimiterEvictsIdleEntries(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	rl.limiter("ip:1.2.3.4")
	rl.limiter("ip:5.6.7.8")

	// Age one caller past the idle window and force the next call to sweep.
	past := time.Now().Add(-2 * limiterIdleAfter)
	rl.mu.Lock()
	rl.entries["ip:1.2.3.4"].lastSeen = past
	rl.lastSweep = past
	rl.mu.Unlock()

	rl.limiter("ip:5.6.7.8")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.entries, "ip:1.2.3.4")
	assert.Contains(t, rl.entries, "ip:5.6.7.8")
}
