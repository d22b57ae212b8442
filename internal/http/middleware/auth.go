package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"knowledgehub/internal/auth"
	"knowledgehub/internal/model"
)

// ClaimsLocalKey is the key used to store verified token claims in Fiber's
// context locals.
const ClaimsLocalKey = "claims"

// Auth verifies the Bearer token on the request and stores the resulting
// claims in context locals. Requests without a valid token are rejected.
func Auth(tm *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized)
		}

		claims, err := tm.Parse(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized)
		}

		c.Locals(ClaimsLocalKey, claims)
		return c.Next()
	}
}

// RequireAdmin rejects requests whose verified claims do not carry the admin
// role. Must run after Auth. The services re-check the role themselves; this
// keeps non-admins from reaching the handlers at all.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := ClaimsFromCtx(c)
		if claims == nil || claims.Role != model.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden)
		}
		return c.Next()
	}
}

// ClaimsFromCtx returns the claims stored by Auth, or nil when absent.
func ClaimsFromCtx(c *fiber.Ctx) *auth.Claims {
	if v := c.Locals(ClaimsLocalKey); v != nil {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
