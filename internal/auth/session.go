package auth

import (
	"context"
	"time"
)

// Session is the server-side key/value state kept per logged-in user:
// identity fields plus the theme preference, persisted across requests and
// cleared on logout.
type Session struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Theme       string    `json:"theme"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// SessionStore persists sessions keyed by user id.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	// Get returns the session for the user, or nil when absent or expired.
	Get(ctx context.Context, userID string) (*Session, error)
	Delete(ctx context.Context, userID string) error
}

// ResetTokenStore persists single-use password reset tokens.
type ResetTokenStore interface {
	// Create stores a reset token for the user with the given TTL.
	Create(ctx context.Context, token, userID string, ttl time.Duration) error
	// Consume resolves a token to its user id and invalidates it.
	// Returns empty string when the token is unknown or expired.
	Consume(ctx context.Context, token string) (string, error)
}
