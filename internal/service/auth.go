package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"knowledgehub/internal/auth"
	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"
)

var (
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const minPasswordLen = 8

// AuthResult is returned on successful register or login.
type AuthResult struct {
	Token   string         `json:"token"`
	Profile *model.Profile `json:"profile"`
}

// AuthService handles registration, login, sessions and password recovery.
type AuthService interface {
	Register(ctx context.Context, email, password, displayName string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, userID string) error

	// Session returns the caller's server-side session, or ErrNotFound when
	// no session exists (logged out or expired).
	Session(ctx context.Context, userID string) (*auth.Session, error)

	// SetTheme updates the theme preference kept on the session.
	SetTheme(ctx context.Context, userID, theme string) (*auth.Session, error)

	// UpdatePassword changes the password of a logged-in user after
	// verifying the current one.
	UpdatePassword(ctx context.Context, userID, current, next string) error

	// RequestReset issues a single-use reset token for the email. The token
	// is returned to the caller for delivery; unknown emails yield an empty
	// token without error so the endpoint does not leak account existence.
	RequestReset(ctx context.Context, email string) (string, error)

	// ConfirmReset consumes a reset token and sets the new password.
	ConfirmReset(ctx context.Context, token, password string) error
}

type authService struct {
	profiles repository.ProfileRepository
	tokens   *auth.TokenManager
	sessions auth.SessionStore
	resets   auth.ResetTokenStore
	activity repository.ActivityLogRepository

	sessionTTL time.Duration
	resetTTL   time.Duration
}

// NewAuthService constructs a new AuthService.
func NewAuthService(
	profiles repository.ProfileRepository,
	tokens *auth.TokenManager,
	sessions auth.SessionStore,
	resets auth.ResetTokenStore,
	activity repository.ActivityLogRepository,
	sessionTTL, resetTTL time.Duration,
) AuthService {
	return &authService{
		profiles:   profiles,
		tokens:     tokens,
		sessions:   sessions,
		resets:     resets,
		activity:   activity,
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
	}
}

func (s *authService) Register(ctx context.Context, email, password, displayName string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if len(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.profiles.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p, err := s.profiles.Create(ctx, &model.Profile{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		Role:         model.RoleUser,
		IsActive:     true,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	recordActivity(ctx, s.activity, p.ID, "user.register", "profile", p.ID)
	return s.issue(ctx, p)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	p, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(p.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !p.IsActive {
		return nil, ErrAccountDisabled
	}

	recordActivity(ctx, s.activity, p.ID, "user.login", "profile", p.ID)
	return s.issue(ctx, p)
}

// issue generates an access token and replaces the server-side session,
// preserving the theme preference across logins.
func (s *authService) issue(ctx context.Context, p *model.Profile) (*AuthResult, error) {
	token, err := s.tokens.Generate(p)
	if err != nil {
		return nil, err
	}

	theme := ""
	if prev, err := s.sessions.Get(ctx, p.ID); err == nil && prev != nil {
		theme = prev.Theme
	}

	now := time.Now().UTC()
	sess := &auth.Session{
		UserID:      p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Role:        string(p.Role),
		Theme:       theme,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Profile: p}, nil
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrIDRequired
	}
	return s.sessions.Delete(ctx, userID)
}

func (s *authService) Session(ctx context.Context, userID string) (*auth.Session, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *authService) SetTheme(ctx context.Context, userID, theme string) (*auth.Session, error) {
	sess, err := s.Session(ctx, userID)
	if err != nil {
		return nil, err
	}
	sess.Theme = theme
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *authService) UpdatePassword(ctx context.Context, userID, current, next string) error {
	if userID == "" {
		return ErrIDRequired
	}
	if len(next) < minPasswordLen {
		return ErrPasswordTooShort
	}

	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if !auth.CheckPassword(p.PasswordHash, current) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.profiles.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	recordActivity(ctx, s.activity, userID, "user.password_changed", "profile", userID)
	return nil
}

func (s *authService) RequestReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrEmailRequired
	}

	p, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}

	token := uuid.New().String()
	if err := s.resets.Create(ctx, token, p.ID, s.resetTTL); err != nil {
		return "", err
	}

	recordActivity(ctx, s.activity, p.ID, "user.reset_requested", "profile", p.ID)
	return token, nil
}

func (s *authService) ConfirmReset(ctx context.Context, token, password string) error {
	if token == "" {
		return ErrInvalidResetToken
	}
	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}

	userID, err := s.resets.Consume(ctx, token)
	if err != nil {
		return err
	}
	if userID == "" {
		return ErrInvalidResetToken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.profiles.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	// A reset invalidates any live session for the user.
	_ = s.sessions.Delete(ctx, userID)

	recordActivity(ctx, s.activity, userID, "user.password_reset", "profile", userID)
	return nil
}
