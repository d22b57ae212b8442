package service

import (
	"context"
	"database/sql"
	"errors"

	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"
)

// ProfileListResult is the service-level DTO for paginated profiles.
type ProfileListResult struct {
	Items []model.Profile `json:"data"`
	Total int             `json:"total"`
}

// UserService backs the profile screen and the admin user-management console.
type UserService interface {
	Get(ctx context.Context, id string) (*model.Profile, error)

	// UpdateProfile lets a user change their own display name and avatar.
	UpdateProfile(ctx context.Context, actor Actor, displayName, avatarURL string) (*model.Profile, error)

	// List returns all profiles. Admin only.
	List(ctx context.Context, actor Actor, limit, offset int) (*ProfileListResult, error)

	// ChangeRole switches a profile between user and admin. Admin only.
	ChangeRole(ctx context.Context, actor Actor, id string, role model.Role) error

	// SetActive activates or deactivates an account. Admin only.
	SetActive(ctx context.Context, actor Actor, id string, active bool) error
}

type userService struct {
	profiles repository.ProfileRepository
	activity repository.ActivityLogRepository
}

// NewUserService constructs a new UserService.
func NewUserService(profiles repository.ProfileRepository, activity repository.ActivityLogRepository) UserService {
	return &userService{profiles: profiles, activity: activity}
}

func (s *userService) Get(ctx context.Context, id string) (*model.Profile, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *userService) UpdateProfile(ctx context.Context, actor Actor, displayName, avatarURL string) (*model.Profile, error) {
	if displayName == "" {
		return nil, ErrDisplayNameRequired
	}
	p, err := s.profiles.UpdateProfile(ctx, actor.ID, displayName, avatarURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *userService) List(ctx context.Context, actor Actor, limit, offset int) (*ProfileListResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	pq := normalizePage(repository.PageQuery{Limit: limit, Offset: offset})
	res, err := s.profiles.List(ctx, pq)
	if err != nil {
		return nil, err
	}
	return &ProfileListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *userService) ChangeRole(ctx context.Context, actor Actor, id string, role model.Role) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if id == "" {
		return ErrIDRequired
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return ErrInvalidRole
	}
	if err := s.profiles.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	recordActivity(ctx, s.activity, actor.ID, "user.role_changed", "profile", id)
	return nil
}

func (s *userService) SetActive(ctx context.Context, actor Actor, id string, active bool) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if id == "" {
		return ErrIDRequired
	}
	if err := s.profiles.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	action := "user.deactivated"
	if active {
		action = "user.activated"
	}
	recordActivity(ctx, s.activity, actor.ID, action, "profile", id)
	return nil
}
