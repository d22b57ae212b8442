package repository

import (
	"context"

	"knowledgehub/internal/model"
)

// ProfileRepository defines data access for user profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p *model.Profile) (*model.Profile, error)
	FindByID(ctx context.Context, id string) (*model.Profile, error)
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Profile], error)

	// UpdateProfile replaces display name and avatar URL.
	UpdateProfile(ctx context.Context, id, displayName, avatarURL string) (*model.Profile, error)

	UpdateRole(ctx context.Context, id string, role model.Role) error
	SetActive(ctx context.Context, id string, active bool) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id string) (*model.Category, error)
}

// ActivityLogRepository appends and lists audit records.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *model.ActivityLog) error
	List(ctx context.Context, pq PageQuery) (*PageResult[model.ActivityLog], error)
}

// DashboardStats aggregates the counts shown on the admin dashboard.
type DashboardStats struct {
	DocumentsByStatus map[model.DocumentStatus]int `json:"documents_by_status"`
	TotalUsers        int                          `json:"total_users"`
	TotalFAQs         int                          `json:"total_faqs"`
	PendingFAQs       int                          `json:"pending_faq_submissions"`
}

// StatsRepository runs the aggregate queries behind the analytics screens.
type StatsRepository interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)

	// TopViewed returns the n most viewed published documents.
	TopViewed(ctx context.Context, n int) ([]model.Document, error)
}
