package service

import (
	"context"

	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"
)

// DashboardResult aggregates everything the admin dashboard renders.
type DashboardResult struct {
	Stats          *repository.DashboardStats `json:"stats"`
	TopViewed      []model.Document           `json:"top_viewed"`
	RecentActivity []model.ActivityLog        `json:"recent_activity"`
}

// ActivityListResult is the service-level DTO for paginated audit records.
type ActivityListResult struct {
	Items []model.ActivityLog `json:"data"`
	Total int                 `json:"total"`
}

// AnalyticsService backs the admin dashboard and activity-log screens.
type AnalyticsService interface {
	// Dashboard returns counters, top viewed documents and recent activity. Admin only.
	Dashboard(ctx context.Context, actor Actor) (*DashboardResult, error)

	// ListActivity returns the audit trail, newest first. Admin only.
	ListActivity(ctx context.Context, actor Actor, limit, offset int) (*ActivityListResult, error)
}

// topViewedCount is how many documents the dashboard highlights.
const topViewedCount = 5

// recentActivityCount is how many audit entries the dashboard shows.
const recentActivityCount = 10

type analyticsService struct {
	stats    repository.StatsRepository
	activity repository.ActivityLogRepository
}

// NewAnalyticsService constructs a new AnalyticsService.
func NewAnalyticsService(stats repository.StatsRepository, activity repository.ActivityLogRepository) AnalyticsService {
	return &analyticsService{stats: stats, activity: activity}
}

func (s *analyticsService) Dashboard(ctx context.Context, actor Actor) (*DashboardResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	stats, err := s.stats.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.stats.TopViewed(ctx, topViewedCount)
	if err != nil {
		return nil, err
	}
	recent, err := s.activity.List(ctx, repository.PageQuery{Limit: recentActivityCount})
	if err != nil {
		return nil, err
	}

	return &DashboardResult{
		Stats:          stats,
		TopViewed:      top,
		RecentActivity: recent.Items,
	}, nil
}

func (s *analyticsService) ListActivity(ctx context.Context, actor Actor, limit, offset int) (*ActivityListResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	pq := normalizePage(repository.PageQuery{Limit: limit, Offset: offset})
	res, err := s.activity.List(ctx, pq)
	if err != nil {
		return nil, err
	}
	return &ActivityListResult{Items: res.Items, Total: res.Total}, nil
}
