package mocks

import (
	"context"

	"knowledgehub/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Dashboard(ctx context.Context, actor service.Actor) (*service.DashboardResult, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardResult), args.Error(1)
}

func (m *MockAnalyticsService) ListActivity(ctx context.Context, actor service.Actor, limit, offset int) (*service.ActivityListResult, error) {
	args := m.Called(ctx, actor, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ActivityListResult), args.Error(1)
}
