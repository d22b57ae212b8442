package mocks

import (
	"context"

	"knowledgehub/internal/model"
	"knowledgehub/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Get(ctx context.Context, id string) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, actor service.Actor, displayName, avatarURL string) (*model.Profile, error) {
	args := m.Called(ctx, actor, displayName, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, actor service.Actor, limit, offset int) (*service.ProfileListResult, error) {
	args := m.Called(ctx, actor, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProfileListResult), args.Error(1)
}

func (m *MockUserService) ChangeRole(ctx context.Context, actor service.Actor, id string, role model.Role) error {
	args := m.Called(ctx, actor, id, role)
	return args.Error(0)
}

func (m *MockUserService) SetActive(ctx context.Context, actor service.Actor, id string, active bool) error {
	args := m.Called(ctx, actor, id, active)
	return args.Error(0)
}
