package mocks

import (
	"context"

	"knowledgehub/internal/model"
	"knowledgehub/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockFAQService struct {
	mock.Mock
}

func (m *MockFAQService) ListPublished(ctx context.Context, categoryID string, limit, offset int) (*service.FAQListResult, error) {
	args := m.Called(ctx, categoryID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FAQListResult), args.Error(1)
}

func (m *MockFAQService) Vote(ctx context.Context, id string, helpful bool) error {
	args := m.Called(ctx, id, helpful)
	return args.Error(0)
}

func (m *MockFAQService) Submit(ctx context.Context, actor service.Actor, question, categoryID string) (*model.FAQSubmission, error) {
	args := m.Called(ctx, actor, question, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FAQSubmission), args.Error(1)
}

func (m *MockFAQService) ListMySubmissions(ctx context.Context, actor service.Actor, limit, offset int) (*service.SubmissionListResult, error) {
	args := m.Called(ctx, actor, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmissionListResult), args.Error(1)
}

func (m *MockFAQService) ListPendingSubmissions(ctx context.Context, actor service.Actor, limit, offset int) (*service.SubmissionListResult, error) {
	args := m.Called(ctx, actor, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmissionListResult), args.Error(1)
}

func (m *MockFAQService) ApproveSubmission(ctx context.Context, actor service.Actor, id, answer, notes string) (*model.FAQ, error) {
	args := m.Called(ctx, actor, id, answer, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FAQ), args.Error(1)
}

func (m *MockFAQService) RejectSubmission(ctx context.Context, actor service.Actor, id, notes string) (*model.FAQSubmission, error) {
	args := m.Called(ctx, actor, id, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FAQSubmission), args.Error(1)
}

func (m *MockFAQService) UpdateFAQ(ctx context.Context, actor service.Actor, id string, in service.FAQInput) (*model.FAQ, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FAQ), args.Error(1)
}

func (m *MockFAQService) DeleteFAQ(ctx context.Context, actor service.Actor, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
