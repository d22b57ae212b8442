package mocks

import (
	"context"

	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockFAQRepository struct {
	mock.Mock
}

func (m *MockFAQRepository) Create(ctx context.Context, faq *model.FAQ) (*model.FAQ, error) {
	args := m.Called(ctx, faq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FAQ), args.Error(1)
}

func (m *MockFAQRepository) FindByID(ctx context.Context, id string) (*model.FAQ, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FAQ), args.Error(1)
}

func (m *MockFAQRepository) ListPublished(ctx context.Context, categoryID string, pq repository.PageQuery) (*repository.PageResult[model.FAQ], error) {
	args := m.Called(ctx, categoryID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.FAQ]), args.Error(1)
}

func (m *MockFAQRepository) Update(ctx context.Context, faq *model.FAQ) (*model.FAQ, error) {
	args := m.Called(ctx, faq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FAQ), args.Error(1)
}

func (m *MockFAQRepository) Vote(ctx context.Context, id string, helpful bool) error {
	args := m.Called(ctx, id, helpful)
	return args.Error(0)
}

func (m *MockFAQRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFAQSubmissionRepository struct {
	mock.Mock
}

func (m *MockFAQSubmissionRepository) Create(ctx context.Context, sub *model.FAQSubmission) (*model.FAQSubmission, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FAQSubmission), args.Error(1)
}

func (m *MockFAQSubmissionRepository) FindByID(ctx context.Context, id string) (*model.FAQSubmission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FAQSubmission), args.Error(1)
}

func (m *MockFAQSubmissionRepository) ListBySubmitter(ctx context.Context, submitterID string, pq repository.PageQuery) (*repository.PageResult[model.FAQSubmission], error) {
	args := m.Called(ctx, submitterID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.FAQSubmission]), args.Error(1)
}

func (m *MockFAQSubmissionRepository) ListByStatus(ctx context.Context, status model.SubmissionStatus, pq repository.PageQuery) (*repository.PageResult[model.FAQSubmission], error) {
	args := m.Called(ctx, status, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.FAQSubmission]), args.Error(1)
}

func (m *MockFAQSubmissionRepository) Decide(ctx context.Context, id string, status model.SubmissionStatus, answer, notes string) (*model.FAQSubmission, error) {
	args := m.Called(ctx, id, status, answer, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FAQSubmission), args.Error(1)
}
