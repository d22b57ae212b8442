package mocks

import (
	"context"
	"io"

	"knowledgehub/internal/model"
	"knowledgehub/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) Upload(ctx context.Context, actor service.Actor, documentID string, r io.Reader, originalFilename, contentType string, size int64) (*model.Attachment, error) {
	args := m.Called(ctx, actor, documentID, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentService) ListByDocument(ctx context.Context, documentID string) ([]service.AttachmentView, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.AttachmentView), args.Error(1)
}

func (m *MockAttachmentService) Delete(ctx context.Context, actor service.Actor, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
