package mocks

import (
	"context"

	"knowledgehub/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAssistantService struct {
	mock.Mock
}

func (m *MockAssistantService) Ask(ctx context.Context, actor service.Actor, documentID, message string) (*service.AssistantAnswer, error) {
	args := m.Called(ctx, actor, documentID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AssistantAnswer), args.Error(1)
}
