// Package mocks provides testify-based mocks for the service contracts in
// the interfaces package.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"portagees/backend/internal/model"
	"portagees/backend/internal/service"
)

// MockChatService mocks interfaces.ChatService.
type MockChatService struct {
	mock.Mock
}

func NewMockChatService(t *testing.T) *MockChatService {
	m := &MockChatService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockChatService) ProcessMessage(ctx context.Context, req *service.ProcessMessageRequest) (*model.ChatResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*model.ChatResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockConversationService mocks interfaces.ConversationService.
type MockConversationService struct {
	mock.Mock
}

func NewMockConversationService(t *testing.T) *MockConversationService {
	m := &MockConversationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockConversationService) GetOrCreate(ctx context.Context, id, title, description, userID string) (*model.Conversation, error) {
	args := m.Called(ctx, id, title, description, userID)
	if conv := args.Get(0); conv != nil {
		return conv.(*model.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConversationService) History(ctx context.Context, conversationID string, limit int) ([]model.Message, error) {
	args := m.Called(ctx, conversationID, limit)
	if messages := args.Get(0); messages != nil {
		return messages.([]model.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConversationService) List(ctx context.Context, userID string) ([]*model.Conversation, error) {
	args := m.Called(ctx, userID)
	if conversations := args.Get(0); conversations != nil {
		return conversations.([]*model.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}
