// Package mocks provides a testify-based mock of the conversation store.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"portagees/backend/internal/model"
)

// MockConversationStore mocks repository.ConversationStore.
type MockConversationStore struct {
	mock.Mock
}

func NewMockConversationStore(t *testing.T) *MockConversationStore {
	m := &MockConversationStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockConversationStore) GetOrCreate(ctx context.Context, id, title, description, userID string) (*model.Conversation, error) {
	args := m.Called(ctx, id, title, description, userID)
	if conv := args.Get(0); conv != nil {
		return conv.(*model.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConversationStore) AppendMessage(ctx context.Context, conversationID string, msg *model.Message) error {
	args := m.Called(ctx, conversationID, msg)
	return args.Error(0)
}

func (m *MockConversationStore) History(ctx context.Context, conversationID string, limit int) ([]model.Message, error) {
	args := m.Called(ctx, conversationID, limit)
	if msgs := args.Get(0); msgs != nil {
		return msgs.([]model.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConversationStore) List(ctx context.Context, userID string) ([]*model.Conversation, error) {
	args := m.Called(ctx, userID)
	if convs := args.Get(0); convs != nil {
		return convs.([]*model.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}
