// Package interfaces defines the service contracts the API layer depends
// on, so handlers can be tested against mocks instead of live services.
package interfaces

import (
	"context"

	"portagees/backend/internal/model"
	"portagees/backend/internal/service"
)

// ChatService is the contract for the message pipeline.
type ChatService interface {
	ProcessMessage(ctx context.Context, req *service.ProcessMessageRequest) (*model.ChatResponse, error)
}

// ConversationService is the contract for conversation management.
type ConversationService interface {
	GetOrCreate(ctx context.Context, id, title, description, userID string) (*model.Conversation, error)
	History(ctx context.Context, conversationID string, limit int) ([]model.Message, error)
	List(ctx context.Context, userID string) ([]*model.Conversation, error)
}
