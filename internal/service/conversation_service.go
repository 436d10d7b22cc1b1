package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	apperrors "portagees/backend/internal/errors"
	"portagees/backend/internal/model"
	"portagees/backend/internal/repository"
)

// Defaults applied when a conversation is created without metadata.
const (
	defaultConversationTitle       = "General Chat"
	defaultConversationDescription = "General conversation about Portuguese language"
)

// defaultHistoryFetch is the history page size when the caller does not
// supply a limit.
const defaultHistoryFetch = 50

// ConversationService exposes the conversation-management operations the
// API offers next to the pipeline: get-or-create, history and listing.
type ConversationService struct {
	store         repository.ConversationStore
	defaultUserID string
}

func NewConversationService(store repository.ConversationStore, defaultUserID string) *ConversationService {
	return &ConversationService{store: store, defaultUserID: defaultUserID}
}

// GetOrCreate resolves a conversation by identifier, generating an
// identifier when the caller supplies none. Repeated calls with the same
// identifier are idempotent.
func (s *ConversationService) GetOrCreate(ctx context.Context, id, title, description, userID string) (*model.Conversation, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if title == "" {
		title = defaultConversationTitle
	}
	if description == "" {
		description = defaultConversationDescription
	}
	if userID == "" {
		userID = s.defaultUserID
	}

	conv, err := s.store.GetOrCreate(ctx, id, title, description, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: could not get or create conversation: %v", apperrors.ErrInternal, err)
	}
	return conv, nil
}

// History returns the most recent limit messages of a conversation in
// arrival order.
func (s *ConversationService) History(ctx context.Context, conversationID string, limit int) ([]model.Message, error) {
	if conversationID == "" {
		return nil, fmt.Errorf("%w: conversation id is required", apperrors.ErrValidation)
	}
	if limit <= 0 {
		limit = defaultHistoryFetch
	}

	messages, err := s.store.History(ctx, conversationID, limit)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation %q", apperrors.ErrNotFound, conversationID)
		}
		return nil, fmt.Errorf("%w: could not load history: %v", apperrors.ErrInternal, err)
	}
	return messages, nil
}

// List returns the user's conversations, most recently updated first.
func (s *ConversationService) List(ctx context.Context, userID string) ([]*model.Conversation, error) {
	if userID == "" {
		userID = s.defaultUserID
	}
	conversations, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: could not list conversations: %v", apperrors.ErrInternal, err)
	}
	return conversations, nil
}
