package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"portagees/backend/internal/model"
)

// memoryStore is an ephemeral ConversationStore. The pipeline falls back
// to it when the document store is unreachable, so a request can still
// complete with an in-memory conversation record. It is also used in tests.
type memoryStore struct {
	mu            sync.RWMutex
	conversations map[string]*model.Conversation
	messages      map[string][]model.Message
}

func NewMemoryStore() ConversationStore {
	return &memoryStore{
		conversations: make(map[string]*model.Conversation),
		messages:      make(map[string][]model.Message),
	}
}

func (s *memoryStore) GetOrCreate(_ context.Context, id, title, description, userID string) (*model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conv, ok := s.conversations[id]; ok {
		copied := *conv
		return &copied, nil
	}

	now := time.Now().UTC()
	conv := &model.Conversation{
		ID:          id,
		Title:       title,
		Description: description,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.conversations[id] = conv
	s.messages[id] = make([]model.Message, 0, 16)

	copied := *conv
	return &copied, nil
}

func (s *memoryStore) AppendMessage(_ context.Context, conversationID string, msg *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return ErrNotFound
	}

	msg.Position = len(s.messages[conversationID]) + 1
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	conv.UpdatedAt = time.Now().UTC()

	s.messages[conversationID] = append(s.messages[conversationID], *msg)
	return nil
}

func (s *memoryStore) History(_ context.Context, conversationID string, limit int) ([]model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[conversationID]
	if !ok {
		return nil, ErrNotFound
	}
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	copied := make([]model.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

func (s *memoryStore) List(_ context.Context, userID string) ([]*model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var conversations []*model.Conversation
	for _, conv := range s.conversations {
		if conv.UserID == userID {
			copied := *conv
			conversations = append(conversations, &copied)
		}
	}
	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].UpdatedAt.After(conversations[j].UpdatedAt)
	})
	return conversations, nil
}
