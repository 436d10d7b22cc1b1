package repository

import (
	"context"
	"encoding/json"
	"errors"

	"portagees/backend/internal/model"
)

// ErrNotFound is returned when a conversation lookup finds nothing. The
// service layer translates it into a domain error, so callers never see a
// driver-specific error such as mongo.ErrNoDocuments or sql.ErrNoRows.
var ErrNotFound = errors.New("repository: not found")

// ConversationStore is the persistence boundary for conversations and
// their message history. Implementations must be safe for concurrent use;
// AppendMessage must assign positions that are monotonic per conversation.
type ConversationStore interface {
	// GetOrCreate fetches the conversation with the given identifier,
	// creating it with the supplied metadata if it does not exist yet.
	// Repeated calls with the same identifier return the existing record.
	GetOrCreate(ctx context.Context, id, title, description, userID string) (*model.Conversation, error)

	// AppendMessage appends msg to the conversation's history and fills in
	// msg.Position with the assigned sequence number.
	AppendMessage(ctx context.Context, conversationID string, msg *model.Message) error

	// History returns the most recent limit messages in position order.
	// limit <= 0 means no limit.
	History(ctx context.Context, conversationID string, limit int) ([]model.Message, error)

	// List returns the user's conversations, most recently updated first.
	List(ctx context.Context, userID string) ([]*model.Conversation, error)
}

// encodePayload converts a message payload to its stored JSON form. All
// stores keep the payload as opaque JSON text so the question union does
// not leak into storage schemas.
func encodePayload(p *model.Payload) (string, error) {
	if p == nil {
		return "", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodePayload(data string) (*model.Payload, error) {
	if data == "" {
		return nil, nil
	}
	var p model.Payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, err
	}
	return &p, nil
}
