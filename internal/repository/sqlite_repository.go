package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"portagees/backend/internal/model"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a ConversationStore over an already-migrated
// SQLite database (see internal/database).
func NewSQLiteStore(db *sql.DB) ConversationStore {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) GetOrCreate(ctx context.Context, id, title, description, userID string) (*model.Conversation, error) {
	now := time.Now().UTC()
	insert := `
		INSERT INTO conversations (id, title, description, user_id, created_at, updated_at, message_seq)
		VALUES (?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT(id) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, insert, id, title, description, userID, now, now); err != nil {
		return nil, fmt.Errorf("could not insert conversation: %w", err)
	}

	query := "SELECT id, title, description, user_id, created_at, updated_at FROM conversations WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)
	var conv model.Conversation
	if err := row.Scan(&conv.ID, &conv.Title, &conv.Description, &conv.UserID, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not read conversation: %w", err)
	}
	return &conv, nil
}

func (s *sqliteStore) AppendMessage(ctx context.Context, conversationID string, msg *model.Message) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	bump := "UPDATE conversations SET message_seq = message_seq + 1, updated_at = ? WHERE id = ?"
	res, err := tx.ExecContext(ctx, bump, now, conversationID)
	if err != nil {
		return fmt.Errorf("could not bump message sequence: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	var position int
	if err := tx.QueryRowContext(ctx, "SELECT message_seq FROM conversations WHERE id = ?", conversationID).Scan(&position); err != nil {
		return fmt.Errorf("could not read message sequence: %w", err)
	}
	msg.Position = position
	if msg.Timestamp.IsZero() {
		msg.Timestamp = now
	}

	payload, err := encodePayload(msg.Payload)
	if err != nil {
		return fmt.Errorf("could not encode message payload: %w", err)
	}
	insert := `
		INSERT INTO messages (conversation_id, position, sender, type, content, payload, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, insert, conversationID, msg.Position, msg.Sender, string(msg.Type), msg.Content, payload, msg.Timestamp); err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}

	return tx.Commit()
}

func (s *sqliteStore) History(ctx context.Context, conversationID string, limit int) ([]model.Message, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, "SELECT 1 FROM conversations WHERE id = ?", conversationID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not look up conversation: %w", err)
	}

	query := `
		SELECT position, sender, type, content, payload, timestamp FROM (
			SELECT position, sender, type, content, payload, timestamp
			FROM messages
			WHERE conversation_id = ?
			ORDER BY position DESC
			LIMIT ?
		) ORDER BY position ASC
	`
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded.
	}
	rows, err := s.db.QueryContext(ctx, query, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("could not query messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var msg model.Message
		var msgType, payload sql.NullString
		if err := rows.Scan(&msg.Position, &msg.Sender, &msgType, &msg.Content, &payload, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("could not scan message: %w", err)
		}
		if msgType.Valid {
			msg.Type = model.ResponseType(msgType.String)
		}
		if payload.Valid {
			p, err := decodePayload(payload.String)
			if err != nil {
				return nil, fmt.Errorf("could not decode payload at position %d: %w", msg.Position, err)
			}
			msg.Payload = p
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (s *sqliteStore) List(ctx context.Context, userID string) ([]*model.Conversation, error) {
	query := `
		SELECT id, title, description, user_id, created_at, updated_at
		FROM conversations
		WHERE user_id = ?
		ORDER BY updated_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("could not query conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*model.Conversation
	for rows.Next() {
		var conv model.Conversation
		if err := rows.Scan(&conv.ID, &conv.Title, &conv.Description, &conv.UserID, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("could not scan conversation: %w", err)
		}
		conversations = append(conversations, &conv)
	}
	return conversations, rows.Err()
}
