package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portagees/backend/internal/model"
)

type mongoStore struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

// NewMongoStore creates a ConversationStore backed by two collections in
// the given database: "conversations" for metadata and "messages" for
// history entries.
func NewMongoStore(db *mongo.Database) ConversationStore {
	return &mongoStore{
		conversations: db.Collection("conversations"),
		messages:      db.Collection("messages"),
	}
}

// EnsureIndexes creates the unique conversation identifier index and the
// history ordering index. Call once at startup.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("conversations").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "conversation_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("could not create conversation index: %w", err)
	}
	_, err = db.Collection("messages").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "position", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("could not create message index: %w", err)
	}
	return nil
}

// mongoMessage is the stored shape of a history entry. The payload is kept
// as JSON text rather than a nested document.
type mongoMessage struct {
	ConversationID string             `bson:"conversation_id"`
	Position       int                `bson:"position"`
	Sender         model.Sender       `bson:"sender"`
	Type           model.ResponseType `bson:"type,omitempty"`
	Content        string             `bson:"content"`
	Payload        string             `bson:"payload,omitempty"`
	Timestamp      time.Time          `bson:"timestamp"`
}

func (s *mongoStore) GetOrCreate(ctx context.Context, id, title, description, userID string) (*model.Conversation, error) {
	now := time.Now().UTC()
	filter := bson.M{"conversation_id": id}
	update := bson.M{
		"$setOnInsert": bson.M{
			"conversation_id": id,
			"title":           title,
			"description":     description,
			"user_id":         userID,
			"created_at":      now,
			"updated_at":      now,
			"message_seq":     0,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var conv model.Conversation
	if err := s.conversations.FindOneAndUpdate(ctx, filter, update, opts).Decode(&conv); err != nil {
		return nil, fmt.Errorf("could not get or create conversation: %w", err)
	}
	return &conv, nil
}

func (s *mongoStore) AppendMessage(ctx context.Context, conversationID string, msg *model.Message) error {
	// Claim the next position atomically on the conversation document.
	// Per-document atomicity of findAndModify makes positions monotonic
	// without a multi-document transaction.
	res := s.conversations.FindOneAndUpdate(ctx,
		bson.M{"conversation_id": conversationID},
		bson.M{
			"$inc": bson.M{"message_seq": 1},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var seq struct {
		MessageSeq int `bson:"message_seq"`
	}
	if err := res.Decode(&seq); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("could not claim message position: %w", err)
	}
	msg.Position = seq.MessageSeq
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	payload, err := encodePayload(msg.Payload)
	if err != nil {
		return fmt.Errorf("could not encode message payload: %w", err)
	}
	_, err = s.messages.InsertOne(ctx, mongoMessage{
		ConversationID: conversationID,
		Position:       msg.Position,
		Sender:         msg.Sender,
		Type:           msg.Type,
		Content:        msg.Content,
		Payload:        payload,
		Timestamp:      msg.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}
	return nil
}

func (s *mongoStore) History(ctx context.Context, conversationID string, limit int) ([]model.Message, error) {
	err := s.conversations.FindOne(ctx,
		bson.M{"conversation_id": conversationID},
		options.FindOne().SetProjection(bson.M{"_id": 1}),
	).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not look up conversation: %w", err)
	}

	// Fetch the newest entries first so the limit applies to the tail of
	// the history, then restore chronological order.
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := s.messages.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("could not query messages: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoMessage
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("could not decode messages: %w", err)
	}

	messages := make([]model.Message, len(docs))
	for i, doc := range docs {
		payload, err := decodePayload(doc.Payload)
		if err != nil {
			return nil, fmt.Errorf("could not decode payload at position %d: %w", doc.Position, err)
		}
		// Reverse while copying.
		messages[len(docs)-1-i] = model.Message{
			Position:  doc.Position,
			Sender:    doc.Sender,
			Type:      doc.Type,
			Content:   doc.Content,
			Payload:   payload,
			Timestamp: doc.Timestamp,
		}
	}
	return messages, nil
}

func (s *mongoStore) List(ctx context.Context, userID string) ([]*model.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := s.conversations.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("could not query conversations: %w", err)
	}
	defer cursor.Close(ctx)

	var conversations []*model.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, fmt.Errorf("could not decode conversations: %w", err)
	}
	return conversations, nil
}
