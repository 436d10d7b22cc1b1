package model

import "time"

// Sender identifies which side of the conversation authored a message.
type Sender string

const (
	SenderUser Sender = "User"
	SenderAI   Sender = "AI"
)

// ResponseType classifies the payload carried by an AI message.
type ResponseType string

const (
	ResponseTypeText        ResponseType = "text"
	ResponseTypeQuestion    ResponseType = "question"
	ResponseTypeCorrection  ResponseType = "correction"
	ResponseTypeHint        ResponseType = "hint"
	ResponseTypeExplanation ResponseType = "explanation"
	ResponseTypeFeedback    ResponseType = "feedback"
)

// Difficulty is the requested difficulty level for generated questions.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether d is one of the known difficulty levels.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Conversation stores metadata about one chat thread. Messages are kept
// separately and ordered by their per-conversation position.
type Conversation struct {
	ID          string    `json:"conversation_id" bson:"conversation_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	UserID      string    `json:"user_id" bson:"user_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Message is a single immutable entry in a conversation's history.
// Position is assigned by the store and is monotonic per conversation.
type Message struct {
	Position  int          `json:"id"`
	Sender    Sender       `json:"sender"`
	Type      ResponseType `json:"type,omitempty"`
	Content   string       `json:"content"`
	Payload   *Payload     `json:"payload,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// Payload is the typed body of an AI message or response envelope.
// Exactly one of the fields is populated, determined by the response type.
type Payload struct {
	Text      string       `json:"text,omitempty"`
	Questions QuestionList `json:"questions,omitempty"`
}

// ChatResponse is the envelope returned for every processed message.
type ChatResponse struct {
	Type    ResponseType `json:"type"`
	Content string       `json:"content"`
	Payload Payload      `json:"payload"`
}

// FullConversation bundles conversation metadata with its message history.
type FullConversation struct {
	Conversation
	Messages []Message `json:"messages"`
}
