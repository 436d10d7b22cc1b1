package llm

import (
	"context"

	"portagees/backend/internal/model"
)

// Message is a single chat-completion turn sent to the model API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RawQuestion is a model-generated question candidate before validation.
// Fields are optional here; the normalizer decides whether an item can be
// coerced into a well-formed question and silently drops the rest.
type RawQuestion struct {
	QuestionText        string   `json:"questionText"`
	QuestionDescription string   `json:"questionDescription"`
	Options             []string `json:"options,omitempty"`
	QuestionSentence    string   `json:"questionSentence,omitempty"`
	CorrectAnswers      []string `json:"correct_answers"`
	Hint                string   `json:"hint,omitempty"`
}

// Provider is the gateway to the external language model. It exposes the
// two capabilities the pipeline needs and nothing else.
type Provider interface {
	// Complete answers a free-form message, given prior conversation turns.
	Complete(ctx context.Context, message string, history []Message) (string, error)

	// GenerateQuestions asks the model for count practice-question
	// candidates of the given type. The returned items are unvalidated and
	// the slice may be shorter than count.
	GenerateQuestions(ctx context.Context, topic string, difficulty model.Difficulty, count int, questionType model.QuestionType) ([]RawQuestion, error)
}
