package service

import (
	"context"
	"fmt"
	"log/slog"

	"portagees/backend/internal/llm"
	"portagees/backend/internal/model"
	"portagees/backend/internal/repository"

	apperrors "portagees/backend/internal/errors"
)

// historyLimit bounds how many prior messages are sent to the model as
// conversation context.
const historyLimit = 10

// apologyText replaces the model's answer when the gateway fails on a
// general-chat request. The caller still gets a well-formed text response.
const apologyText = "I'm sorry, I'm having trouble reaching my language knowledge right now. " +
	"Please try again in a moment — in the meantime, keep practicing your Portuguese!"

// ChatService is the message pipeline: it resolves the conversation,
// classifies intent, dispatches to the model gateway or the fallback bank,
// normalizes question output, persists both sides of the exchange and
// returns the response envelope.
type ChatService struct {
	store      repository.ConversationStore
	ephemeral  repository.ConversationStore
	llm        llm.Provider
	bank       QuestionSource
	classifier IntentClassifier

	defaultUserID string
}

// ProcessMessageRequest is the inbound shape for the pipeline. Optional
// fields use zero values for "not supplied".
type ProcessMessageRequest struct {
	ConversationID string           `json:"conversation_id" validate:"required"`
	Message        string           `json:"message" validate:"required"`
	Topic          string           `json:"topic,omitempty"`
	Difficulty     model.Difficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	NumQuestions   int              `json:"num_questions,omitempty" validate:"omitempty,min=1,max=10"`
}

func NewChatService(store repository.ConversationStore, provider llm.Provider, bank QuestionSource, defaultUserID, defaultTopic string) *ChatService {
	return &ChatService{
		store:         store,
		ephemeral:     repository.NewMemoryStore(),
		llm:           provider,
		bank:          bank,
		classifier:    IntentClassifier{DefaultTopic: defaultTopic},
		defaultUserID: defaultUserID,
	}
}

// ProcessMessage runs one message through the pipeline. Gateway and store
// failures are recovered locally (fallback content, ephemeral records,
// logged-and-swallowed history writes); only invalid input is returned as
// an error.
func (s *ChatService) ProcessMessage(ctx context.Context, req *ProcessMessageRequest) (*model.ChatResponse, error) {
	if req.ConversationID == "" || req.Message == "" {
		return nil, fmt.Errorf("%w: conversation_id and message are required", apperrors.ErrValidation)
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}
	if !difficulty.IsValid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", apperrors.ErrValidation, req.Difficulty)
	}

	// Step 1: resolve the conversation. A failing store degrades to an
	// ephemeral record so the request can still complete.
	store := s.store
	if _, err := store.GetOrCreate(ctx, req.ConversationID, defaultConversationTitle, defaultConversationDescription, s.defaultUserID); err != nil {
		slog.Warn("Conversation store unavailable, degrading to ephemeral record", "conversation_id", req.ConversationID, "error", err)
		store = s.ephemeral
		if _, err := store.GetOrCreate(ctx, req.ConversationID, defaultConversationTitle, defaultConversationDescription, s.defaultUserID); err != nil {
			return nil, fmt.Errorf("%w: could not resolve conversation: %v", apperrors.ErrInternal, err)
		}
	}

	// Step 2: record what the user actually sent before anything can fail.
	userMessage := &model.Message{Sender: model.SenderUser, Content: req.Message}
	if err := store.AppendMessage(ctx, req.ConversationID, userMessage); err != nil {
		slog.Error("Failed to persist user message", "conversation_id", req.ConversationID, "error", err)
	}

	// Step 3: classify.
	intent := s.classifier.Classify(req.Message, req.Topic, req.NumQuestions)

	// Steps 4-5: answer.
	var response *model.ChatResponse
	if intent.Kind == IntentQuestionRequest {
		response = s.answerQuestionRequest(ctx, intent, difficulty)
	} else {
		response = s.answerGeneralChat(ctx, store, req.ConversationID, req.Message)
	}

	// Step 6: persist the AI reply. Losing a history write is preferable to
	// discarding an already-computed answer.
	aiMessage := &model.Message{
		Sender:  model.SenderAI,
		Type:    response.Type,
		Content: response.Content,
		Payload: &response.Payload,
	}
	if err := store.AppendMessage(ctx, req.ConversationID, aiMessage); err != nil {
		slog.Error("Failed to persist AI message", "conversation_id", req.ConversationID, "error", err)
	}

	return response, nil
}

func (s *ChatService) answerGeneralChat(ctx context.Context, store repository.ConversationStore, conversationID, message string) *model.ChatResponse {
	history := s.recentHistory(ctx, store, conversationID)

	text, err := s.llm.Complete(ctx, message, history)
	if err != nil {
		slog.Warn("Gateway completion failed, substituting static text", "conversation_id", conversationID, "error", err)
		text = apologyText
	}
	return &model.ChatResponse{
		Type:    model.ResponseTypeText,
		Content: text,
		Payload: model.Payload{Text: text},
	}
}

func (s *ChatService) answerQuestionRequest(ctx context.Context, intent Intent, difficulty model.Difficulty) *model.ChatResponse {
	raw, err := s.llm.GenerateQuestions(ctx, intent.Topic, difficulty, intent.Count, intent.QuestionType)
	if err != nil {
		slog.Warn("Gateway question generation failed, using fallback bank only", "topic", intent.Topic, "error", err)
		raw = nil
	}

	// The bank tops up whatever the gateway could not supply; it never errors.
	fallback, _ := s.bank.GenerateQuestions(ctx, intent.Topic, difficulty, intent.Count, intent.QuestionType)

	questions := NormalizeQuestions(raw, fallback, intent.QuestionType, difficulty, intent.Count)
	if len(questions) < intent.Count {
		slog.Info("Returning fewer questions than requested", "topic", intent.Topic, "requested", intent.Count, "returned", len(questions))
	}

	return &model.ChatResponse{
		Type:    model.ResponseTypeQuestion,
		Content: fmt.Sprintf("Here are some questions about %s:", intent.Topic),
		Payload: model.Payload{Questions: questions},
	}
}

// recentHistory loads the context window for a completion. The user's
// current message is already persisted, so it is excluded from the window
// to avoid sending it twice.
func (s *ChatService) recentHistory(ctx context.Context, store repository.ConversationStore, conversationID string) []llm.Message {
	messages, err := store.History(ctx, conversationID, historyLimit)
	if err != nil {
		slog.Warn("Could not load conversation history for context", "conversation_id", conversationID, "error", err)
		return nil
	}
	if n := len(messages); n > 0 && messages[n-1].Sender == model.SenderUser {
		messages = messages[:n-1]
	}

	history := make([]llm.Message, 0, len(messages))
	for _, msg := range messages {
		role := "assistant"
		if msg.Sender == model.SenderUser {
			role = "user"
		}
		history = append(history, llm.Message{Role: role, Content: msg.Content})
	}
	return history
}
