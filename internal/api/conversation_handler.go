package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "portagees/backend/internal/errors"
	"portagees/backend/internal/interfaces"
	"portagees/backend/internal/model"
)

// ConversationHandler exposes conversation management over HTTP.
type ConversationHandler struct {
	conversations interfaces.ConversationService
}

func NewConversationHandler(conversations interfaces.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

// CreateConversationRequest is the body of POST /api/v1/conversations.
// All fields are optional; missing values fall back to server defaults.
type CreateConversationRequest struct {
	ConversationID string `json:"conversation_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	UserID         string `json:"user_id"`
}

// HistoryResponse wraps a conversation's messages.
type HistoryResponse struct {
	ConversationID string          `json:"conversation_id"`
	Messages       []model.Message `json:"messages"`
}

// GetOrCreate handles POST /api/v1/conversations.
//
//	@Summary		Get or create a conversation
//	@Description	Returns the conversation with the given identifier, creating it when it does not exist. Omitting the identifier creates a fresh conversation.
//	@Tags			conversations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.CreateConversationRequest	true	"Conversation to resolve"
//	@Success		200		{object}	model.Conversation
//	@Failure		400		{object}	api.ErrorResponse
//	@Failure		500		{object}	api.ErrorResponse
//	@Router			/api/v1/conversations [post]
func (h *ConversationHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateConversationRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, fmt.Errorf("%w: invalid request body", apperrors.ErrValidation))
			return
		}
	}

	conv, err := h.conversations.GetOrCreate(r.Context(), req.ConversationID, req.Title, req.Description, req.UserID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}

// List handles GET /api/v1/conversations.
//
//	@Summary		List conversations
//	@Description	Returns the user's conversations, most recently updated first.
//	@Tags			conversations
//	@Produce		json
//	@Param			user_id	query		string	false	"User identifier"
//	@Success		200		{array}		model.Conversation
//	@Failure		500		{object}	api.ErrorResponse
//	@Router			/api/v1/conversations [get]
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.conversations.List(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conversations)
}

// History handles GET /api/v1/conversations/{conversationID}/history.
//
//	@Summary		Conversation history
//	@Description	Returns the most recent messages of a conversation in arrival order.
//	@Tags			conversations
//	@Produce		json
//	@Param			conversationID	path		string	true	"Conversation identifier"
//	@Param			limit			query		int		false	"Maximum number of messages"
//	@Success		200				{object}	api.HistoryResponse
//	@Failure		400				{object}	api.ErrorResponse
//	@Failure		404				{object}	api.ErrorResponse
//	@Failure		500				{object}	api.ErrorResponse
//	@Router			/api/v1/conversations/{conversationID}/history [get]
func (h *ConversationHandler) History(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondWithError(w, fmt.Errorf("%w: limit must be a non-negative integer", apperrors.ErrValidation))
			return
		}
		limit = parsed
	}

	messages, err := h.conversations.History(r.Context(), conversationID, limit)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, HistoryResponse{ConversationID: conversationID, Messages: messages})
}
