package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "portagees/backend/internal/errors"
	"portagees/backend/internal/interfaces"
	"portagees/backend/internal/service"
)

// ChatHandler exposes the message pipeline over HTTP.
type ChatHandler struct {
	chat interfaces.ChatService
}

func NewChatHandler(chat interfaces.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// ProcessMessage handles POST /api/v1/chat/messages.
//
//	@Summary		Process a user message
//	@Description	Classifies the message intent and answers with either chat text or generated practice questions.
//	@Tags			chat
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.ProcessMessageRequest	true	"Message to process"
//	@Success		200		{object}	model.ChatResponse
//	@Failure		400		{object}	api.ErrorResponse
//	@Failure		500		{object}	api.ErrorResponse
//	@Router			/api/v1/chat/messages [post]
func (h *ChatHandler) ProcessMessage(w http.ResponseWriter, r *http.Request) {
	var req service.ProcessMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", apperrors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	response, err := h.chat.ProcessMessage(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, response)
}
