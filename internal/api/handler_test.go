package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portagees/backend/internal/api"
	apperrors "portagees/backend/internal/errors"
	"portagees/backend/internal/interfaces/mocks"
	"portagees/backend/internal/model"
	"portagees/backend/internal/service"
)

func setupChatHandler(t *testing.T) (*api.ChatHandler, *mocks.MockChatService) {
	mockChatSvc := mocks.NewMockChatService(t)
	return api.NewChatHandler(mockChatSvc), mockChatSvc
}

func TestChatHandler_ProcessMessage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChatSvc := setupChatHandler(t)

		expected := &model.ChatResponse{
			Type:    model.ResponseTypeText,
			Content: "Olá!",
			Payload: model.Payload{Text: "Olá!"},
		}
		mockChatSvc.On("ProcessMessage", mock.Anything, mock.MatchedBy(func(req *service.ProcessMessageRequest) bool {
			return req.ConversationID == "c1" && req.Message == "hello"
		})).Return(expected, nil).Once()

		body := `{"conversation_id":"c1","message":"hello"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.ProcessMessage(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got model.ChatResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, expected.Type, got.Type)
		assert.Equal(t, expected.Content, got.Content)
	})

	t.Run("Malformed JSON body", func(t *testing.T) {
		handler, mockChatSvc := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader("{not json"))
		rr := httptest.NewRecorder()
		handler.ProcessMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockChatSvc.AssertNotCalled(t, "ProcessMessage", mock.Anything, mock.Anything)
	})

	t.Run("Missing required fields", func(t *testing.T) {
		handler, mockChatSvc := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(`{"message":"hi"}`))
		rr := httptest.NewRecorder()
		handler.ProcessMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockChatSvc.AssertNotCalled(t, "ProcessMessage", mock.Anything, mock.Anything)
	})

	t.Run("Out-of-range question count", func(t *testing.T) {
		handler, _ := setupChatHandler(t)

		body := `{"conversation_id":"c1","message":"quiz me","num_questions":50}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.ProcessMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Unknown difficulty", func(t *testing.T) {
		handler, _ := setupChatHandler(t)

		body := `{"conversation_id":"c1","message":"quiz me","difficulty":"brutal"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.ProcessMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Service failure maps to 500", func(t *testing.T) {
		handler, mockChatSvc := setupChatHandler(t)

		mockChatSvc.On("ProcessMessage", mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrInternal).Once()

		body := `{"conversation_id":"c1","message":"hello"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.ProcessMessage(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		// The client gets a generic message, not the internal error.
		var errResp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
		assert.Equal(t, "An unexpected internal server error occurred.", errResp.Error)
	})
}
