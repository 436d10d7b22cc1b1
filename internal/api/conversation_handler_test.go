package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portagees/backend/internal/api"
	apperrors "portagees/backend/internal/errors"
	"portagees/backend/internal/interfaces/mocks"
	"portagees/backend/internal/model"
)

func setupConversationHandler(t *testing.T) (*api.ConversationHandler, *mocks.MockConversationService) {
	mockSvc := mocks.NewMockConversationService(t)
	return api.NewConversationHandler(mockSvc), mockSvc
}

// addChiURLParams simulates how the chi router injects URL parameters into
// the request's context, so handlers using chi.URLParam can be tested
// without a full router.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func TestConversationHandler_GetOrCreate(t *testing.T) {
	conv := &model.Conversation{ID: "c1", Title: "General Chat", UserID: "u1", CreatedAt: time.Now(), UpdatedAt: time.Now()}

	t.Run("Success with explicit id", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("GetOrCreate", mock.Anything, "c1", "General Chat", "", "u1").Return(conv, nil).Once()

		body := `{"conversation_id":"c1","title":"General Chat","user_id":"u1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.GetOrCreate(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got model.Conversation
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "c1", got.ID)
	})

	t.Run("Empty body creates a fresh conversation", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("GetOrCreate", mock.Anything, "", "", "", "").Return(conv, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", nil)
		rr := httptest.NewRecorder()
		handler.GetOrCreate(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Malformed body", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", strings.NewReader("{oops"))
		rr := httptest.NewRecorder()
		handler.GetOrCreate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockSvc.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Service failure", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("GetOrCreate", mock.Anything, "", "", "", "").Return(nil, apperrors.ErrInternal).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", nil)
		rr := httptest.NewRecorder()
		handler.GetOrCreate(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestConversationHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("List", mock.Anything, "u1").Return([]*model.Conversation{
			{ID: "c2"}, {ID: "c1"},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations?user_id=u1", nil)
		rr := httptest.NewRecorder()
		handler.List(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got []model.Conversation
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "c2", got[0].ID)
	})

	t.Run("Missing user id passes through empty", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("List", mock.Anything, "").Return([]*model.Conversation{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations", nil)
		rr := httptest.NewRecorder()
		handler.List(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestConversationHandler_History(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("History", mock.Anything, "c1", 5).Return([]model.Message{
			{Position: 1, Sender: model.SenderUser, Content: "hi"},
			{Position: 2, Sender: model.SenderAI, Content: "olá"},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/c1/history?limit=5", nil)
		req = addChiURLParams(req, map[string]string{"conversationID": "c1"})
		rr := httptest.NewRecorder()
		handler.History(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got api.HistoryResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "c1", got.ConversationID)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, 1, got.Messages[0].Position)
	})

	t.Run("Invalid limit", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/c1/history?limit=abc", nil)
		req = addChiURLParams(req, map[string]string{"conversationID": "c1"})
		rr := httptest.NewRecorder()
		handler.History(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockSvc.AssertNotCalled(t, "History", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown conversation maps to 404", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("History", mock.Anything, "missing", 0).Return(nil, apperrors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/missing/history", nil)
		req = addChiURLParams(req, map[string]string{"conversationID": "missing"})
		rr := httptest.NewRecorder()
		handler.History(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
