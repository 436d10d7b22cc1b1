package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "portagees/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(chatHandler *ChatHandler, conversationHandler *ConversationHandler) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID) // Injects a unique request ID into the context.
	r.Use(middleware.RealIP)    // Sets the remote address to the real IP from proxy headers.
	r.Use(middleware.Logger)    // Logs the start and end of each request with useful info.
	r.Use(middleware.Recoverer) // Recovers from panics and returns a 500 error.

	// Serves the auto-generated Swagger UI for API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// A simple health check endpoint for container orchestration probes.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// --- API Version 1 Routes ---
	r.Route("/api/v1", func(r chi.Router) {
		// The message pipeline calls out to the language model, so it gets a
		// generous timeout to cover question-generation retries.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(120 * time.Second))

			r.Post("/chat/messages", chatHandler.ProcessMessage)
		})

		// Conversation management is storage-only and answers quickly.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(15 * time.Second))

			r.Post("/conversations", conversationHandler.GetOrCreate)
			r.Get("/conversations", conversationHandler.List)
			r.Get("/conversations/{conversationID}/history", conversationHandler.History)
		})
	})

	return r
}
