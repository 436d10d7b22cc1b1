package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "portagees/backend/internal/errors"
)

// ErrorResponse is the standard JSON shape for error bodies.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondWithError maps business-layer sentinel errors to HTTP status
// codes and writes a standard JSON error body. The detailed error is
// logged; unhandled errors surface as a generic 500 message so internals
// never leak to the client.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, apperrors.ErrValidation):
		statusCode = http.StatusBadRequest
		message = err.Error()
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)
	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals payload and writes it with the given status.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
