package handler

import (
	"encoding/json"
	"net/http"

	"file-converter-api/internal/domain"
	apperrors "file-converter-api/pkg/errors"
)

type contextKey string

const (
	userContextKey  contextKey = "user"
	tokenContextKey contextKey = "token"
)

// GetUserFromContext extracts the authenticated user from request context
func GetUserFromContext(r *http.Request) (*domain.SupabaseUser, bool) {
	user, ok := r.Context().Value(userContextKey).(*domain.SupabaseUser)
	return user, ok
}

// GetTokenFromContext extracts the authentication token from request context
func GetTokenFromContext(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	return token, ok
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeInternalError logs the cause and responds with a generic body so
// internals never leak to callers. The status comes from the error's
// mapping; plain errors map to 500.
func writeInternalError(w http.ResponseWriter, logger domain.Logger, msg string, err error) {
	logger.Error(msg, err)
	writeError(w, apperrors.GetStatusCode(err), "Internal server error")
}
