package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/archetype-studio/archetype/internal/domain"
)

// WriteJSONError writes a JSON error response with the given message and status code.
// It sets the Content-Type header to application/json and automatically formats
// the response as {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps domain errors onto HTTP status codes. fallback is
// the message used for unexpected errors, which are reported as a 500
// without leaking the underlying cause.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case domain.IsValidationError(err):
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case domain.IsNotFound(err):
		WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrStaleRevision),
		errors.Is(err, domain.ErrSelectionExists),
		errors.Is(err, domain.ErrClientEmailExists),
		errors.Is(err, domain.ErrSessionCompleted):
		WriteJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrShowroomNotSent):
		WriteJSONError(w, err.Error(), http.StatusPreconditionFailed)
	case errors.Is(err, domain.ErrPayloadTooLarge):
		WriteJSONError(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, domain.ErrUserNotApproved):
		WriteJSONError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrCodeExpired),
		errors.Is(err, domain.ErrSessionExpired),
		errors.Is(err, domain.ErrUserNotFound):
		WriteJSONError(w, err.Error(), http.StatusUnauthorized)
	default:
		WriteJSONError(w, fallback, http.StatusInternalServerError)
	}
}
