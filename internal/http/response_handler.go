package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/internal/service"
	"github.com/archetype-studio/archetype/pkg/logger"
)

// ResponseServiceInterface defines the methods required from a response service
type ResponseServiceInterface interface {
	GetBySessionID(ctx context.Context, sessionID string) (*domain.Response, error)
	Save(ctx context.Context, req *service.SaveResponseRequest) (*domain.Response, error)
}

// ResponseHandler serves the public questionnaire autosave endpoints. The
// session id in the URL doubles as the access token, so no operator auth is
// applied here.
type ResponseHandler struct {
	service        ResponseServiceInterface
	sessionService SessionServiceInterface
	logger         logger.Logger
}

func NewResponseHandler(service ResponseServiceInterface, sessionService SessionServiceInterface, logger logger.Logger) *ResponseHandler {
	return &ResponseHandler{
		service:        service,
		sessionService: sessionService,
		logger:         logger,
	}
}

func (h *ResponseHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/responses", h.handleGet)
	mux.HandleFunc("POST /api/responses", h.handleSave)
	mux.HandleFunc("GET /api/questionnaire/{sessionID}", h.handleBootstrap)
}

func (h *ResponseHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		WriteJSONError(w, "Missing session_id", http.StatusBadRequest)
		return
	}

	response, err := h.service.GetBySessionID(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err, "Failed to get response")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"response": response,
	})
}

func (h *ResponseHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var req service.SaveResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.service.Save(r.Context(), &req)
	if err != nil {
		if !domain.IsValidationError(err) && !domain.IsNotFound(err) {
			h.logger.WithField("session_id", req.SessionID).WithField("error", err.Error()).Error("Failed to save response")
		}
		writeServiceError(w, err, "Failed to save response")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"response": response,
	})
}

// handleBootstrap loads everything the questionnaire page needs in one call:
// the session and the stored response snapshot, if any.
func (h *ResponseHandler) handleBootstrap(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	session, err := h.sessionService.GetSession(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err, "Failed to get session")
		return
	}

	payload := map[string]interface{}{
		"session": session,
	}

	response, err := h.service.GetBySessionID(r.Context(), sessionID)
	if err == nil {
		payload["response"] = response
	} else if !domain.IsNotFound(err) {
		writeServiceError(w, err, "Failed to get response")
		return
	}

	writeJSON(w, http.StatusOK, payload)
}
