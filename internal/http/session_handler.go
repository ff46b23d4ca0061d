package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"aidanwoods.dev/go-paseto"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/internal/http/middleware"
	"github.com/archetype-studio/archetype/pkg/logger"
)

// SessionServiceInterface defines the methods required from a session service
type SessionServiceInterface interface {
	CreateSession(ctx context.Context, clientID string) (*domain.Session, error)
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	ListSessions(ctx context.Context, params domain.SessionListParams) ([]*domain.Session, int, error)
	UpdateStatus(ctx context.Context, id string, status domain.SessionStatus) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

type createSessionRequest struct {
	ClientID string `json:"client_id"`
}

type updateSessionRequest struct {
	Status domain.SessionStatus `json:"status"`
}

type SessionHandler struct {
	service     SessionServiceInterface
	userService domain.UserServiceInterface
	publicKey   paseto.V4AsymmetricPublicKey
	logger      logger.Logger
}

func NewSessionHandler(service SessionServiceInterface, userService domain.UserServiceInterface, publicKey paseto.V4AsymmetricPublicKey, logger logger.Logger) *SessionHandler {
	return &SessionHandler{
		service:     service,
		userService: userService,
		publicKey:   publicKey,
		logger:      logger,
	}
}

func (h *SessionHandler) RegisterRoutes(mux *http.ServeMux) {
	authMiddleware := middleware.NewAuthMiddleware(h.publicKey)
	requireAuth := authMiddleware.RequireAuth(h.userService)
	requireApproved := middleware.RequireApproved(h.userService)
	protect := func(handler http.HandlerFunc) http.Handler {
		return requireAuth(requireApproved(handler))
	}

	mux.Handle("GET /api/sessions", protect(h.handleList))
	mux.Handle("POST /api/sessions", protect(h.handleCreate))
	mux.Handle("GET /api/sessions/{id}", protect(h.handleGet))
	mux.Handle("PATCH /api/sessions/{id}", protect(h.handleUpdate))
	mux.Handle("DELETE /api/sessions/{id}", protect(h.handleDelete))
}

func (h *SessionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := domain.SessionListParams{
		ClientID: query.Get("client_id"),
		Status:   domain.SessionStatus(query.Get("status")),
	}
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			WriteJSONError(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		params.Limit = limit
	}
	if v := query.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			WriteJSONError(w, "offset must be an integer", http.StatusBadRequest)
			return
		}
		params.Offset = offset
	}

	sessions, total, err := h.service.ListSessions(r.Context(), params)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list sessions")
		writeServiceError(w, err, "Failed to list sessions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": sessions,
		"total":    total,
	})
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.CreateSession(r.Context(), req.ClientID)
	if err != nil {
		if !domain.IsValidationError(err) && !domain.IsNotFound(err) {
			h.logger.WithField("error", err.Error()).Error("Failed to create session")
		}
		writeServiceError(w, err, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session": session,
	})
}

func (h *SessionHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "Failed to get session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
	})
}

func (h *SessionHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		if !domain.IsValidationError(err) && !domain.IsNotFound(err) {
			h.logger.WithField("error", err.Error()).Error("Failed to update session")
		}
		writeServiceError(w, err, "Failed to update session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
	})
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSession(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err, "Failed to delete session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "deleted",
	})
}
