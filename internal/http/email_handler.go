package http

import (
	"context"
	"encoding/json"
	"net/http"

	"aidanwoods.dev/go-paseto"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/internal/http/middleware"
	"github.com/archetype-studio/archetype/internal/service"
	"github.com/archetype-studio/archetype/pkg/logger"
)

// EmailServiceInterface defines the showroom email triggers
type EmailServiceInterface interface {
	MarkSent(ctx context.Context, sessionID string) (*domain.Session, error)
	NotifyInterest(ctx context.Context, payload *service.InterestPayload) error
}

type sendShowroomRequest struct {
	SessionID string `json:"sessionId"`
}

type EmailHandler struct {
	service     EmailServiceInterface
	userService domain.UserServiceInterface
	publicKey   paseto.V4AsymmetricPublicKey
	logger      logger.Logger
}

func NewEmailHandler(service EmailServiceInterface, userService domain.UserServiceInterface, publicKey paseto.V4AsymmetricPublicKey, logger logger.Logger) *EmailHandler {
	return &EmailHandler{
		service:     service,
		userService: userService,
		publicKey:   publicKey,
		logger:      logger,
	}
}

func (h *EmailHandler) RegisterRoutes(mux *http.ServeMux) {
	authMiddleware := middleware.NewAuthMiddleware(h.publicKey)
	requireAuth := authMiddleware.RequireAuth(h.userService)
	requireApproved := middleware.RequireApproved(h.userService)
	protect := func(handler http.HandlerFunc) http.Handler {
		return requireAuth(requireApproved(handler))
	}

	mux.Handle("POST /api/email/send-showroom", protect(h.handleSendShowroom))
	mux.Handle("POST /api/email/notify-interest", protect(h.handleNotifyInterest))
}

func (h *EmailHandler) handleSendShowroom(w http.ResponseWriter, r *http.Request) {
	var req sendShowroomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		WriteJSONError(w, "sessionId is required", http.StatusBadRequest)
		return
	}

	session, err := h.service.MarkSent(r.Context(), req.SessionID)
	if err != nil {
		if !domain.IsValidationError(err) && !domain.IsNotFound(err) {
			h.logger.WithField("session_id", req.SessionID).WithField("error", err.Error()).Error("Failed to send showroom")
		}
		writeServiceError(w, err, "Failed to send showroom")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
	})
}

func (h *EmailHandler) handleNotifyInterest(w http.ResponseWriter, r *http.Request) {
	var payload service.InterestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.NotifyInterest(r.Context(), &payload); err != nil {
		if !domain.IsValidationError(err) {
			h.logger.WithField("error", err.Error()).Error("Failed to queue interest notification")
		}
		writeServiceError(w, err, "Failed to queue interest notification")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "queued",
	})
}
