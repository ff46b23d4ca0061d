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

// ProposalServiceInterface defines the methods required from the proposal service
type ProposalServiceInterface interface {
	Save(ctx context.Context, req *service.SaveProposalRequest) (*domain.DesignProposal, error)
	List(ctx context.Context, sessionID string) ([]*domain.DesignProposal, error)
	Delete(ctx context.Context, id string) error
}

type ProposalHandler struct {
	service     ProposalServiceInterface
	userService domain.UserServiceInterface
	publicKey   paseto.V4AsymmetricPublicKey
	logger      logger.Logger
}

func NewProposalHandler(service ProposalServiceInterface, userService domain.UserServiceInterface, publicKey paseto.V4AsymmetricPublicKey, logger logger.Logger) *ProposalHandler {
	return &ProposalHandler{
		service:     service,
		userService: userService,
		publicKey:   publicKey,
		logger:      logger,
	}
}

func (h *ProposalHandler) RegisterRoutes(mux *http.ServeMux) {
	authMiddleware := middleware.NewAuthMiddleware(h.publicKey)
	requireAuth := authMiddleware.RequireAuth(h.userService)
	requireApproved := middleware.RequireApproved(h.userService)
	protect := func(handler http.HandlerFunc) http.Handler {
		return requireAuth(requireApproved(handler))
	}

	mux.Handle("GET /api/proposals", protect(h.handleList))
	mux.Handle("POST /api/proposals", protect(h.handleSave))
	mux.Handle("DELETE /api/proposals/{id}", protect(h.handleDelete))
}

func (h *ProposalHandler) handleList(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		WriteJSONError(w, "Missing session_id", http.StatusBadRequest)
		return
	}

	proposals, err := h.service.List(r.Context(), sessionID)
	if err != nil {
		h.logger.WithField("session_id", sessionID).WithField("error", err.Error()).Error("Failed to list proposals")
		writeServiceError(w, err, "Failed to list proposals")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"proposals": proposals,
	})
}

func (h *ProposalHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var req service.SaveProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	proposal, err := h.service.Save(r.Context(), &req)
	if err != nil {
		if !domain.IsValidationError(err) && !domain.IsNotFound(err) {
			h.logger.WithField("session_id", req.SessionID).WithField("error", err.Error()).Error("Failed to save proposal")
		}
		writeServiceError(w, err, "Failed to save proposal")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"proposal": proposal,
	})
}

func (h *ProposalHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err, "Failed to delete proposal")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "deleted",
	})
}
