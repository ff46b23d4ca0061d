package http

import (
	"context"
	"encoding/json"
	"net/http"

	"aidanwoods.dev/go-paseto"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/internal/http/middleware"
	"github.com/archetype-studio/archetype/pkg/logger"
)

// AnalystServiceInterface defines the methods required from the analyst service
type AnalystServiceInterface interface {
	GenerateBrief(ctx context.Context, req *domain.GenerateBriefRequest) (string, error)
	GetBrief(ctx context.Context, sessionID string) (*domain.GeneratedPrompt, error)
}

type AnalystHandler struct {
	service     AnalystServiceInterface
	userService domain.UserServiceInterface
	publicKey   paseto.V4AsymmetricPublicKey
	logger      logger.Logger
}

func NewAnalystHandler(service AnalystServiceInterface, userService domain.UserServiceInterface, publicKey paseto.V4AsymmetricPublicKey, logger logger.Logger) *AnalystHandler {
	return &AnalystHandler{
		service:     service,
		userService: userService,
		publicKey:   publicKey,
		logger:      logger,
	}
}

func (h *AnalystHandler) RegisterRoutes(mux *http.ServeMux) {
	authMiddleware := middleware.NewAuthMiddleware(h.publicKey)
	requireAuth := authMiddleware.RequireAuth(h.userService)
	requireApproved := middleware.RequireApproved(h.userService)
	protect := func(handler http.HandlerFunc) http.Handler {
		return requireAuth(requireApproved(handler))
	}

	mux.Handle("POST /api/analyst/generate", protect(h.handleGenerate))
	mux.Handle("GET /api/analyst/brief", protect(h.handleGetBrief))
}

func (h *AnalystHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateBriefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	brief, err := h.service.GenerateBrief(r.Context(), &req)
	if err != nil {
		if !domain.IsValidationError(err) && !domain.IsNotFound(err) {
			h.logger.WithField("session_id", req.SessionID).WithField("error", err.Error()).Error("Failed to generate brief")
		}
		writeServiceError(w, err, "Failed to generate brief")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"brief": brief,
	})
}

func (h *AnalystHandler) handleGetBrief(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		WriteJSONError(w, "Missing session_id", http.StatusBadRequest)
		return
	}

	prompt, err := h.service.GetBrief(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err, "Failed to get brief")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"brief": prompt,
	})
}
