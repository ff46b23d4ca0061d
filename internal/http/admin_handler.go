package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"aidanwoods.dev/go-paseto"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/internal/http/middleware"
	"github.com/archetype-studio/archetype/pkg/logger"
)

// AdminHandler serves the operator approval endpoints, restricted to the
// configured admin allow-list.
type AdminHandler struct {
	userService  domain.UserServiceInterface
	publicKey    paseto.V4AsymmetricPublicKey
	isAdminEmail func(string) bool
	logger       logger.Logger
}

func NewAdminHandler(userService domain.UserServiceInterface, publicKey paseto.V4AsymmetricPublicKey, isAdminEmail func(string) bool, logger logger.Logger) *AdminHandler {
	return &AdminHandler{
		userService:  userService,
		publicKey:    publicKey,
		isAdminEmail: isAdminEmail,
		logger:       logger,
	}
}

func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux) {
	authMiddleware := middleware.NewAuthMiddleware(h.publicKey)
	requireAuth := authMiddleware.RequireAuth(h.userService)
	requireAdmin := middleware.RequireAdmin(h.isAdminEmail)
	protect := func(handler http.HandlerFunc) http.Handler {
		return requireAuth(requireAdmin(handler))
	}

	mux.Handle("GET /api/admin/users", protect(h.handleList))
	mux.Handle("PATCH /api/admin/users", protect(h.handleUpdateStatus))
}

func (h *AdminHandler) handleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.userService.ListProfiles(r.Context())
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list profiles")
		writeServiceError(w, err, "Failed to list profiles")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"users": profiles,
	})
}

func (h *AdminHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req domain.UpdateProfileStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.userService.UpdateProfileStatus(r.Context(), authUser.Email, &req)
	if err != nil {
		if !domain.IsValidationError(err) && !domain.IsNotFound(err) && !errors.Is(err, domain.ErrUserNotApproved) {
			h.logger.WithField("user_id", req.UserID).WithField("error", err.Error()).Error("Failed to update profile status")
		}
		writeServiceError(w, err, "Failed to update profile status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": profile,
	})
}
