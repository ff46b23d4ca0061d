package http

import (
	"context"
	"net/http"

	"aidanwoods.dev/go-paseto"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/internal/http/middleware"
	"github.com/archetype-studio/archetype/internal/service"
	"github.com/archetype-studio/archetype/pkg/logger"
)

// DashboardServiceInterface defines the methods required from the dashboard service
type DashboardServiceInterface interface {
	GetStats(ctx context.Context) (*service.DashboardStats, error)
}

type DashboardHandler struct {
	service     DashboardServiceInterface
	userService domain.UserServiceInterface
	publicKey   paseto.V4AsymmetricPublicKey
	logger      logger.Logger
}

func NewDashboardHandler(service DashboardServiceInterface, userService domain.UserServiceInterface, publicKey paseto.V4AsymmetricPublicKey, logger logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:     service,
		userService: userService,
		publicKey:   publicKey,
		logger:      logger,
	}
}

func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux) {
	authMiddleware := middleware.NewAuthMiddleware(h.publicKey)
	requireAuth := authMiddleware.RequireAuth(h.userService)
	requireApproved := middleware.RequireApproved(h.userService)

	mux.Handle("GET /api/dashboard", requireAuth(requireApproved(http.HandlerFunc(h.handleStats))))
}

func (h *DashboardHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to compute dashboard stats")
		writeServiceError(w, err, "Failed to compute dashboard stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
