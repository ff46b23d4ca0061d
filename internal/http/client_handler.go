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

// ClientServiceInterface defines the methods required from a client service
type ClientServiceInterface interface {
	CreateClient(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	ListClients(ctx context.Context) ([]*domain.Client, error)
	UpdateClient(ctx context.Context, id string, req *domain.UpdateClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, id string) error
}

type ClientHandler struct {
	service     ClientServiceInterface
	userService domain.UserServiceInterface
	publicKey   paseto.V4AsymmetricPublicKey
	logger      logger.Logger
}

func NewClientHandler(service ClientServiceInterface, userService domain.UserServiceInterface, publicKey paseto.V4AsymmetricPublicKey, logger logger.Logger) *ClientHandler {
	return &ClientHandler{
		service:     service,
		userService: userService,
		publicKey:   publicKey,
		logger:      logger,
	}
}

func (h *ClientHandler) RegisterRoutes(mux *http.ServeMux) {
	authMiddleware := middleware.NewAuthMiddleware(h.publicKey)
	requireAuth := authMiddleware.RequireAuth(h.userService)
	requireApproved := middleware.RequireApproved(h.userService)
	protect := func(handler http.HandlerFunc) http.Handler {
		return requireAuth(requireApproved(handler))
	}

	mux.Handle("GET /api/clients", protect(h.handleList))
	mux.Handle("POST /api/clients", protect(h.handleCreate))
	mux.Handle("GET /api/clients/{id}", protect(h.handleGet))
	mux.Handle("PATCH /api/clients/{id}", protect(h.handleUpdate))
	mux.Handle("DELETE /api/clients/{id}", protect(h.handleDelete))
}

func (h *ClientHandler) handleList(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.ListClients(r.Context())
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list clients")
		writeServiceError(w, err, "Failed to list clients")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"clients": clients,
	})
}

func (h *ClientHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	client, err := h.service.CreateClient(r.Context(), &req)
	if err != nil {
		if !domain.IsValidationError(err) {
			h.logger.WithField("error", err.Error()).Error("Failed to create client")
		}
		writeServiceError(w, err, "Failed to create client")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"client": client,
	})
}

func (h *ClientHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	client, err := h.service.GetClient(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "Failed to get client")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"client": client,
	})
}

func (h *ClientHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	client, err := h.service.UpdateClient(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		if !domain.IsValidationError(err) && !domain.IsNotFound(err) {
			h.logger.WithField("error", err.Error()).Error("Failed to update client")
		}
		writeServiceError(w, err, "Failed to update client")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"client": client,
	})
}

func (h *ClientHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteClient(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err, "Failed to delete client")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "deleted",
	})
}
