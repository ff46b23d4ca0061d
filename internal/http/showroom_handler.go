package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/internal/service"
	"github.com/archetype-studio/archetype/pkg/logger"
)

// ShowroomServiceInterface defines the public showroom operations
type ShowroomServiceInterface interface {
	Get(ctx context.Context, sessionID string) (*service.Showroom, error)
	SubmitSelection(ctx context.Context, req *service.SubmitSelectionRequest) (*domain.ShowroomSelection, error)
}

// ShowroomHandler serves the public showroom page: bootstrap, selection and
// the chat widget. The session id acts as the access token.
type ShowroomHandler struct {
	service     ShowroomServiceInterface
	chatService domain.ChatService
	logger      logger.Logger
}

func NewShowroomHandler(service ShowroomServiceInterface, chatService domain.ChatService, logger logger.Logger) *ShowroomHandler {
	return &ShowroomHandler{
		service:     service,
		chatService: chatService,
		logger:      logger,
	}
}

func (h *ShowroomHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/showroom/{sessionID}", h.handleGet)
	mux.HandleFunc("POST /api/showroom/{sessionID}/select", h.handleSelect)
	mux.HandleFunc("POST /api/showroom/chat", h.handleChat)
}

func (h *ShowroomHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	showroom, err := h.service.Get(r.Context(), r.PathValue("sessionID"))
	if err != nil {
		writeServiceError(w, err, "Failed to load showroom")
		return
	}

	writeJSON(w, http.StatusOK, showroom)
}

func (h *ShowroomHandler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.SessionID = r.PathValue("sessionID")

	selection, err := h.service.SubmitSelection(r.Context(), &req)
	if err != nil {
		if !domain.IsValidationError(err) && !domain.IsNotFound(err) {
			h.logger.WithField("session_id", req.SessionID).WithField("error", err.Error()).Error("Failed to submit selection")
		}
		writeServiceError(w, err, "Failed to submit selection")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"selection": selection,
	})
}

func (h *ShowroomHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	reply, err := h.chatService.Reply(r.Context(), &req)
	if err != nil {
		if !domain.IsValidationError(err) {
			h.logger.WithField("session_id", req.SessionID).WithField("error", err.Error()).Error("Chat reply failed")
		}
		writeServiceError(w, err, "Failed to generate reply")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"reply": reply,
	})
}
