package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/pkg/logger"
)

// maxVoiceRequestBytes bounds the raw request body: the audio cap plus
// base64 overhead (4/3) plus room for the JSON envelope
const maxVoiceRequestBytes = domain.MaxVoicePayloadBytes/3*4 + 64*1024

// VoiceHandler serves the public voice note processing endpoint
type VoiceHandler struct {
	service domain.VoiceService
	logger  logger.Logger
}

func NewVoiceHandler(service domain.VoiceService, logger logger.Logger) *VoiceHandler {
	return &VoiceHandler{
		service: service,
		logger:  logger,
	}
}

func (h *VoiceHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/voice/process", h.handleProcess)
}

func (h *VoiceHandler) handleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxVoiceRequestBytes)

	var req domain.ProcessVoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeServiceError(w, domain.ErrPayloadTooLarge, "Failed to process voice note")
			return
		}
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Process(r.Context(), &req)
	if err != nil {
		if !domain.IsValidationError(err) && !domain.IsNotFound(err) {
			h.logger.WithField("session_id", req.SessionID).WithField("error", err.Error()).Error("Failed to process voice note")
		}
		writeServiceError(w, err, "Failed to process voice note")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
