package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/pkg/logger"
	"github.com/archetype-studio/archetype/pkg/storage"
)

// SaveProposalRequest is the payload for creating or replacing a slot proposal
type SaveProposalRequest struct {
	SessionID   string  `json:"sessionId"`
	SlotNumber  int     `json:"slotNumber"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	HTMLCode    string  `json:"htmlCode,omitempty"`
	ImageBase64 string  `json:"imageBase64,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// ProposalService manages the design proposals shown in a showroom
type ProposalService struct {
	repo        domain.ProposalRepository
	sessionRepo domain.SessionRepository
	store       storage.ObjectStore
	logger      logger.Logger
}

// NewProposalService creates a new proposal service. store may be nil, in
// which case inline image uploads are rejected.
func NewProposalService(repo domain.ProposalRepository, sessionRepo domain.SessionRepository, store storage.ObjectStore, logger logger.Logger) *ProposalService {
	return &ProposalService{
		repo:        repo,
		sessionRepo: sessionRepo,
		store:       store,
		logger:      logger,
	}
}

// Save upserts the proposal occupying a slot. An inline base64 image is
// uploaded to object storage and replaces any previous image URL.
func (s *ProposalService) Save(ctx context.Context, req *SaveProposalRequest) (*domain.DesignProposal, error) {
	if _, err := s.sessionRepo.GetByID(ctx, req.SessionID); err != nil {
		return nil, err
	}

	proposal := &domain.DesignProposal{
		SessionID:  req.SessionID,
		SlotNumber: req.SlotNumber,
		Title:      req.Title,
		Price:      req.Price,
		HTMLCode:   req.HTMLCode,
		ImageURL:   req.ImageURL,
	}

	if req.ImageBase64 != "" {
		if req.HTMLCode != "" {
			return nil, domain.NewValidationError("imageBase64 and htmlCode are mutually exclusive")
		}
		url, err := s.uploadImage(ctx, req.SessionID, req.SlotNumber, req.ImageBase64)
		if err != nil {
			return nil, err
		}
		proposal.ImageURL = url
	}

	if err := proposal.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, proposal); err != nil {
		s.logger.WithField("session_id", req.SessionID).Error(fmt.Sprintf("Failed to save proposal: %v", err))
		return nil, fmt.Errorf("failed to save proposal: %w", err)
	}
	return proposal, nil
}

// List returns the proposals of a session ordered by slot
func (s *ProposalService) List(ctx context.Context, sessionID string) ([]*domain.DesignProposal, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

// Delete removes a proposal
func (s *ProposalService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ProposalService) uploadImage(ctx context.Context, sessionID string, slot int, encoded string) (string, error) {
	if s.store == nil {
		return "", domain.NewValidationError("image uploads are not configured")
	}
	// Accept both raw base64 and data URLs.
	if idx := strings.Index(encoded, ","); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", domain.NewValidationError("imageBase64 is not valid base64")
	}

	key := fmt.Sprintf("proposals/%s/slot-%d.png", sessionID, slot)
	url, err := s.store.Put(ctx, key, "image/png", data)
	if err != nil {
		return "", fmt.Errorf("failed to upload proposal image: %w", err)
	}
	return url, nil
}
