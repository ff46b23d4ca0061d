package service

import (
	"context"
	"fmt"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/internal/wizard"
	"github.com/archetype-studio/archetype/pkg/logger"
)

// SaveResponseRequest is a wizard snapshot flush from the public questionnaire
type SaveResponseRequest struct {
	wizard.Snapshot
	BusinessName string `json:"businessName,omitempty"`
	WebsiteURL   string `json:"websiteUrl,omitempty"`
	Revision     int    `json:"revision"`
}

// ResponseService persists questionnaire answers for public sessions
type ResponseService struct {
	repo        domain.ResponseRepository
	sessionRepo domain.SessionRepository
	sessions    *SessionService
	logger      logger.Logger
}

// NewResponseService creates a new response service
func NewResponseService(
	repo domain.ResponseRepository,
	sessionRepo domain.SessionRepository,
	sessions *SessionService,
	logger logger.Logger,
) *ResponseService {
	return &ResponseService{
		repo:        repo,
		sessionRepo: sessionRepo,
		sessions:    sessions,
		logger:      logger,
	}
}

func (s *ResponseService) GetBySessionID(ctx context.Context, sessionID string) (*domain.Response, error) {
	if sessionID == "" {
		return nil, domain.NewValidationError("session_id is required")
	}
	response, err := s.repo.GetBySessionID(ctx, sessionID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		s.logger.WithField("session_id", sessionID).Error(fmt.Sprintf("Failed to get response: %v", err))
		return nil, fmt.Errorf("failed to get response: %w", err)
	}
	return response, nil
}

// Save applies a wizard snapshot to the stored response. Answers are
// validated against the catalog and the write goes through the CAS revision
// check, so a stale autosave returns ErrStaleRevision instead of clobbering
// newer state. Session status follows the snapshot: leaving the intro marks
// the session in_progress, reaching the terminal step completes it.
func (s *ResponseService) Save(ctx context.Context, req *SaveResponseRequest) (*domain.Response, error) {
	if req.SessionID == "" {
		return nil, domain.NewValidationError("sessionId is required")
	}
	if req.Revision <= 0 {
		return nil, domain.NewValidationError("revision must be positive")
	}

	session, err := s.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted() && !req.Completed {
		return nil, domain.ErrSessionCompleted
	}

	response, err := s.repo.GetBySessionID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	response.BusinessName = req.BusinessName
	response.WebsiteURL = req.WebsiteURL
	response.CurrentStep = req.Step
	response.Revision = req.Revision
	response.CustomColors = append(domain.StringList{}, req.CustomColors...)
	response.MoodboardLikes = append(domain.StringList{}, req.MoodboardLikes...)
	response.Features = append(domain.StringList{}, req.Features...)

	// Reset the six fixed answers, then apply the snapshot's set
	for _, id := range []string{
		domain.QuestionAmbiance, domain.QuestionValeurs, domain.QuestionStructure,
		domain.QuestionTypo, domain.QuestionRatio, domain.QuestionPalette,
	} {
		_ = response.SetAnswer(id, "")
	}
	state := wizard.New(req.SessionID)
	for id, value := range req.Answers {
		if err := state.SetAnswer(id, value); err != nil {
			return nil, err
		}
		if err := response.SetAnswer(id, value); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Upsert(ctx, response); err != nil {
		if err == domain.ErrStaleRevision || domain.IsNotFound(err) {
			return nil, err
		}
		s.logger.WithField("session_id", req.SessionID).Error(fmt.Sprintf("Failed to save response: %v", err))
		return nil, fmt.Errorf("failed to save response: %w", err)
	}

	if req.Completed || req.Step >= wizard.StepSummary {
		if _, err := s.sessions.MarkCompleted(ctx, req.SessionID); err != nil {
			s.logger.WithField("session_id", req.SessionID).Error(fmt.Sprintf("Failed to complete session: %v", err))
		}
	} else if req.Step > wizard.StepIntro {
		if _, err := s.sessions.MarkInProgress(ctx, req.SessionID); err != nil {
			s.logger.WithField("session_id", req.SessionID).Error(fmt.Sprintf("Failed to mark session in progress: %v", err))
		}
	}

	return response, nil
}
