package service

import (
	"context"
	"fmt"
	"time"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/pkg/logger"
)

// SessionService manages questionnaire sessions
type SessionService struct {
	repo         domain.SessionRepository
	clientRepo   domain.ClientRepository
	responseRepo domain.ResponseRepository
	logger       logger.Logger
}

// NewSessionService creates a new session service
func NewSessionService(
	repo domain.SessionRepository,
	clientRepo domain.ClientRepository,
	responseRepo domain.ResponseRepository,
	logger logger.Logger,
) *SessionService {
	return &SessionService{
		repo:         repo,
		clientRepo:   clientRepo,
		responseRepo: responseRepo,
		logger:       logger,
	}
}

// CreateSession creates a session for a client together with its empty
// response row. The session id doubles as the public questionnaire token.
func (s *SessionService) CreateSession(ctx context.Context, clientID string) (*domain.Session, error) {
	if clientID == "" {
		return nil, domain.NewValidationError("client_id is required")
	}

	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ClientID: client.ID,
		Status:   domain.SessionStatusPending,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		s.logger.WithField("client_id", clientID).Error(fmt.Sprintf("Failed to create session: %v", err))
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if _, err := s.responseRepo.CreateEmpty(ctx, session.ID); err != nil {
		s.logger.WithField("session_id", session.ID).Error(fmt.Sprintf("Failed to create empty response: %v", err))
		return nil, fmt.Errorf("failed to create empty response: %w", err)
	}

	session.ClientEmail = client.Email
	session.ClientCompany = client.CompanyName
	return session, nil
}

func (s *SessionService) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		s.logger.WithField("session_id", id).Error(fmt.Sprintf("Failed to get session: %v", err))
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

func (s *SessionService) ListSessions(ctx context.Context, params domain.SessionListParams) ([]*domain.Session, int, error) {
	sessions, total, err := s.repo.List(ctx, params)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list sessions: %v", err))
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, total, nil
}

// MarkInProgress moves a pending session to in_progress and stamps the start
// time. Already started sessions are left as they are.
func (s *SessionService) MarkInProgress(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionStatusPending {
		return session, nil
	}

	now := time.Now().UTC()
	session.Status = domain.SessionStatusInProgress
	session.StartedAt = &now
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to mark session in progress: %w", err)
	}
	return session, nil
}

// MarkCompleted moves a session to the terminal completed state
func (s *SessionService) MarkCompleted(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted() {
		return session, nil
	}

	now := time.Now().UTC()
	session.Status = domain.SessionStatusCompleted
	session.CompletedAt = &now
	if session.StartedAt == nil {
		session.StartedAt = &now
	}
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to mark session completed: %w", err)
	}
	return session, nil
}

// UpdateStatus applies an operator-driven status change. Completed sessions
// are immutable outside of the showroom fields.
func (s *SessionService) UpdateStatus(ctx context.Context, id string, status domain.SessionStatus) (*domain.Session, error) {
	switch status {
	case domain.SessionStatusPending, domain.SessionStatusInProgress, domain.SessionStatusCompleted:
	default:
		return nil, domain.NewValidationError("unknown session status: " + string(status))
	}

	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted() && status != domain.SessionStatusCompleted {
		return nil, domain.ErrSessionCompleted
	}
	if session.Status == status {
		return session, nil
	}

	now := time.Now().UTC()
	session.Status = status
	switch status {
	case domain.SessionStatusInProgress:
		if session.StartedAt == nil {
			session.StartedAt = &now
		}
	case domain.SessionStatusCompleted:
		session.CompletedAt = &now
		if session.StartedAt == nil {
			session.StartedAt = &now
		}
	}
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session status: %w", err)
	}
	return session, nil
}

func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		s.logger.WithField("session_id", id).Error(fmt.Sprintf("Failed to delete session: %v", err))
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
