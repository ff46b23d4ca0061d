package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_session_repository.go -package mocks github.com/archetype-studio/archetype/internal/domain SessionRepository

// SessionStatus is the questionnaire lifecycle state
type SessionStatus string

const (
	SessionStatusPending    SessionStatus = "pending"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
)

// ShowroomStatus tracks the showroom flow for a completed session.
// The empty value means the showroom has not been sent yet.
type ShowroomStatus string

const (
	ShowroomStatusSent           ShowroomStatus = "sent"
	ShowroomStatusQuoteRequested ShowroomStatus = "quote_requested"
	ShowroomStatusSigned         ShowroomStatus = "signed"
)

// SessionListMaxLimit caps the page size for session listings
const SessionListMaxLimit = 100

// Session is one questionnaire run, shared with a client through its public token id
type Session struct {
	ID             string         `json:"id" db:"id"`
	ClientID       string         `json:"client_id" db:"client_id"`
	Status         SessionStatus  `json:"status" db:"status"`
	StartedAt      *time.Time     `json:"started_at,omitempty" db:"started_at"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty" db:"completed_at"`
	ShowroomStatus ShowroomStatus `json:"showroom_status,omitempty" db:"showroom_status"`
	ShowroomSentAt *time.Time     `json:"showroom_sent_at,omitempty" db:"showroom_sent_at"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`

	// Joined client fields for listings, not persisted on the session row
	ClientEmail   string `json:"client_email,omitempty" db:"-"`
	ClientCompany string `json:"client_company,omitempty" db:"-"`
}

// IsCompleted reports whether the session reached the terminal questionnaire state
func (s *Session) IsCompleted() bool {
	return s.Status == SessionStatusCompleted
}

// SessionListParams filters and paginates session listings
type SessionListParams struct {
	ClientID string
	Status   SessionStatus
	Limit    int
	Offset   int
}

// Normalize clamps pagination to sane bounds
func (p *SessionListParams) Normalize() {
	if p.Limit <= 0 || p.Limit > SessionListMaxLimit {
		p.Limit = SessionListMaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// SessionStatusCounts aggregates sessions by lifecycle state
type SessionStatusCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// ShowroomActionCounts aggregates showroom outcomes
type ShowroomActionCounts struct {
	Sent           int `json:"sent"`
	QuoteRequested int `json:"quote_requested"`
	Signed         int `json:"signed"`
}

// SessionRepository is the persistence interface for sessions
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context, params SessionListParams) ([]*Session, int, error)
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (*SessionStatusCounts, error)
	CountShowroomActions(ctx context.Context) (*ShowroomActionCounts, error)
}
