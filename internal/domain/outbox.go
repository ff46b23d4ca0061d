package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_outbox_repository.go -package mocks github.com/archetype-studio/archetype/internal/domain OutboxRepository

// OutboxKind identifies which notification email a pending row represents
type OutboxKind string

const (
	OutboxKindShowroomInvite        OutboxKind = "showroom_invite"
	OutboxKindInterestNotification  OutboxKind = "interest_notification"
	OutboxKindSelectionConfirmation OutboxKind = "selection_confirmation"
)

// OutboxStatus is the delivery state of an outbox row
type OutboxStatus string

const (
	OutboxStatusPending OutboxStatus = "pending"
	OutboxStatusSent    OutboxStatus = "sent"
	OutboxStatusFailed  OutboxStatus = "failed"
)

// OutboxMaxAttempts bounds delivery retries before a row is marked failed
const OutboxMaxAttempts = 5

// EmailOutbox is a queued notification email. Rows are drained by a
// background worker so notification delivery is at-least-once instead of
// fire-and-forget.
type EmailOutbox struct {
	ID            string       `json:"id" db:"id"`
	Kind          OutboxKind   `json:"kind" db:"kind"`
	Recipient     string       `json:"recipient" db:"recipient"`
	Payload       string       `json:"payload" db:"payload"` // JSON, kind-specific
	Status        OutboxStatus `json:"status" db:"status"`
	Attempts      int          `json:"attempts" db:"attempts"`
	NextAttemptAt time.Time    `json:"next_attempt_at" db:"next_attempt_at"`
	LastError     string       `json:"last_error,omitempty" db:"last_error"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}

// OutboxRepository is the persistence interface for the email outbox
type OutboxRepository interface {
	Enqueue(ctx context.Context, email *EmailOutbox) error

	// ClaimPending returns up to limit pending rows due for delivery,
	// bumping their next attempt time so concurrent workers skip them
	ClaimPending(ctx context.Context, limit int, retryDelay time.Duration) ([]*EmailOutbox, error)

	MarkSent(ctx context.Context, id string) error

	// MarkFailure records a delivery error; rows that exhausted their
	// attempts move to the failed status
	MarkFailure(ctx context.Context, id string, attempts int, lastError string) error
}
