package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/archetype-studio/archetype/internal/domain"
)

type outboxRepository struct {
	db *sql.DB
}

// NewOutboxRepository creates a new PostgreSQL email outbox repository
func NewOutboxRepository(db *sql.DB) domain.OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) Enqueue(ctx context.Context, email *domain.EmailOutbox) error {
	if email.ID == "" {
		email.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	email.Status = domain.OutboxStatusPending
	if email.NextAttemptAt.IsZero() {
		email.NextAttemptAt = now
	}
	email.CreatedAt = now
	email.UpdatedAt = now

	query := `
		INSERT INTO email_outbox (id, kind, recipient, payload, status, attempts, next_attempt_at, last_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, '', $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		email.ID,
		email.Kind,
		email.Recipient,
		email.Payload,
		email.Status,
		email.NextAttemptAt,
		email.CreatedAt,
		email.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue email: %w", err)
	}
	return nil
}

func (r *outboxRepository) ClaimPending(ctx context.Context, limit int, retryDelay time.Duration) ([]*domain.EmailOutbox, error) {
	now := time.Now().UTC()

	// FOR UPDATE SKIP LOCKED plus the next_attempt_at bump keeps concurrent
	// workers from draining the same rows
	query := `
		UPDATE email_outbox
		SET next_attempt_at = $1, attempts = attempts + 1, updated_at = $2
		WHERE id IN (
			SELECT id FROM email_outbox
			WHERE status = $3 AND next_attempt_at <= $2
			ORDER BY next_attempt_at ASC
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, kind, recipient, payload, status, attempts, next_attempt_at, last_error, created_at, updated_at
	`
	rows, err := r.db.QueryContext(ctx, query,
		now.Add(retryDelay),
		now,
		domain.OutboxStatusPending,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to claim pending emails: %w", err)
	}
	defer rows.Close()

	var emails []*domain.EmailOutbox
	for rows.Next() {
		email, err := scanOutbox(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outbox row: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outbox rows: %w", err)
	}
	return emails, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	query := `
		UPDATE email_outbox
		SET status = $2, last_error = '', updated_at = $3
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, domain.OutboxStatusSent, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark email sent: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrNotFound{Entity: "email_outbox", ID: id}
	}
	return nil
}

func (r *outboxRepository) MarkFailure(ctx context.Context, id string, attempts int, lastError string) error {
	status := domain.OutboxStatusPending
	if attempts >= domain.OutboxMaxAttempts {
		status = domain.OutboxStatusFailed
	}

	query := `
		UPDATE email_outbox
		SET status = $2, last_error = $3, updated_at = $4
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, status, lastError, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark email failure: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrNotFound{Entity: "email_outbox", ID: id}
	}
	return nil
}

func scanOutbox(row rowScanner) (*domain.EmailOutbox, error) {
	var email domain.EmailOutbox
	err := row.Scan(
		&email.ID,
		&email.Kind,
		&email.Recipient,
		&email.Payload,
		&email.Status,
		&email.Attempts,
		&email.NextAttemptAt,
		&email.LastError,
		&email.CreatedAt,
		&email.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &email, nil
}
