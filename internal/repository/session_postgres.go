package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/archetype-studio/archetype/internal/domain"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new PostgreSQL session repository
func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.Status == "" {
		session.Status = domain.SessionStatusPending
	}
	session.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO sessions (id, client_id, status, started_at, completed_at, showroom_status, showroom_sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.ClientID,
		session.Status,
		session.StartedAt,
		session.CompletedAt,
		nullableShowroomStatus(session.ShowroomStatus),
		session.ShowroomSentAt,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `
		SELECT s.id, s.client_id, s.status, s.started_at, s.completed_at, s.showroom_status, s.showroom_sent_at, s.created_at,
		       c.email, c.company_name
		FROM sessions s
		JOIN clients c ON c.id = s.client_id
		WHERE s.id = $1
	`
	session, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotFound{Entity: "session", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

func (r *sessionRepository) List(ctx context.Context, params domain.SessionListParams) ([]*domain.Session, int, error) {
	params.Normalize()

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countQuery := psql.Select("COUNT(*)").From("sessions s")
	dataQuery := psql.Select(
		"s.id", "s.client_id", "s.status", "s.started_at", "s.completed_at",
		"s.showroom_status", "s.showroom_sent_at", "s.created_at",
		"c.email", "c.company_name",
	).
		From("sessions s").
		Join("clients c ON c.id = s.client_id")

	if params.ClientID != "" {
		countQuery = countQuery.Where(sq.Eq{"s.client_id": params.ClientID})
		dataQuery = dataQuery.Where(sq.Eq{"s.client_id": params.ClientID})
	}
	if params.Status != "" {
		countQuery = countQuery.Where(sq.Eq{"s.status": string(params.Status)})
		dataQuery = dataQuery.Where(sq.Eq{"s.status": string(params.Status)})
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	dataSQL, dataArgs, err := dataQuery.
		OrderBy("s.created_at DESC").
		Limit(uint64(params.Limit)).
		Offset(uint64(params.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, dataSQL, dataArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, total, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *domain.Session) error {
	query := `
		UPDATE sessions
		SET status = $2, started_at = $3, completed_at = $4, showroom_status = $5, showroom_sent_at = $6
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.Status,
		session.StartedAt,
		session.CompletedAt,
		nullableShowroomStatus(session.ShowroomStatus),
		session.ShowroomSentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrNotFound{Entity: "session", ID: session.ID}
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrNotFound{Entity: "session", ID: id}
	}
	return nil
}

func (r *sessionRepository) CountByStatus(ctx context.Context) (*domain.SessionStatusCounts, error) {
	query := `SELECT status, COUNT(*) FROM sessions GROUP BY status`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions by status: %w", err)
	}
	defer rows.Close()

	counts := &domain.SessionStatusCounts{}
	for rows.Next() {
		var status domain.SessionStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		switch status {
		case domain.SessionStatusPending:
			counts.Pending = count
		case domain.SessionStatusInProgress:
			counts.InProgress = count
		case domain.SessionStatusCompleted:
			counts.Completed = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate status counts: %w", err)
	}
	return counts, nil
}

func (r *sessionRepository) CountShowroomActions(ctx context.Context) (*domain.ShowroomActionCounts, error) {
	query := `SELECT showroom_status, COUNT(*) FROM sessions WHERE showroom_status IS NOT NULL GROUP BY showroom_status`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count showroom actions: %w", err)
	}
	defer rows.Close()

	counts := &domain.ShowroomActionCounts{}
	for rows.Next() {
		var status domain.ShowroomStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan showroom count: %w", err)
		}
		switch status {
		case domain.ShowroomStatusSent:
			counts.Sent = count
		case domain.ShowroomStatusQuoteRequested:
			counts.QuoteRequested = count
		case domain.ShowroomStatusSigned:
			counts.Signed = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate showroom counts: %w", err)
	}
	return counts, nil
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var session domain.Session
	var showroomStatus sql.NullString
	err := row.Scan(
		&session.ID,
		&session.ClientID,
		&session.Status,
		&session.StartedAt,
		&session.CompletedAt,
		&showroomStatus,
		&session.ShowroomSentAt,
		&session.CreatedAt,
		&session.ClientEmail,
		&session.ClientCompany,
	)
	if err != nil {
		return nil, err
	}
	if showroomStatus.Valid {
		session.ShowroomStatus = domain.ShowroomStatus(showroomStatus.String)
	}
	return &session, nil
}

// nullableShowroomStatus maps the zero value to NULL so "not sent" is
// represented uniformly in the database
func nullableShowroomStatus(s domain.ShowroomStatus) interface{} {
	if s == "" {
		return nil
	}
	return string(s)
}
