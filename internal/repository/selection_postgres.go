package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/archetype-studio/archetype/internal/domain"
)

type selectionRepository struct {
	db *sql.DB
}

// NewSelectionRepository creates a new PostgreSQL showroom selection repository
func NewSelectionRepository(db *sql.DB) domain.SelectionRepository {
	return &selectionRepository{db: db}
}

func (r *selectionRepository) Create(ctx context.Context, selection *domain.ShowroomSelection) error {
	if selection.ID == "" {
		selection.ID = uuid.New().String()
	}
	selection.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO showroom_selections (id, session_id, selected_proposal_id, action_type, discount_applied, final_price, client_email, client_phone, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		selection.ID,
		selection.SessionID,
		selection.ProposalID,
		selection.ActionType,
		selection.DiscountApplied,
		selection.FinalPrice,
		selection.ClientEmail,
		selection.ClientPhone,
		selection.Message,
		selection.CreatedAt,
	)
	if err != nil {
		// unique_violation on session_id means the client already committed
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrSelectionExists
		}
		return fmt.Errorf("failed to create showroom selection: %w", err)
	}
	return nil
}

func (r *selectionRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.ShowroomSelection, error) {
	var selection domain.ShowroomSelection
	var clientPhone, message sql.NullString
	query := `
		SELECT id, session_id, selected_proposal_id, action_type, discount_applied, final_price, client_email, client_phone, message, created_at
		FROM showroom_selections
		WHERE session_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&selection.ID,
		&selection.SessionID,
		&selection.ProposalID,
		&selection.ActionType,
		&selection.DiscountApplied,
		&selection.FinalPrice,
		&selection.ClientEmail,
		&clientPhone,
		&message,
		&selection.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotFound{Entity: "showroom_selection", ID: sessionID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get showroom selection: %w", err)
	}
	selection.ClientPhone = clientPhone.String
	selection.Message = message.String
	return &selection, nil
}

func (r *selectionRepository) CountByAction(ctx context.Context) (map[domain.ActionType]int, error) {
	query := `SELECT action_type, COUNT(*) FROM showroom_selections GROUP BY action_type`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count selections: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.ActionType]int)
	for rows.Next() {
		var action domain.ActionType
		var count int
		if err := rows.Scan(&action, &count); err != nil {
			return nil, fmt.Errorf("failed to scan selection count: %w", err)
		}
		counts[action] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate selection counts: %w", err)
	}
	return counts, nil
}
