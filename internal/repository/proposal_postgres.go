package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/archetype-studio/archetype/internal/domain"
)

type proposalRepository struct {
	db *sql.DB
}

// NewProposalRepository creates a new PostgreSQL design proposal repository
func NewProposalRepository(db *sql.DB) domain.ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) Upsert(ctx context.Context, proposal *domain.DesignProposal) error {
	if proposal.ID == "" {
		proposal.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if proposal.CreatedAt.IsZero() {
		proposal.CreatedAt = now
	}
	proposal.UpdatedAt = now

	query := `
		INSERT INTO design_proposals (id, session_id, slot_number, title, image_url, html_code, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (session_id, slot_number)
		DO UPDATE SET title = EXCLUDED.title, image_url = EXCLUDED.image_url,
		              html_code = EXCLUDED.html_code, price = EXCLUDED.price,
		              updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		proposal.ID,
		proposal.SessionID,
		proposal.SlotNumber,
		proposal.Title,
		proposal.ImageURL,
		proposal.HTMLCode,
		proposal.Price,
		proposal.CreatedAt,
		proposal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert design proposal: %w", err)
	}
	return nil
}

func (r *proposalRepository) GetByID(ctx context.Context, id string) (*domain.DesignProposal, error) {
	query := `
		SELECT id, session_id, slot_number, title, image_url, html_code, price, created_at, updated_at
		FROM design_proposals
		WHERE id = $1
	`
	proposal, err := scanProposal(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotFound{Entity: "design_proposal", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get design proposal: %w", err)
	}
	return proposal, nil
}

func (r *proposalRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.DesignProposal, error) {
	query := `
		SELECT id, session_id, slot_number, title, image_url, html_code, price, created_at, updated_at
		FROM design_proposals
		WHERE session_id = $1
		ORDER BY slot_number ASC
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list design proposals: %w", err)
	}
	defer rows.Close()

	var proposals []*domain.DesignProposal
	for rows.Next() {
		proposal, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan design proposal: %w", err)
		}
		proposals = append(proposals, proposal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate design proposals: %w", err)
	}
	return proposals, nil
}

func (r *proposalRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM design_proposals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete design proposal: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrNotFound{Entity: "design_proposal", ID: id}
	}
	return nil
}

func scanProposal(row rowScanner) (*domain.DesignProposal, error) {
	var proposal domain.DesignProposal
	var imageURL, htmlCode sql.NullString
	err := row.Scan(
		&proposal.ID,
		&proposal.SessionID,
		&proposal.SlotNumber,
		&proposal.Title,
		&imageURL,
		&htmlCode,
		&proposal.Price,
		&proposal.CreatedAt,
		&proposal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	proposal.ImageURL = imageURL.String
	proposal.HTMLCode = htmlCode.String
	return &proposal, nil
}
