package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/archetype-studio/archetype/internal/domain"
)

type promptRepository struct {
	db *sql.DB
}

// NewGeneratedPromptRepository creates a new PostgreSQL generated prompt repository
func NewGeneratedPromptRepository(db *sql.DB) domain.GeneratedPromptRepository {
	return &promptRepository{db: db}
}

func (r *promptRepository) Upsert(ctx context.Context, prompt *domain.GeneratedPrompt) error {
	if prompt.ID == "" {
		prompt.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if prompt.CreatedAt.IsZero() {
		prompt.CreatedAt = now
	}
	prompt.UpdatedAt = now

	query := `
		INSERT INTO generated_prompts (id, session_id, prompt_type, prompt_content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id, prompt_type)
		DO UPDATE SET prompt_content = EXCLUDED.prompt_content, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		prompt.ID,
		prompt.SessionID,
		prompt.PromptType,
		prompt.PromptContent,
		prompt.CreatedAt,
		prompt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert generated prompt: %w", err)
	}
	return nil
}

func (r *promptRepository) Get(ctx context.Context, sessionID string, promptType domain.PromptType) (*domain.GeneratedPrompt, error) {
	var prompt domain.GeneratedPrompt
	query := `
		SELECT id, session_id, prompt_type, prompt_content, created_at, updated_at
		FROM generated_prompts
		WHERE session_id = $1 AND prompt_type = $2
	`
	err := r.db.QueryRowContext(ctx, query, sessionID, promptType).Scan(
		&prompt.ID,
		&prompt.SessionID,
		&prompt.PromptType,
		&prompt.PromptContent,
		&prompt.CreatedAt,
		&prompt.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotFound{Entity: "generated_prompt", ID: sessionID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get generated prompt: %w", err)
	}
	return &prompt, nil
}
