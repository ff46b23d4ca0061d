package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/archetype-studio/archetype/internal/domain"
)

type responseRepository struct {
	db *sql.DB
}

// NewResponseRepository creates a new PostgreSQL response repository
func NewResponseRepository(db *sql.DB) domain.ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) CreateEmpty(ctx context.Context, sessionID string) (*domain.Response, error) {
	now := time.Now().UTC()
	response := &domain.Response{
		ID:             uuid.New().String(),
		SessionID:      sessionID,
		CustomColors:   domain.StringList{},
		MoodboardLikes: domain.StringList{},
		Features:       domain.StringList{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	query := `
		INSERT INTO responses (id, session_id, custom_colors, moodboard_likes, features, current_step, revision, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, 0, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		response.ID,
		response.SessionID,
		response.CustomColors,
		response.MoodboardLikes,
		response.Features,
		response.CreatedAt,
		response.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create response: %w", err)
	}
	return response, nil
}

func (r *responseRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.Response, error) {
	query := `
		SELECT id, session_id, business_name, website_url,
		       ambiance, valeurs, structure, typo, ratio, palette,
		       custom_colors, moodboard_likes, features,
		       voice_transcription, voice_analysis,
		       current_step, revision, created_at, updated_at
		FROM responses
		WHERE session_id = $1
	`
	response, err := scanResponse(r.db.QueryRowContext(ctx, query, sessionID))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotFound{Entity: "response", ID: sessionID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get response: %w", err)
	}
	return response, nil
}

func (r *responseRepository) Upsert(ctx context.Context, response *domain.Response) error {
	response.UpdatedAt = time.Now().UTC()

	// The WHERE clause on the stored revision makes the write a compare and
	// swap: a stale autosave matches zero rows and is rejected.
	query := `
		UPDATE responses
		SET business_name = $2, website_url = $3,
		    ambiance = $4, valeurs = $5, structure = $6, typo = $7, ratio = $8, palette = $9,
		    custom_colors = $10, moodboard_likes = $11, features = $12,
		    current_step = $13, revision = $14, updated_at = $15
		WHERE session_id = $1 AND revision < $14
	`
	result, err := r.db.ExecContext(ctx, query,
		response.SessionID,
		response.BusinessName,
		response.WebsiteURL,
		response.Ambiance,
		response.Valeurs,
		response.Structure,
		response.Typo,
		response.Ratio,
		response.Palette,
		response.CustomColors,
		response.MoodboardLikes,
		response.Features,
		response.CurrentStep,
		response.Revision,
		response.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert response: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Either the row is missing or the stored revision is newer
		var exists bool
		checkErr := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM responses WHERE session_id = $1)`, response.SessionID).Scan(&exists)
		if checkErr != nil {
			return fmt.Errorf("failed to check response existence: %w", checkErr)
		}
		if !exists {
			return &domain.ErrNotFound{Entity: "response", ID: response.SessionID}
		}
		return domain.ErrStaleRevision
	}
	return nil
}

func (r *responseRepository) SetVoiceData(ctx context.Context, sessionID, transcription, analysis string) error {
	query := `
		UPDATE responses
		SET voice_transcription = $2, voice_analysis = $3, updated_at = $4
		WHERE session_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, sessionID, transcription, analysis, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set voice data: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrNotFound{Entity: "response", ID: sessionID}
	}
	return nil
}

func (r *responseRepository) CountCompleted(ctx context.Context) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM responses r
		JOIN sessions s ON s.id = r.session_id
		WHERE s.status = $1
	`
	err := r.db.QueryRowContext(ctx, query, domain.SessionStatusCompleted).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed responses: %w", err)
	}
	return count, nil
}

func scanResponse(row rowScanner) (*domain.Response, error) {
	var response domain.Response
	var businessName, websiteURL sql.NullString
	var ambiance, valeurs, structure, typo, ratio, palette sql.NullString
	var voiceTranscription, voiceAnalysis sql.NullString
	err := row.Scan(
		&response.ID,
		&response.SessionID,
		&businessName,
		&websiteURL,
		&ambiance,
		&valeurs,
		&structure,
		&typo,
		&ratio,
		&palette,
		&response.CustomColors,
		&response.MoodboardLikes,
		&response.Features,
		&voiceTranscription,
		&voiceAnalysis,
		&response.CurrentStep,
		&response.Revision,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	response.BusinessName = businessName.String
	response.WebsiteURL = websiteURL.String
	response.Ambiance = ambiance.String
	response.Valeurs = valeurs.String
	response.Structure = structure.String
	response.Typo = typo.String
	response.Ratio = ratio.String
	response.Palette = palette.String
	response.VoiceTranscription = voiceTranscription.String
	response.VoiceAnalysis = voiceAnalysis.String
	return &response, nil
}
