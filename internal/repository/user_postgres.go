package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/archetype-studio/archetype/internal/domain"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, email, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `
		SELECT id, email, name, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	query := `
		SELECT id, email, name, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) CreateSession(ctx context.Context, session *domain.UserSession) error {
	query := `
		INSERT INTO user_sessions (id, user_id, expires_at, created_at, magic_code, magic_code_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.ExpiresAt,
		session.CreatedAt,
		session.MagicCode,
		session.MagicCodeExpires,
	)
	if err != nil {
		return fmt.Errorf("failed to create user session: %w", err)
	}
	return nil
}

func (r *userRepository) GetSessionByID(ctx context.Context, id string) (*domain.UserSession, error) {
	var session domain.UserSession
	query := `
		SELECT id, user_id, expires_at, created_at, magic_code, magic_code_expires_at
		FROM user_sessions
		WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
		&session.MagicCode,
		&session.MagicCodeExpires,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotFound{Entity: "user_session", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user session: %w", err)
	}
	return &session, nil
}

func (r *userRepository) GetSessionsByUserID(ctx context.Context, userID string) ([]*domain.UserSession, error) {
	query := `
		SELECT id, user_id, expires_at, created_at, magic_code, magic_code_expires_at
		FROM user_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.UserSession
	for rows.Next() {
		var session domain.UserSession
		if err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.ExpiresAt,
			&session.CreatedAt,
			&session.MagicCode,
			&session.MagicCodeExpires,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user session: %w", err)
		}
		sessions = append(sessions, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user sessions: %w", err)
	}
	return sessions, nil
}

func (r *userRepository) UpdateSession(ctx context.Context, session *domain.UserSession) error {
	query := `
		UPDATE user_sessions
		SET expires_at = $2, magic_code = $3, magic_code_expires_at = $4
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.ExpiresAt,
		session.MagicCode,
		session.MagicCodeExpires,
	)
	if err != nil {
		return fmt.Errorf("failed to update user session: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrNotFound{Entity: "user_session", ID: session.ID}
	}
	return nil
}

func (r *userRepository) DeleteSession(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user session: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrNotFound{Entity: "user_session", ID: id}
	}
	return nil
}

func (r *userRepository) CreateProfile(ctx context.Context, profile *domain.UserProfile) error {
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	if profile.Status == "" {
		profile.Status = domain.ProfileStatusPending
	}

	query := `
		INSERT INTO user_profiles (user_id, email, status, approved_at, approved_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.UserID,
		profile.Email,
		profile.Status,
		profile.ApprovedAt,
		profile.ApprovedBy,
		profile.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user profile: %w", err)
	}
	return nil
}

func (r *userRepository) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := scanProfile(r.db.QueryRowContext(ctx, `
		SELECT user_id, email, status, approved_at, approved_by, created_at
		FROM user_profiles
		WHERE user_id = $1
	`, userID))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotFound{Entity: "user_profile", ID: userID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return profile, nil
}

func (r *userRepository) ListProfiles(ctx context.Context) ([]*domain.UserProfile, error) {
	query := `
		SELECT user_id, email, status, approved_at, approved_by, created_at
		FROM user_profiles
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list user profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.UserProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user profiles: %w", err)
	}
	return profiles, nil
}

func (r *userRepository) UpdateProfileStatus(ctx context.Context, userID string, status domain.ProfileStatus, approvedBy string) (*domain.UserProfile, error) {
	var approvedAt interface{}
	if status == domain.ProfileStatusApproved {
		approvedAt = time.Now().UTC()
	}

	query := `
		UPDATE user_profiles
		SET status = $2, approved_at = $3, approved_by = $4
		WHERE user_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, userID, status, approvedAt, approvedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to update user profile status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, &domain.ErrNotFound{Entity: "user_profile", ID: userID}
	}
	return r.GetProfile(ctx, userID)
}

func scanProfile(row rowScanner) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	var approvedBy sql.NullString
	err := row.Scan(
		&profile.UserID,
		&profile.Email,
		&profile.Status,
		&profile.ApprovedAt,
		&approvedBy,
		&profile.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	profile.ApprovedBy = approvedBy.String
	return &profile, nil
}
