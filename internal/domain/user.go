package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_user_repository.go -package mocks github.com/archetype-studio/archetype/internal/domain UserRepository
//go:generate mockgen -destination mocks/mock_user_service.go -package mocks github.com/archetype-studio/archetype/internal/domain UserServiceInterface

// ProfileStatus gates operator access to the studio
type ProfileStatus string

const (
	ProfileStatusPending  ProfileStatus = "pending"
	ProfileStatusApproved ProfileStatus = "approved"
	ProfileStatusRejected ProfileStatus = "rejected"
)

// User is an operator account (freelancer/agency)
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name,omitempty" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UserProfile carries the approval gate for an operator
type UserProfile struct {
	UserID     string        `json:"user_id" db:"user_id"`
	Email      string        `json:"email" db:"email"`
	Status     ProfileStatus `json:"status" db:"status"`
	ApprovedAt *time.Time    `json:"approved_at,omitempty" db:"approved_at"`
	ApprovedBy string        `json:"approved_by,omitempty" db:"approved_by"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
}

// UserSession is an operator sign-in session backing a paseto token
type UserSession struct {
	ID               string     `json:"id" db:"id"`
	UserID           string     `json:"user_id" db:"user_id"`
	ExpiresAt        time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	MagicCode        *string    `json:"magic_code,omitempty" db:"magic_code"`
	MagicCodeExpires *time.Time `json:"magic_code_expires,omitempty" db:"magic_code_expires_at"`
}

type SignInInput struct {
	Email string `json:"email"`
}

type VerifyCodeInput struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type AuthResponse struct {
	Token     string      `json:"token"`
	User      User        `json:"user"`
	Profile   UserProfile `json:"profile"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// UpdateProfileStatusRequest is the admin payload for approving or rejecting
// an operator signup
type UpdateProfileStatusRequest struct {
	UserID string        `json:"user_id"`
	Status ProfileStatus `json:"status"`
}

// Validate validates the status update payload
func (r *UpdateProfileStatusRequest) Validate() error {
	if r.UserID == "" {
		return NewValidationError("user_id is required")
	}
	if r.Status != ProfileStatusApproved && r.Status != ProfileStatusRejected {
		return NewValidationError("status must be 'approved' or 'rejected'")
	}
	return nil
}

// UserServiceInterface defines the interface for operator auth operations
type UserServiceInterface interface {
	SignIn(ctx context.Context, input SignInInput) (string, error)
	VerifyCode(ctx context.Context, input VerifyCodeInput) (*AuthResponse, error)
	VerifyUserSession(ctx context.Context, userID string, sessionID string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
	ListProfiles(ctx context.Context) ([]*UserProfile, error)
	UpdateProfileStatus(ctx context.Context, adminEmail string, req *UpdateProfileStatusRequest) (*UserProfile, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)

	CreateSession(ctx context.Context, session *UserSession) error
	GetSessionByID(ctx context.Context, id string) (*UserSession, error)
	GetSessionsByUserID(ctx context.Context, userID string) ([]*UserSession, error)
	UpdateSession(ctx context.Context, session *UserSession) error
	DeleteSession(ctx context.Context, id string) error

	CreateProfile(ctx context.Context, profile *UserProfile) error
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
	ListProfiles(ctx context.Context) ([]*UserProfile, error)
	UpdateProfileStatus(ctx context.Context, userID string, status ProfileStatus, approvedBy string) (*UserProfile, error)
}
