package domain

import (
	"context"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_client_repository.go -package mocks github.com/archetype-studio/archetype/internal/domain ClientRepository

// Client is a studio customer the operator sends questionnaires to
type Client struct {
	ID          string    `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	CompanyName string    `json:"company_name,omitempty" db:"company_name"`
	ContactName string    `json:"contact_name,omitempty" db:"contact_name"`
	WebsiteURL  string    `json:"website_url,omitempty" db:"website_url"`
	PreviewURL  string    `json:"preview_url,omitempty" db:"preview_url"`
	Notes       string    `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateClientRequest is the payload for creating a client
type CreateClientRequest struct {
	Email       string `json:"email"`
	CompanyName string `json:"company_name,omitempty"`
	ContactName string `json:"contact_name,omitempty"`
	WebsiteURL  string `json:"website_url,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Validate validates the create payload
func (r *CreateClientRequest) Validate() error {
	if r.Email == "" {
		return NewValidationError("email is required")
	}
	if !govalidator.IsEmail(r.Email) {
		return NewValidationError("email is invalid")
	}
	if r.WebsiteURL != "" && !govalidator.IsURL(r.WebsiteURL) {
		return NewValidationError("website_url is invalid")
	}
	return nil
}

// UpdateClientRequest is the payload for patching a client. Nil fields are
// left untouched.
type UpdateClientRequest struct {
	Email       *string `json:"email,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	ContactName *string `json:"contact_name,omitempty"`
	WebsiteURL  *string `json:"website_url,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// Validate validates the patch payload
func (r *UpdateClientRequest) Validate() error {
	if r.Email != nil && !govalidator.IsEmail(*r.Email) {
		return NewValidationError("email is invalid")
	}
	if r.WebsiteURL != nil && *r.WebsiteURL != "" && !govalidator.IsURL(*r.WebsiteURL) {
		return NewValidationError("website_url is invalid")
	}
	return nil
}

// ClientRepository is the persistence interface for clients
type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	GetByEmail(ctx context.Context, email string) (*Client, error)
	List(ctx context.Context) ([]*Client, error)
	Update(ctx context.Context, client *Client) error
	// Delete removes the client; session rows cascade at the schema level
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
