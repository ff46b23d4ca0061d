package domain

import (
	"context"
	"math"
	"time"
)

//go:generate mockgen -destination mocks/mock_proposal_repository.go -package mocks github.com/archetype-studio/archetype/internal/domain ProposalRepository
//go:generate mockgen -destination mocks/mock_selection_repository.go -package mocks github.com/archetype-studio/archetype/internal/domain SelectionRepository

// ProposalSlotMin and ProposalSlotMax bound the proposal slots per session
const (
	ProposalSlotMin = 1
	ProposalSlotMax = 3
)

// SignedDiscountRate is the discount applied when a client signs directly
// from the showroom instead of requesting a quote.
const SignedDiscountRate = 0.15

// ActionType is the commit action a client takes in the showroom
type ActionType string

const (
	ActionQuoteRequest ActionType = "quote_request"
	ActionSigned       ActionType = "signed"
)

// Valid reports whether the action type is known
func (a ActionType) Valid() bool {
	return a == ActionQuoteRequest || a == ActionSigned
}

// DesignProposal is one of up to three design options prepared for a session.
// A proposal carries either a rendered image or inline HTML, never both.
type DesignProposal struct {
	ID         string    `json:"id" db:"id"`
	SessionID  string    `json:"session_id" db:"session_id"`
	SlotNumber int       `json:"slot_number" db:"slot_number"`
	Title      string    `json:"title" db:"title"`
	ImageURL   string    `json:"image_url,omitempty" db:"image_url"`
	HTMLCode   string    `json:"html_code,omitempty" db:"html_code"`
	Price      float64   `json:"price" db:"price"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Validate validates the proposal invariants
func (p *DesignProposal) Validate() error {
	if p.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	if p.SlotNumber < ProposalSlotMin || p.SlotNumber > ProposalSlotMax {
		return NewValidationError("slot_number must be between 1 and 3")
	}
	if p.Title == "" {
		return NewValidationError("title is required")
	}
	if p.ImageURL != "" && p.HTMLCode != "" {
		return NewValidationError("image_url and html_code are mutually exclusive")
	}
	if p.Price < 0 {
		return NewValidationError("price must not be negative")
	}
	return nil
}

// FinalPrice computes the price persisted for a selection. Signing applies
// the fixed discount, rounded to cents; a quote request keeps the list price.
func (p *DesignProposal) FinalPrice(action ActionType) float64 {
	if action == ActionSigned {
		return math.Round(p.Price*(1-SignedDiscountRate)*100) / 100
	}
	return p.Price
}

// ShowroomSelection records the single commit action of a client on a showroom
type ShowroomSelection struct {
	ID              string     `json:"id" db:"id"`
	SessionID       string     `json:"session_id" db:"session_id"`
	ProposalID      string     `json:"selected_proposal_id" db:"selected_proposal_id"`
	ActionType      ActionType `json:"action_type" db:"action_type"`
	DiscountApplied bool       `json:"discount_applied" db:"discount_applied"`
	FinalPrice      float64    `json:"final_price" db:"final_price"`
	ClientEmail     string     `json:"client_email" db:"client_email"`
	ClientPhone     string     `json:"client_phone,omitempty" db:"client_phone"`
	Message         string     `json:"message,omitempty" db:"message"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// ProposalRepository is the persistence interface for design proposals
type ProposalRepository interface {
	// Upsert writes the proposal for its (session_id, slot_number) pair,
	// overwriting an existing slot
	Upsert(ctx context.Context, proposal *DesignProposal) error
	GetByID(ctx context.Context, id string) (*DesignProposal, error)
	ListBySession(ctx context.Context, sessionID string) ([]*DesignProposal, error)
	Delete(ctx context.Context, id string) error
}

// SelectionRepository is the persistence interface for showroom selections
type SelectionRepository interface {
	// Create inserts the selection; the unique constraint on session_id makes
	// a second insert fail
	Create(ctx context.Context, selection *ShowroomSelection) error
	GetBySessionID(ctx context.Context, sessionID string) (*ShowroomSelection, error)
	CountByAction(ctx context.Context) (map[ActionType]int, error)
}
