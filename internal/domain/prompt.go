package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_prompt_repository.go -package mocks github.com/archetype-studio/archetype/internal/domain GeneratedPromptRepository

// PromptType identifies the kind of generated prompt stored for a session
type PromptType string

const (
	// PromptTypeAnalystBrief is the design brief produced from the
	// questionnaire and voice analysis
	PromptTypeAnalystBrief PromptType = "analyst_brief"
)

// GeneratedPrompt is an AI-generated text artifact tied to a session.
// At most one row exists per (session_id, prompt_type); regeneration
// overwrites the previous content.
type GeneratedPrompt struct {
	ID            string     `json:"id" db:"id"`
	SessionID     string     `json:"session_id" db:"session_id"`
	PromptType    PromptType `json:"prompt_type" db:"prompt_type"`
	PromptContent string     `json:"prompt_content" db:"prompt_content"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// GeneratedPromptRepository is the persistence interface for generated prompts
type GeneratedPromptRepository interface {
	Upsert(ctx context.Context, prompt *GeneratedPrompt) error
	Get(ctx context.Context, sessionID string, promptType PromptType) (*GeneratedPrompt, error)
}

// GenerateBriefRequest is the payload for brief generation
type GenerateBriefRequest struct {
	SessionID     string            `json:"sessionId"`
	Questionnaire map[string]string `json:"questionnaire"`
	VoiceAnalysis string            `json:"voiceAnalysis,omitempty"`
	ClientName    string            `json:"clientName,omitempty"`
	WebsiteURL    string            `json:"websiteUrl,omitempty"`
}

// Validate validates the brief generation payload
func (r *GenerateBriefRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("sessionId is required")
	}
	if len(r.Questionnaire) == 0 {
		return NewValidationError("questionnaire is required")
	}
	return nil
}

// AnalystService produces and stores design briefs
type AnalystService interface {
	GenerateBrief(ctx context.Context, req *GenerateBriefRequest) (string, error)
}
