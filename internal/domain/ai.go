package domain

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -destination mocks/mock_text_generator.go -package mocks github.com/archetype-studio/archetype/internal/domain TextGenerator
//go:generate mockgen -destination mocks/mock_speech_transcriber.go -package mocks github.com/archetype-studio/archetype/internal/domain SpeechTranscriber

// TextGenerator is a hosted LLM the application formats prompts for and
// returns output from verbatim. Implementations carry their own model and
// credentials.
type TextGenerator interface {
	// GenerateText returns the model's free-form text reply
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// GenerateJSON asks the model for output constrained to the given JSON
	// schema and returns the raw JSON string. Callers must still tolerate
	// malformed output from models without schema enforcement.
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, schema json.RawMessage) (string, error)
}

// SpeechTranscriber converts an audio payload into text
type SpeechTranscriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// ChatMessage is one turn of the showroom chat
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload for the public showroom chat widget
type ChatRequest struct {
	SessionID   string        `json:"sessionId"`
	Messages    []ChatMessage `json:"messages"`
	DesignBrief string        `json:"designBrief,omitempty"`
}

// Validate validates the chat payload
func (r *ChatRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("sessionId is required")
	}
	if len(r.Messages) == 0 {
		return NewValidationError("at least one message is required")
	}
	for _, msg := range r.Messages {
		if msg.Role != "user" && msg.Role != "assistant" {
			return NewValidationError("message role must be 'user' or 'assistant'")
		}
		if msg.Content == "" {
			return NewValidationError("message content is required")
		}
	}
	return nil
}

// ChatService answers showroom chat messages
type ChatService interface {
	Reply(ctx context.Context, req *ChatRequest) (string, error)
}
