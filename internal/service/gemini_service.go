package service

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/pkg/logger"
)

// GeminiService implements domain.TextGenerator on top of the Gemini API
type GeminiService struct {
	client *genai.Client
	model  string
	logger logger.Logger
}

// NewGeminiService creates a Gemini-backed text generator
func NewGeminiService(ctx context.Context, apiKey, model string, logger logger.Logger) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiService{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (s *GeminiService) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(userPrompt, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{}
	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		s.logger.WithField("model", s.model).Error(fmt.Sprintf("Gemini generation failed: %v", err))
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}

func (s *GeminiService) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, schema json.RawMessage) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(userPrompt, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}
	if len(schema) > 0 {
		var parsed genai.Schema
		if err := json.Unmarshal(schema, &parsed); err != nil {
			return "", fmt.Errorf("invalid response schema: %w", err)
		}
		config.ResponseSchema = &parsed
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		s.logger.WithField("model", s.model).Error(fmt.Sprintf("Gemini JSON generation failed: %v", err))
		return "", fmt.Errorf("gemini json generation failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}

var _ domain.TextGenerator = (*GeminiService)(nil)
