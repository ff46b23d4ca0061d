package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/pkg/logger"
	"github.com/archetype-studio/archetype/pkg/tracing"
)

const groqTranscriptionURL = "https://api.groq.com/openai/v1/audio/transcriptions"

// GroqTranscriptionResponse is the response from the Groq transcription endpoint
type GroqTranscriptionResponse struct {
	Text string `json:"text"`
}

// GroqErrorResponse is the error envelope returned by the Groq API
type GroqErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// GroqService implements domain.SpeechTranscriber against the Groq Whisper API
type GroqService struct {
	apiKey     string
	model      string
	baseURL    string
	logger     logger.Logger
	httpClient *http.Client
}

// NewGroqService creates a new Groq transcription service
func NewGroqService(apiKey, model string, log logger.Logger) *GroqService {
	if model == "" {
		model = "whisper-large-v3-turbo"
	}
	return &GroqService{
		apiKey:  apiKey,
		model:   model,
		baseURL: groqTranscriptionURL,
		logger:  log,
		httpClient: tracing.WrapHTTPClient(&http.Client{
			Timeout: 60 * time.Second,
		}),
	}
}

func (s *GroqService) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("groq API key is not configured")
	}
	if len(audio) == 0 {
		return "", domain.NewValidationError("audio payload is empty")
	}
	if filename == "" {
		filename = "recording.webm"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("failed to write audio payload: %w", err)
	}
	if err := writer.WriteField("model", s.model); err != nil {
		return "", fmt.Errorf("failed to write model field: %w", err)
	}
	if err := writer.WriteField("language", "fr"); err != nil {
		return "", fmt.Errorf("failed to write language field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Groq transcription request failed: %v", err))
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read transcription response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr GroqErrorResponse
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("transcription failed (status %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("transcription failed with status %d", resp.StatusCode)
	}

	var result GroqTranscriptionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}
	return result.Text, nil
}

var _ domain.SpeechTranscriber = (*GroqService)(nil)
