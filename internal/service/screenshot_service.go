package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/pkg/logger"
	"github.com/archetype-studio/archetype/pkg/tracing"
)

const screenshotAPIURL = "https://shot.screenshotapi.net/screenshot"

// ScreenshotResponse is the response from the screenshot provider
type ScreenshotResponse struct {
	Screenshot string `json:"screenshot"`
	Error      string `json:"error,omitempty"`
}

// ScreenshotService captures website previews through an external provider
type ScreenshotService struct {
	apiKey     string
	baseURL    string
	logger     logger.Logger
	httpClient *http.Client
}

// NewScreenshotService creates a new screenshot provider client
func NewScreenshotService(apiKey string, log logger.Logger) *ScreenshotService {
	return &ScreenshotService{
		apiKey:  apiKey,
		baseURL: screenshotAPIURL,
		logger:  log,
		httpClient: tracing.WrapHTTPClient(&http.Client{
			Timeout: 30 * time.Second,
		}),
	}
}

func (s *ScreenshotService) Capture(ctx context.Context, websiteURL string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("screenshot API key is not configured")
	}
	if websiteURL == "" {
		return "", domain.NewValidationError("website URL is required")
	}

	params := url.Values{}
	params.Set("token", s.apiKey)
	params.Set("url", websiteURL)
	params.Set("output", "json")
	params.Set("file_type", "png")
	params.Set("wait_for_event", "load")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("screenshot request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read screenshot response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("screenshot request failed with status %d", resp.StatusCode)
	}

	var result ScreenshotResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode screenshot response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("screenshot provider error: %s", result.Error)
	}
	if result.Screenshot == "" {
		return "", fmt.Errorf("screenshot provider returned no image URL")
	}
	return result.Screenshot, nil
}

var _ domain.ScreenshotProvider = (*ScreenshotService)(nil)
