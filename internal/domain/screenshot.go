package domain

import "context"

//go:generate mockgen -destination mocks/mock_screenshot_provider.go -package mocks github.com/archetype-studio/archetype/internal/domain ScreenshotProvider

// ScreenshotProvider captures a rendered preview of a website and returns
// the URL of the stored image
type ScreenshotProvider interface {
	Capture(ctx context.Context, websiteURL string) (string, error)
}
