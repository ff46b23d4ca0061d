package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/pkg/logger"
)

// ClientService manages studio clients
type ClientService struct {
	repo       domain.ClientRepository
	screenshot domain.ScreenshotProvider
	logger     logger.Logger
}

// NewClientService creates a new client service. The screenshot provider is
// optional; passing nil disables preview capture.
func NewClientService(repo domain.ClientRepository, screenshot domain.ScreenshotProvider, logger logger.Logger) *ClientService {
	return &ClientService{
		repo:       repo,
		screenshot: screenshot,
		logger:     logger,
	}
}

func (s *ClientService) CreateClient(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	client := &domain.Client{
		Email:       req.Email,
		CompanyName: req.CompanyName,
		ContactName: req.ContactName,
		WebsiteURL:  req.WebsiteURL,
		Notes:       req.Notes,
	}

	s.capturePreview(ctx, client)

	if err := s.repo.Create(ctx, client); err != nil {
		if errors.Is(err, domain.ErrClientEmailExists) {
			return nil, err
		}
		s.logger.WithField("email", req.Email).Error(fmt.Sprintf("Failed to create client: %v", err))
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (s *ClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		s.logger.WithField("client_id", id).Error(fmt.Sprintf("Failed to get client: %v", err))
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *ClientService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list clients: %v", err))
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, id string, req *domain.UpdateClientRequest) (*domain.Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	websiteChanged := false
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.CompanyName != nil {
		client.CompanyName = *req.CompanyName
	}
	if req.ContactName != nil {
		client.ContactName = *req.ContactName
	}
	if req.WebsiteURL != nil && *req.WebsiteURL != client.WebsiteURL {
		client.WebsiteURL = *req.WebsiteURL
		websiteChanged = true
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if websiteChanged {
		client.PreviewURL = ""
		s.capturePreview(ctx, client)
	}

	if err := s.repo.Update(ctx, client); err != nil {
		if domain.IsNotFound(err) || errors.Is(err, domain.ErrClientEmailExists) {
			return nil, err
		}
		s.logger.WithField("client_id", id).Error(fmt.Sprintf("Failed to update client: %v", err))
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		s.logger.WithField("client_id", id).Error(fmt.Sprintf("Failed to delete client: %v", err))
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

// capturePreview fetches a website screenshot, best effort. Failures are
// logged and never block the write.
func (s *ClientService) capturePreview(ctx context.Context, client *domain.Client) {
	if s.screenshot == nil || client.WebsiteURL == "" {
		return
	}
	previewURL, err := s.screenshot.Capture(ctx, client.WebsiteURL)
	if err != nil {
		s.logger.WithField("website_url", client.WebsiteURL).
			Warn(fmt.Sprintf("Failed to capture website preview: %v", err))
		return
	}
	client.PreviewURL = previewURL
}
