package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/pkg/logger"
)

// DashboardStats is the aggregate studio overview
type DashboardStats struct {
	TotalClients       int                         `json:"totalClients"`
	Sessions           domain.SessionStatusCounts  `json:"sessions"`
	CompletedResponses int                         `json:"completedResponses"`
	Showroom           domain.ShowroomActionCounts `json:"showroom"`
	Selections         map[domain.ActionType]int   `json:"selections"`
}

// DashboardService aggregates counters for the studio overview page
type DashboardService struct {
	clientRepo    domain.ClientRepository
	sessionRepo   domain.SessionRepository
	responseRepo  domain.ResponseRepository
	selectionRepo domain.SelectionRepository
	logger        logger.Logger
}

func NewDashboardService(
	clientRepo domain.ClientRepository,
	sessionRepo domain.SessionRepository,
	responseRepo domain.ResponseRepository,
	selectionRepo domain.SelectionRepository,
	logger logger.Logger,
) *DashboardService {
	return &DashboardService{
		clientRepo:    clientRepo,
		sessionRepo:   sessionRepo,
		responseRepo:  responseRepo,
		selectionRepo: selectionRepo,
		logger:        logger,
	}
}

// GetStats fans out the four counter queries concurrently
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.clientRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count clients: %w", err)
		}
		stats.TotalClients = count
		return nil
	})

	g.Go(func() error {
		counts, err := s.sessionRepo.CountByStatus(gctx)
		if err != nil {
			return fmt.Errorf("failed to count sessions: %w", err)
		}
		stats.Sessions = *counts
		return nil
	})

	g.Go(func() error {
		count, err := s.responseRepo.CountCompleted(gctx)
		if err != nil {
			return fmt.Errorf("failed to count completed responses: %w", err)
		}
		stats.CompletedResponses = count
		return nil
	})

	g.Go(func() error {
		counts, err := s.sessionRepo.CountShowroomActions(gctx)
		if err != nil {
			return fmt.Errorf("failed to count showroom actions: %w", err)
		}
		stats.Showroom = *counts
		return nil
	})

	g.Go(func() error {
		counts, err := s.selectionRepo.CountByAction(gctx)
		if err != nil {
			return fmt.Errorf("failed to count selections: %w", err)
		}
		stats.Selections = counts
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error(fmt.Sprintf("Failed to build dashboard stats: %v", err))
		return nil, err
	}
	return stats, nil
}
