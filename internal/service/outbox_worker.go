package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/pkg/logger"
	"github.com/archetype-studio/archetype/pkg/mailer"
)

const (
	outboxPollInterval = 15 * time.Second
	outboxBatchSize    = 25
	outboxRetryDelay   = 2 * time.Minute
)

// OutboxWorker drains the email outbox in the background. Delivery is
// at-least-once: a crash between send and MarkSent redelivers the email.
type OutboxWorker struct {
	repo     domain.OutboxRepository
	mailer   mailer.Mailer
	interval time.Duration
	logger   logger.Logger

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewOutboxWorker(repo domain.OutboxRepository, m mailer.Mailer, logger logger.Logger) *OutboxWorker {
	return &OutboxWorker{
		repo:     repo,
		mailer:   m,
		interval: outboxPollInterval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the polling loop. It returns immediately.
func (w *OutboxWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

// Stop signals the loop to exit and waits for the in-flight batch
func (w *OutboxWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	<-w.done
}

func (w *OutboxWorker) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Drain once at startup so restarts do not sit on pending rows.
	w.ProcessBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case <-ticker.C:
			w.ProcessBatch(ctx)
		}
	}
}

// ProcessBatch claims and delivers one batch of due emails
func (w *OutboxWorker) ProcessBatch(ctx context.Context) {
	emails, err := w.repo.ClaimPending(ctx, outboxBatchSize, outboxRetryDelay)
	if err != nil {
		w.logger.Error(fmt.Sprintf("Failed to claim pending emails: %v", err))
		return
	}

	for _, email := range emails {
		if err := w.deliver(email); err != nil {
			w.logger.WithField("outbox_id", email.ID).WithField("kind", string(email.Kind)).
				Error(fmt.Sprintf("Failed to deliver email: %v", err))
			// ClaimPending already incremented attempts for this delivery
			if err := w.repo.MarkFailure(ctx, email.ID, email.Attempts, err.Error()); err != nil {
				w.logger.WithField("outbox_id", email.ID).Error(fmt.Sprintf("Failed to record delivery failure: %v", err))
			}
			continue
		}
		if err := w.repo.MarkSent(ctx, email.ID); err != nil {
			w.logger.WithField("outbox_id", email.ID).Error(fmt.Sprintf("Failed to mark email sent: %v", err))
		}
	}
}

func (w *OutboxWorker) deliver(email *domain.EmailOutbox) error {
	switch email.Kind {
	case domain.OutboxKindShowroomInvite:
		var p ShowroomInvitePayload
		if err := json.Unmarshal([]byte(email.Payload), &p); err != nil {
			return fmt.Errorf("invalid showroom invite payload: %w", err)
		}
		return w.mailer.SendShowroomInvite(email.Recipient, p.CompanyName, p.ShowroomURL)

	case domain.OutboxKindInterestNotification:
		var p InterestPayload
		if err := json.Unmarshal([]byte(email.Payload), &p); err != nil {
			return fmt.Errorf("invalid interest payload: %w", err)
		}
		return w.mailer.SendInterestNotification(email.Recipient, mailer.InterestNotification{
			ClientEmail:  p.ClientEmail,
			ClientPhone:  p.ClientPhone,
			Message:      p.Message,
			CompanyName:  p.CompanyName,
			ActionType:   p.ActionType,
			DesignTitle:  p.DesignTitle,
			FinalPrice:   p.FinalPrice,
			DiscountUsed: p.DiscountUsed,
		})

	case domain.OutboxKindSelectionConfirmation:
		var p ConfirmationPayload
		if err := json.Unmarshal([]byte(email.Payload), &p); err != nil {
			return fmt.Errorf("invalid confirmation payload: %w", err)
		}
		return w.mailer.SendSelectionConfirmation(email.Recipient, p.DesignTitle, p.ActionType, p.FinalPrice)

	default:
		return fmt.Errorf("unknown outbox kind %q", email.Kind)
	}
}
