package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/pkg/logger"
)

// ShowroomInvitePayload is the outbox payload for a showroom invite email
type ShowroomInvitePayload struct {
	CompanyName string `json:"companyName"`
	ShowroomURL string `json:"showroomUrl"`
}

// InterestPayload is the outbox payload for the operator interest email
type InterestPayload struct {
	ClientEmail  string  `json:"clientEmail"`
	ClientPhone  string  `json:"clientPhone,omitempty"`
	Message      string  `json:"message,omitempty"`
	CompanyName  string  `json:"companyName"`
	ActionType   string  `json:"actionType"`
	DesignTitle  string  `json:"designTitle"`
	FinalPrice   float64 `json:"finalPrice"`
	DiscountUsed bool    `json:"discountUsed"`
}

// ConfirmationPayload is the outbox payload for the client confirmation email
type ConfirmationPayload struct {
	DesignTitle string  `json:"designTitle"`
	ActionType  string  `json:"actionType"`
	FinalPrice  float64 `json:"finalPrice"`
}

// SubmitSelectionRequest is the public payload for committing to a proposal
type SubmitSelectionRequest struct {
	SessionID   string            `json:"sessionId"`
	ProposalID  string            `json:"proposalId"`
	ActionType  domain.ActionType `json:"actionType"`
	ClientEmail string            `json:"clientEmail"`
	ClientPhone string            `json:"clientPhone,omitempty"`
	Message     string            `json:"message,omitempty"`
}

// Validate validates the selection payload
func (r *SubmitSelectionRequest) Validate() error {
	if r.SessionID == "" {
		return domain.NewValidationError("sessionId is required")
	}
	if r.ProposalID == "" {
		return domain.NewValidationError("proposalId is required")
	}
	if !r.ActionType.Valid() {
		return domain.NewValidationError("actionType must be 'quote_request' or 'signed'")
	}
	if r.ClientEmail == "" || !govalidator.IsEmail(r.ClientEmail) {
		return domain.NewValidationError("clientEmail is invalid")
	}
	return nil
}

// Showroom is the public bootstrap payload for a showroom page
type Showroom struct {
	SessionID      string                   `json:"sessionId"`
	CompanyName    string                   `json:"companyName,omitempty"`
	ShowroomStatus domain.ShowroomStatus    `json:"showroomStatus,omitempty"`
	Proposals      []*domain.DesignProposal `json:"proposals"`
	Selection      *domain.ShowroomSelection `json:"selection,omitempty"`
}

// ShowroomService runs the showroom flow: invite, bootstrap, selection
type ShowroomService struct {
	sessionRepo   domain.SessionRepository
	proposalRepo  domain.ProposalRepository
	selectionRepo domain.SelectionRepository
	outboxRepo    domain.OutboxRepository
	studioEmail   string
	appBaseURL    string
	logger        logger.Logger
}

// NewShowroomService creates a new showroom service. studioEmail receives
// the operator interest notifications.
func NewShowroomService(
	sessionRepo domain.SessionRepository,
	proposalRepo domain.ProposalRepository,
	selectionRepo domain.SelectionRepository,
	outboxRepo domain.OutboxRepository,
	studioEmail string,
	appBaseURL string,
	logger logger.Logger,
) *ShowroomService {
	return &ShowroomService{
		sessionRepo:   sessionRepo,
		proposalRepo:  proposalRepo,
		selectionRepo: selectionRepo,
		outboxRepo:    outboxRepo,
		studioEmail:   studioEmail,
		appBaseURL:    appBaseURL,
		logger:        logger,
	}
}

// MarkSent flags the showroom as sent and queues the invite email. The
// session must be completed and carry at least one proposal.
func (s *ShowroomService) MarkSent(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsCompleted() {
		return nil, domain.NewValidationError("session must be completed before the showroom is sent")
	}

	proposals, err := s.proposalRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	if len(proposals) == 0 {
		return nil, domain.NewValidationError("the showroom has no proposals yet")
	}

	now := time.Now().UTC()
	session.ShowroomStatus = domain.ShowroomStatusSent
	session.ShowroomSentAt = &now
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to mark showroom sent: %w", err)
	}

	payload := ShowroomInvitePayload{
		CompanyName: session.ClientCompany,
		ShowroomURL: fmt.Sprintf("%s/showroom/%s", s.appBaseURL, session.ID),
	}
	s.enqueue(ctx, domain.OutboxKindShowroomInvite, session.ClientEmail, payload)

	return session, nil
}

// Get returns the public showroom bootstrap for a session
func (s *ShowroomService) Get(ctx context.Context, sessionID string) (*Showroom, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	proposals, err := s.proposalRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}

	showroom := &Showroom{
		SessionID:      session.ID,
		CompanyName:    session.ClientCompany,
		ShowroomStatus: session.ShowroomStatus,
		Proposals:      proposals,
	}

	selection, err := s.selectionRepo.GetBySessionID(ctx, sessionID)
	if err == nil {
		showroom.Selection = selection
	} else if !domain.IsNotFound(err) {
		return nil, fmt.Errorf("failed to get selection: %w", err)
	}

	return showroom, nil
}

// SubmitSelection records the client's single commit action. The final price
// is computed server side: signing applies the fixed discount, a quote
// request keeps the list price. The session's showroom status moves in
// lockstep and both notification emails are queued.
func (s *ShowroomService) SubmitSelection(ctx context.Context, req *SubmitSelectionRequest) (*domain.ShowroomSelection, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session.ShowroomStatus != domain.ShowroomStatusSent {
		if session.ShowroomStatus == domain.ShowroomStatusQuoteRequested ||
			session.ShowroomStatus == domain.ShowroomStatusSigned {
			return nil, domain.ErrSelectionExists
		}
		return nil, domain.ErrShowroomNotSent
	}

	proposal, err := s.proposalRepo.GetByID(ctx, req.ProposalID)
	if err != nil {
		return nil, err
	}
	if proposal.SessionID != req.SessionID {
		return nil, domain.NewValidationError("proposal does not belong to this session")
	}

	selection := &domain.ShowroomSelection{
		SessionID:       req.SessionID,
		ProposalID:      proposal.ID,
		ActionType:      req.ActionType,
		DiscountApplied: req.ActionType == domain.ActionSigned,
		FinalPrice:      proposal.FinalPrice(req.ActionType),
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		Message:         req.Message,
	}
	if err := s.selectionRepo.Create(ctx, selection); err != nil {
		if err == domain.ErrSelectionExists {
			return nil, err
		}
		s.logger.WithField("session_id", req.SessionID).Error(fmt.Sprintf("Failed to create selection: %v", err))
		return nil, fmt.Errorf("failed to create selection: %w", err)
	}

	switch req.ActionType {
	case domain.ActionSigned:
		session.ShowroomStatus = domain.ShowroomStatusSigned
	default:
		session.ShowroomStatus = domain.ShowroomStatusQuoteRequested
	}
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		s.logger.WithField("session_id", req.SessionID).Error(fmt.Sprintf("Failed to update showroom status: %v", err))
	}

	if s.studioEmail != "" {
		s.enqueue(ctx, domain.OutboxKindInterestNotification, s.studioEmail, InterestPayload{
			ClientEmail:  req.ClientEmail,
			ClientPhone:  req.ClientPhone,
			Message:      req.Message,
			CompanyName:  session.ClientCompany,
			ActionType:   string(req.ActionType),
			DesignTitle:  proposal.Title,
			FinalPrice:   selection.FinalPrice,
			DiscountUsed: selection.DiscountApplied,
		})
	}
	s.enqueue(ctx, domain.OutboxKindSelectionConfirmation, req.ClientEmail, ConfirmationPayload{
		DesignTitle: proposal.Title,
		ActionType:  string(req.ActionType),
		FinalPrice:  selection.FinalPrice,
	})

	return selection, nil
}

// NotifyInterest queues an operator interest email outside of the selection
// flow, for showrooms where the client reached out directly.
func (s *ShowroomService) NotifyInterest(ctx context.Context, payload *InterestPayload) error {
	if payload.ClientEmail == "" || !govalidator.IsEmail(payload.ClientEmail) {
		return domain.NewValidationError("clientEmail is invalid")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal interest payload: %w", err)
	}
	email := &domain.EmailOutbox{
		Kind:      domain.OutboxKindInterestNotification,
		Recipient: s.studioEmail,
		Payload:   string(data),
	}
	if err := s.outboxRepo.Enqueue(ctx, email); err != nil {
		return fmt.Errorf("failed to enqueue interest email: %w", err)
	}
	return nil
}

func (s *ShowroomService) enqueue(ctx context.Context, kind domain.OutboxKind, recipient string, payload interface{}) {
	if recipient == "" {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to marshal %s payload: %v", kind, err))
		return
	}
	email := &domain.EmailOutbox{
		Kind:      kind,
		Recipient: recipient,
		Payload:   string(data),
	}
	if err := s.outboxRepo.Enqueue(ctx, email); err != nil {
		s.logger.WithField("kind", string(kind)).Error(fmt.Sprintf("Failed to enqueue email: %v", err))
	}
}
