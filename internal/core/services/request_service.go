package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"mandoubi/internal/adapters/persistence/repositories"
	"mandoubi/internal/core/domain"

	"github.com/google/uuid"
)

// RequestService drives the sales request lifecycle
type RequestService struct {
	requestRepo   repositories.RequestRepository
	userRepo      repositories.UserRepository
	systemRepo    repositories.SystemRepository
	institutions  *InstitutionService
	notifications *NotificationService
	publisher     EventPublisher
	policy        SideEffectPolicy
	now           func() time.Time
}

// NewRequestService creates a new request service. publisher may be nil.
func NewRequestService(
	requestRepo repositories.RequestRepository,
	userRepo repositories.UserRepository,
	systemRepo repositories.SystemRepository,
	institutions *InstitutionService,
	notifications *NotificationService,
	publisher EventPublisher,
	policy SideEffectPolicy,
) *RequestService {
	return &RequestService{
		requestRepo:   requestRepo,
		userRepo:      userRepo,
		systemRepo:    systemRepo,
		institutions:  institutions,
		notifications: notifications,
		publisher:     publisher,
		policy:        policy,
		now:           time.Now,
	}
}

// CreateRequestInput represents a request submitted by an agent
type CreateRequestInput struct {
	InstitutionName  string                  `json:"institution_name" validate:"required,max=191"`
	SystemID         string                  `json:"system_id" validate:"required"`
	SubscriptionType domain.SubscriptionType `json:"subscription_type" validate:"required,oneof=STANDARD PLUS PREMIUM"`
	Location         string                  `json:"location" validate:"required,max=255"`
	ContactName      string                  `json:"contact_name" validate:"required,max=100"`
	ContactPhone     string                  `json:"contact_phone" validate:"required,max=30"`
	Note             string                  `json:"note"`
}

// SetStatusInput represents an administrator decision
type SetStatusInput struct {
	Status domain.RequestStatus `json:"status" validate:"required,oneof=PENDING ACCEPTED REJECTED NEED_INFO"`
	Reason string               `json:"reason"`
	Note   string               `json:"note"`
}

// Create submits a new PENDING request for agentID.
// Suspension is checked against the stored account, not the session.
func (s *RequestService) Create(ctx context.Context, agentID string, input *CreateRequestInput) (*domain.SalesRequest, error) {
	agent, err := s.userRepo.GetByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidReference
		}
		return nil, err
	}
	if agent.Role != domain.RoleAgent {
		return nil, domain.ErrForbidden
	}
	if agent.IsSuspended() {
		return nil, domain.ErrAgentSuspended
	}

	institution := strings.TrimSpace(input.InstitutionName)
	if institution == "" || !input.SubscriptionType.Valid() {
		return nil, domain.ErrInvalidInput
	}

	system, err := s.systemRepo.GetByID(ctx, input.SystemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidReference
		}
		return nil, err
	}

	now := s.now()
	req := &domain.SalesRequest{
		ID:               uuid.NewString(),
		AgentID:          agent.ID,
		AgentName:        agent.Name,
		InstitutionName:  institution,
		SystemID:         system.ID,
		SystemName:       system.Name,
		SubscriptionType: input.SubscriptionType,
		Location:         strings.TrimSpace(input.Location),
		ContactName:      strings.TrimSpace(input.ContactName),
		ContactPhone:     strings.TrimSpace(input.ContactPhone),
		Status:           domain.StatusPending,
		AdminNote:        strings.TrimSpace(input.Note),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	log.Printf("📝 Request %s submitted by %s for %s", req.ID, agent.Username, req.InstitutionName)
	return req, nil
}

// SetStatus transitions a request and then runs its side effects.
// The stored status is the source of truth: side effect failures are logged, never rolled back.
func (s *RequestService) SetStatus(ctx context.Context, actorID, id string, input *SetStatusInput) (*domain.SalesRequest, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}
	if err := domain.RequireAdministrative(actor); err != nil {
		return nil, err
	}

	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := req.Status
	if err := domain.CheckTransition(from, input.Status, input.Reason); err != nil {
		return nil, err
	}

	req.Status = input.Status
	req.RejectionReason = ""
	if input.Status == domain.StatusRejected {
		req.RejectionReason = strings.TrimSpace(input.Reason)
	}
	if note := strings.TrimSpace(input.Note); note != "" {
		req.AdminNote = note
	}
	req.UpdatedAt = s.now()

	if err := s.requestRepo.Transition(ctx, req, from); err != nil {
		return nil, err
	}

	log.Printf("✅ Request %s: %s -> %s by %s", req.ID, from, req.Status, actor.Username)

	s.runSideEffects(ctx, req, from, actor)
	return req, nil
}

// runSideEffects runs institution sync, agent notification and event publish, in that order
func (s *RequestService) runSideEffects(ctx context.Context, req *domain.SalesRequest, from domain.RequestStatus, actor *domain.User) {
	// outlive the caller's cancellation, each attempt is still bounded by the policy
	ctx = context.WithoutCancel(ctx)

	if req.Status == domain.StatusAccepted && s.institutions != nil {
		err := s.policy.run(ctx, func(ctx context.Context) error {
			_, err := s.institutions.SyncFromRequest(ctx, req)
			return err
		})
		if err != nil {
			log.Printf("⚠️ Institution sync failed for request %s: %v", req.ID, err)
		}
	}

	if s.notifications != nil {
		err := s.policy.run(ctx, func(ctx context.Context) error {
			return s.notifications.NotifyStatusChange(ctx, req)
		})
		if err != nil {
			log.Printf("⚠️ Notification failed for request %s: %v", req.ID, err)
		}
	}

	if s.publisher != nil {
		event := domain.RequestStatusChanged{
			RequestID:       req.ID,
			AgentID:         req.AgentID,
			InstitutionName: req.InstitutionName,
			From:            from,
			To:              req.Status,
			Reason:          req.RejectionReason,
			ChangedBy:       actor.ID,
			ChangedAt:       req.UpdatedAt,
		}
		err := s.policy.run(ctx, func(ctx context.Context) error {
			return s.publisher.PublishStatusChanged(ctx, event)
		})
		if err != nil {
			log.Printf("⚠️ Event publish failed for request %s: %v", req.ID, err)
		}
	}
}

// List lists requests for administrators, newest first
func (s *RequestService) List(ctx context.Context, status domain.RequestStatus, offset, limit int) ([]*domain.SalesRequest, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, domain.ErrInvalidInput
	}
	return s.requestRepo.ListPage(ctx, status, offset, limit)
}

// ListAll lists every request, newest first
func (s *RequestService) ListAll(ctx context.Context) ([]*domain.SalesRequest, error) {
	return s.requestRepo.List(ctx)
}

// ListMine lists the agent's own requests, newest first
func (s *RequestService) ListMine(ctx context.Context, agentID string, status domain.RequestStatus) ([]*domain.SalesRequest, error) {
	requests, err := s.requestRepo.ListByAgent(ctx, agentID)
	if err != nil || status == "" {
		return requests, err
	}

	filtered := make([]*domain.SalesRequest, 0, len(requests))
	for _, r := range requests {
		if r.Status == status {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// Get gets a request. Agents only see their own.
func (s *RequestService) Get(ctx context.Context, viewer *domain.User, id string) (*domain.SalesRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewer.Role == domain.RoleAgent && req.AgentID != viewer.ID {
		return nil, domain.ErrNotFound
	}
	return req, nil
}
