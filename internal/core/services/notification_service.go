package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mandoubi/internal/adapters/persistence/repositories"
	"mandoubi/internal/core/domain"

	"github.com/google/uuid"
)

// notificationNamespace seeds deterministic notification ids
var notificationNamespace = uuid.MustParse("6f1c7a52-3b0e-4a8e-9d55-2f0c8e1a7b44")

// NotificationService handles notification creation and read state
type NotificationService struct {
	notifRepo repositories.NotificationRepository
	now       func() time.Time
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo, now: time.Now}
}

// NotifyStatusChange tells the request's agent about its new status.
// The id derives from the transition, so a retried call never creates a second row.
func (s *NotificationService) NotifyStatusChange(ctx context.Context, req *domain.SalesRequest) error {
	n := StatusNotification(req)
	n.CreatedAt = s.now()
	if err := s.notifRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("notify agent %s: %w", req.AgentID, err)
	}
	return nil
}

// StatusNotification builds the notification for the request's current status
func StatusNotification(req *domain.SalesRequest) *domain.Notification {
	key := req.ID + ":" + string(req.Status) + ":" + strconv.FormatInt(req.UpdatedAt.UnixNano(), 10)
	n := &domain.Notification{
		ID:     uuid.NewSHA1(notificationNamespace, []byte(key)).String(),
		UserID: req.AgentID,
		IsRead: false,
	}

	switch req.Status {
	case domain.StatusAccepted:
		n.Type = domain.NotificationSuccess
		n.Title = "Request accepted"
		n.Message = fmt.Sprintf("Your request for %s was accepted.", req.InstitutionName)
	case domain.StatusRejected:
		reason := strings.TrimSpace(req.RejectionReason)
		if reason == "" {
			reason = domain.UnspecifiedReason
		}
		n.Type = domain.NotificationDanger
		n.Title = "Request rejected"
		n.Message = fmt.Sprintf("Sorry, your request for %s was rejected. Reason: %s", req.InstitutionName, reason)
	case domain.StatusNeedInfo:
		n.Type = domain.NotificationInfo
		n.Title = "More information needed"
		n.Message = fmt.Sprintf("Your request for %s needs more information.", req.InstitutionName)
		if note := strings.TrimSpace(req.AdminNote); note != "" {
			n.Message += " Note: " + note
		}
	default:
		n.Type = domain.NotificationInfo
		n.Title = "Request under review"
		n.Message = fmt.Sprintf("Your request for %s is back under review.", req.InstitutionName)
	}
	return n
}

// List returns the user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.notifRepo.ListByUser(ctx, userID)
}

// UnreadCount recounts the user's unread notifications
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications as read. Already read is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	n, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// other users' notifications are reported as missing
	if n.UserID != userID {
		return domain.ErrNotFound
	}
	if n.IsRead {
		return nil
	}

	n.IsRead = true
	return s.notifRepo.Update(ctx, n)
}

// MarkAllRead marks every notification of the user as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notifRepo.MarkAllReadByUser(ctx, userID)
}
