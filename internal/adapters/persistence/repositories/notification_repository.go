package repositories

import (
	"context"
	"time"

	"mandoubi/internal/adapters/persistence/models"
	"mandoubi/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// notificationRepository implements NotificationRepository interface
type notificationRepository struct {
	store
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB, timeout time.Duration) NotificationRepository {
	return &notificationRepository{store{db: db, timeout: timeout}}
}

// ListByUser lists a user's notifications, newest first
func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var rows []*models.Notification
	err := db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}

	out := make([]*domain.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	return out, nil
}

// GetByID gets a notification by ID
func (r *notificationRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var row models.Notification
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return row.ToDomain(), nil
}

// Create inserts a notification; an existing id is left untouched
func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(models.NotificationFromDomain(n)).Error
	return translateError(err)
}

// Update updates a notification
func (r *notificationRepository) Update(ctx context.Context, n *domain.Notification) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	return translateError(db.Save(models.NotificationFromDomain(n)).Error)
}

// MarkAllReadByUser flips every unread notification of the user to read
func (r *notificationRepository) MarkAllReadByUser(ctx context.Context, userID string) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	return translateError(err)
}

// CountUnread counts unread notifications. Always queried, never cached.
func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, translateError(err)
}
