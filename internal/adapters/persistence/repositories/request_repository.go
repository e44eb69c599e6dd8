package repositories

import (
	"context"
	"time"

	"mandoubi/internal/adapters/persistence/models"
	"mandoubi/internal/core/domain"

	"gorm.io/gorm"
)

// requestRepository implements RequestRepository interface
type requestRepository struct {
	store
}

// NewRequestRepository creates a new sales request repository
func NewRequestRepository(db *gorm.DB, timeout time.Duration) RequestRepository {
	return &requestRepository{store{db: db, timeout: timeout}}
}

// Create creates a new request
func (r *requestRepository) Create(ctx context.Context, req *domain.SalesRequest) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	return translateError(db.Create(models.SalesRequestFromDomain(req)).Error)
}

// GetByID gets a request by ID
func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.SalesRequest, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var row models.SalesRequest
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return row.ToDomain(), nil
}

// List lists every request, newest first
func (r *requestRepository) List(ctx context.Context) ([]*domain.SalesRequest, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var rows []*models.SalesRequest
	if err := db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return toRequests(rows), nil
}

// ListPage lists requests with pagination, newest first
func (r *requestRepository) ListPage(ctx context.Context, status domain.RequestStatus, offset, limit int) ([]*domain.SalesRequest, int64, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	byStatus := func(tx *gorm.DB) *gorm.DB {
		if status == "" {
			return tx
		}
		return tx.Where("status = ?", string(status))
	}

	var total int64
	if err := db.Model(&models.SalesRequest{}).Scopes(byStatus).Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var rows []*models.SalesRequest
	err := db.
		Scopes(byStatus).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, translateError(err)
	}

	return toRequests(rows), total, nil
}

// ListByAgent lists the requests submitted by one agent, newest first
func (r *requestRepository) ListByAgent(ctx context.Context, agentID string) ([]*domain.SalesRequest, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var rows []*models.SalesRequest
	err := db.
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toRequests(rows), nil
}

// Update updates a request
func (r *requestRepository) Update(ctx context.Context, req *domain.SalesRequest) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	return translateError(db.Save(models.SalesRequestFromDomain(req)).Error)
}

// Transition writes the status fields guarded by the expected current status.
// A concurrent transition that got there first yields ErrInvalidTransition.
func (r *requestRepository) Transition(ctx context.Context, req *domain.SalesRequest, from domain.RequestStatus) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	row := models.SalesRequestFromDomain(req)
	res := db.Model(&models.SalesRequest{}).
		Where("id = ? AND status = ?", req.ID, string(from)).
		Updates(map[string]interface{}{
			"status":           row.Status,
			"rejection_reason": row.RejectionReason,
			"admin_note":       row.AdminNote,
			"updated_at":       row.UpdatedAt,
		})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func toRequests(rows []*models.SalesRequest) []*domain.SalesRequest {
	out := make([]*domain.SalesRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	return out
}
