package repositories

import (
	"context"

	"mandoubi/internal/core/domain"
)

// UserRepository defines user repository interface.
// Agents and administrators live in one table and are filtered by role.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ListByRoles(ctx context.Context, roles ...domain.Role) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// RequestRepository defines sales request repository interface
type RequestRepository interface {
	Create(ctx context.Context, req *domain.SalesRequest) error
	GetByID(ctx context.Context, id string) (*domain.SalesRequest, error)
	List(ctx context.Context) ([]*domain.SalesRequest, error)
	// ListPage filters by status unless it is empty
	ListPage(ctx context.Context, status domain.RequestStatus, offset, limit int) ([]*domain.SalesRequest, int64, error)
	ListByAgent(ctx context.Context, agentID string) ([]*domain.SalesRequest, error)
	Update(ctx context.Context, req *domain.SalesRequest) error
	// Transition persists req only while the stored status still equals from
	Transition(ctx context.Context, req *domain.SalesRequest, from domain.RequestStatus) error
}

// InstitutionRepository defines institution repository interface
type InstitutionRepository interface {
	List(ctx context.Context) ([]*domain.Institution, error)
	Search(ctx context.Context, term string) ([]*domain.Institution, error)
	GetByName(ctx context.Context, name string) (*domain.Institution, error)
	Create(ctx context.Context, inst *domain.Institution) error
	Update(ctx context.Context, inst *domain.Institution) error
	Delete(ctx context.Context, id string) error
}

// SystemRepository defines system product repository interface
type SystemRepository interface {
	List(ctx context.Context) ([]*domain.SystemProduct, error)
	GetByID(ctx context.Context, id string) (*domain.SystemProduct, error)
	Create(ctx context.Context, product *domain.SystemProduct) error
	Update(ctx context.Context, product *domain.SystemProduct) error
	Delete(ctx context.Context, id string) error
}

// NotificationRepository defines notification repository interface
type NotificationRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	// Create ignores an insert whose id already exists
	Create(ctx context.Context, n *domain.Notification) error
	Update(ctx context.Context, n *domain.Notification) error
	MarkAllReadByUser(ctx context.Context, userID string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}
