package repositories

import (
	"context"
	"time"

	"mandoubi/internal/adapters/persistence/models"
	"mandoubi/internal/core/domain"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	store
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB, timeout time.Duration) UserRepository {
	return &userRepository{store{db: db, timeout: timeout}}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	row := models.UserFromDomain(user)
	if err := db.Create(row).Error; err != nil {
		return translateError(err)
	}
	user.CreatedAt, user.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return user.ToDomain(), nil
}

// GetByUsername gets a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return user.ToDomain(), nil
}

// ListByRoles lists users having any of the given roles, newest first
func (r *userRepository) ListByRoles(ctx context.Context, roles ...domain.Role) ([]*domain.User, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}

	var rows []*models.User
	if err := db.Where("role IN ?", names).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.ToDomain())
	}
	return users, nil
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	row := models.UserFromDomain(user)
	if err := db.Save(row).Error; err != nil {
		return translateError(err)
	}
	user.UpdatedAt = row.UpdatedAt
	return nil
}

// ExistsByUsername checks if username exists
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var count int64
	err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, translateError(err)
}
