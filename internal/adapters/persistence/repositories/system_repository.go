package repositories

import (
	"context"
	"time"

	"mandoubi/internal/adapters/persistence/models"
	"mandoubi/internal/core/domain"

	"gorm.io/gorm"
)

// systemRepository implements SystemRepository interface
type systemRepository struct {
	store
}

// NewSystemRepository creates a new system product repository
func NewSystemRepository(db *gorm.DB, timeout time.Duration) SystemRepository {
	return &systemRepository{store{db: db, timeout: timeout}}
}

// List lists all products by name
func (r *systemRepository) List(ctx context.Context) ([]*domain.SystemProduct, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var rows []*models.SystemProduct
	if err := db.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}

	out := make([]*domain.SystemProduct, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	return out, nil
}

// GetByID gets a product by ID
func (r *systemRepository) GetByID(ctx context.Context, id string) (*domain.SystemProduct, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var row models.SystemProduct
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return row.ToDomain(), nil
}

// Create creates a new product
func (r *systemRepository) Create(ctx context.Context, product *domain.SystemProduct) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	return translateError(db.Create(models.SystemProductFromDomain(product)).Error)
}

// Update updates a product
func (r *systemRepository) Update(ctx context.Context, product *domain.SystemProduct) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	return translateError(db.Save(models.SystemProductFromDomain(product)).Error)
}

// Delete deletes a product. Requests keep their system_name snapshot.
func (r *systemRepository) Delete(ctx context.Context, id string) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	return affected(db.Where("id = ?", id).Delete(&models.SystemProduct{}))
}
