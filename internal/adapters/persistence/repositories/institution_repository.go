package repositories

import (
	"context"
	"strings"
	"time"

	"mandoubi/internal/adapters/persistence/models"
	"mandoubi/internal/core/domain"

	"gorm.io/gorm"
)

// institutionRepository implements InstitutionRepository interface
type institutionRepository struct {
	store
}

// NewInstitutionRepository creates a new institution repository
func NewInstitutionRepository(db *gorm.DB, timeout time.Duration) InstitutionRepository {
	return &institutionRepository{store{db: db, timeout: timeout}}
}

// List lists institutions, most recently visited first
func (r *institutionRepository) List(ctx context.Context) ([]*domain.Institution, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var rows []*models.Institution
	if err := db.Order("last_visit_date DESC").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return toInstitutions(rows), nil
}

// Search matches the term against name or city, case-insensitive
func (r *institutionRepository) Search(ctx context.Context, term string) ([]*domain.Institution, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"

	var rows []*models.Institution
	err := db.
		Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ?", pattern, pattern).
		Order("last_visit_date DESC").
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toInstitutions(rows), nil
}

// GetByName gets an institution by exact name
func (r *institutionRepository) GetByName(ctx context.Context, name string) (*domain.Institution, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var row models.Institution
	if err := db.Where("name = ?", name).First(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return row.ToDomain(), nil
}

// Create creates a new institution. A duplicate name yields ErrDuplicateEntry.
func (r *institutionRepository) Create(ctx context.Context, inst *domain.Institution) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	return translateError(db.Create(models.InstitutionFromDomain(inst)).Error)
}

// Update updates an institution
func (r *institutionRepository) Update(ctx context.Context, inst *domain.Institution) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	return translateError(db.Save(models.InstitutionFromDomain(inst)).Error)
}

// Delete deletes an institution
func (r *institutionRepository) Delete(ctx context.Context, id string) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	return affected(db.Where("id = ?", id).Delete(&models.Institution{}))
}

func toInstitutions(rows []*models.Institution) []*domain.Institution {
	out := make([]*domain.Institution, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	return out
}
