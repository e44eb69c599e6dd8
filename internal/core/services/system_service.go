package services

import (
	"context"
	"strings"

	"mandoubi/internal/adapters/persistence/repositories"
	"mandoubi/internal/core/domain"

	"github.com/google/uuid"
)

// SystemService handles the product catalogue
type SystemService struct {
	systemRepo repositories.SystemRepository
}

// NewSystemService creates a new system service
func NewSystemService(systemRepo repositories.SystemRepository) *SystemService {
	return &SystemService{systemRepo: systemRepo}
}

// SystemInput represents a product create or replace
type SystemInput struct {
	Name        string           `json:"name" validate:"required,max=100"`
	Description string           `json:"description"`
	Prices      domain.TierTable `json:"prices" validate:"required"`
	Commission  domain.TierTable `json:"commission" validate:"required"`
}

func (in *SystemInput) check() error {
	if strings.TrimSpace(in.Name) == "" || !in.Prices.Complete() || !in.Commission.Complete() {
		return domain.ErrInvalidInput
	}
	return nil
}

// List lists every product
func (s *SystemService) List(ctx context.Context) ([]*domain.SystemProduct, error) {
	return s.systemRepo.List(ctx)
}

// Get gets a product by ID
func (s *SystemService) Get(ctx context.Context, id string) (*domain.SystemProduct, error) {
	return s.systemRepo.GetByID(ctx, id)
}

// Create adds a product
func (s *SystemService) Create(ctx context.Context, input *SystemInput) (*domain.SystemProduct, error) {
	if err := input.check(); err != nil {
		return nil, err
	}

	product := &domain.SystemProduct{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Prices:      input.Prices,
		Commission:  input.Commission,
	}
	if err := s.systemRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update replaces a product's name, description and tier tables.
// Existing requests keep their recorded system_name.
func (s *SystemService) Update(ctx context.Context, id string, input *SystemInput) (*domain.SystemProduct, error) {
	if err := input.check(); err != nil {
		return nil, err
	}

	product, err := s.systemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.Prices = input.Prices
	product.Commission = input.Commission

	if err := s.systemRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product
func (s *SystemService) Delete(ctx context.Context, id string) error {
	return s.systemRepo.Delete(ctx, id)
}
