package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"mandoubi/internal/adapters/persistence/repositories"
	"mandoubi/internal/core/domain"

	"github.com/google/uuid"
)

// InstitutionService handles institution records and their sync with requests
type InstitutionService struct {
	instRepo repositories.InstitutionRepository
	now      func() time.Time
}

// NewInstitutionService creates a new institution service
func NewInstitutionService(instRepo repositories.InstitutionRepository) *InstitutionService {
	return &InstitutionService{instRepo: instRepo, now: time.Now}
}

// LogVisitInput represents a visit logged by an agent
type LogVisitInput struct {
	Name    string `json:"name" validate:"required,max=191"`
	City    string `json:"city" validate:"max=100"`
	Address string `json:"address" validate:"max=255"`
}

// List lists institutions, filtered by name or city when search is set
func (s *InstitutionService) List(ctx context.Context, search string) ([]*domain.Institution, error) {
	if strings.TrimSpace(search) == "" {
		return s.instRepo.List(ctx)
	}
	return s.instRepo.Search(ctx, search)
}

// Delete removes an institution
func (s *InstitutionService) Delete(ctx context.Context, id string) error {
	return s.instRepo.Delete(ctx, id)
}

// LogVisit records that agent visited the named institution today.
// A new name starts as INTERESTED; a known one keeps its status.
func (s *InstitutionService) LogVisit(ctx context.Context, agent *domain.User, input *LogVisitInput) (*domain.Institution, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	city := strings.TrimSpace(input.City)
	if city == "" {
		city = domain.CityFromLocation(input.Address)
	}

	return s.upsert(ctx, name, func(inst *domain.Institution, created bool) {
		inst.LastVisitedBy = agent.Name
		inst.LastVisitDate = s.today()
		if created {
			inst.City = city
			inst.Address = strings.TrimSpace(input.Address)
			inst.Status = domain.InstitutionInterested
			return
		}
		if input.City != "" {
			inst.City = city
		}
		if input.Address != "" {
			inst.Address = strings.TrimSpace(input.Address)
		}
	})
}

// SyncFromRequest reconciles the institution named by req with the request outcome.
// Running it again with the same request leaves exactly one row in the same state.
func (s *InstitutionService) SyncFromRequest(ctx context.Context, req *domain.SalesRequest) (*domain.Institution, error) {
	return s.upsert(ctx, req.InstitutionName, func(inst *domain.Institution, created bool) {
		if created {
			inst.City = domain.CityFromLocation(req.Location)
			inst.Address = req.Location
		}
		inst.LastVisitedBy = req.AgentName
		inst.LastVisitDate = s.today()
		inst.Status = domain.InstitutionStatusFor(req.Status)
	})
}

// upsert loads the institution by exact name, or prepares a new one, applies mutate
// and writes it back. Existence is checked right before the insert; losing an insert
// race to a concurrent sync falls back to updating the winner's row.
func (s *InstitutionService) upsert(ctx context.Context, name string, mutate func(inst *domain.Institution, created bool)) (*domain.Institution, error) {
	existing, err := s.instRepo.GetByName(ctx, name)
	switch {
	case err == nil:
		mutate(existing, false)
		return existing, s.instRepo.Update(ctx, existing)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	inst := &domain.Institution{
		ID:   uuid.NewString(),
		Name: name,
	}
	mutate(inst, true)

	err = s.instRepo.Create(ctx, inst)
	if !errors.Is(err, domain.ErrDuplicateEntry) {
		return inst, err
	}

	existing, err = s.instRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	mutate(existing, false)
	return existing, s.instRepo.Update(ctx, existing)
}

func (s *InstitutionService) today() string {
	return s.now().Format(domain.DateLayout)
}
