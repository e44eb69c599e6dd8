package config

import (
	"errors"
	"log"

	"mandoubi/internal/adapters/persistence/models"
	"mandoubi/internal/core/domain"
	"mandoubi/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedDirector(); err != nil {
		return err
	}

	if s.cfg.IsDev() {
		if err := s.seedSystems(); err != nil {
			log.Printf("⚠️ System seeder skipped: %v", err)
		}
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedDirector creates the director account when no ADMIN exists yet
func (s *Seeder) seedDirector() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	secret := getEnv("SEED_ADMIN_PASSWORD", "admin123")
	if s.cfg.IsProd() && secret == "admin123" {
		return errors.New("SEED_ADMIN_PASSWORD must be set to seed the director in prod mode")
	}
	hashed, err := password.Hash(secret)
	if err != nil {
		return err
	}

	director := models.UserFromDomain(&domain.User{
		ID:       uuid.NewString(),
		Name:     "General Manager",
		Username: getEnv("SEED_ADMIN_USERNAME", "admin1"),
		Email:    "admin@app.com",
		Password: hashed,
		Role:     domain.RoleAdmin,
		Status:   domain.UserActive,
	})
	if err := s.db.Create(director).Error; err != nil {
		return err
	}

	log.Printf("✅ Director account created: %s", director.Username)
	return nil
}

// seedSystems adds sample products to an empty catalogue (dev only)
func (s *Seeder) seedSystems() error {
	var count int64
	if err := s.db.Model(&models.SystemProduct{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []*domain.SystemProduct{
		{
			Name:        "School Management",
			Description: "Enrolment, grades and fees for private schools",
			Prices:      domain.TierTable{domain.TierStandard: 500000, domain.TierPlus: 750000, domain.TierPremium: 1000000},
			Commission:  domain.TierTable{domain.TierStandard: 50000, domain.TierPlus: 75000, domain.TierPremium: 100000},
		},
		{
			Name:        "Clinic Management",
			Description: "Appointments, patient files and billing",
			Prices:      domain.TierTable{domain.TierStandard: 400000, domain.TierPlus: 600000, domain.TierPremium: 900000},
			Commission:  domain.TierTable{domain.TierStandard: 40000, domain.TierPlus: 60000, domain.TierPremium: 90000},
		},
		{
			Name:        "Point of Sale",
			Description: "Sales, stock and invoices for shops",
			Prices:      domain.TierTable{domain.TierStandard: 250000, domain.TierPlus: 400000, domain.TierPremium: 600000},
			Commission:  domain.TierTable{domain.TierStandard: 25000, domain.TierPlus: 40000, domain.TierPremium: 60000},
		},
	}

	for _, sample := range samples {
		sample.ID = uuid.NewString()
		if err := s.db.Create(models.SystemProductFromDomain(sample)).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d sample systems", len(samples))
	return nil
}
