package config

import (
	"log"

	"seventour-backend/internal/adapters/persistence/models"
	"seventour-backend/internal/pkg/password"
	"seventour-backend/internal/pkg/referral"

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

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedCountries(); err != nil {
		log.Printf("⚠️ Country seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds a default admin user.
// This is for development/testing only.
// In production, create the admin through a secure process.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        "admin@seventour.local",
		Password:     hashedPassword,
		FirstName:    "Admin",
		LastName:     "User",
		Role:         models.RoleAdmin,
		ReferralCode: referral.NewCode(),
		IsActive:     true,
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		coin := &models.GoldenCoin{UserID: admin.ID, Balance: 0}
		if err := tx.Create(coin).Error; err != nil {
			return err
		}
		log.Printf("✅ Admin user created: %s", admin.Email)
		return nil
	})
}

// starterCountries is a minimal catalog bootstrap for fresh databases
var starterCountries = []models.Country{
	{Name: "Thailand", CountryCode: "TH"},
	{Name: "Japan", CountryCode: "JP"},
	{Name: "Vietnam", CountryCode: "VN"},
	{Name: "Turkey", CountryCode: "TR"},
	{Name: "Georgia", CountryCode: "GE"},
	{Name: "Azerbaijan", CountryCode: "AZ"},
	{Name: "United Arab Emirates", CountryCode: "AE"},
	{Name: "Malaysia", CountryCode: "MY"},
	{Name: "Indonesia", CountryCode: "ID"},
	{Name: "Egypt", CountryCode: "EG"},
}

// seedCountries seeds the starter country catalog when the table is empty
func (s *Seeder) seedCountries() error {
	var count int64
	s.db.Model(&models.Country{}).Count(&count)
	if count > 0 {
		return nil
	}

	if err := s.db.Create(&starterCountries).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d starter countries", len(starterCountries))
	return nil
}
