package services

import (
	"context"
	"log"

	"seventour-backend/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// tokenPurgeSchedule runs the refresh-token cleanup every day at 03:00
const tokenPurgeSchedule = "0 3 * * *"

// MaintenanceService runs scheduled background jobs
type MaintenanceService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	scheduler        *cron.Cron
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(refreshTokenRepo repositories.RefreshTokenRepository) *MaintenanceService {
	return &MaintenanceService{
		refreshTokenRepo: refreshTokenRepo,
		scheduler:        cron.New(),
	}
}

// Start registers and launches the scheduled jobs
func (s *MaintenanceService) Start() error {
	if _, err := s.scheduler.AddFunc(tokenPurgeSchedule, s.purgeStaleTokens); err != nil {
		return err
	}

	s.scheduler.Start()
	log.Println("🚀 MaintenanceService started")
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs
func (s *MaintenanceService) Stop() {
	ctx := s.scheduler.Stop()
	<-ctx.Done()
	log.Println("🛑 MaintenanceService stopped")
}

// purgeStaleTokens removes expired and revoked refresh tokens
func (s *MaintenanceService) purgeStaleTokens() {
	deleted, err := s.refreshTokenRepo.DeleteExpired(context.Background())
	if err != nil {
		log.Printf("❌ Token purge error: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("🗑️ Purged %d stale refresh tokens", deleted)
	}
}
