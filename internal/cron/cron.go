package cron

import (
	"context"
	"log"
	"time"

	"github.com/makara-hq/portfolio-backend/internal/service"
	"github.com/robfig/cron/v3"
)

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron   *cron.Cron
	states service.StateStore
}

// NewScheduler creates a new scheduler
func NewScheduler(states service.StateStore) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		states: states,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Purge expired OAuth states every 10 minutes. A no-op for the
	// Redis-backed store, which expires keys on its own.
	s.cron.AddFunc("*/10 * * * *", func() {
		s.purgeExpiredStates()
	})

	s.cron.Start()
	log.Println("[Cron] Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[Cron] Scheduler stopped")
}

func (s *Scheduler) purgeExpiredStates() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if purged := s.states.PurgeExpired(ctx); purged > 0 {
		log.Printf("[Cron] Purged %d expired OAuth states", purged)
	}
}
