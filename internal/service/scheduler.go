package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Scheduler runs the reconciler on a fixed interval, standing in for the
// cron-triggered sync command in headless deployments. One run executes at a
// time; the loop itself is the serialization point.
type Scheduler struct {
	sync     SyncService
	interval time.Duration
	log      zerolog.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	running bool
	mu      sync.Mutex
}

// NewScheduler creates a sync scheduler; interval 0 disables it
func NewScheduler(syncSvc SyncService, interval time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		sync:     syncSvc,
		interval: interval,
		log:      log.With().Str("component", "scheduler").Logger(),
	}
}

// Start runs the scheduling loop until the context is cancelled or Stop is
// called. Returns immediately when the scheduler is disabled.
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.log.Info().Msg("Sync scheduler disabled")
		return
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.log.Info().Dur("interval", s.interval).Msg("Sync scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			s.log.Info().Msg("Sync scheduler stopping")
			return
		case <-ticker.C:
			result := s.sync.Run(s.ctx)
			if !result.Success {
				s.log.Error().Str("error", result.Error).Msg("Scheduled sync failed")
			}
		}
	}
}

// Stop halts the scheduling loop
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.cancel()
	s.running = false
	s.log.Info().Msg("Sync scheduler stopped")
}
