package service

import (
	"context"
	"time"

	"civicroute/internal/platform/logger"
)

// Run starts the worker loop that drains the assignment queue
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("assigner")
	sem := make(chan struct{}, max(1, s.cfg.Concurrency))
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// lease a small batch; process concurrently with a simple semaphore
			jobs, err := s.repo.Lease(ctx, "assigner", s.cfg.QueueTakeBatch, s.leaseFor())
			if err != nil {
				log.Error().Err(err).Msg("lease assignment jobs failed")
				continue
			}
			for i := range jobs {
				sem <- struct{}{}
				j := jobs[i]
				go func() {
					defer func() { <-sem }()
					if err := s.handleJob(ctx, j); err != nil {
						log.Warn().Err(err).Str("job_id", j.ID).Msg("job failed")
					}
				}()
			}
		}
	}
}

func (s *Svc) leaseFor() time.Duration {
	if s.cfg.LeaseFor <= 0 {
		return 60 * time.Second
	}
	return s.cfg.LeaseFor
}
