package module

import (
	"time"

	"civicroute/internal/platform/config"
)

// Options controls the assigner worker and the cascade
type Options struct {
	Concurrency    int
	QueueTakeBatch int
	LeaseFor       time.Duration
	RetryBaseMs    int
	MaxAttempts    int

	MaxDistanceKm float64
	LevelHint     string
}

// FromConfig reads with ASSIGNER_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("ASSIGNER_")
	return Options{
		Concurrency:    c.MayInt("WORKER_CONCURRENCY", 4),
		QueueTakeBatch: c.MayInt("QUEUE_TAKE_BATCH", 64),
		LeaseFor:       c.MayDuration("LEASE_FOR", 60*time.Second),
		RetryBaseMs:    int(c.MayDuration("RETRY_BASE", 500*time.Millisecond).Milliseconds()),
		MaxAttempts:    c.MayInt("MAX_ATTEMPTS", 10),
		MaxDistanceKm:  c.MayFloat64("MAX_DISTANCE_KM", 50),
		LevelHint:      c.MayString("LEVEL_HINT", "State"),
	}
}
