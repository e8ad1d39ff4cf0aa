package module

import (
	"time"

	"civicroute/internal/adapters/push"
	"civicroute/internal/platform/config"
)

// FromConfig reads PUSH_ values into push client options
func FromConfig(cfg config.Conf) push.Options {
	c := cfg.Prefix("PUSH_")
	return push.Options{
		BaseURL:    c.MayString("BASE_URL", ""),
		ServerKey:  c.MayString("SERVER_KEY", ""),
		Timeout:    c.MayDuration("TIMEOUT", 10*time.Second),
		MaxRetries: c.MayInt("MAX_RETRIES", 3),
		RetryBase:  c.MayDuration("RETRY_BASE", 500*time.Millisecond),
	}
}
