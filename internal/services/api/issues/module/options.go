package module

import (
	"strings"

	"civicroute/internal/platform/config"
)

// Options controls the issues API surface
type Options struct {
	// AdminTokens maps bearer token -> admin id
	AdminTokens map[string]string
}

// FromConfig reads ADMIN_TOKENS, "admin:token" pairs comma separated
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("ADMIN_")
	return Options{
		AdminTokens: parseAdminTokens(c.MayString("TOKENS", "")),
	}
}

func parseAdminTokens(csv string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(csv, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		admin, token, ok := strings.Cut(pair, ":")
		admin, token = strings.TrimSpace(admin), strings.TrimSpace(token)
		if !ok || admin == "" || token == "" {
			continue
		}
		out[token] = admin
	}
	return out
}
