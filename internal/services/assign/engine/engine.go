// Package engine implements the authority resolution cascade.
//
// Tiers run strictly in order and the first match wins: pincode, polygon
// containment, nearest center within the distance cap, then the
// jurisdiction-keyword fallback. A tier's own lookup or geometry failure is
// logged and treated as "no match"; only the missing-coordinates
// precondition (or a panic in a strategy) surfaces as the error outcome
package engine

import (
	"context"
	"fmt"

	"civicroute/internal/platform/logger"

	dom "civicroute/internal/services/assign/domain"
	authdom "civicroute/internal/services/authorities/domain"
	issuedom "civicroute/internal/services/issues/domain"
)

// Config tunes the cascade
type Config struct {
	// MaxDistanceKm caps the distance tier; the comparison is inclusive
	MaxDistanceKm float64

	// LevelHint is the name prefix that marks jurisdiction-level authorities
	// in the fallback tier
	LevelHint string
}

func (c Config) withDefaults() Config {
	if c.MaxDistanceKm <= 0 {
		c.MaxDistanceKm = 50
	}
	if c.LevelHint == "" {
		c.LevelHint = "State"
	}
	return c
}

// strategy is one tier of the cascade. attempt returns the matched authority
// id, or "" for no match; errors are recovered by the engine and demoted to
// a tier no-match
type strategy interface {
	method() dom.Method
	attempt(ctx context.Context, issue issuedom.Issue) (string, error)
}

// Engine runs the ordered strategy cascade
type Engine struct {
	tiers []strategy
	log   logger.Logger
}

// Compile-time assertion: Engine implements the resolver port
var _ dom.ResolverPort = (*Engine)(nil)

// New constructs an Engine over the given authority store
func New(store authdom.ReaderPort, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		tiers: []strategy{
			pincodeStrategy{store: store},
			polygonStrategy{store: store},
			distanceStrategy{store: store, maxKm: cfg.MaxDistanceKm},
			jurisdictionStrategy{store: store, levelHint: cfg.LevelHint},
		},
		log: *logger.Named("assign-engine"),
	}
}

// Resolve runs the cascade for one issue and always produces an Outcome.
// Re-running with unchanged inputs and unchanged authority data produces the
// same outcome
func (e *Engine) Resolve(ctx context.Context, issue issuedom.Issue) (out dom.Outcome) {
	// an unexpected fault in a strategy must not crash the handler; it
	// becomes the error outcome instead
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Str("issue_id", issue.ID).Any("panic", r).Msg("resolution panicked")
			out = dom.Errored(fmt.Sprintf("unexpected fault: %v", r))
		}
	}()

	if !issue.HasCoordinates() {
		e.log.Warn().Str("issue_id", issue.ID).Msg("issue missing coordinates")
		return dom.Errored("issue missing coordinates")
	}

	for _, tier := range e.tiers {
		id, err := tier.attempt(ctx, issue)
		if err != nil {
			// tier-local failure is a no-match, never fatal
			e.log.Warn().Err(err).
				Str("issue_id", issue.ID).
				Str("tier", string(tier.method())).
				Msg("tier failed, continuing cascade")
			continue
		}
		if id != "" {
			e.log.Info().
				Str("issue_id", issue.ID).
				Str("authority_id", id).
				Str("tier", string(tier.method())).
				Msg("issue resolved")
			return dom.Outcome{AuthorityID: id, Method: tier.method()}
		}
	}

	e.log.Info().Str("issue_id", issue.ID).Msg("cascade exhausted, issue unassigned")
	return dom.Unassigned()
}
