package domain

import (
	"context"

	issuedom "civicroute/internal/services/issues/domain"
)

// ResolverPort runs the tier cascade for one issue. It never returns an
// error: every failure mode is folded into the Outcome
type ResolverPort interface {
	Resolve(ctx context.Context, issue issuedom.Issue) Outcome
}

// WorkerPort is the assigner run loop
type WorkerPort interface {
	Run(ctx context.Context) error
}
