package domain

import "context"

// RecorderPort appends assignment outcomes to the audit trail
// Record is fire and forget, sink failures are logged and never propagated
// to the caller, the assignment pipeline must not stall on the trail
type RecorderPort interface {
	Record(ctx context.Context, rec Record)
}
