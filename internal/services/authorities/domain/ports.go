package domain

import "context"

// ReaderPort is the lookup surface the resolution cascade consumes
type ReaderPort interface {
	// FindByPincode returns the first authority whose pincode set contains
	// code, or nil when none does. Ordering on overlap is store-defined
	FindByPincode(ctx context.Context, code string) (*Authority, error)

	// ListWithBoundary returns all authorities declaring a boundary ring,
	// in store order
	ListWithBoundary(ctx context.Context) ([]Authority, error)

	// ListWithCenter returns all authorities declaring a center point
	ListWithCenter(ctx context.Context) ([]Authority, error)

	// FindByJurisdiction returns a jurisdiction-level authority for the given
	// state code. levelHint filters on the name prefix (e.g. "State")
	FindByJurisdiction(ctx context.Context, code, levelHint string) (*Authority, error)

	// Get returns one authority by id, or nil when absent
	Get(ctx context.Context, id string) (*Authority, error)
}

// WriterPort mutates authorities. UpdateEndpoints is a full overwrite of the
// token set, never an incremental delete
type WriterPort interface {
	Upsert(ctx context.Context, a Authority) error
	UpdateEndpoints(ctx context.Context, id string, endpoints []string) error
}
