package domain

import "context"

// ReaderPort reads issues
type ReaderPort interface {
	Get(ctx context.Context, id string) (*Issue, error)
}

// WriterPort creates issues and applies admin overrides.
// Create also enqueues the assignment job atomically with the insert; that
// is the creation-event binding the assigner consumes. Reassign bypasses the
// cascade entirely
type WriterPort interface {
	Create(ctx context.Context, in CreateInput) (Issue, error)
	Reassign(ctx context.Context, issueID, newAuthorityID, adminID string) error
}

// AssignmentWriterPort is consumed by the assigner to persist outcomes
type AssignmentWriterPort interface {
	WriteAssignment(ctx context.Context, issueID string, a Assignment) error
}
