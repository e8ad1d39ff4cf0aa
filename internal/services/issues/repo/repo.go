// Package repo provides Postgres bindings for the issues service
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"civicroute/internal/modkit/repokit"
	"civicroute/internal/services/issues/domain"
)

// Repo is the issues persistence surface used by the service layer
type Repo interface {
	Insert(ctx context.Context, i domain.Issue) error
	Get(ctx context.Context, id string) (*domain.Issue, error)
	WriteAssignment(ctx context.Context, issueID string, a domain.Assignment) error
	Reassign(ctx context.Context, issueID, newAuthorityID, adminID string) (bool, error)

	// EnqueueAssignment queues the issue for the assigner. Called inside the
	// same transaction as Insert so a created issue always has a job
	EnqueueAssignment(ctx context.Context, issueID string) error
}

type (
	// PG is a Postgres binder for the issues repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// Compile-time assertion: queries implements Repo
var _ Repo = (*queries)(nil)

// NewPG returns a Postgres binder for the issues repo
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Insert stores a freshly created issue
func (r *queries) Insert(ctx context.Context, i domain.Issue) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO issues (
			id, latitude, longitude, pincode, address, image_url,
			reported_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, i.ID, i.Latitude, i.Longitude, i.Pincode, i.Address, i.ImageURL, i.ReportedBy, i.CreatedAt)
	return err
}

// Get returns one issue by id, or nil when absent
func (r *queries) Get(ctx context.Context, id string) (*domain.Issue, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, latitude, longitude,
		       COALESCE(pincode, ''), COALESCE(address, ''), COALESCE(image_url, ''),
		       COALESCE(reported_by, ''), created_at,
		       COALESCE(assigned_authority, ''), assigned_at,
		       COALESCE(assignment_method, ''), COALESCE(assignment_error, ''),
		       reassigned_at, COALESCE(reassigned_by, '')
		FROM issues
		WHERE id = $1
	`, id)

	var i domain.Issue
	err := row.Scan(
		&i.ID, &i.Latitude, &i.Longitude,
		&i.Pincode, &i.Address, &i.ImageURL,
		&i.ReportedBy, &i.CreatedAt,
		&i.AssignedAuthority, &i.AssignedAt,
		&i.AssignmentMethod, &i.AssignmentError,
		&i.ReassignedAt, &i.ReassignedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, stdsql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

// WriteAssignment persists the outcome of one resolution run
func (r *queries) WriteAssignment(ctx context.Context, issueID string, a domain.Assignment) error {
	_, err := r.q.Exec(ctx, `
		UPDATE issues
		SET assigned_authority = $2,
		    assigned_at        = NOW(),
		    assignment_method  = $3,
		    assignment_error   = NULLIF($4, '')
		WHERE id = $1
	`, issueID, a.AuthorityID, a.Method, a.Error)
	return err
}

// Reassign overwrites the assignment directly, bypassing the cascade.
// Returns false when the issue does not exist
func (r *queries) Reassign(ctx context.Context, issueID, newAuthorityID, adminID string) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE issues
		SET assigned_authority = $2,
		    reassigned_at      = NOW(),
		    reassigned_by      = $3
		WHERE id = $1
	`, issueID, newAuthorityID, adminID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// EnqueueAssignment creates the assignment job for a new issue.
// ON CONFLICT keeps retried creations idempotent
func (r *queries) EnqueueAssignment(ctx context.Context, issueID string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO assignment_jobs (issue_id)
		VALUES ($1)
		ON CONFLICT (issue_id) DO NOTHING
	`, issueID)
	return err
}
