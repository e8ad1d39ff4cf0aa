// Package repo provides the assignment queue repository
package repo

import (
	"context"
	"time"

	"civicroute/internal/modkit/repokit"
	"civicroute/internal/services/assign/domain"

	"github.com/google/uuid"
)

// Repo is the queue persistence surface used by the worker
type Repo interface {
	// Lease claims up to limit ready jobs; leaseFor defines the TTL.
	// Expired leases are reclaimable so a crashed worker cannot strand a job
	Lease(ctx context.Context, workerID string, limit int, leaseFor time.Duration) ([]domain.Job, error)

	// Complete deletes a finished job
	Complete(ctx context.Context, jobID string) error

	// Requeue re-schedules a job after an infra failure and clears the lease
	Requeue(ctx context.Context, jobID string, lastErr string, nextAttemptAt time.Time) error
}

type (
	// PG is a Postgres binder for the assignment queue
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

var _ Repo = (*queries)(nil)

// Lease implements Repo
func (r *queries) Lease(
	ctx context.Context,
	workerID string,
	limit int,
	leaseFor time.Duration,
) ([]domain.Job, error) {
	if workerID == "" {
		workerID = uuid.NewString()
	}
	const sqlq = `
        WITH ready AS (
            SELECT id
              FROM assignment_jobs
             WHERE (leased_by IS NULL OR lease_expires_at <= now())
               AND next_attempt_at <= now()
             ORDER BY next_attempt_at ASC
             LIMIT $1
             FOR UPDATE SKIP LOCKED
        ), upd AS (
            UPDATE assignment_jobs j
               SET leased_by = $2,
                   lease_expires_at = now() + $3::interval,
                   updated_at = now()
             WHERE j.id IN (SELECT id FROM ready)
            RETURNING j.*
        )
        SELECT id::text, issue_id::text, attempts,
               COALESCE(last_error, '') AS last_error,
               COALESCE(leased_by, $2) AS leased_by,
               created_at, updated_at
          FROM upd
    `
	rows, err := r.q.Query(ctx, sqlq, limit, workerID, leaseFor.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Job
	for rows.Next() {
		var j domain.Job
		if err := rows.Scan(
			&j.ID, &j.IssueID, &j.Attempts,
			&j.LastError, &j.LeasedBy,
			&j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// Complete implements Repo
func (r *queries) Complete(ctx context.Context, jobID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM assignment_jobs WHERE id = $1`, jobID)
	return err
}

// Requeue implements Repo
func (r *queries) Requeue(ctx context.Context, jobID, lastErr string, nextAttemptAt time.Time) error {
	const sqlq = `
        UPDATE assignment_jobs
           SET attempts         = attempts + 1,
               last_error       = NULLIF($2, ''),
               next_attempt_at  = $3,
               leased_by        = NULL,
               lease_expires_at = NULL,
               updated_at       = now()
         WHERE id = $1
    `
	_, err := r.q.Exec(ctx, sqlq, jobID, lastErr, nextAttemptAt)
	return err
}
