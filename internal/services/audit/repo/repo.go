// Package repo provides the columnar audit sink
package repo

import (
	"context"
	"errors"

	"civicroute/internal/platform/store"
	"civicroute/internal/services/audit/domain"
)

// table holds the append-only assignment trail, ordered by (recorded_at, issue_id)
const table = "assignment_log"

// Sink persists audit records
type Sink interface {
	Append(ctx context.Context, recs []domain.Record) error
}

type chSink struct {
	ch store.Clickhouse
}

// NewCH returns a sink backed by the clickhouse seam
func NewCH(ch store.Clickhouse) Sink { return &chSink{ch: ch} }

var _ Sink = (*chSink)(nil)

// Append writes records in column order matching the assignment_log schema
func (s *chSink) Append(ctx context.Context, recs []domain.Record) error {
	if s.ch == nil {
		return errors.New("audit: clickhouse seam not configured")
	}
	if len(recs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{
			r.ID,
			r.IssueID,
			r.AuthorityID,
			r.Method,
			r.Pincode,
			r.Latitude,
			r.Longitude,
			r.Address,
			r.RecordedAt,
		})
	}
	return s.ch.Insert(ctx, table, rows)
}
