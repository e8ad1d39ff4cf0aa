// Package service implements the fire and forget audit recorder
package service

import (
	"context"
	"time"

	"civicroute/internal/platform/logger"
	"civicroute/internal/services/audit/repo"

	dom "civicroute/internal/services/audit/domain"

	"github.com/google/uuid"
)

// Service writes assignment records to the trail without ever failing the caller
type Service struct {
	sink repo.Sink
	log  logger.Logger
}

var _ dom.RecorderPort = (*Service)(nil)

// New constructs the recorder
func New(sink repo.Sink) *Service {
	return &Service{
		sink: sink,
		log:  *logger.Named("audit"),
	}
}

// Record appends one entry. Failures are logged at error level and dropped,
// there is no retry and no signal back to the assignment pipeline
func (s *Service) Record(ctx context.Context, rec dom.Record) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}
	if err := s.sink.Append(ctx, []dom.Record{rec}); err != nil {
		s.log.Error().
			Err(err).
			Str("issue_id", rec.IssueID).
			Str("method", rec.Method).
			Msg("audit append failed")
	}
}
