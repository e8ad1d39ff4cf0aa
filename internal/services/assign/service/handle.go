package service

import (
	"context"
	"fmt"

	"civicroute/internal/platform/logger"

	dom "civicroute/internal/services/assign/domain"
	auditdom "civicroute/internal/services/audit/domain"
	authdom "civicroute/internal/services/authorities/domain"
	issuedom "civicroute/internal/services/issues/domain"
)

// handleJob drives one issue through resolve, persist, notify, audit.
// The outcome is written exactly once: a job whose issue already carries an
// assignment method is a duplicate trigger and completes without touching it.
// Infra failures requeue with backoff until MaxAttempts, then the job is
// terminated with an error outcome so the issue is not stuck silently
func (s *Svc) handleJob(ctx context.Context, j dom.Job) error {
	log := logger.C(ctx)

	issue, err := s.ports.Issues.Get(ctx, j.IssueID)
	if err != nil {
		return s.fail(ctx, j, fmt.Sprintf("load issue: %v", err))
	}
	if issue == nil {
		// row vanished between enqueue and lease; nothing to assign
		return s.repo.Complete(ctx, j.ID)
	}
	if issue.AssignmentMethod != "" {
		return s.repo.Complete(ctx, j.ID)
	}

	out := s.ports.Resolver.Resolve(ctx, *issue)

	if err := s.ports.Assignments.WriteAssignment(ctx, issue.ID, issuedom.Assignment{
		AuthorityID: out.AuthorityID,
		Method:      string(out.Method),
		Error:       out.Err,
	}); err != nil {
		return s.fail(ctx, j, fmt.Sprintf("write assignment: %v", err))
	}

	if out.Assigned() {
		s.notify(ctx, *issue, out.AuthorityID)
	}

	s.audit(ctx, *issue, out)

	log.Info().
		Str("issue_id", issue.ID).
		Str("authority_id", out.AuthorityID).
		Str("method", string(out.Method)).
		Msg("assignment persisted")
	return s.repo.Complete(ctx, j.ID)
}

// notify is best effort; delivery problems never unwind a persisted assignment
func (s *Svc) notify(ctx context.Context, issue issuedom.Issue, authorityID string) {
	log := logger.C(ctx)

	authority, err := s.ports.Authorities.Get(ctx, authorityID)
	if err != nil {
		log.Warn().Err(err).Str("authority_id", authorityID).Msg("load authority for notify failed")
		return
	}
	if authority == nil {
		log.Warn().Str("authority_id", authorityID).Msg("assigned authority missing at notify time")
		return
	}
	if _, err := s.ports.Dispatcher.Dispatch(ctx, *authority, issue); err != nil {
		log.Warn().Err(err).Str("authority_id", authorityID).Msg("notification dispatch failed")
	}
}

func (s *Svc) audit(ctx context.Context, issue issuedom.Issue, out dom.Outcome) {
	rec := auditdom.Record{
		IssueID:     issue.ID,
		AuthorityID: out.AuthorityID,
		Method:      string(out.Method),
		Pincode:     issue.Pincode,
		Address:     issue.Address,
	}
	if issue.Latitude != nil {
		rec.Latitude = *issue.Latitude
	}
	if issue.Longitude != nil {
		rec.Longitude = *issue.Longitude
	}
	s.ports.Audit.Record(ctx, rec)
}

// fail requeues with backoff, or terminates the job with an error outcome
// once the attempt budget is spent
func (s *Svc) fail(ctx context.Context, j dom.Job, msg string) error {
	if j.Attempts+1 >= s.maxAttempts() {
		log := logger.C(ctx)
		log.Error().Str("issue_id", j.IssueID).Str("cause", msg).Msg("assignment attempts exhausted")

		// best effort terminal marker; if even this write fails the job
		// still completes so the queue cannot wedge on one poisoned row
		if err := s.ports.Assignments.WriteAssignment(ctx, j.IssueID, issuedom.Assignment{
			AuthorityID: authdom.UnassignedID,
			Method:      string(dom.MethodError),
			Error:       msg,
		}); err != nil {
			log.Error().Err(err).Str("issue_id", j.IssueID).Msg("terminal assignment write failed")
		}

		// the trail records terminal failures too; the sink is independent
		// of the store that just failed. Issue context is best effort
		issue := issuedom.Issue{ID: j.IssueID}
		if loaded, lerr := s.ports.Issues.Get(ctx, j.IssueID); lerr == nil && loaded != nil {
			issue = *loaded
		}
		s.audit(ctx, issue, dom.Outcome{
			AuthorityID: authdom.UnassignedID,
			Method:      dom.MethodError,
			Err:         msg,
		})

		return s.repo.Complete(ctx, j.ID)
	}
	return s.repo.Requeue(ctx, j.ID, msg, nextAfter(j.Attempts, s.cfg.RetryBaseMs))
}

func (s *Svc) maxAttempts() int {
	if s.cfg.MaxAttempts <= 0 {
		return 10
	}
	return s.cfg.MaxAttempts
}
