// Package service provides the issues service implementation
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	perr "civicroute/internal/platform/errors"

	"civicroute/internal/modkit/repokit"
	authdom "civicroute/internal/services/authorities/domain"
	dom "civicroute/internal/services/issues/domain"
	"civicroute/internal/services/issues/repo"
)

// Service implements the issues ports against the PG repo
type Service struct {
	db          repokit.TxRunner
	binder      repokit.Binder[repo.Repo]
	repo        repo.Repo
	authorities authdom.ReaderPort
}

// New constructs the issues service. authorities may be nil in contexts that
// never reassign (the assigner wires it out)
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], authorities authdom.ReaderPort) *Service {
	return &Service{
		db:          db,
		binder:      binder,
		repo:        binder.Bind(db),
		authorities: authorities,
	}
}

// Create stores the issue and enqueues its assignment job in one transaction
func (s *Service) Create(ctx context.Context, in dom.CreateInput) (dom.Issue, error) {
	issue := dom.Issue{
		ID:         uuid.NewString(),
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
		Pincode:    strings.TrimSpace(in.Pincode),
		Address:    strings.TrimSpace(in.Address),
		ImageURL:   strings.TrimSpace(in.ImageURL),
		ReportedBy: strings.TrimSpace(in.ReportedBy),
		CreatedAt:  time.Now().UTC(),
	}

	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		if err := r.Insert(ctx, issue); err != nil {
			return err
		}
		return r.EnqueueAssignment(ctx, issue.ID)
	})
	if err != nil {
		return dom.Issue{}, perr.Wrap(err, perr.ErrorCodeDB, "create issue")
	}
	return issue, nil
}

// Get implements domain.ReaderPort
func (s *Service) Get(ctx context.Context, id string) (*dom.Issue, error) {
	if strings.TrimSpace(id) == "" {
		return nil, perr.InvalidArgf("issue id required")
	}
	return s.repo.Get(ctx, id)
}

// Reassign applies an admin override, bypassing the cascade. The target
// authority must exist; the issue must exist
func (s *Service) Reassign(ctx context.Context, issueID, newAuthorityID, adminID string) error {
	if strings.TrimSpace(issueID) == "" || strings.TrimSpace(newAuthorityID) == "" {
		return perr.InvalidArgf("issue id and authority id are required")
	}
	if s.authorities != nil {
		a, err := s.authorities.Get(ctx, newAuthorityID)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "lookup authority")
		}
		if a == nil {
			return perr.NotFoundf("authority %s not found", newAuthorityID)
		}
	}
	ok, err := s.repo.Reassign(ctx, issueID, newAuthorityID, adminID)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "reassign issue")
	}
	if !ok {
		return perr.NotFoundf("issue %s not found", issueID)
	}
	return nil
}

// WriteAssignment implements domain.AssignmentWriterPort
func (s *Service) WriteAssignment(ctx context.Context, issueID string, a dom.Assignment) error {
	return s.repo.WriteAssignment(ctx, issueID, a)
}
