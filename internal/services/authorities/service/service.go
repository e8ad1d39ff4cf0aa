// Package service provides the authorities service implementation
package service

import (
	"context"
	"strings"

	perr "civicroute/internal/platform/errors"

	"civicroute/internal/modkit/repokit"
	dom "civicroute/internal/services/authorities/domain"
	"civicroute/internal/services/authorities/repo"
)

// Service implements domain.ReaderPort and domain.WriterPort against the PG repo
type Service struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Repo]
	repo   repo.Repo
}

// New constructs the authorities service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Service {
	return &Service{
		db:     db,
		binder: binder,
		repo:   binder.Bind(db),
	}
}

// FindByPincode implements domain.ReaderPort
func (s *Service) FindByPincode(ctx context.Context, code string) (*dom.Authority, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	return s.repo.FindByPincode(ctx, code)
}

// ListWithBoundary implements domain.ReaderPort
func (s *Service) ListWithBoundary(ctx context.Context) ([]dom.Authority, error) {
	return s.repo.ListWithBoundary(ctx)
}

// ListWithCenter implements domain.ReaderPort
func (s *Service) ListWithCenter(ctx context.Context) ([]dom.Authority, error) {
	return s.repo.ListWithCenter(ctx)
}

// FindByJurisdiction implements domain.ReaderPort
func (s *Service) FindByJurisdiction(ctx context.Context, code, levelHint string) (*dom.Authority, error) {
	if strings.TrimSpace(code) == "" {
		return nil, nil
	}
	return s.repo.FindByJurisdiction(ctx, code, levelHint)
}

// Get implements domain.ReaderPort
func (s *Service) Get(ctx context.Context, id string) (*dom.Authority, error) {
	if id == "" || id == dom.UnassignedID {
		return nil, nil
	}
	return s.repo.Get(ctx, id)
}

// Upsert implements domain.WriterPort
func (s *Service) Upsert(ctx context.Context, a dom.Authority) error {
	if strings.TrimSpace(a.ID) == "" {
		return perr.InvalidArgf("authority id required")
	}
	if strings.TrimSpace(a.Name) == "" {
		return perr.InvalidArgf("authority name required")
	}
	if a.ID == dom.UnassignedID {
		return perr.InvalidArgf("authority id %q is reserved", dom.UnassignedID)
	}
	return s.repo.Upsert(ctx, a)
}

// UpdateEndpoints implements domain.WriterPort
func (s *Service) UpdateEndpoints(ctx context.Context, id string, endpoints []string) error {
	if id == "" {
		return perr.InvalidArgf("authority id required")
	}
	return s.repo.UpdateEndpoints(ctx, id, endpoints)
}
