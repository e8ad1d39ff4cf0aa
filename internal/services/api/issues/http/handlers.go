// Package http provides http transport for issues
package http

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"civicroute/internal/modkit/httpkit"
	perr "civicroute/internal/platform/errors"
	"civicroute/internal/platform/net/middleware"

	"civicroute/internal/services/api/issues/domain"
	issuedom "civicroute/internal/services/issues/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Reader issuedom.ReaderPort
	Writer issuedom.WriterPort
	Auth   middleware.AuthPort
}

// Register mounts the issues routes; the reassignment override is admin only
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.PostJSON[domain.CreateIssueInput](r, "/", h.create)
	httpkit.Get(r, "/{id}", h.get)

	httpkit.Protected(r, d.Auth, func(pr httpkit.Router) {
		httpkit.PostJSON[domain.ReassignInput](pr, "/reassign", h.reassign)
	})
}

type handlers struct{ deps Deps }

// swagger:route POST /issues Issues issuesCreate
// @Summary Report a civic issue
// @Tags Issues
// @Accept json
// @Produce json
// @Param payload body domain.CreateIssueInput true "Report"
// @Success 201 {object} domain.IssueOutput "created"
// @Failure 400 {object} httpkit.Envelope "validation error"
// @Router /issues [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateIssueInput) (any, error) {
	issue, err := h.deps.Writer.Create(r.Context(), issuedom.CreateInput{
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
		Pincode:    in.Pincode,
		Address:    in.Address,
		ImageURL:   in.ImageURL,
		ReportedBy: in.ReportedBy,
	})
	if err != nil {
		return nil, err
	}
	return httpkit.Created(toOutput(issue)), nil
}

// swagger:route GET /issues/{id} Issues issuesGet
// @Summary Fetch one issue with its assignment state
// @Tags Issues
// @Produce json
// @Param id path string true "Issue id"
// @Success 200 {object} domain.IssueOutput "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /issues/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return nil, perr.InvalidArgf("issue id required")
	}
	issue, err := h.deps.Reader.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, perr.NotFoundf("issue %q not found", id)
	}
	return toOutput(*issue), nil
}

// swagger:route POST /issues/reassign Issues issuesReassign
// @Summary Reassign an issue to a different authority
// @Tags Issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.ReassignInput true "Override"
// @Success 200 {object} domain.ReassignOutput "ok"
// @Failure 401 {object} httpkit.Envelope "unauthorized"
// @Failure 404 {object} httpkit.Envelope "unknown issue or authority"
// @Router /issues/reassign [post]
func (h *handlers) reassign(r *stdhttp.Request, in domain.ReassignInput) (any, error) {
	adminID, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	if err := h.deps.Writer.Reassign(r.Context(), in.IssueID, in.NewAuthorityID, adminID); err != nil {
		return nil, err
	}
	return domain.ReassignOutput{
		IssueID:        in.IssueID,
		NewAuthorityID: in.NewAuthorityID,
		ReassignedBy:   adminID,
	}, nil
}

func toOutput(i issuedom.Issue) domain.IssueOutput {
	out := domain.IssueOutput{
		ID:         i.ID,
		Latitude:   i.Latitude,
		Longitude:  i.Longitude,
		Pincode:    i.Pincode,
		Address:    i.Address,
		ImageURL:   i.ImageURL,
		ReportedBy: i.ReportedBy,
		CreatedAt:  i.CreatedAt.UTC().Format(time.RFC3339),

		AssignedAuthority: i.AssignedAuthority,
		AssignmentMethod:  i.AssignmentMethod,
		AssignmentError:   i.AssignmentError,
		ReassignedBy:      i.ReassignedBy,
	}
	if i.AssignedAt != nil {
		out.AssignedAt = i.AssignedAt.UTC().Format(time.RFC3339)
	}
	if i.ReassignedAt != nil {
		out.ReassignedAt = i.ReassignedAt.UTC().Format(time.RFC3339)
	}
	return out
}
