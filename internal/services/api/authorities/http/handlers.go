// Package http provides http transport for authorities
package http

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"civicroute/internal/core/geo"
	"civicroute/internal/modkit/httpkit"
	perr "civicroute/internal/platform/errors"
	"civicroute/internal/platform/net/middleware"

	"civicroute/internal/services/api/authorities/domain"
	authdom "civicroute/internal/services/authorities/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Reader authdom.ReaderPort
	Writer authdom.WriterPort
	Auth   middleware.AuthPort
}

// Register mounts the authorities routes; reads are open, writes are admin only
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/{id}", h.get)

	httpkit.Protected(r, d.Auth, func(pr httpkit.Router) {
		httpkit.PostJSON[domain.AuthorityInput](pr, "/", h.upsert)
		httpkit.PostJSON[domain.EndpointsInput](pr, "/{id}/endpoints", h.setEndpoints)
	})
}

type handlers struct{ deps Deps }

// swagger:route GET /authorities/{id} Authorities authoritiesGet
// @Summary Fetch one authority
// @Tags Authorities
// @Produce json
// @Param id path string true "Authority id"
// @Success 200 {object} domain.AuthorityOutput "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /authorities/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return nil, perr.InvalidArgf("authority id required")
	}
	a, err := h.deps.Reader.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, perr.NotFoundf("authority %q not found", id)
	}
	return toOutput(*a), nil
}

// swagger:route POST /authorities Authorities authoritiesUpsert
// @Summary Create or update an authority
// @Tags Authorities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.AuthorityInput true "Authority"
// @Success 200 {object} domain.AuthorityOutput "ok"
// @Failure 400 {object} httpkit.Envelope "validation error"
// @Router /authorities [post]
func (h *handlers) upsert(r *stdhttp.Request, in domain.AuthorityInput) (any, error) {
	ring, err := toRing(in.Boundary)
	if err != nil {
		return nil, err
	}
	a := authdom.Authority{
		ID:        in.ID,
		Name:      in.Name,
		Pincodes:  in.Pincodes,
		Boundary:  ring,
		StateCode: in.StateCode,
		Endpoints: in.Endpoints,
	}
	if in.CenterLat != nil && in.CenterLon != nil {
		a.Center = &geo.Point{Lat: *in.CenterLat, Lon: *in.CenterLon}
	} else if in.CenterLat != nil || in.CenterLon != nil {
		return nil, perr.InvalidArgf("center requires both center_lat and center_lon")
	}
	if err := h.deps.Writer.Upsert(r.Context(), a); err != nil {
		return nil, err
	}
	return toOutput(a), nil
}

// swagger:route POST /authorities/{id}/endpoints Authorities authoritiesSetEndpoints
// @Summary Replace an authority's device endpoints
// @Tags Authorities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Authority id"
// @Param payload body domain.EndpointsInput true "Endpoints"
// @Success 200 {object} domain.EndpointsOutput "ok"
// @Router /authorities/{id}/endpoints [post]
func (h *handlers) setEndpoints(r *stdhttp.Request, in domain.EndpointsInput) (any, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return nil, perr.InvalidArgf("authority id required")
	}
	if err := h.deps.Writer.UpdateEndpoints(r.Context(), id, in.Endpoints); err != nil {
		return nil, err
	}
	return domain.EndpointsOutput{ID: id, Endpoints: len(in.Endpoints)}, nil
}

func toRing(pairs [][]float64) ([]geo.Point, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	ring := make([]geo.Point, 0, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, perr.InvalidArgf("boundary[%d] must be a [lat, lon] pair", i)
		}
		ring = append(ring, geo.Point{Lat: p[0], Lon: p[1]})
	}
	return ring, nil
}

func toOutput(a authdom.Authority) domain.AuthorityOutput {
	out := domain.AuthorityOutput{
		ID:        a.ID,
		Name:      a.Name,
		Pincodes:  a.Pincodes,
		StateCode: a.StateCode,
		Endpoints: a.Endpoints,
	}
	if len(a.Boundary) > 0 {
		out.Boundary = make([][]float64, 0, len(a.Boundary))
		for _, p := range a.Boundary {
			out.Boundary = append(out.Boundary, []float64{p.Lat, p.Lon})
		}
	}
	if a.Center != nil {
		lat, lon := a.Center.Lat, a.Center.Lon
		out.CenterLat, out.CenterLon = &lat, &lon
	}
	if !a.CreatedAt.IsZero() {
		out.CreatedAt = a.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !a.UpdatedAt.IsZero() {
		out.UpdatedAt = a.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return out
}
