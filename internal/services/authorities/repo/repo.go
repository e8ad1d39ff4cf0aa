// Package repo provides Postgres bindings for the authorities service
package repo

import (
	"context"
	stdsql "database/sql"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"civicroute/internal/core/geo"
	"civicroute/internal/modkit/repokit"
	"civicroute/internal/services/authorities/domain"
)

type (
	// PG is a Postgres binder for the authorities repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// Repo is the persistence surface the service layer binds to
type Repo interface {
	domain.ReaderPort
	domain.WriterPort
}

// Compile-time assertion: queries implements Repo
var _ Repo = (*queries)(nil)

// NewPG returns a Postgres binder for the authorities repo
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const authorityCols = `
	id, name, pincodes, boundary, center_lat, center_lon,
	state_code, endpoints, created_at, updated_at
`

// FindByPincode returns the first authority serving the given pincode.
// ORDER BY id keeps the overlap tie-break deterministic for a given dataset
func (r *queries) FindByPincode(ctx context.Context, code string) (*domain.Authority, error) {
	row := r.q.QueryRow(ctx, `
		SELECT `+authorityCols+`
		FROM authorities
		WHERE $1 = ANY(pincodes)
		ORDER BY id
		LIMIT 1
	`, code)
	return scanOne(row)
}

// ListWithBoundary returns authorities that declare a boundary ring
func (r *queries) ListWithBoundary(ctx context.Context) ([]domain.Authority, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+authorityCols+`
		FROM authorities
		WHERE boundary IS NOT NULL
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	return scanMany(rows)
}

// ListWithCenter returns authorities that declare a center point
func (r *queries) ListWithCenter(ctx context.Context) ([]domain.Authority, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+authorityCols+`
		FROM authorities
		WHERE center_lat IS NOT NULL AND center_lon IS NOT NULL
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	return scanMany(rows)
}

// FindByJurisdiction returns a jurisdiction-level authority for a state code.
// levelHint filters the display name prefix, mirroring how the seed data
// names state-level bodies ("State Public Works" and so on)
func (r *queries) FindByJurisdiction(ctx context.Context, code, levelHint string) (*domain.Authority, error) {
	row := r.q.QueryRow(ctx, `
		SELECT `+authorityCols+`
		FROM authorities
		WHERE state_code = $1 AND name ILIKE $2 || '%'
		ORDER BY id
		LIMIT 1
	`, code, levelHint)
	return scanOne(row)
}

// Get returns one authority by id
func (r *queries) Get(ctx context.Context, id string) (*domain.Authority, error) {
	row := r.q.QueryRow(ctx, `
		SELECT `+authorityCols+`
		FROM authorities
		WHERE id = $1
	`, id)
	return scanOne(row)
}

// Upsert inserts or replaces an authority row
func (r *queries) Upsert(ctx context.Context, a domain.Authority) error {
	boundary, err := marshalBoundary(a.Boundary)
	if err != nil {
		return err
	}
	var clat, clon *float64
	if a.Center != nil {
		clat, clon = &a.Center.Lat, &a.Center.Lon
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO authorities (
			id, name, pincodes, boundary, center_lat, center_lon,
			state_code, endpoints, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		SET name       = EXCLUDED.name,
		    pincodes   = EXCLUDED.pincodes,
		    boundary   = EXCLUDED.boundary,
		    center_lat = EXCLUDED.center_lat,
		    center_lon = EXCLUDED.center_lon,
		    state_code = EXCLUDED.state_code,
		    endpoints  = EXCLUDED.endpoints,
		    updated_at = NOW()
	`, a.ID, a.Name, a.Pincodes, boundary, clat, clon, a.StateCode, a.Endpoints)
	return err
}

// UpdateEndpoints overwrites the full endpoint token set for an authority
func (r *queries) UpdateEndpoints(ctx context.Context, id string, endpoints []string) error {
	if endpoints == nil {
		endpoints = []string{}
	}
	_, err := r.q.Exec(ctx, `
		UPDATE authorities
		SET endpoints = $2, updated_at = NOW()
		WHERE id = $1
	`, id, endpoints)
	return err
}

// scan helpers

func scanOne(row repokit.Row) (*domain.Authority, error) {
	a, err := scanAuthority(row.Scan)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func scanMany(rows repokit.Rows) ([]domain.Authority, error) {
	defer rows.Close()
	var out []domain.Authority
	for rows.Next() {
		a, err := scanAuthority(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAuthority(scan func(dest ...any) error) (domain.Authority, error) {
	var (
		a          domain.Authority
		boundary   []byte
		clat, clon *float64
		state      *string
	)
	err := scan(
		&a.ID, &a.Name, &a.Pincodes, &boundary, &clat, &clon,
		&state, &a.Endpoints, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Authority{}, err
	}
	if state != nil {
		a.StateCode = *state
	}
	if clat != nil && clon != nil {
		a.Center = &geo.Point{Lat: *clat, Lon: *clon}
	}
	if len(boundary) > 0 {
		ring, err := unmarshalBoundary(boundary)
		if err != nil {
			// malformed ring data is not fatal to the row; the cascade
			// treats the authority as boundary-less
			ring = nil
		}
		a.Boundary = ring
	}
	return a, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, stdsql.ErrNoRows)
}

// boundary rows are stored as jsonb [[lat, lon], ...]

func marshalBoundary(ring []geo.Point) ([]byte, error) {
	if len(ring) == 0 {
		return nil, nil
	}
	pairs := make([][2]float64, len(ring))
	for i, p := range ring {
		pairs[i] = [2]float64{p.Lat, p.Lon}
	}
	return json.Marshal(pairs)
}

func unmarshalBoundary(b []byte) ([]geo.Point, error) {
	var pairs [][2]float64
	if err := json.Unmarshal(b, &pairs); err != nil {
		return nil, err
	}
	ring := make([]geo.Point, len(pairs))
	for i, p := range pairs {
		ring[i] = geo.Point{Lat: p[0], Lon: p[1]}
	}
	return ring, nil
}
