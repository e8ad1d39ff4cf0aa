package engine

import (
	"context"
	"strings"

	"civicroute/internal/core/geo"
	"civicroute/internal/core/region"

	dom "civicroute/internal/services/assign/domain"
	authdom "civicroute/internal/services/authorities/domain"
	issuedom "civicroute/internal/services/issues/domain"
)

// pincodeStrategy matches the issue's trimmed postal code against authority
// pincode sets. Store order decides overlaps
type pincodeStrategy struct {
	store authdom.ReaderPort
}

func (pincodeStrategy) method() dom.Method { return dom.MethodPincode }

func (s pincodeStrategy) attempt(ctx context.Context, issue issuedom.Issue) (string, error) {
	code := strings.TrimSpace(issue.Pincode)
	if code == "" {
		return "", nil
	}
	a, err := s.store.FindByPincode(ctx, code)
	if err != nil {
		return "", err
	}
	if a == nil {
		return "", nil
	}
	return a.ID, nil
}

// polygonStrategy tests containment against every authority boundary in
// store order. Malformed rings are skipped, not fatal to the tier
type polygonStrategy struct {
	store authdom.ReaderPort
}

func (polygonStrategy) method() dom.Method { return dom.MethodPolygon }

func (s polygonStrategy) attempt(ctx context.Context, issue issuedom.Issue) (string, error) {
	list, err := s.store.ListWithBoundary(ctx)
	if err != nil {
		return "", err
	}
	lat, lon := *issue.Latitude, *issue.Longitude
	for _, a := range list {
		if !a.HasBoundary() {
			continue
		}
		if geo.PointInPolygon(lat, lon, a.Boundary) {
			return a.ID, nil
		}
	}
	return "", nil
}

// distanceStrategy picks the nearest authority center, accepted only when
// the minimum distance is within maxKm (inclusive)
type distanceStrategy struct {
	store authdom.ReaderPort
	maxKm float64
}

func (distanceStrategy) method() dom.Method { return dom.MethodDistance }

func (s distanceStrategy) attempt(ctx context.Context, issue issuedom.Issue) (string, error) {
	list, err := s.store.ListWithCenter(ctx)
	if err != nil {
		return "", err
	}
	lat, lon := *issue.Latitude, *issue.Longitude

	best := ""
	bestKm := 0.0
	for _, a := range list {
		if a.Center == nil {
			continue
		}
		d := geo.DistanceKm(lat, lon, a.Center.Lat, a.Center.Lon)
		if d > s.maxKm {
			continue
		}
		if best == "" || d < bestKm {
			best, bestKm = a.ID, d
		}
	}
	return best, nil
}

// jurisdictionStrategy scans the free-text address for a state keyword and
// falls back to that state's jurisdiction-level authority
type jurisdictionStrategy struct {
	store     authdom.ReaderPort
	levelHint string
}

func (jurisdictionStrategy) method() dom.Method { return dom.MethodJurisdiction }

func (s jurisdictionStrategy) attempt(ctx context.Context, issue issuedom.Issue) (string, error) {
	code, ok := region.Match(issue.Address)
	if !ok {
		return "", nil
	}
	a, err := s.store.FindByJurisdiction(ctx, code, s.levelHint)
	if err != nil {
		return "", err
	}
	if a == nil {
		return "", nil
	}
	return a.ID, nil
}
