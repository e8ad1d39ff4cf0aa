package engine

import (
	"context"
	"errors"
	"testing"

	"civicroute/internal/core/geo"

	dom "civicroute/internal/services/assign/domain"
	authdom "civicroute/internal/services/authorities/domain"
	issuedom "civicroute/internal/services/issues/domain"
)

// fakeStore is a counting in-memory authority store so tests can verify
// which tiers ran
type fakeStore struct {
	byPincode map[string]*authdom.Authority
	withRing  []authdom.Authority
	withCent  []authdom.Authority
	byState   map[string]*authdom.Authority

	pincodeCalls  int
	polygonCalls  int
	centerCalls   int
	fallbackCalls int

	pincodeErr error
	polygonErr error
}

func (f *fakeStore) FindByPincode(_ context.Context, code string) (*authdom.Authority, error) {
	f.pincodeCalls++
	if f.pincodeErr != nil {
		return nil, f.pincodeErr
	}
	return f.byPincode[code], nil
}

func (f *fakeStore) ListWithBoundary(context.Context) ([]authdom.Authority, error) {
	f.polygonCalls++
	if f.polygonErr != nil {
		return nil, f.polygonErr
	}
	return f.withRing, nil
}

func (f *fakeStore) ListWithCenter(context.Context) ([]authdom.Authority, error) {
	f.centerCalls++
	return f.withCent, nil
}

func (f *fakeStore) FindByJurisdiction(_ context.Context, code, _ string) (*authdom.Authority, error) {
	f.fallbackCalls++
	return f.byState[code], nil
}

func (f *fakeStore) Get(_ context.Context, id string) (*authdom.Authority, error) {
	return nil, nil
}

func ptr(v float64) *float64 { return &v }

func chennaiIssue() issuedom.Issue {
	return issuedom.Issue{
		ID:        "issue-1",
		Latitude:  ptr(13.0827),
		Longitude: ptr(80.2707),
		Pincode:   "600001",
		Address:   "T Nagar, Chennai, Tamil Nadu",
	}
}

var chennaiRect = []geo.Point{
	{Lat: 12.80, Lon: 79.95},
	{Lat: 12.80, Lon: 80.45},
	{Lat: 13.35, Lon: 80.45},
	{Lat: 13.35, Lon: 79.95},
}

func TestResolve_PincodeShortCircuits(t *testing.T) {
	st := &fakeStore{
		byPincode: map[string]*authdom.Authority{
			"600001": {ID: "chennai-corp", Pincodes: []string{"600001", "600002"}},
		},
	}
	e := New(st, Config{})

	out := e.Resolve(context.Background(), chennaiIssue())
	if out.AuthorityID != "chennai-corp" || out.Method != dom.MethodPincode {
		t.Fatalf("outcome = %+v, want chennai-corp via pincode", out)
	}
	if st.polygonCalls != 0 || st.centerCalls != 0 || st.fallbackCalls != 0 {
		t.Fatalf("later tiers ran: polygon=%d center=%d fallback=%d",
			st.polygonCalls, st.centerCalls, st.fallbackCalls)
	}
}

func TestResolve_UnknownPincodeFallsThrough(t *testing.T) {
	st := &fakeStore{
		byPincode: map[string]*authdom.Authority{"600001": {ID: "chennai-corp"}},
		withRing:  []authdom.Authority{{ID: "chennai-zone", Boundary: chennaiRect}},
	}
	e := New(st, Config{})

	issue := chennaiIssue()
	issue.Pincode = "999999"
	out := e.Resolve(context.Background(), issue)
	if out.AuthorityID != "chennai-zone" || out.Method != dom.MethodPolygon {
		t.Fatalf("outcome = %+v, want chennai-zone via polygon", out)
	}
	if st.pincodeCalls != 1 {
		t.Fatalf("pincode tier should have run once, got %d", st.pincodeCalls)
	}
}

func TestResolve_PolygonSkipsMalformedRings(t *testing.T) {
	st := &fakeStore{
		withRing: []authdom.Authority{
			{ID: "broken", Boundary: []geo.Point{{Lat: 1, Lon: 1}}},
			{ID: "chennai-zone", Boundary: chennaiRect},
		},
	}
	e := New(st, Config{})

	issue := chennaiIssue()
	issue.Pincode = ""
	out := e.Resolve(context.Background(), issue)
	if out.AuthorityID != "chennai-zone" || out.Method != dom.MethodPolygon {
		t.Fatalf("outcome = %+v, want chennai-zone despite malformed ring", out)
	}
}

func TestResolve_DistanceThresholdInclusive(t *testing.T) {
	// centers at roughly 40km, 60km, and exactly the cap from the issue
	issue := chennaiIssue()
	issue.Pincode = ""
	issue.Address = ""

	near := authdom.Authority{ID: "near", Center: &geo.Point{Lat: 13.0827, Lon: 80.64}}    // ~40 km east
	far := authdom.Authority{ID: "far", Center: &geo.Point{Lat: 13.0827, Lon: 80.825}}     // ~60 km east
	edge := authdom.Authority{ID: "edge", Center: &geo.Point{Lat: 13.53236, Lon: 80.2707}} // 50.00 km north

	t.Run("nearest within cap wins", func(t *testing.T) {
		st := &fakeStore{withCent: []authdom.Authority{far, near}}
		out := New(st, Config{}).Resolve(context.Background(), issue)
		if out.AuthorityID != "near" || out.Method != dom.MethodDistance {
			t.Fatalf("outcome = %+v, want near via distance", out)
		}
	})

	t.Run("beyond cap rejected", func(t *testing.T) {
		st := &fakeStore{withCent: []authdom.Authority{far}}
		out := New(st, Config{}).Resolve(context.Background(), issue)
		if out.Method != dom.MethodUnassigned {
			t.Fatalf("outcome = %+v, want unassigned", out)
		}
	})

	t.Run("exactly at cap accepted", func(t *testing.T) {
		d := geo.DistanceKm(*issue.Latitude, *issue.Longitude, edge.Center.Lat, edge.Center.Lon)
		if d > 50.0 {
			t.Skipf("fixture drifted past the cap: %v km", d)
		}
		st := &fakeStore{withCent: []authdom.Authority{edge}}
		out := New(st, Config{}).Resolve(context.Background(), issue)
		if out.AuthorityID != "edge" {
			t.Fatalf("outcome = %+v, want edge accepted at the inclusive cap (%.3f km)", out, d)
		}
	})
}

func TestResolve_JurisdictionFallback(t *testing.T) {
	st := &fakeStore{
		byState: map[string]*authdom.Authority{
			"TN": {ID: "tn-state", Name: "State Public Works TN", StateCode: "TN"},
		},
	}
	e := New(st, Config{})

	issue := chennaiIssue()
	issue.Pincode = ""
	out := e.Resolve(context.Background(), issue)
	if out.AuthorityID != "tn-state" || out.Method != dom.MethodJurisdiction {
		t.Fatalf("outcome = %+v, want tn-state via jurisdiction_fallback", out)
	}
}

func TestResolve_ExhaustedCascadeIsUnassigned(t *testing.T) {
	st := &fakeStore{}
	e := New(st, Config{})

	issue := chennaiIssue()
	issue.Pincode = ""
	issue.Address = "Unknown location"
	out := e.Resolve(context.Background(), issue)
	if out.Method != dom.MethodUnassigned || out.AuthorityID != authdom.UnassignedID {
		t.Fatalf("outcome = %+v, want the unassigned sentinel", out)
	}
	if out.Err != "" {
		t.Fatalf("clean no-match must not carry a diagnostic: %q", out.Err)
	}
}

func TestResolve_MissingCoordinatesIsError(t *testing.T) {
	st := &fakeStore{
		byPincode: map[string]*authdom.Authority{"600001": {ID: "chennai-corp"}},
	}
	e := New(st, Config{})

	issue := chennaiIssue()
	issue.Latitude = nil
	issue.Longitude = nil
	out := e.Resolve(context.Background(), issue)
	if out.Method != dom.MethodError {
		t.Fatalf("outcome = %+v, want method=error for the precondition failure", out)
	}
	if out.Err == "" {
		t.Fatalf("error outcome must carry a diagnostic")
	}
	if st.pincodeCalls != 0 {
		t.Fatalf("no tier should run without coordinates")
	}
}

func TestResolve_TierErrorIsRecoveredLocally(t *testing.T) {
	st := &fakeStore{
		pincodeErr: errors.New("store unreachable"),
		polygonErr: errors.New("store unreachable"),
		withCent:   []authdom.Authority{{ID: "near", Center: &geo.Point{Lat: 13.0827, Lon: 80.30}}},
	}
	e := New(st, Config{})

	out := e.Resolve(context.Background(), chennaiIssue())
	if out.AuthorityID != "near" || out.Method != dom.MethodDistance {
		t.Fatalf("outcome = %+v, want the distance tier after two failed tiers", out)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	st := &fakeStore{
		byPincode: map[string]*authdom.Authority{"600001": {ID: "chennai-corp"}},
	}
	e := New(st, Config{})

	a := e.Resolve(context.Background(), chennaiIssue())
	b := e.Resolve(context.Background(), chennaiIssue())
	if a != b {
		t.Fatalf("outcomes differ across identical runs: %+v vs %+v", a, b)
	}
}
