package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	authdom "civicroute/internal/services/authorities/domain"
	issuedom "civicroute/internal/services/issues/domain"
	dom "civicroute/internal/services/notify/domain"
)

// fakeTransport fails the endpoints listed in fail and records payloads
type fakeTransport struct {
	mu       sync.Mutex
	fail     map[string]bool
	payloads []dom.Payload
}

func (f *fakeTransport) Send(_ context.Context, ep string, p dom.Payload) (dom.Delivery, error) {
	f.mu.Lock()
	f.payloads = append(f.payloads, p)
	f.mu.Unlock()
	if f.fail[ep] {
		return dom.Delivery{}, errors.New("unregistered token")
	}
	return dom.Delivery{OK: true}, nil
}

// fakeWriter records UpdateEndpoints overwrites
type fakeWriter struct {
	mu      sync.Mutex
	updates map[string][]string
}

func (f *fakeWriter) Upsert(context.Context, authdom.Authority) error { return nil }

func (f *fakeWriter) UpdateEndpoints(_ context.Context, id string, eps []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updates == nil {
		f.updates = map[string][]string{}
	}
	f.updates[id] = eps
	return nil
}

func testIssue() issuedom.Issue {
	lat, lon := 13.0827, 80.2707
	return issuedom.Issue{
		ID:        "issue-1",
		Latitude:  &lat,
		Longitude: &lon,
		Address:   "Anna Salai, Chennai",
		ImageURL:  "https://img.example/pothole.jpg",
	}
}

func TestDispatch_NoEndpointsIsNoop(t *testing.T) {
	tr := &fakeTransport{}
	w := &fakeWriter{}
	rep, err := New(tr, w).Dispatch(context.Background(), authdom.Authority{ID: "a1"}, testIssue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Attempted != 0 || len(rep.Invalid) != 0 {
		t.Fatalf("report = %+v, want empty", rep)
	}
	if len(tr.payloads) != 0 {
		t.Fatalf("transport should not have been called")
	}
}

func TestDispatch_PartialFailurePrunesOnlyInvalid(t *testing.T) {
	tr := &fakeTransport{fail: map[string]bool{"tok-bad": true}}
	w := &fakeWriter{}
	authority := authdom.Authority{ID: "a1", Endpoints: []string{"tok-good", "tok-bad"}}

	rep, err := New(tr, w).Dispatch(context.Background(), authority, testIssue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Attempted != 2 {
		t.Fatalf("attempted = %d, want 2", rep.Attempted)
	}
	if len(rep.Invalid) != 1 || rep.Invalid[0] != "tok-bad" {
		t.Fatalf("invalid = %v, want [tok-bad]", rep.Invalid)
	}
	got := w.updates["a1"]
	if len(got) != 1 || got[0] != "tok-good" {
		t.Fatalf("surviving endpoints = %v, want [tok-good]", got)
	}
}

func TestDispatch_AllSucceedSkipsOverwrite(t *testing.T) {
	tr := &fakeTransport{}
	w := &fakeWriter{}
	authority := authdom.Authority{ID: "a1", Endpoints: []string{"t1", "t2", "t3"}}

	rep, err := New(tr, w).Dispatch(context.Background(), authority, testIssue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Attempted != 3 || len(rep.Invalid) != 0 {
		t.Fatalf("report = %+v", rep)
	}
	if _, wrote := w.updates["a1"]; wrote {
		t.Fatalf("no overwrite expected when every send succeeds")
	}
}

func TestDispatch_WaitsForAllResults(t *testing.T) {
	tr := &fakeTransport{fail: map[string]bool{"t1": true, "t3": true}}
	w := &fakeWriter{}
	authority := authdom.Authority{ID: "a1", Endpoints: []string{"t1", "t2", "t3", "t4"}}

	rep, err := New(tr, w).Dispatch(context.Background(), authority, testIssue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tr.payloads) != 4 {
		t.Fatalf("every endpoint must be attempted, got %d", len(tr.payloads))
	}
	sort.Strings(rep.Invalid)
	if len(rep.Invalid) != 2 || rep.Invalid[0] != "t1" || rep.Invalid[1] != "t3" {
		t.Fatalf("invalid = %v, want [t1 t3]", rep.Invalid)
	}
	if got := w.updates["a1"]; len(got) != 2 || got[0] != "t2" || got[1] != "t4" {
		t.Fatalf("surviving endpoints = %v, want [t2 t4] in original order", got)
	}
}

func TestDispatch_PayloadShape(t *testing.T) {
	tr := &fakeTransport{}
	w := &fakeWriter{}
	authority := authdom.Authority{ID: "a1", Endpoints: []string{"t1"}}

	if _, err := New(tr, w).Dispatch(context.Background(), authority, testIssue()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := tr.payloads[0]
	if p.Title != "New Civic Issue Assigned" {
		t.Fatalf("title = %q", p.Title)
	}
	if p.Body != "New issue reported at Anna Salai, Chennai" {
		t.Fatalf("body = %q", p.Body)
	}
	if p.Latitude != "13.0827" || p.Longitude != "80.2707" {
		t.Fatalf("coordinates = %q,%q, want stringified floats", p.Latitude, p.Longitude)
	}
	if p.IssueID != "issue-1" || p.AuthorityID != "a1" {
		t.Fatalf("ids = %q,%q", p.IssueID, p.AuthorityID)
	}
}
