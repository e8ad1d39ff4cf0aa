package store

import (
	"context"
	"testing"

	"civicroute/internal/platform/store/ch"
)

type fakeChRows struct {
	nexts  int
	closed bool
	err    error
}

func (f *fakeChRows) Next() bool             { f.nexts++; return false }
func (f *fakeChRows) Scan(dest ...any) error { return nil }
func (f *fakeChRows) Err() error             { return f.err }
func (f *fakeChRows) Close() error           { f.closed = true; return nil }
func (f *fakeChRows) Columns() []string      { return []string{"alpha", "beta"} }

// TestRowsAdapter_Delegates confirms the store.Rows wrapper passes through
func TestRowsAdapter_Delegates(t *testing.T) {
	t.Parallel()

	f := &fakeChRows{}
	x := &rowsAdapter{r: f}

	if cols := x.Columns(); len(cols) != 2 || cols[0] != "alpha" || cols[1] != "beta" {
		t.Fatalf("Columns mismatch: %#v", cols)
	}
	if x.Next() {
		t.Fatalf("Next should be false on fake")
	}
	var v int
	if err := x.Scan(&v); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if x.Err() != nil {
		t.Fatalf("Err should be nil")
	}
	x.Close()
	if !f.closed {
		t.Fatalf("Close did not delegate to underlying Rows")
	}
}

// TestCHAdapter_InsertShapeGuard rejects non columnar payloads before touching the client
func TestCHAdapter_InsertShapeGuard(t *testing.T) {
	t.Parallel()

	a := newCHAdapter(&ch.CH{})
	if err := a.Insert(context.Background(), "some_table", struct{}{}); err == nil {
		t.Fatalf("Insert expected shape error, got nil")
	}
}
