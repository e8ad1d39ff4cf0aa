// Package domain defines the types and interfaces for the authorities service
package domain

import (
	"time"

	"civicroute/internal/core/geo"
)

// UnassignedID is the sentinel authority id for issues no tier could place.
// It is a designated value, distinct from a missing or empty assignment
const UnassignedID = "UNASSIGNED"

// Authority is an administrative entity that can own civic issues.
// Pincodes is unordered; overlaps across authorities are possible and the
// store's return order decides which one a lookup sees first.
// Boundary is an implicitly closed ring of vertices; nil means no polygon.
// Center is the nominal seat used by the distance tier; nil means none.
// Endpoints holds push device tokens and is the only field this system
// writes back (full overwrite on prune)
type Authority struct {
	ID        string
	Name      string
	Pincodes  []string
	Boundary  []geo.Point
	Center    *geo.Point
	StateCode string
	Endpoints []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasBoundary reports whether the authority declares a usable ring.
// Rings under 3 vertices are malformed and treated as absent
func (a Authority) HasBoundary() bool { return len(a.Boundary) >= 3 }
