// Package domain defines the types and interfaces for the issues service
package domain

import "time"

// Issue is a citizen-reported civic problem. Latitude and Longitude are
// pointers so a missing coordinate is distinguishable from 0,0; the
// resolution precondition requires both. Assignment fields are written
// exactly once per creation event by the assigner, and again only through
// the admin reassignment path
type Issue struct {
	ID         string
	Latitude   *float64
	Longitude  *float64
	Pincode    string
	Address    string
	ImageURL   string
	ReportedBy string
	CreatedAt  time.Time

	AssignedAuthority string
	AssignedAt        *time.Time
	AssignmentMethod  string
	AssignmentError   string

	ReassignedAt *time.Time
	ReassignedBy string
}

// HasCoordinates reports whether the resolution precondition holds
func (i Issue) HasCoordinates() bool { return i.Latitude != nil && i.Longitude != nil }

// CreateInput carries the externally supplied fields of a new issue
type CreateInput struct {
	Latitude   *float64
	Longitude  *float64
	Pincode    string
	Address    string
	ImageURL   string
	ReportedBy string
}

// Assignment is the persisted outcome of one resolution run
type Assignment struct {
	AuthorityID string
	Method      string
	Error       string
}
