// Package domain defines the types and interfaces for the assignment service
package domain

import (
	"time"

	authdom "civicroute/internal/services/authorities/domain"
)

// Method tags how an issue was (or was not) assigned. Values are stable:
// they are persisted on the issue row and in the audit log
type Method string

// Assignment methods in cascade order, plus the two terminal tags
const (
	MethodPincode      Method = "pincode"
	MethodPolygon      Method = "polygon"
	MethodDistance     Method = "distance"
	MethodJurisdiction Method = "jurisdiction_fallback"
	MethodUnassigned   Method = "unassigned"
	MethodError        Method = "error"
)

// Outcome is the single immutable result of one resolution run.
// AuthorityID is the sentinel authdom.UnassignedID unless a tier matched.
// Err carries a diagnostic only when Method is MethodError
type Outcome struct {
	AuthorityID string
	Method      Method
	Err         string
}

// Assigned reports whether a tier produced a real authority
func (o Outcome) Assigned() bool {
	return o.AuthorityID != "" && o.AuthorityID != authdom.UnassignedID
}

// Unassigned is the clean exhausted-cascade outcome
func Unassigned() Outcome {
	return Outcome{AuthorityID: authdom.UnassignedID, Method: MethodUnassigned}
}

// Errored is the precondition-failure / unexpected-fault outcome
func Errored(msg string) Outcome {
	return Outcome{AuthorityID: authdom.UnassignedID, Method: MethodError, Err: msg}
}

// Job is one leased assignment queue entry
type Job struct {
	ID        string
	IssueID   string
	Attempts  int
	LastError string
	LeasedBy  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
