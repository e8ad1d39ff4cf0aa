// Package domain defines the assignment audit trail types
package domain

import "time"

// Record is one append-only entry in the assignment trail
// the trail is written after every resolution attempt, matched or not
type Record struct {
	ID          string
	IssueID     string
	AuthorityID string
	Method      string
	Pincode     string
	Latitude    float64
	Longitude   float64
	Address     string
	RecordedAt  time.Time
}
