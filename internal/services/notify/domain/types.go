// Package domain defines the types and interfaces for the notify service
package domain

// Payload is one push message. Coordinates travel as strings so the wire
// shape matches what device clients already parse
type Payload struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	IssueID     string `json:"issue_id"`
	AuthorityID string `json:"authority_id"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
	Address     string `json:"address"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Delivery is the transport's report for a single send
type Delivery struct {
	OK     bool
	Failed int
}

// Report summarizes one dispatch fan-out. Invalid lists the endpoints whose
// sends failed and were pruned from the authority
type Report struct {
	Attempted int
	Invalid   []string
}
