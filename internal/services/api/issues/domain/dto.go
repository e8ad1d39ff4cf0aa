// Package domain holds DTOs for the issues http contract
package domain

// CreateIssueInput is the citizen report payload
type CreateIssueInput struct {
	Latitude   *float64 `json:"latitude" validate:"required,min=-90,max=90" example:"13.0827"`
	Longitude  *float64 `json:"longitude" validate:"required,min=-180,max=180" example:"80.2707"`
	Pincode    string   `json:"pincode,omitempty" validate:"omitempty,pincode" example:"600001"`
	Address    string   `json:"address,omitempty" validate:"omitempty,max=500" example:"T Nagar, Chennai, Tamil Nadu"`
	ImageURL   string   `json:"image_url,omitempty" validate:"omitempty,url,max=2048"`
	ReportedBy string   `json:"reported_by,omitempty" validate:"omitempty,max=128"`
}

// IssueOutput is one issue as served to clients
type IssueOutput struct {
	ID         string   `json:"id"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Pincode    string   `json:"pincode,omitempty"`
	Address    string   `json:"address,omitempty"`
	ImageURL   string   `json:"image_url,omitempty"`
	ReportedBy string   `json:"reported_by,omitempty"`
	CreatedAt  string   `json:"created_at"`

	AssignedAuthority string `json:"assigned_authority,omitempty"`
	AssignedAt        string `json:"assigned_at,omitempty"`
	AssignmentMethod  string `json:"assignment_method,omitempty"`
	AssignmentError   string `json:"assignment_error,omitempty"`

	ReassignedAt string `json:"reassigned_at,omitempty"`
	ReassignedBy string `json:"reassigned_by,omitempty"`
}

// ReassignInput is the admin override payload
type ReassignInput struct {
	IssueID        string `json:"issue_id" validate:"required,uuid" example:"6f1e9f0a-0f25-4a9e-8d52-6d1a3a1c2b4d"`
	NewAuthorityID string `json:"new_authority_id" validate:"required,min=1,max=128" example:"chennai-corp"`
}

// ReassignOutput acknowledges the override
type ReassignOutput struct {
	IssueID        string `json:"issue_id"`
	NewAuthorityID string `json:"new_authority_id"`
	ReassignedBy   string `json:"reassigned_by"`
}
