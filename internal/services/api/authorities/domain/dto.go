// Package domain holds DTOs for the authorities http contract
package domain

// AuthorityInput is the admin upsert payload. Boundary is a ring of
// [lat, lon] pairs in the order the client drew them
type AuthorityInput struct {
	ID        string      `json:"id" validate:"required,min=1,max=128" example:"chennai-corp"`
	Name      string      `json:"name" validate:"required,min=1,max=300" example:"Greater Chennai Corporation"`
	Pincodes  []string    `json:"pincodes,omitempty" validate:"omitempty,dive,pincode"`
	Boundary  [][]float64 `json:"boundary,omitempty" validate:"omitempty,dive,len=2"`
	CenterLat *float64    `json:"center_lat,omitempty" validate:"omitempty,min=-90,max=90"`
	CenterLon *float64    `json:"center_lon,omitempty" validate:"omitempty,min=-180,max=180"`
	StateCode string      `json:"state_code,omitempty" validate:"omitempty,len=2,alpha" example:"TN"`
	Endpoints []string    `json:"endpoints,omitempty" validate:"omitempty,dive,min=1,max=4096"`
}

// AuthorityOutput is one authority as served to clients
type AuthorityOutput struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Pincodes  []string    `json:"pincodes,omitempty"`
	Boundary  [][]float64 `json:"boundary,omitempty"`
	CenterLat *float64    `json:"center_lat,omitempty"`
	CenterLon *float64    `json:"center_lon,omitempty"`
	StateCode string      `json:"state_code,omitempty"`
	Endpoints []string    `json:"endpoints,omitempty"`
	CreatedAt string      `json:"created_at,omitempty"`
	UpdatedAt string      `json:"updated_at,omitempty"`
}

// EndpointsInput replaces an authority's device endpoints wholesale
type EndpointsInput struct {
	Endpoints []string `json:"endpoints" validate:"required,dive,min=1,max=4096"`
}

// EndpointsOutput acknowledges the overwrite
type EndpointsOutput struct {
	ID        string `json:"id"`
	Endpoints int    `json:"endpoints"`
}
