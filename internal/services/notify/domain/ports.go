package domain

import (
	"context"

	authdom "civicroute/internal/services/authorities/domain"
	issuedom "civicroute/internal/services/issues/domain"
)

// TransportPort sends one message to one endpoint. A nil error with
// Delivery.OK == false (or Failed > 0) still counts as a failed delivery
type TransportPort interface {
	Send(ctx context.Context, endpoint string, p Payload) (Delivery, error)
}

// DispatcherPort fans an alert out to all of an authority's endpoints
type DispatcherPort interface {
	Dispatch(ctx context.Context, authority authdom.Authority, issue issuedom.Issue) (Report, error)
}
