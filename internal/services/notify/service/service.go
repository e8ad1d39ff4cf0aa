// Package service implements the notification dispatcher
package service

import (
	"context"
	"strconv"
	"sync"

	"civicroute/internal/platform/logger"

	authdom "civicroute/internal/services/authorities/domain"
	issuedom "civicroute/internal/services/issues/domain"
	dom "civicroute/internal/services/notify/domain"
)

const (
	alertTitle = "New Civic Issue Assigned"
	alertBody  = "New issue reported at "
)

// Service fans alerts out to an authority's device endpoints and prunes the
// ones that fail
type Service struct {
	transport dom.TransportPort
	writer    authdom.WriterPort
	log       logger.Logger
}

// Compile-time assertion: Service implements the dispatcher port
var _ dom.DispatcherPort = (*Service)(nil)

// New constructs the dispatcher
func New(transport dom.TransportPort, writer authdom.WriterPort) *Service {
	return &Service{
		transport: transport,
		writer:    writer,
		log:       *logger.Named("notify"),
	}
}

// Dispatch sends one message per endpoint concurrently and waits for every
// result before deciding anything (never fail-fast). Failed endpoints are
// pruned with a full overwrite of the token set computed from the fetched
// set; a token registered between fetch and overwrite can be lost. Accepted
// race, the store update is not transactional
func (s *Service) Dispatch(
	ctx context.Context,
	authority authdom.Authority,
	issue issuedom.Issue,
) (dom.Report, error) {
	endpoints := authority.Endpoints
	if len(endpoints) == 0 {
		s.log.Debug().Str("authority_id", authority.ID).Msg("no endpoints registered")
		return dom.Report{}, nil
	}

	payload := buildPayload(authority, issue)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		invalid []string
	)
	for _, ep := range endpoints {
		wg.Add(1)
		go func(ep string) {
			defer wg.Done()
			d, err := s.transport.Send(ctx, ep, payload)
			if err != nil || !d.OK || d.Failed > 0 {
				if err != nil {
					s.log.Warn().Err(err).Str("authority_id", authority.ID).Msg("send failed")
				}
				mu.Lock()
				invalid = append(invalid, ep)
				mu.Unlock()
			}
		}(ep)
	}
	wg.Wait()

	report := dom.Report{Attempted: len(endpoints), Invalid: invalid}
	if len(invalid) == 0 {
		return report, nil
	}

	surviving := exclude(endpoints, invalid)
	if err := s.writer.UpdateEndpoints(ctx, authority.ID, surviving); err != nil {
		// pruning is best effort; the dispatch itself already happened
		s.log.Error().Err(err).Str("authority_id", authority.ID).Msg("endpoint prune failed")
		return report, err
	}
	s.log.Info().
		Str("authority_id", authority.ID).
		Int("attempted", report.Attempted).
		Int("pruned", len(invalid)).
		Msg("notifications dispatched")
	return report, nil
}

func buildPayload(authority authdom.Authority, issue issuedom.Issue) dom.Payload {
	p := dom.Payload{
		Title:       alertTitle,
		Body:        alertBody + issue.Address,
		IssueID:     issue.ID,
		AuthorityID: authority.ID,
		Address:     issue.Address,
		ImageURL:    issue.ImageURL,
	}
	if issue.Latitude != nil {
		p.Latitude = strconv.FormatFloat(*issue.Latitude, 'f', -1, 64)
	}
	if issue.Longitude != nil {
		p.Longitude = strconv.FormatFloat(*issue.Longitude, 'f', -1, 64)
	}
	return p
}

// exclude returns the members of set not present in drop, preserving order
func exclude(set, drop []string) []string {
	dropped := make(map[string]struct{}, len(drop))
	for _, d := range drop {
		dropped[d] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for _, s := range set {
		if _, gone := dropped[s]; !gone {
			out = append(out, s)
		}
	}
	return out
}
