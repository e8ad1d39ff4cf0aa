// Package push provides a resilient FCM legacy HTTP client for the dispatcher
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "civicroute/internal/platform/errors"
	"civicroute/internal/platform/logger"

	dom "civicroute/internal/services/notify/domain"
)

const (
	baseURLDefault   = "https://fcm.googleapis.com"
	sendPath         = "/fcm/send"
	defaultTimeout   = 10 * time.Second
	defaultUA        = "civicroute-notify"
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// ServerKey authenticates against the legacy send endpoint
	ServerKey string

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration
}

// Client is a minimal push gateway client with retry on transient failures
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	sleep func(time.Duration)
}

// Compile-time assertion: Client implements the transport port
var _ dom.TransportPort = (*Client)(nil)

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("push"),
		sleep: time.Sleep,
	}
}

// message is the legacy send wire shape
type message struct {
	To           string       `json:"to"`
	Notification notification `json:"notification"`
	Data         dom.Payload  `json:"data"`
}

type notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// sendResult is the gateway's per-request summary
type sendResult struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		Error string `json:"error"`
	} `json:"results"`
}

// Send delivers one payload to one device endpoint.
// A definitive gateway answer reporting failures (unregistered token and the
// like) returns Delivery{OK:false} with a nil error so the dispatcher can
// prune; transport level problems return an error after retries
func (c *Client) Send(ctx context.Context, endpoint string, p dom.Payload) (dom.Delivery, error) {
	body, err := json.Marshal(message{
		To:           endpoint,
		Notification: notification{Title: p.Title, Body: p.Body},
		Data:         p,
	})
	if err != nil {
		return dom.Delivery{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "push marshal failed")
	}

	url := c.opts.BaseURL + sendPath
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return dom.Delivery{}, ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return dom.Delivery{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "push new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Content-Type", "application/json")
		if c.opts.ServerKey != "" {
			req.Header.Set("Authorization", "key="+c.opts.ServerKey)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if !c.shouldRetry(attempts) {
				return dom.Delivery{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "push do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("push transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		switch resp.StatusCode {
		case http.StatusOK:
			var out sendResult
			err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&out)
			_ = resp.Body.Close()
			if err != nil {
				return dom.Delivery{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "push decode failed")
			}
			d := dom.Delivery{OK: out.Failure == 0 && out.Success > 0, Failed: out.Failure}
			if !d.OK {
				c.log.Debug().Int("failure", out.Failure).Msg("push delivery rejected by gateway")
			}
			return d, nil

		case http.StatusTooManyRequests,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return dom.Delivery{}, perr.Newf(perr.ErrorCodeUnavailable, "push gateway unavailable")
			}
			back := c.backoff(attempts)
			c.log.Warn().Int("status", resp.StatusCode).Dur("retry_in", back).Msg("push transient error retrying")
			c.sleep(back)
			attempts++
			continue

		case http.StatusUnauthorized, http.StatusForbidden:
			_ = drainAndClose(resp.Body)
			return dom.Delivery{}, perr.Newf(perr.ErrorCodeForbidden, "push auth rejected")

		default:
			tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return dom.Delivery{}, perr.Newf(perr.ErrorCodeUnknown,
				"push unexpected status %d body %s", resp.StatusCode, string(tail))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	// simple exponential with cap
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	max := int64(30 * time.Second / time.Millisecond)
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 32<<10))
	return rc.Close()
}
