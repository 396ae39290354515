// Package feed implements the HTTP client for the external launch feed.
//
// The wire format follows the public launch catalog API: paginated JSON
// batches with a next-page URL, distinct upcoming/previous endpoints,
// and date-bounded filtering for range queries.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/remixastro/shockwave/pkg/errors"
	api "github.com/remixastro/shockwave/pkg/feed"
	"github.com/remixastro/shockwave/pkg/planner"
)

const (
	// DefaultBaseURL is the public feed endpoint.
	DefaultBaseURL = "https://ll.thespacedevs.com/2.2.0"

	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second

	// DefaultPageSize is the per-page result count requested from the feed.
	DefaultPageSize = 100

	// maxResponseBytes caps a single response body. The feed's pages are
	// well under a megabyte; anything larger is a broken upstream.
	maxResponseBytes = 10 << 20

	feedName = "launch-feed"
)

// Client fetches launch and re-entry payloads over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	auth    Authenticator
	apiKey  string
	logger  zerolog.Logger
}

// Compile-time check that Client satisfies the consumer-side interface.
var _ api.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different feed host. Used for
// hosted mirrors and test servers.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = timeout
	}
}

// WithAuth sets the authenticator and the key it applies.
func WithAuth(auth Authenticator, apiKey string) Option {
	return func(c *Client) {
		c.auth = auth
		c.apiKey = apiKey
	}
}

// WithLogger sets the logger for request-level events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a Client for the public feed endpoint.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		auth:    &NoAuth{},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Launches fetches launch payloads for the given mode, following
// pagination until the limit is reached or the feed is exhausted.
func (c *Client) Launches(ctx context.Context, mode planner.SyncMode, params api.Params) ([]api.LaunchPayload, error) {
	endpoint, err := c.endpoint("launch", mode, params)
	if err != nil {
		return nil, err
	}

	var out []api.LaunchPayload
	limit := effectiveLimit(params.Limit)
	for endpoint != "" && len(out) < limit {
		var batch api.LaunchBatch
		if err := c.getJSON(ctx, endpoint, &batch); err != nil {
			return nil, err
		}
		out = append(out, batch.Results...)
		endpoint = batch.Next
	}
	if len(out) > limit {
		out = out[:limit]
	}
	c.logger.Debug().
		Str("mode", string(mode)).
		Int("count", len(out)).
		Msg("fetched launches")
	return out, nil
}

// Reentries fetches re-entry payloads for the given mode.
func (c *Client) Reentries(ctx context.Context, mode planner.SyncMode, params api.Params) ([]api.ReentryPayload, error) {
	endpoint, err := c.endpoint("reentry", mode, params)
	if err != nil {
		return nil, err
	}

	var out []api.ReentryPayload
	limit := effectiveLimit(params.Limit)
	for endpoint != "" && len(out) < limit {
		var batch api.ReentryBatch
		if err := c.getJSON(ctx, endpoint, &batch); err != nil {
			return nil, err
		}
		out = append(out, batch.Results...)
		endpoint = batch.Next
	}
	if len(out) > limit {
		out = out[:limit]
	}
	c.logger.Debug().
		Str("mode", string(mode)).
		Int("count", len(out)).
		Msg("fetched reentries")
	return out, nil
}

// endpoint builds the first-page URL for a resource and mode. The feed
// exposes upcoming and previous as path segments; range queries filter
// the unsegmented list by net date.
func (c *Client) endpoint(resource string, mode planner.SyncMode, params api.Params) (string, error) {
	base := c.baseURL + "/" + resource + "/"
	query := url.Values{}
	query.Set("limit", strconv.Itoa(pageSize(params.Limit)))

	switch mode {
	case planner.SyncModeUpcoming:
		base += "upcoming/"
	case planner.SyncModePrevious:
		base += "previous/"
	case planner.SyncModeRange:
		if params.RangeStart.IsZero() || params.RangeEnd.IsZero() {
			return "", errors.NewValidationError("range", nil, "range mode requires both bounds")
		}
		query.Set("net__gte", params.RangeStart.Format(time.RFC3339))
		query.Set("net__lte", params.RangeEnd.Format(time.RFC3339))
	default:
		return "", errors.NewValidationError("mode", mode, "unknown sync mode")
	}
	return base + "?" + query.Encode(), nil
}

// getJSON performs one authenticated GET and decodes the body into v.
// Every failure path is a TransportError so the session can classify
// the whole fetch as feed unavailability.
func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.NewTransportError(feedName, endpoint, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		c.auth.Apply(req, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.NewTransportError(feedName, endpoint, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.NewTransportError(feedName, endpoint, resp.StatusCode,
			fmt.Errorf("unexpected status %s", resp.Status))
	}

	body := io.LimitReader(resp.Body, maxResponseBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return errors.NewTransportError(feedName, endpoint, resp.StatusCode, err)
	}
	return nil
}

func effectiveLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	return limit
}

func pageSize(limit int) int {
	if limit <= 0 || limit > DefaultPageSize {
		return DefaultPageSize
	}
	return limit
}
