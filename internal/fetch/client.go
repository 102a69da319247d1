// Package fetch issues rate-limited GET requests against the NationStates API.
//
// Requests are strictly sequential: every call passes through one Limiter
// which sleeps PollInterval before the request goes out. A non-2xx response is
// a valid result meaning "entity absent"; connection failures and timeouts are
// reported separately as *TransportError.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"goldeneye/internal/metrics"
	"goldeneye/internal/nsapi"
)

// Version is reported in the identifying User-Agent.
const Version = "2.1"

// DefaultBaseURL is the public API endpoint.
const DefaultBaseURL = "https://www.nationstates.net/cgi-bin/api.cgi"

// ErrNotFound is returned by the document helpers for any non-2xx status.
var ErrNotFound = errors.New("not found")

// TransportError wraps a failure to complete the HTTP exchange.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Response is a completed exchange.
type Response struct {
	StatusCode int
	Body       []byte
}

// Found reports whether the response carried a 2xx status.
func (r *Response) Found() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Config configures a Client.
type Config struct {
	BaseURL    string
	UserNation string
	HTTPClient *http.Client
	Limiter    *Limiter
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
}

// Client is the API client. It is not safe to share a Client across
// goroutines without sharing its Limiter, which Config does by default.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *Limiter
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// UserAgent builds the identifying header value for nation.
func UserAgent(nation string) string {
	return fmt.Sprintf("GoldenEye/%s User/%s (goldeneye CLI)", Version, nation)
}

// New creates a Client. Zero fields get defaults.
func New(cfg Config) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "?"),
		userAgent: UserAgent(cfg.UserNation),
		http:      cfg.HTTPClient,
		limiter:   cfg.Limiter,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.limiter == nil {
		c.limiter = NewLimiter(PollInterval)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Get waits on the limiter and issues a GET for rawQuery.
func (c *Client) Get(ctx context.Context, rawQuery string) (*Response, error) {
	target := c.baseURL + "?" + rawQuery
	var resp *Response
	err := c.limiter.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		c.logger.Debug("Request", zap.String("url", target))
		httpResp, err := c.http.Do(req)
		if err != nil {
			return &TransportError{URL: target, Err: err}
		}
		defer httpResp.Body.Close()

		body, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return &TransportError{URL: target, Err: fmt.Errorf("failed to read response: %w", err)}
		}
		resp = &Response{StatusCode: httpResp.StatusCode, Body: body}
		return nil
	})
	if err != nil {
		c.metrics.ObserveRequest(metrics.OutcomeError)
		return nil, err
	}
	if resp.Found() {
		c.metrics.ObserveRequest(metrics.OutcomeOK)
	} else {
		c.metrics.ObserveRequest(metrics.OutcomeNotFound)
		c.logger.Debug("Entity absent", zap.String("url", target), zap.Int("status", resp.StatusCode))
	}
	return resp, nil
}

// Document returns the body of a 2xx response, or ErrNotFound.
func (c *Client) Document(ctx context.Context, rawQuery string) ([]byte, error) {
	resp, err := c.Get(ctx, rawQuery)
	if err != nil {
		return nil, err
	}
	if !resp.Found() {
		return nil, fmt.Errorf("%s (HTTP %d): %w", rawQuery, resp.StatusCode, ErrNotFound)
	}
	return resp.Body, nil
}

// RegionQuery is the query string for a region lookup.
func RegionQuery(name string) string {
	return "region=" + url.QueryEscape(nsapi.Normalize(name))
}

// NationQuery is the query string for a nation lookup: name, endorsements,
// influence, WA status and the influence and residency census scales.
func NationQuery(name string) string {
	return fmt.Sprintf("nation=%s;q=name+endorsements+influence+wa+census;scale=%d+%d",
		url.QueryEscape(nsapi.Normalize(name)), nsapi.CensusInfluence, nsapi.CensusResidency)
}

// DispatchQuery is the query string for a dispatch lookup.
func DispatchQuery(id int) string {
	return fmt.Sprintf("q=dispatch;dispatchid=%d", id)
}

// Region fetches the live REGION document.
func (c *Client) Region(ctx context.Context, name string) ([]byte, error) {
	return c.Document(ctx, RegionQuery(name))
}

// Nation fetches a NATION document.
func (c *Client) Nation(ctx context.Context, name string) ([]byte, error) {
	return c.Document(ctx, NationQuery(name))
}

// Dispatch fetches a WORLD document carrying dispatch id.
func (c *Client) Dispatch(ctx context.Context, id int) ([]byte, error) {
	return c.Document(ctx, DispatchQuery(id))
}
