// Package http loads search artifacts over HTTP and calls remote answer
// endpoints.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/docsearch"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 30 * time.Second

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit caps outgoing requests at rps per second with no bursting.
// Zero or negative disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// Client is the HTTP transport shared by the loaders and the answer client.
type Client struct {
	client  *http.Client
	timeout time.Duration
	limiter *rate.Limiter
}

// NewClient creates a new Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// do sends req once the rate limiter allows it.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	return c.client.Do(req)
}

// getJSON fetches url and decodes the body into v. Any failure is reported
// as EUNAVAILABLE.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return docsearch.Errorf(docsearch.EUNAVAILABLE, "invalid url %q: %v", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return docsearch.Errorf(docsearch.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return docsearch.Errorf(docsearch.EUNAVAILABLE, "decode %s: %v", url, err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := fmt.Sprintf("HTTP %d for %s", resp.StatusCode, resp.Request.URL)
	if len(body) > 0 {
		msg += ": " + string(body)
	}
	return docsearch.Errorf(docsearch.EUNAVAILABLE, "%s", msg)
}
