// Package transport provides the resilient HTTP client used to talk to the
// fedresurs services.
//
// A Client never returns an error from Get. Blocking and transient failures
// are retried with exponential backoff; anything else, and a request that
// stays blocked after the last attempt, yields an empty body. Callers treat
// an empty body as "data unavailable".
package transport

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/agentstation/bankrot/pkg/constants"
	"github.com/agentstation/bankrot/pkg/errors"
	"github.com/agentstation/bankrot/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client issues paced, retried GET requests against one base URL.
type Client struct {
	baseURL string
	host    string
	http    *http.Client
	headers http.Header
	retry   RetryPolicy
	limiter *rate.Limiter
	cache   *Cache
	sleep   SleepFunc

	requests  atomic.Int64
	retries   atomic.Int64
	failures  atomic.Int64
	cacheHits atomic.Int64
}

// Stats counts client activity.
type Stats struct {
	Requests  int64 `json:"requests" yaml:"requests"`
	Retries   int64 `json:"retries" yaml:"retries"`
	Failures  int64 `json:"failures" yaml:"failures"`
	CacheHits int64 `json:"cache_hits" yaml:"cache_hits"`
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newHTTPClient(),
		headers: make(http.Header),
		retry:   DefaultRetryPolicy(),
		limiter: rate.NewLimiter(rate.Inf, 1),
		sleep:   sleepContext,
	}
	if u, err := url.Parse(c.baseURL); err == nil {
		c.host = u.Host
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newHTTPClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   constants.DialTimeout,
		KeepAlive: constants.KeepAliveInterval,
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.DialContext = dialer.DialContext
	return &http.Client{
		Timeout:   DefaultHTTPTimeout,
		Transport: tr,
	}
}

// URL returns the absolute URL for path.
func (c *Client) URL(path string) string {
	if path == "" {
		return c.baseURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// Host returns the host of the base URL.
func (c *Client) Host() string {
	return c.host
}

// Stats returns a snapshot of client counters.
func (c *Client) Stats() Stats {
	return Stats{
		Requests:  c.requests.Load(),
		Retries:   c.retries.Load(),
		Failures:  c.failures.Load(),
		CacheHits: c.cacheHits.Load(),
	}
}

// Close drops cached bodies and idle connections. The client stays usable.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Clear()
	}
	c.http.CloseIdleConnections()
}

// Get fetches path and returns the response body, or nil when the resource
// is unavailable. headers override the client defaults for this call only.
func (c *Client) Get(ctx context.Context, path string, headers map[string]string) []byte {
	target := c.URL(path)
	ctx = logging.WithPath(ctx, path)
	logger := logging.FromContext(ctx).With().Str("host", c.host).Logger()

	if c.cache != nil {
		if body, ok := c.cache.Get(target); ok {
			c.cacheHits.Add(1)
			logger.Trace().Msg("Response served from cache")
			return body
		}
	}

	hdr := MergeHeaders(BrowserHeaders())
	for k, v := range c.headers {
		hdr[k] = v
	}
	hdr = MergeHeaders(hdr, headers)

	backoff := c.retry.InitialBackoff
	var last *errors.APIError

	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			logger.Debug().Err(err).Msg("Request canceled while waiting for rate limiter")
			return nil
		}

		c.requests.Add(1)
		status, body, err := c.do(ctx, target, hdr)
		switch {
		case err != nil && ctx.Err() != nil:
			logger.Debug().Err(ctx.Err()).Msg("Request canceled")
			return nil
		case err != nil:
			last = &errors.APIError{Host: c.host, Endpoint: path, Attempt: attempt, Message: err.Error(), Err: err}
		case status >= 200 && status < 300:
			if c.cache != nil && len(body) > 0 {
				c.cache.Set(target, body)
			}
			return body
		case errors.IsRetryableStatus(status):
			last = errors.NewAPIError(c.host, status, http.StatusText(status))
			last.Endpoint, last.Attempt = path, attempt
		default:
			logger.Debug().
				Int("status", status).
				Str("reason", failureReason(errors.NewAPIError(c.host, status, http.StatusText(status)))).
				Str("body_head", BodyHead(body, constants.BodyHeadLength)).
				Msg("Upstream returned non-retryable status, treating as empty")
			return nil
		}

		if attempt == c.retry.MaxAttempts {
			break
		}

		c.retries.Add(1)
		logger.Warn().
			Err(last).
			Int("status", last.StatusCode).
			Int("attempt", attempt).
			Int("max_attempts", c.retry.MaxAttempts).
			Dur("backoff", backoff).
			Str("body_head", BodyHead(body, constants.BodyHeadLength)).
			Msg("Request blocked or failed, backing off")

		if err := c.sleep(ctx, backoff); err != nil {
			logger.Debug().Err(err).Msg("Request canceled during backoff")
			return nil
		}
		backoff = c.retry.next(backoff)
	}

	c.failures.Add(1)
	logger.Warn().
		Err(errors.WrapAPI(c.host, last.StatusCode, errors.ErrExhausted)).
		Str("reason", failureReason(last)).
		Int("attempts", c.retry.MaxAttempts).
		Msg("Giving up on request, returning empty body")
	return nil
}

// failureReason names the kind of upstream failure for diagnostics.
func failureReason(err error) string {
	switch {
	case errors.IsRateLimited(err):
		return "rate_limited"
	case errors.IsBlocked(err):
		return "blocked"
	case errors.IsUnavailable(err):
		return "unavailable"
	case errors.IsNotFound(err):
		return "not_found"
	case err == nil:
		return ""
	}
	if apiErr, ok := err.(*errors.APIError); ok && apiErr.StatusCode == 0 {
		return "network"
	}
	return "status"
}

// do performs one request. A non-nil error means no response was received.
func (c *Client) do(ctx context.Context, target string, hdr http.Header) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, errors.WrapResource("create", "request", "GET "+target, err)
	}
	req.Header = hdr.Clone()

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.WrapIO("read", "response body", err)
	}
	return resp.StatusCode, body, nil
}

var whitespace = regexp.MustCompile(`\s+`)

// BodyHead returns the first n characters of body with whitespace runs
// collapsed to single spaces.
func BodyHead(body []byte, n int) string {
	s := string(body[:min(len(body), n*utf8.UTFMax)])
	if r := []rune(s); len(r) > n {
		s = string(r[:n])
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
