package transport

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/agentstation/bankrot/pkg/constants"
)

// RetryPolicy controls how blocked and transient requests are retried.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Factor         float64
}

// DefaultRetryPolicy returns the policy tuned for the fedresurs anti-bot
// gateway: 5 attempts, 1.2s initial wait growing by 1.8x up to 15s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    constants.MaxAttempts,
		InitialBackoff: constants.RetryBackoff,
		MaxBackoff:     constants.MaxRetryBackoff,
		Factor:         constants.BackoffFactor,
	}
}

// next returns the wait that follows d.
func (p RetryPolicy) next(d time.Duration) time.Duration {
	n := time.Duration(float64(d) * p.Factor).Truncate(time.Millisecond)
	if p.MaxBackoff > 0 && n > p.MaxBackoff {
		return p.MaxBackoff
	}
	return n
}

func (p RetryPolicy) normalized() RetryPolicy {
	def := DefaultRetryPolicy()
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.InitialBackoff < 0 {
		p.InitialBackoff = 0
	}
	if p.Factor < 1 {
		p.Factor = def.Factor
	}
	return p
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Option configures a Client.
type Option func(*Client)

// WithHeaders sets the client default headers, which override the browser
// set and are overridden by per-request headers.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = MergeHeaders(nil, headers)
	}
}

// WithRetryPolicy replaces the retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) {
		c.retry = p.normalized()
	}
}

// WithDelay paces requests so that consecutive attempts are at least d
// apart. Zero or negative disables pacing.
func WithDelay(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithCache keeps successful bodies for ttl. Zero or negative disables the
// cache.
func WithCache(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl <= 0 {
			c.cache = nil
			return
		}
		c.cache = NewCache(ttl, constants.CacheCleanupInterval)
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the overall per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithSleep replaces the backoff sleep, mainly for tests.
func WithSleep(fn SleepFunc) Option {
	return func(c *Client) {
		if fn != nil {
			c.sleep = fn
		}
	}
}
