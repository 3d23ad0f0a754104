// Package shopify is a polite client for the public products.json feed of Shopify storefronts
package shopify

import (
	"context"
	"io"
	"net/http"
	"time"

	perr "pricehunter/internal/platform/errors"
	"pricehunter/internal/platform/logger"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 20 * time.Second
	defaultUA        = "Mozilla/5.0 (compatible; PriceHunter/1.0)"
	defaultMaxRetry  = 3
	defaultRateWait  = 5 * time.Second
	defaultRetryBase = 500 * time.Millisecond
	defaultRPS       = 2
)

// Options configures the Client
type Options struct {
	// BaseURL maps a store domain to its origin. Defaults to https://{domain}.
	BaseURL   func(domain string) string
	UserAgent string
	Timeout   time.Duration

	// MaxRetries bounds retries of a single page on 429 and 5xx
	MaxRetries int
	// RateWait is the pause after a 429 without Retry-After
	RateWait  time.Duration
	RetryBase time.Duration

	// RPS caps outbound requests per second across all stores; 0 means the default
	RPS float64
}

// Client fetches storefront pages with rate limiting and bounded retries
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	log     logger.Logger
	now     func() time.Time
	sleep   func(context.Context, time.Duration) error
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == nil {
		o.BaseURL = func(domain string) string { return "https://" + domain }
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
	if o.RateWait <= 0 {
		o.RateWait = defaultRateWait
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.RPS <= 0 {
		o.RPS = defaultRPS
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout},
		opts:    o,
		limiter: rate.NewLimiter(rate.Limit(o.RPS), 1),
		log:     *logger.Named("shopify"),
		now:     time.Now,
		sleep:   sleepCtx,
	}
}

// Do issues a GET against domain with retries and rate limit handling.
// The caller closes the body of a returned response.
func (c *Client) Do(ctx context.Context, domain, path string) (*http.Response, error) {
	url := c.opts.BaseURL(domain) + path
	attempts := 0
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "shopify new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if ctx.Err() != nil || !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "shopify %s unreachable", domain)
			}
			back := c.backoff(attempts)
			c.log.Warn().Err(err).Str("store", domain).Dur("retry_in", back).Int("attempt", attempts).Msg("shopify transport error retrying")
			if err := c.sleep(ctx, back); err != nil {
				return nil, err
			}
			attempts++
			continue
		}

		c.log.Debug().
			Str("store", domain).
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("shopify http response")

		switch resp.StatusCode {
		case http.StatusOK:
			return resp, nil
		case http.StatusNotFound:
			_ = drainAndClose(resp.Body)
			return nil, perr.NotFoundf("%s has no public products feed", domain)
		case http.StatusTooManyRequests:
			wait := retryAfter(resp.Header, c.opts.RateWait)
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return nil, perr.TooManyRequestsf("shopify %s rate limited", domain)
			}
			c.log.Warn().Str("store", domain).Dur("sleep", wait).Msg("shopify rate limited backing off")
			if err := c.sleep(ctx, wait); err != nil {
				return nil, err
			}
			attempts++
			continue
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return nil, perr.Unavailablef("shopify %s transient server error", domain)
			}
			back := c.backoff(attempts)
			c.log.Warn().Str("store", domain).Dur("retry_in", back).Int("attempt", attempts).Msg("shopify transient error retrying")
			if err := c.sleep(ctx, back); err != nil {
				return nil, err
			}
			attempts++
			continue
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			_ = resp.Body.Close()
			return nil, &StatusError{
				Status: resp.StatusCode,
				Body:   string(body),
				Err:    perr.Newf(perr.ErrorCodeUnavailable, "shopify %s unexpected status %d", domain, resp.StatusCode),
			}
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d > 30*time.Second {
		d = 30 * time.Second
	}
	return d
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}
