package transport

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"card-ledger/core/metrics"
	"card-ledger/core/retry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Fetcher returns a parsed document for a URL and query parameters.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, params url.Values) (*goquery.Document, error)
}

// Client fetches HTML documents with a fixed timeout, browser identification,
// bounded retries and pacing between requests.
type Client struct {
	http    *resty.Client
	target  string
	policy  retry.Policy
	pacer   *Pacer
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithMetrics records requests, durations, retries and errors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithDelay paces requests at least d apart.
func WithDelay(d time.Duration) Option {
	return func(c *Client) { c.pacer = NewPacer(d) }
}

// WithRetry replaces the retry policy derived from the config.
func WithRetry(p retry.Policy) Option {
	return func(c *Client) { c.policy = p }
}

// New creates a client for one crawl target. target labels logs and metrics.
func New(cfg Config, target string, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	c := &Client{
		http: resty.New().
			SetTimeout(cfg.Timeout()).
			SetHeader("User-Agent", ua).
			SetHeader("Accept-Language", "ja,en;q=0.8"),
		target: target,
		policy: retry.Policy{
			MaxAttempts: cfg.MaxAttempts,
			Backoff: retry.Exponential(
				time.Duration(cfg.BackoffMs)*time.Millisecond,
				time.Duration(cfg.MaxBackoffMs)*time.Millisecond),
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.policy.Logger = logger
	c.policy.Retryable = Retryable
	c.policy.OnRetry = func(int, time.Duration, error) { c.metrics.IncRetries() }
	return c
}

// Resty exposes the underlying client, e.g. for httpmock activation.
func (c *Client) Resty() *resty.Client {
	return c.http
}

// Paced returns a copy of the client sharing the HTTP connection pool but
// with its own delay between requests.
func (c *Client) Paced(d time.Duration) *Client {
	cp := *c
	cp.pacer = NewPacer(d)
	return &cp
}

// Fetch implements Fetcher.
func (c *Client) Fetch(ctx context.Context, rawURL string, params url.Values) (*goquery.Document, error) {
	var doc *goquery.Document
	err := c.policy.Do(ctx, c.target, func(ctx context.Context) error {
		if err := c.pacer.Wait(ctx); err != nil {
			return err
		}

		body, err := c.get(ctx, rawURL, params)
		if err != nil {
			c.metrics.IncRequest(c.target, "error")
			c.metrics.IncError(ErrorType(err))
			return err
		}
		c.metrics.IncRequest(c.target, "ok")

		doc, err = goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("parse %s: %w", rawURL, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Client) get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get(rawURL)
	c.metrics.ObserveDuration(time.Since(start))
	if err != nil {
		return nil, classify(err)
	}

	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return nil, &StatusError{Code: code, URL: resp.Request.URL}
	}

	c.logger.Debug("Fetched page",
		zap.String("target", c.target),
		zap.String("url", resp.Request.URL),
		zap.Int("bytes", len(resp.Body())),
		zap.Duration("took", resp.Time()))
	return resp.Body(), nil
}
