package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 4 << 20

// TokenSource supplies the bearer token attached to authenticated calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// CallLog receives the outcome of every call. The inspector's recorder
// implements it; a nil log disables recording.
type CallLog interface {
	RecordCall(method, path string, status int, requestID string, callErr error, elapsed time.Duration)
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	log     CallLog
	metrics *Collector
}

type Options struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	Tokens            TokenSource
	CallLog           CallLog
}

func New(baseURL string, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  opts.Tokens,
		limiter: limiter,
		log:     opts.CallLog,
		metrics: NewCollector(),
	}
}

func (c *Client) Metrics() *Collector {
	return c.metrics
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (any, error) {
	return c.request(ctx, http.MethodGet, path, query, nil, true)
}

func (c *Client) post(ctx context.Context, path string, body any) (any, error) {
	return c.request(ctx, http.MethodPost, path, nil, body, true)
}

func (c *Client) put(ctx context.Context, path string, body any) (any, error) {
	return c.request(ctx, http.MethodPut, path, nil, body, true)
}

func (c *Client) patch(ctx context.Context, path string, body any) (any, error) {
	return c.request(ctx, http.MethodPatch, path, nil, body, true)
}

func (c *Client) del(ctx context.Context, path string) (any, error) {
	return c.request(ctx, http.MethodDelete, path, nil, nil, true)
}

// anonymous is for login/register, the only calls without a bearer token.
func (c *Client) anonymous(ctx context.Context, method, path string, body any) (any, error) {
	return c.request(ctx, method, path, nil, body, false)
}

func (c *Client) request(ctx context.Context, method, path string, query url.Values, body any, withAuth bool) (any, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, transportError(err)
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, transportError(err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, transportError(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if withAuth && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		wrapped := transportError(err)
		c.record(method, path, 0, requestID, wrapped, elapsed)
		return nil, wrapped
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	var payload any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &payload)
	}

	if resp.StatusCode >= 400 {
		wrapped := serverError(resp.StatusCode, payload)
		c.record(method, path, resp.StatusCode, requestID, wrapped, elapsed)
		return nil, wrapped
	}

	c.record(method, path, resp.StatusCode, requestID, nil, elapsed)
	return payload, nil
}

func (c *Client) record(method, path string, status int, requestID string, callErr error, elapsed time.Duration) {
	c.metrics.Record(status, callErr, elapsed)
	if c.log != nil {
		c.log.RecordCall(method, path, status, requestID, callErr, elapsed)
	}
}
