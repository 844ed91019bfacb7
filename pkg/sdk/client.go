package hrsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	gen "github.com/kailas-cloud/hrsearch/internal/transport/generated"
)

var errDecode = errors.New("hrsearch: decode response")

const (
	defaultTimeout    = 60 * time.Second
	defaultMaxRetries = 2
	maxErrorBody      = 64 << 10
)

// Client talks to an hrsearch server over HTTP. It is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	apiKey     string
	maxRetries uint64
	obs        *observer
}

// New creates a Client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		timeout:    defaultTimeout,
		maxRetries: defaultMaxRetries,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("hrsearch: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("hrsearch: base url must be http or https, got %q", baseURL)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    u,
		http:       hc,
		apiKey:     cfg.apiKey,
		maxRetries: cfg.maxRetries,
		obs:        obs,
	}, nil
}

// call is one API request description.
type call struct {
	op         string
	method     string
	path       string
	query      url.Values
	idempotent bool
}

// do sends the request, retrying idempotent calls, and decodes a JSON body into out.
// out may be nil. The final response headers are returned.
func (c *Client) do(ctx context.Context, cl call, out any) (http.Header, error) {
	start := time.Now()
	var hdr http.Header
	attempts := 0

	attempt := func() error {
		attempts++
		h, err := c.once(ctx, cl, out)
		hdr = h
		if err == nil {
			return nil
		}
		if !cl.idempotent || !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = 200 * time.Millisecond
	expo.MaxInterval = 2 * time.Second
	var b backoff.BackOff = backoff.WithMaxRetries(expo, c.maxRetries)

	err := backoff.Retry(attempt, backoff.WithContext(b, ctx))
	c.obs.observe(cl.op, start, attempts, err)
	return hdr, err
}

func (c *Client) once(ctx context.Context, cl call, out any) (http.Header, error) {
	u := *c.baseURL
	u.Path += cl.path
	u.RawQuery = cl.query.Encode()

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("hrsearch: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hrsearch: %s %s: %w", cl.method, cl.path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest && !(cl.op == "health" && resp.StatusCode == http.StatusServiceUnavailable) {
		return resp.Header, decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return resp.Header, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.Header, fmt.Errorf("%w: %s: %w", errDecode, cl.op, err)
	}
	return resp.Header, nil
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Status: resp.StatusCode}

	var er gen.ErrorResponse
	if json.Unmarshal(body, &er) == nil && er.Code != "" {
		apiErr.Code = string(er.Code)
		apiErr.Message = er.Message
	} else {
		apiErr.Code = http.StatusText(resp.StatusCode)
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

// retryable reports transport failures and 5xx responses.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError
	}
	if errors.Is(err, errDecode) {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
