// Package client provides the HTTP client for the remote knowledge service.
// It handles request construction, response validation, and retry logic for
// idempotent reads. Each service concern (spaces, ingestion, query, podcast)
// lives in its own file on top of the shared Client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sperrors "github.com/openspaces/spaces-cli/pkg/errors"
	"github.com/openspaces/spaces-cli/pkg/logging"
)

// Default client settings.
const (
	DefaultRequestTimeout    = 60 * time.Second
	DefaultMaxRetries        = 3
	DefaultInitialBackoff    = 100 * time.Millisecond
	DefaultMaxBackoff        = 5 * time.Second
	DefaultBackoffMultiplier = 2.0
)

// ClientOptions configures the Client behavior.
type ClientOptions struct {
	// RequestTimeout is the per-request timeout.
	RequestTimeout time.Duration

	// MaxRetries is the maximum number of retry attempts for idempotent reads.
	MaxRetries int

	// InitialBackoff is the initial backoff duration for retries.
	InitialBackoff time.Duration

	// MaxBackoff is the maximum backoff duration for retries.
	MaxBackoff time.Duration

	// BackoffMultiplier is the multiplier for exponential backoff.
	BackoffMultiplier float64

	// APIKey, when set, is attached to every request as a bearer token.
	APIKey string

	// Logger receives request diagnostics. Defaults to a no-op logger.
	Logger logging.Logger

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// DefaultOptions returns ClientOptions with default values.
func DefaultOptions() *ClientOptions {
	return &ClientOptions{
		RequestTimeout:    DefaultRequestTimeout,
		MaxRetries:        DefaultMaxRetries,
		InitialBackoff:    DefaultInitialBackoff,
		MaxBackoff:        DefaultMaxBackoff,
		BackoffMultiplier: DefaultBackoffMultiplier,
	}
}

// Client is an HTTP client for the knowledge service.
type Client struct {
	baseURL string
	options *ClientOptions
	httpc   *http.Client
	log     logging.Logger
}

// NewClient creates a Client for the service at baseURL.
func NewClient(baseURL string, opts *ClientOptions) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}

	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: opts.RequestTimeout}
	}

	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		options: opts,
		httpc:   httpc,
		log:     log,
	}
}

// BaseURL returns the configured service base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResolveURL resolves a service-relative path (such as a podcast audio_url)
// against the service origin. Absolute URLs pass through unchanged.
func (c *Client) ResolveURL(path string) string {
	if path == "" {
		return ""
	}
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// serviceError is the loosely specified error body the service may return.
// Only the message field is relied upon, and only for diagnostics.
type serviceError struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// do executes the request, maps non-success statuses into the error taxonomy,
// and returns the response body.
func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.options.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.options.APIKey)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		// Transport failure: same taxonomy as an application failure.
		return nil, fmt.Errorf("%w: %s %s: %v", sperrors.ErrService, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response from %s: %v", sperrors.ErrService, req.URL.Path, err)
	}

	c.log.Debug("service request",
		logging.F("method", req.Method),
		logging.F("path", req.URL.Path),
		logging.F("status", resp.StatusCode),
		logging.F("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := extractErrorDetail(body)
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s: %s", sperrors.ErrNotFound, req.URL.Path, detail)
		}
		return nil, fmt.Errorf("%w: %s %s: status %d: %s",
			sperrors.ErrService, req.Method, req.URL.Path, resp.StatusCode, detail)
	}

	return body, nil
}

// extractErrorDetail pulls a human-readable message out of an error body.
func extractErrorDetail(body []byte) string {
	var se serviceError
	if err := json.Unmarshal(body, &se); err == nil {
		if se.Detail != "" {
			return se.Detail
		}
		if se.Message != "" {
			return se.Message
		}
	}
	trimmed := strings.TrimSpace(string(body))
	if len(trimmed) > 200 {
		trimmed = trimmed[:200]
	}
	return trimmed
}

// getJSON issues a GET and decodes the JSON response into out.
// A response that does not match the expected shape is an application error.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}

	body, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding response from %s: %v", sperrors.ErrService, path, err)
	}
	return nil
}

// postJSON issues a POST with an optional JSON body and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request for %s: %w", path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	body, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding response from %s: %v", sperrors.ErrService, path, err)
	}
	return nil
}

// withRetry executes fn with exponential backoff. Only used for idempotent
// reads; user-initiated mutations are never retried automatically.
func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	backoff := c.options.InitialBackoff
	var lastErr error

	for attempt := 0; attempt <= c.options.MaxRetries; attempt++ {
		if err := fn(); err != nil {
			lastErr = err

			// Missing resources are definitive, not transient.
			if sperrors.IsNotFound(err) {
				return err
			}

			if attempt == c.options.MaxRetries {
				break
			}

			select {
			case <-ctx.Done():
				return fmt.Errorf("operation cancelled: %w", ctx.Err())
			case <-time.After(backoff):
			}

			backoff = time.Duration(float64(backoff) * c.options.BackoffMultiplier)
			if backoff > c.options.MaxBackoff {
				backoff = c.options.MaxBackoff
			}

			continue
		}

		return nil
	}

	return fmt.Errorf("operation failed after %d attempts: %w", c.options.MaxRetries+1, lastErr)
}
