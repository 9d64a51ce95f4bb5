package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"ledgerview/internal/config"
)

// Sentinel errors distinguishing transport-level failure classes. Backend
// rejections carry a *StatusError instead.
var (
	ErrUnavailable = errors.New("upstream unreachable")
	ErrTimeout     = errors.New("upstream request timed out")
)

// StatusError is a non-2xx reply from the finance backend.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("upstream returned %d", e.StatusCode)
}

// IsAuthError reports whether the backend rejected the bearer token.
func (e *StatusError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// DecodeError is a 2xx reply whose body did not match the expected shape,
// including non-numeric balance, price, or quantity fields. Malformed
// numerics are rejected here rather than degrading to NaN downstream.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type tokenContextKey struct{}

// WithAuthToken returns a context carrying the caller's bearer token. Every
// request the client issues forwards this token verbatim; the gateway holds
// no credentials of its own.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// AuthTokenFromContext extracts the forwarded bearer token, if any.
func AuthTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey{}).(string)
	return token
}

// Client is the REST client for the finance backend. All aggregation,
// currency conversion, and performance math happens server-side; the client
// only decodes what the backend computed.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a backend client. The configured timeout bounds every request;
// there is no automatic retry, a failed call surfaces to the user.
func New(cfg config.UpstreamConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: slog.Default(),
	}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building %s request: %w", path, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := AuthTokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			c.logger.Warn("upstream request timed out",
				"method", method,
				"path", path)
			return fmt.Errorf("%s %s: %w", method, path, ErrTimeout)
		}
		c.logger.Warn("upstream request failed",
			"method", method,
			"path", path,
			"error", err.Error())
		return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Detail:     readErrorDetail(resp.Body),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Endpoint: path, Err: err}
	}

	return nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// readErrorDetail pulls the backend's "detail" field out of an error body.
// The body is discarded on any decode problem; the status code is enough.
func readErrorDetail(r io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&payload); err != nil {
		return ""
	}
	return payload.Detail
}
