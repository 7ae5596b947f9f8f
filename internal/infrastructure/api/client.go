// Package api is the outbound REST client for the clinic backend together
// with the RoundTripper chain that decorates every request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
)

// DefaultBaseURL is the backend root used when none is configured.
const DefaultBaseURL = "http://localhost:5126/api/"

const maxErrorBody = 4 << 10

// HTTPError is returned for any non-2xx backend response.
type HTTPError struct {
	Status int
	Method string
	Path   string
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

// Unwrap exposes the domain sentinel for well-known statuses.
func (e *HTTPError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	}
	return nil
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}

// Client issues JSON requests relative to a fixed base URL. It applies no
// timeouts or retries; callers bound requests through ctx.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient returns a client whose requests flow through transport. A nil
// transport uses http.DefaultTransport.
func NewClient(baseURL string, transport http.RoundTripper, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Transport: transport},
		log:        log,
	}
}

func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.doJSON(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, endpoint, body, out)
}

func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, endpoint, body, out)
}

func (c *Client) Delete(ctx context.Context, endpoint string) error {
	return c.doJSON(ctx, http.MethodDelete, endpoint, nil, nil)
}

// GetRaw returns the undecoded response body, for exports and images.
func (c *Client) GetRaw(ctx context.Context, endpoint string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, endpoint, err)
		}
		payload = b
	}

	raw, err := c.do(ctx, method, endpoint, payload)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, endpoint, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+strings.TrimPrefix(endpoint, "/"), reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(raw) > maxErrorBody {
			raw = raw[:maxErrorBody]
		}
		c.log.Debug().
			Str("method", method).
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Msg("backend returned error status")
		return nil, &HTTPError{Status: resp.StatusCode, Method: method, Path: endpoint, Body: string(raw)}
	}
	return raw, nil
}
