// Package api wraps outbound HTTP calls to the remote storefront backend.
// Every request carries the caller's bearer token when one is present in
// the context; responses are decoded from JSON and failures are mapped to
// domain errors so callers never see raw HTTP details.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nmoreyra/cartelera/internal/domain"
)

// Client is the gateway to the REST backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a backend client. baseURL includes the API prefix
// (e.g. "http://localhost:8081/api") and timeout bounds every request.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := "api." + strings.ToLower(method)

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return domain.Internal(err, op, "failed to encode request body")
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return domain.Internal(err, op, "failed to build request")
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return domain.WrapError(err, domain.EINTERNAL, op, "Could not reach the store service")
	}
	defer resp.Body.Close()

	c.logger.Debug("backend request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode >= 400 {
		return c.statusError(op, path, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.Internal(err, op, "failed to decode backend response")
	}

	return nil
}

// statusError maps a non-2xx backend response to a domain error. The body
// is read so the backend-provided message can be surfaced for 4xx codes.
func (c *Client) statusError(op, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var eb errorBody
	_ = json.Unmarshal(raw, &eb)
	message := eb.Message
	if message == "" {
		message = eb.Error
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.Unauthorized(op, "Your session has expired. Please sign in again.")
	case resp.StatusCode == http.StatusForbidden:
		return domain.Forbidden(op, "You are not allowed to perform this action")
	case resp.StatusCode == http.StatusNotFound:
		if message == "" {
			message = "Resource not found"
		}
		return domain.Errorf(domain.ENOTFOUND, op, "%s", message)
	case resp.StatusCode == http.StatusConflict:
		if message == "" {
			message = "Conflicting request"
		}
		return domain.Errorf(domain.ECONFLICT, op, "%s", message)
	case resp.StatusCode < 500:
		if message == "" {
			message = fmt.Sprintf("Request rejected by the store service (%d)", resp.StatusCode)
		}
		return domain.Errorf(domain.EINVALID, op, "%s", message)
	default:
		c.logger.Error("backend error response",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)))
		return domain.Errorf(domain.EINTERNAL, op, "store service error (%d)", resp.StatusCode)
	}
}
