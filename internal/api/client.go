// Package api is a thin JSON client for the PluggKompis backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const maxErrorBody = 64 << 10

// envelope is the backend's standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a client for baseURL (e.g. "https://api.pluggkompis.se").
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

type requestOptions struct {
	token          string
	query          url.Values
	body           any
	idempotencyKey string
}

func (c *Client) newRequest(ctx context.Context, method, path string, opts requestOptions) (*http.Request, error) {
	u := c.baseURL + path
	if len(opts.query) > 0 {
		u += "?" + opts.query.Encode()
	}

	var body io.Reader
	if opts.body != nil {
		payload, err := json.Marshal(opts.body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if opts.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}
	if opts.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", opts.idempotencyKey)
	}
	return req, nil
}

// do sends a request and decodes the envelope's data into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, opts requestOptions, out any) error {
	req, err := c.newRequest(ctx, method, path, opts)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= 300 {
				return &Error{StatusCode: resp.StatusCode, Message: truncate(raw)}
			}
			return fmt.Errorf("decode response: %w", err)
		}
	}

	if resp.StatusCode >= 300 || (len(raw) > 0 && !env.Success) {
		status := resp.StatusCode
		if status < 300 {
			// success=false on a 2xx is a business rejection
			status = http.StatusUnprocessableEntity
		}
		return &Error{StatusCode: status, Message: env.Message, Details: env.Errors}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// download fetches a binary body (e.g. a PDF) without the JSON envelope.
func (c *Client) download(ctx context.Context, path string, opts requestOptions) ([]byte, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, opts)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var env envelope
		if json.Unmarshal(raw, &env) == nil && (env.Message != "" || len(env.Errors) > 0) {
			return nil, "", &Error{StatusCode: resp.StatusCode, Message: env.Message, Details: env.Errors}
		}
		return nil, "", &Error{StatusCode: resp.StatusCode, Message: truncate(raw)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read download: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func truncate(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "…"
	}
	return string(b)
}
