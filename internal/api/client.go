// Package api is the HTTP client for the MercaUca backend.
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
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mercauca/internal/logger"
)

const (
	RequestIDHeader = "X-Request-ID"

	defaultTimeout = 15 * time.Second
)

var (
	// ErrUnauthorized matches 401 and 403 replies
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound matches 404 replies
	ErrNotFound = errors.New("not found")
)

// StatusError is returned for non-2xx replies. Message carries the
// backend's "mensaje" or "message" field when the body has one.
type StatusError struct {
	Status  int
	Message string
	Body    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// Message returns the backend message of err, or fallback when err carries
// none
func Message(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}

// RetryPolicy controls how idempotent GETs are retried
type RetryPolicy struct {
	MaxRetries   uint64
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultRetryPolicy returns the policy used by NewClient
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   3,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     2 * time.Second,
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialDelay
	b.MaxInterval = p.MaxDelay
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, p.MaxRetries), ctx)
}

// Client talks to the backend REST API
type Client struct {
	baseURL string
	http    *http.Client
	retry   RetryPolicy
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		retry:   DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend address
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	method      string
	path        string
	token       string
	body        []byte
	stream      io.Reader
	contentType string
}

func jsonRequest(method, path, token string, payload any) (request, error) {
	req := request{method: method, path: path, token: token}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return req, fmt.Errorf("failed to encode request: %w", err)
		}
		req.body = data
		req.contentType = "application/json"
	}
	return req, nil
}

// do sends req and returns the response body. GETs are retried on 429,
// 5xx and transport errors.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	if req.method != http.MethodGet || req.stream != nil {
		return c.once(ctx, req)
	}

	var body []byte
	attempt := 0
	op := func() error {
		attempt++
		b, err := c.once(ctx, req)
		if err == nil {
			body = b
			return nil
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		logger.Debug("retrying request",
			zap.String("path", req.path),
			zap.Int("attempt", attempt),
			zap.Duration("next", next),
			zap.Error(err))
	}
	if err := backoff.RetryNotify(op, c.retry.backOff(ctx), notify); err != nil {
		return nil, err
	}
	return body, nil
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status == http.StatusTooManyRequests || se.Status >= 500
	}
	return true
}

func (c *Client) once(ctx context.Context, req request) ([]byte, error) {
	var body io.Reader
	if req.stream != nil {
		body = req.stream
	} else if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set(RequestIDHeader, requestID)
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		logger.Debug("request failed",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to %s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	logger.Debug("request",
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", requestID))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Status:  resp.StatusCode,
			Message: messageFrom(data),
			Body:    string(data),
		}
	}
	return data, nil
}

func messageFrom(data []byte) string {
	var m struct {
		Mensaje string `json:"mensaje"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return ""
	}
	if m.Mensaje != "" {
		return m.Mensaje
	}
	return m.Message
}

func decode(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeList decodes a JSON array. Any other body yields an empty list.
func decodeList[T any](data []byte) []T {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		logger.Warn("discarding malformed list response", zap.Error(err))
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}
