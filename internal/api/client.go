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

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/hongminglow/storefront/internal/telemetry"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxBody caps how much of a response body is read.
const maxBody = 4 << 20

// maxMessageRunes caps a non-JSON error body used as the error message.
const maxMessageRunes = 200

// ErrBackend matches every failed call to the backend, whether it answered
// with an error status, could not be reached, or returned an unreadable body.
var ErrBackend = errors.New("backend request failed")

// Error describes a failed backend call.
type Error struct {
	Status    int
	Message   string
	Method    string
	Path      string
	RequestID string
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Method, e.Path)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrBackend) match any *Error.
func (e *Error) Is(target error) bool { return target == ErrBackend }

// StatusOf returns the HTTP status of a backend error, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Client talks to the storefront REST backend. It holds no session state:
// callers pass the bearer token per call and an empty token sends the
// request unauthenticated.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New returns a client for baseURL with a per-request timeout.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout}, log)
}

// NewWithHTTPClient uses the given http.Client, e.g. one from httptest.
func NewWithHTTPClient(baseURL string, hc *http.Client, log *zap.Logger) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		log:     log,
	}
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	requestID := uuid.NewString()
	ctx, span := telemetry.StartSpan(ctx, method+" "+path,
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
		attribute.String("request.id", requestID),
	)
	defer span.End()

	fail := func(status int, msg string, err error) error {
		apiErr := &Error{Status: status, Message: msg, Method: method, Path: path, RequestID: requestID, Err: err}
		telemetry.SetSpanError(ctx, apiErr)
		c.log.Warn("backend call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("request_id", requestID),
			zap.Error(apiErr),
		)
		return apiErr
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fail(0, "encode request", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fail(0, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fail(0, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fail(resp.StatusCode, "read response", err)
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fail(resp.StatusCode, errorMessage(raw), nil)
	}

	c.log.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("latency", time.Since(start)),
	)

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fail(resp.StatusCode, "decode response", err)
	}
	return nil
}

// errorMessage pulls the human message out of an error body. The backend
// uses {msg}; {error} and {message} are accepted too.
func errorMessage(raw []byte) string {
	var body struct {
		Msg     string `json:"msg"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, m := range []string{body.Msg, body.Error, body.Message} {
			if m != "" {
				return m
			}
		}
	}
	text := strings.ToValidUTF8(strings.TrimSpace(string(raw)), "")
	if runes := []rune(text); len(runes) > maxMessageRunes {
		text = string(runes[:maxMessageRunes])
	}
	return text
}
