package api

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

	"servicehub/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client is the low-level HTTP client for the marketplace backend. All
// request plumbing (bearer token, throttling, error mapping) lives here so
// the per-resource APIs stay thin.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  *utils.TokenStore
	Limiter *rate.Limiter
	Logger  *zap.Logger
}

// NewClient builds a backend client with the given base URL and timeout.
func NewClient(baseURL string, timeout time.Duration, tokens *utils.TokenStore, logger *zap.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Tokens:  tokens,
		// Outbound throttle: 10 req/s with a small burst, enough for
		// interactive use without hammering the backend.
		Limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
		Logger:  logger,
	}
}

// backendError is the backend's error envelope.
type backendError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do executes one request and decodes a 2xx body into out. Non-2xx statuses
// map to typed errors: 401/403 become auth errors, everything else a server
// error carrying the backend message verbatim. Transport failures become
// network errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	if err := c.Limiter.Wait(ctx); err != nil {
		return NewNetworkError(fmt.Sprintf("request throttled: %v", err))
	}

	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Code: CodeDecode, Message: fmt.Sprintf("failed to encode request body: %v", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return NewNetworkError(fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Tokens.Get(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Logger.Warn("Backend request failed", zap.String("path", path), zap.Error(err))
		return NewNetworkError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return NewAuthError("authentication required")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var be backendError
		msg := ""
		if err := json.NewDecoder(resp.Body).Decode(&be); err == nil {
			msg = be.Message
			if msg == "" {
				msg = be.Error
			}
		}
		c.Logger.Warn("Backend returned non-OK status",
			zap.String("path", path), zap.Int("status", resp.StatusCode), zap.String("message", msg))
		return NewServerError(resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Code: CodeDecode, Message: fmt.Sprintf("failed to decode response: %v", err)}
	}
	return nil
}
