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
)

// Client talks to the coffee backend. Every call is a single attempt:
// no retries, no backoff. Failures come back as *Error with a message
// already extracted from the error envelope.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient builds a client for the given base URL, e.g.
// "http://localhost:8080/coffee". A zero timeout means no timeout.
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log: log,
	}
}

// resultEnvelope is the {"result": T} wrapper every successful response
// shares. Callers of send never see it.
type resultEnvelope struct {
	Result json.RawMessage `json:"result"`
}

// send performs one request. body == nil sends no payload, token == ""
// sends no Authorization header, out == nil discards the result.
func (c *Client) send(ctx context.Context, method, path string, body any, token string, out any) error {
	logger := c.log.With(slog.String("method", method), slog.String("path", path))

	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("request failed", slog.Any("error", err))
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.readError(resp)
		logger.Warn("backend rejected request",
			slog.Int("status", resp.StatusCode),
			slog.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var envelope resultEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}

// readError turns a non-2xx response into *Error. The body may carry
// {"error":{"message":...}} or {"message":...}; anything else falls back
// to the status text.
func (c *Client) readError(resp *http.Response) *Error {
	message := http.StatusText(resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	if err == nil && len(raw) > 0 {
		var envelope errorEnvelope
		if err := json.Unmarshal(raw, &envelope); err == nil {
			if m := envelope.message(); m != "" {
				message = m
			}
		}
	}
	return &Error{StatusCode: resp.StatusCode, Message: message}
}
