// Package gateway is the HTTP client for the ebuy REST API. It owns the wire
// representation of every resource and converts the API's error responses
// into the domain error kinds; nothing above it touches HTTP.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"ebuy-client/internal/domain"
)

// TokenSource supplies the bearer token for authenticated calls. A
// *session.Session satisfies it; an empty token means the call goes out
// unauthenticated.
type TokenSource interface {
	Token() string
}

type Config struct {
	BaseURL    string
	Tokens     TokenSource
	HTTPClient *http.Client
	Logger     *log.Logger
}

type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     *log.Logger
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		tokens:     cfg.Tokens,
		httpClient: httpClient,
		logger:     logger,
	}
}

// do issues one request and decodes the JSON response into out. Non-2xx
// responses become domain errors; out is left untouched on any failure.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &domain.NetworkError{Op: op, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &domain.NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &domain.NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		if out == nil || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			c.logger.Printf("%s: undecodable response body: %v", op, err)
			return &domain.NetworkError{Op: op, StatusCode: resp.StatusCode, Err: err}
		}
		return nil
	}

	return decodeError(op, resp.StatusCode, data)
}

// decodeError maps the API's {"error": "..."} responses onto the domain
// taxonomy. Responses without a structured body are transport-level failures.
func decodeError(op string, status int, data []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	message := ""
	if json.Unmarshal(data, &payload) == nil {
		message = strings.TrimSpace(payload.Error)
	}
	if message == "" {
		return &domain.NetworkError{Op: op, StatusCode: status}
	}

	switch status {
	case http.StatusBadRequest:
		return &domain.ValidationError{Message: message}
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrAuthRequired
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return &domain.TransitionError{Message: message}
	}
	return &domain.NetworkError{Op: op, StatusCode: status}
}
