// Package graph is the single gateway to the Facebook Graph API: one
// call primitive plus the page-resolution and media-publishing
// operations built on it. No other package talks to the network.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL pins the Graph API version the publishing flow was
// written against.
const DefaultBaseURL = "https://graph.facebook.com/v24.0"

const requestTimeout = 60 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client

	pollInterval      time.Duration
	processingTimeout time.Duration
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:           strings.TrimRight(baseURL, "/"),
		httpClient:        &http.Client{Timeout: requestTimeout},
		pollInterval:      5 * time.Second,
		processingTimeout: 20 * time.Minute,
	}
}

// SetPollTiming overrides the processing-status poll interval and the
// total wait bound.
func (c *Client) SetPollTiming(interval, timeout time.Duration) {
	c.pollInterval = interval
	c.processingTimeout = timeout
}

// HTTPClient exposes the underlying client so the OAuth code exchange
// shares the same timeout policy as every other upstream call.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// call performs one upstream request. Bodies are decoded into out when
// the status is a success; any status >= 400 is normalized into an
// *APIError carrying the originating URL and the (loosely) parsed body.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, form url.Values, out any) error {
	callURL := c.baseURL + path

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, callURL, body)
	if err != nil {
		return fmt.Errorf("graph request %s: %w", path, err)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph request %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("graph response %s: %w", path, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{URL: callURL, StatusCode: resp.StatusCode, Response: ParseBody(raw)}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("graph response %s: %w", path, err)
		}
	}
	return nil
}

// ParseBody decodes a response body as JSON, wrapping non-JSON
// payloads so error details always survive to the caller.
func ParseBody(raw []byte) map[string]any {
	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return map[string]any{"_raw": string(raw)}
	}
	return parsed
}
