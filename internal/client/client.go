// Package client is a small HTTP client for the print-relay API, shared by
// relay-cli and relay-monitor.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sevigo/print-relay/internal/core"
	"github.com/sevigo/print-relay/internal/server/handler"
)

// Client talks to a running print-relay server.
type Client struct {
	baseURL string
	secret  []byte
	http    *http.Client
}

// New creates a client for baseURL. When secret is set, event posts are signed.
func New(baseURL, secret string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		secret:  []byte(secret),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Accepted is the server's reply to an accepted print event.
type Accepted struct {
	JobID     string `json:"job_id"`
	SourceURI string `json:"source_uri"`
}

// Enqueue posts a print notification.
func (c *Client) Enqueue(ctx context.Context, n *core.Notification) (*Accepted, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/events/print", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if len(c.secret) > 0 {
		req.Header.Set(handler.SignatureHeader, handler.Sign(c.secret, payload))
	}

	var accepted Accepted
	if err := c.do(req, http.StatusAccepted, &accepted); err != nil {
		return nil, err
	}
	return &accepted, nil
}

// Queue returns the processor status.
func (c *Client) Queue(ctx context.Context) (*core.QueueStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/queue", nil)
	if err != nil {
		return nil, err
	}
	var status core.QueueStatus
	if err := c.do(req, http.StatusOK, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Jobs returns up to limit recent journal records, newest first.
func (c *Client) Jobs(ctx context.Context, limit int) ([]*core.JobRecord, error) {
	u := c.baseURL + "/api/v1/jobs"
	if limit > 0 {
		u += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	var body handler.JobsResponse
	if err := c.do(req, http.StatusOK, &body); err != nil {
		return nil, err
	}
	return body.Jobs, nil
}

func (c *Client) do(req *http.Request, want int, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Redacted(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: %s: %s", req.Method, req.URL.Path, resp.Status, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
