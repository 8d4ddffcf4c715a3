package proxyclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	v1 "github.com/testcloud/grid-proxy/api/v1"
	srvErrors "github.com/testcloud/grid-proxy/pkg/errors"
)

const (
	DefaultTimeout = 10 * time.Second

	maxBodySize = 16 << 20
)

// envelope mirrors v1.Envelope with data left undecoded.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details string          `json:"details"`
	Message string          `json:"message"`
}

// Client calls the grid proxy HTTP contract.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewProxyClient expects the proxy base URL including the mount prefix, e.g.
// http://localhost:31590/api/selenium-grid.
func NewProxyClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse proxy url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid proxy url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Status fetches one snapshot.
// GET /status
func (c *Client) Status(ctx context.Context) (*v1.GridStatus, error) {
	env, err := c.do(ctx, http.MethodGet, "/status")
	if err != nil {
		return nil, err
	}

	var status v1.GridStatus
	if err := json.Unmarshal(env.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to decode grid status: %w", err)
	}
	return &status, nil
}

// DeleteSession asks the proxy to kill a session and returns its confirmation message.
// DELETE /session/{id}
func (c *Client) DeleteSession(ctx context.Context, sessionID string) (string, error) {
	env, err := c.do(ctx, http.MethodDelete, "/session/"+url.PathEscape(sessionID))
	if err != nil {
		return "", err
	}

	zap.S().Named("proxy_client").Debugw("session deleted", "session_id", sessionID, "message", env.Message)
	return env.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach proxy at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read proxy response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, srvErrors.NewProxyError(resp.StatusCode, fmt.Sprintf("unexpected proxy response: %s", resp.Status), "")
	}

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices && env.Success:
		return &env, nil
	case env.Error != "":
		return nil, srvErrors.NewProxyError(resp.StatusCode, env.Error, env.Details)
	default:
		return nil, srvErrors.NewProxyError(resp.StatusCode, fmt.Sprintf("proxy request failed: %s", resp.Status), env.Details)
	}
}
