package grid

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	srvErrors "github.com/testcloud/grid-proxy/pkg/errors"
	"github.com/testcloud/grid-proxy/pkg/metrics"
)

const (
	DefaultTimeout = 5 * time.Second

	registrationSecretHeader = "X-REGISTRATION-SECRET"
	maxBodySize              = 16 << 20

	statusPath       = "/status"
	newSessionPath   = "/session"
	sessionPath      = "/session/%s"
	nodePath         = "/se/grid/distributor/node/%s"
	nodeDrainPath    = "/se/grid/distributor/node/%s/drain"
	sessionQueuePath = "/se/grid/newsessionqueue/queue"
)

type Option func(c *Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds every single attempt. Zero keeps DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) {
		c.retry = p
	}
}

// WithRegistrationSecret is sent on distributor calls (node drain and removal).
func WithRegistrationSecret(secret string) Option {
	return func(c *Client) {
		c.registrationSecret = secret
	}
}

// Client talks to the selenium grid coordinator.
type Client struct {
	baseURL            string
	httpClient         *http.Client
	timeout            time.Duration
	retry              RetryPolicy
	registrationSecret string
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse grid url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid grid url %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		retry:      NoRetry,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Status fetches the grid status.
// GET {grid}/status
func (c *Client) Status(ctx context.Context) (*RawStatus, error) {
	resp, err := c.call(ctx, "status", http.MethodGet, statusPath, nil, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, srvErrors.NewUpstreamError(fmt.Sprintf("grid status request failed: %s", resp.status), resp.code, nil)
	}

	var status RawStatus
	if err := json.Unmarshal(resp.body, &status); err != nil {
		return nil, srvErrors.NewUpstreamError("invalid grid status payload", resp.code, err)
	}
	return &status, nil
}

// CreateSession requests a new browser session with the given capabilities and
// returns the grid's answer as is. The capabilities are sent both in the legacy
// desiredCapabilities form and as W3C alwaysMatch.
// POST {grid}/session
func (c *Client) CreateSession(ctx context.Context, capabilities map[string]any) (json.RawMessage, error) {
	if capabilities == nil {
		capabilities = map[string]any{}
	}
	body, err := json.Marshal(newSessionRequest{
		DesiredCapabilities: capabilities,
		Capabilities:        w3cCapabilities{AlwaysMatch: capabilities},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode session request: %w", err)
	}

	resp, err := c.call(ctx, "create_session", http.MethodPost, newSessionPath, nil, body)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, srvErrors.NewUpstreamError(fmt.Sprintf("failed to create session: %s", resp.status), resp.code, upstreamMessage(resp.body))
	}
	return resp.ack(), nil
}

// DeleteSession asks the grid to terminate a session and returns the grid's answer as is.
// DELETE {grid}/session/{id}
func (c *Client) DeleteSession(ctx context.Context, sessionID string) (json.RawMessage, error) {
	resp, err := c.call(ctx, "delete_session", http.MethodDelete, fmt.Sprintf(sessionPath, url.PathEscape(sessionID)), nil, nil)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.code == http.StatusNotFound:
		return nil, srvErrors.NewSessionNotFoundError(sessionID)
	case !resp.ok():
		return nil, srvErrors.NewUpstreamError(fmt.Sprintf("failed to delete session: %s", resp.status), resp.code, nil)
	}
	return resp.ack(), nil
}

// DrainNode stops a node from accepting new sessions.
// POST {grid}/se/grid/distributor/node/{id}/drain
func (c *Client) DrainNode(ctx context.Context, nodeID string) (json.RawMessage, error) {
	return c.nodeCall(ctx, "drain_node", http.MethodPost, fmt.Sprintf(nodeDrainPath, url.PathEscape(nodeID)), nodeID)
}

// RemoveNode unregisters a node from the distributor.
// DELETE {grid}/se/grid/distributor/node/{id}
func (c *Client) RemoveNode(ctx context.Context, nodeID string) (json.RawMessage, error) {
	return c.nodeCall(ctx, "remove_node", http.MethodDelete, fmt.Sprintf(nodePath, url.PathEscape(nodeID)), nodeID)
}

// Queue lists the pending new session requests.
// GET {grid}/se/grid/newsessionqueue/queue
func (c *Client) Queue(ctx context.Context) ([]json.RawMessage, error) {
	resp, err := c.call(ctx, "queue", http.MethodGet, sessionQueuePath, nil, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, srvErrors.NewUpstreamError(fmt.Sprintf("failed to get session queue: %s", resp.status), resp.code, nil)
	}

	var q QueueStatus
	if err := json.Unmarshal(resp.body, &q); err != nil {
		return nil, srvErrors.NewUpstreamError("invalid session queue payload", resp.code, err)
	}
	return q.Value, nil
}

// ClearQueue rejects every pending new session request.
// DELETE {grid}/se/grid/newsessionqueue/queue
func (c *Client) ClearQueue(ctx context.Context) (json.RawMessage, error) {
	resp, err := c.call(ctx, "clear_queue", http.MethodDelete, sessionQueuePath, c.secretHeader(), nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, srvErrors.NewUpstreamError(fmt.Sprintf("failed to clear session queue: %s", resp.status), resp.code, nil)
	}
	return resp.ack(), nil
}

func (c *Client) nodeCall(ctx context.Context, op, method, path, nodeID string) (json.RawMessage, error) {
	resp, err := c.call(ctx, op, method, path, c.secretHeader(), nil)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.code == http.StatusNotFound:
		return nil, srvErrors.NewNodeNotFoundError(nodeID)
	case !resp.ok():
		return nil, srvErrors.NewUpstreamError(fmt.Sprintf("%s failed: %s", strings.ReplaceAll(op, "_", " "), resp.status), resp.code, nil)
	}
	return resp.ack(), nil
}

func (c *Client) secretHeader() http.Header {
	if c.registrationSecret == "" {
		return nil
	}
	h := http.Header{}
	h.Set(registrationSecretHeader, c.registrationSecret)
	return h
}

type response struct {
	code   int
	status string
	body   []byte
}

func (r *response) ok() bool {
	return r.code >= 200 && r.code < 300
}

// ack returns the body as an opaque JSON value; bodies that are not JSON are
// wrapped as a JSON string.
func (r *response) ack() json.RawMessage {
	body := strings.TrimSpace(string(r.body))
	if body == "" {
		return nil
	}
	if json.Valid([]byte(body)) {
		return json.RawMessage(body)
	}
	quoted, _ := json.Marshal(body)
	return quoted
}

// call performs the request under the retry policy. Only transport failures
// come back as errors; HTTP status handling is left to the caller.
func (c *Client) call(ctx context.Context, op, method, path string, header http.Header, body []byte) (*response, error) {
	start := time.Now()
	attempt := 0

	resp, err := backoff.Retry(ctx, func() (*response, error) {
		attempt++
		r, err := c.do(ctx, method, path, header, body)
		if err == nil {
			return r, nil
		}
		if !c.retry.retryable(err) || ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		zap.S().Named("grid_client").Warnw("grid request failed, retrying", "operation", op, "attempt", attempt, "error", err)
		return nil, err
	}, c.retry.options()...)

	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil && !resp.ok():
		outcome = metrics.OutcomeHTTPError
	case srvErrors.IsUpstreamUnreachableError(err):
		outcome = metrics.OutcomeUnreachable
	case err != nil:
		outcome = metrics.OutcomeError
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(op, outcome).Inc()
	metrics.UpstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err != nil {
		// backoff hands back the bare context error when the caller gave up between attempts
		if !srvErrors.IsUpstreamUnreachableError(err) && !srvErrors.IsUpstreamError(err) {
			err = srvErrors.NewUpstreamError("grid request aborted", 0, err)
		}
		zap.S().Named("grid_client").Debugw("grid request failed", "operation", op, "method", method, "path", path, "attempts", attempt, "error", err)
		return nil, err
	}

	zap.S().Named("grid_client").Debugw("grid request done", "operation", op, "method", method, "path", path, "status", resp.code, "attempts", attempt)
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, header http.Header, body []byte) (*response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, srvErrors.NewUpstreamError("failed to build grid request", 0, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classify(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, c.classify(err)
	}

	return &response{code: resp.StatusCode, status: resp.Status, body: data}, nil
}

func (c *Client) classify(err error) error {
	if errors.Is(err, context.Canceled) {
		return srvErrors.NewUpstreamError("grid request aborted", 0, err)
	}
	if isConnectionFailure(err) {
		return srvErrors.NewUpstreamUnreachableError(c.baseURL, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return srvErrors.NewUpstreamError(fmt.Sprintf("timeout of %s exceeded", c.timeout), 0, err)
	}
	return srvErrors.NewUpstreamError("grid request failed", 0, err)
}

// isConnectionFailure reports whether err means the grid could not be reached
// at all, as opposed to a failure after the connection was made.
func isConnectionFailure(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" && !opErr.Timeout() {
		return true
	}
	return false
}
