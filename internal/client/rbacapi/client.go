package rbacapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Egor213/RBACPanel/internal/activitylog"
	"github.com/Egor213/RBACPanel/internal/metrics"
	log "github.com/sirupsen/logrus"
)

const defaultTimeout = 10 * time.Second

type CallLogger interface {
	APICall(ctx context.Context, c activitylog.APICall)
}

// Client talks JSON to the RBAC backend. Every call is reported to the call logger.
type Client struct {
	baseURL  string
	http     *http.Client
	calls    CallLogger
	counters *metrics.Counters
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithCallLogger(l CallLogger) Option {
	return func(c *Client) {
		c.calls = l
	}
}

func WithCounters(m *metrics.Counters) Option {
	return func(c *Client) {
		c.counters = m
	}
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the outcome of a generic call. Failures are folded in rather than returned.
type Result struct {
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data,omitempty"`
	Error      string          `json:"error,omitempty"`
}

func (r Result) OK() bool {
	return r.Error == ""
}

func (c *Client) Get(ctx context.Context, token, endpoint string) Result {
	return c.generic(ctx, http.MethodGet, endpoint, token, nil)
}

func (c *Client) Post(ctx context.Context, token, endpoint string, body any) Result {
	return c.generic(ctx, http.MethodPost, endpoint, token, body)
}

func (c *Client) Put(ctx context.Context, token, endpoint string, body any) Result {
	return c.generic(ctx, http.MethodPut, endpoint, token, body)
}

func (c *Client) Delete(ctx context.Context, token, endpoint string) Result {
	return c.generic(ctx, http.MethodDelete, endpoint, token, nil)
}

func (c *Client) generic(ctx context.Context, method, endpoint, token string, body any) Result {
	var data json.RawMessage
	status, err := c.do(ctx, method, endpoint, token, body, &data)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return Result{StatusCode: apiErr.StatusCode, Error: apiErr.Message}
		}
		return Result{StatusCode: http.StatusInternalServerError, Error: Message(err)}
	}
	return Result{StatusCode: status, Data: data}
}

// Do sends body as JSON and decodes a 2xx answer into out (when non-nil).
func (c *Client) Do(ctx context.Context, method, endpoint, token string, body, out any) error {
	_, err := c.do(ctx, method, endpoint, token, body, out)
	return err
}

func (c *Client) do(ctx context.Context, method, endpoint, token string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode %s %s body: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return 0, fmt.Errorf("build %s %s: %w", method, endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		tErr := &TransportError{Op: method + " " + endpoint, Timeout: isTimeout(err), Err: err}
		c.record(ctx, method, endpoint, 0, elapsed, Message(tErr))
		log.WithFields(log.Fields{"method": method, "endpoint": endpoint, "error": err}).Error("Backend request failed")
		return 0, tErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		tErr := &TransportError{Op: method + " " + endpoint, Timeout: isTimeout(err), Err: err}
		c.record(ctx, method, endpoint, resp.StatusCode, elapsed, Message(tErr))
		return resp.StatusCode, tErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeAPIError(resp.StatusCode, raw)
		c.record(ctx, method, endpoint, resp.StatusCode, elapsed, apiErr.Message)
		return resp.StatusCode, apiErr
	}

	c.record(ctx, method, endpoint, resp.StatusCode, elapsed, "")

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s %s: %w", method, endpoint, err)
	}
	return resp.StatusCode, nil
}

func (c *Client) record(ctx context.Context, method, endpoint string, status int, elapsed float64, detail string) {
	if c.counters != nil {
		label := "error"
		if status != 0 {
			label = strconv.Itoa(status)
		}
		c.counters.BackendRequests.Inc(method, label)
	}
	if c.calls != nil {
		c.calls.APICall(ctx, activitylog.APICall{
			Method:      method,
			Endpoint:    endpoint,
			StatusCode:  status,
			Duration:    elapsed,
			Success:     status != 0 && status < 400,
			ErrorDetail: detail,
		})
	}
}

// decodeAPIError takes the message from "detail", which is either a string or a list of
// validation objects carrying "msg".
func decodeAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    fmt.Sprintf("HTTP %d", status),
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}
	apiErr.Details = body

	switch detail := body["detail"].(type) {
	case string:
		if detail != "" {
			apiErr.Message = detail
		}
	case []any:
		if len(detail) > 0 {
			if first, ok := detail[0].(map[string]any); ok {
				if msg, ok := first["msg"].(string); ok && msg != "" {
					apiErr.Message = msg
				}
			}
		}
	}
	return apiErr
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
