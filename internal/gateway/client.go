// Package gateway is the only place the portal talks to the SmartRide
// backend. Every call goes through one http.Client whose transport attaches
// the session's bearer token.
package gateway

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

	"smartride-portal/pkg/metrics"
	"smartride-portal/pkg/utils"

	"go.uber.org/zap"
)

type Client struct {
	baseURL string
	rootURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(cfg utils.BackendConfig, log *zap.Logger) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend base url %q", cfg.BaseURL)
	}
	root := url.URL{Scheme: u.Scheme, Host: u.Host}

	return &Client{
		baseURL: base,
		rootURL: root.String(),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: &tokenTransport{next: http.DefaultTransport},
		},
		log: log.With(zap.String("component", "gateway")),
	}, nil
}

// tokenTransport adds the bearer token carried by the request context.
type tokenTransport struct {
	next http.RoundTripper
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token, ok := utils.GetTokenFromContext(req.Context()); ok && req.Header.Get("Authorization") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	metrics.GatewayRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	metrics.GatewayRequestsTotal.WithLabelValues(req.Method, status).Inc()

	return resp, err
}

func (c *Client) api(path string, query url.Values) string {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

func (c *Client) root(path string) string {
	return c.rootURL + path
}

// call performs a request and returns the body of a 2xx answer. Any other
// status becomes an *APIError.
func (c *Client) call(ctx context.Context, method, target string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("Backend unreachable",
			zap.Error(err),
			zap.String("method", method),
			zap.String("url", target))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Method:  method,
			Path:    req.URL.Path,
			Message: extractMessage(data),
		}
		c.log.Warn("Backend returned error",
			zap.Int("status", apiErr.Status),
			zap.String("method", method),
			zap.String("path", apiErr.Path),
			zap.String("message", apiErr.Message))
		return nil, apiErr
	}

	return data, nil
}

// fetch decodes a 2xx JSON body into out. An empty body leaves out untouched.
func (c *Client) fetch(ctx context.Context, method, target string, payload, out any) error {
	data, err := c.call(ctx, method, target, payload)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

// send performs an action call and returns whatever message the backend
// answered with, which may be empty.
func (c *Client) send(ctx context.Context, method, target string, payload any) (string, error) {
	data, err := c.call(ctx, method, target, payload)
	if err != nil {
		return "", err
	}
	return extractMessage(data), nil
}

// fetchList normalises collection endpoints: an array decodes as is, a
// single object becomes a one-element list, null or empty is an empty list.
func fetchList[T any](ctx context.Context, c *Client, target string) ([]T, error) {
	data, err := c.call(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](data)
}

func decodeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	case '{':
		var item T
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return nil, fmt.Errorf("failed to decode list item: %w", err)
		}
		return []T{item}, nil
	}
	return nil, fmt.Errorf("unexpected list payload")
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}
