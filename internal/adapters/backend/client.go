// Package backend holds the single HTTP client the gateway uses to reach
// the upstream catalog/order/identity service, plus the decode boundary
// that turns its loosely-shaped responses into stable results.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Config captures the subset of Backend behaviour the gateway needs.
type Config struct {
	// BaseURL is the Backend API root, e.g. "https://api.example.com/api".
	BaseURL string
	// AnalyticsToken is the static service-level bearer used for
	// server-to-server dashboard calls. Optional.
	AnalyticsToken string
	Timeout        time.Duration
	Client         *http.Client
	Logger         *slog.Logger
}

// Client issues requests against the Backend. Exactly one HTTP call is made
// per gateway operation; no retries are performed here.
type Client struct {
	baseURL string
	client  *http.Client
	// analytics carries the service-level token via oauth2 so dashboard
	// calls never borrow a browser credential.
	analytics *http.Client
	logger    *slog.Logger
}

// NewClient builds a Backend client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL: baseURL,
		client:  hc,
		logger:  logger,
	}

	if token := strings.TrimSpace(cfg.AnalyticsToken); token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		analytics := oauth2.NewClient(context.Background(), src)
		analytics.Timeout = timeout
		c.analytics = analytics
	}

	return c, nil
}

// BaseURL returns the resolved Backend API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Request describes one Backend call. JSON and Form are mutually exclusive
// body shapes.
type Request struct {
	Method string
	Path   string
	// Token is the caller's bearer credential; empty for public resources.
	Token string
	Query url.Values
	// JSON is marshalled as an application/json body when non-nil.
	JSON any
	// Form is sent as multipart/form-data; the Content-Type header is left
	// to the transport so the boundary is set correctly.
	Form *Form
	// ServiceAuth routes the call through the static service-token client
	// instead of the caller's credential.
	ServiceAuth bool
}

// Response is a raw Backend response after status classification: the body
// of a 2xx answer. Non-2xx answers come back as *Error instead.
type Response struct {
	Status int
	Body   []byte
	// URL is the resolved Backend URL, kept for diagnostics.
	URL string
}

// Do issues the request and classifies the outcome. Errors are always
// *Error: transport failures map to unreachable (502), non-2xx statuses to
// upstream errors carrying the Backend's own code and message.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.build(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("build backend request: %w", err)
	}

	hc := c.client
	if req.ServiceAuth && c.analytics != nil {
		hc = c.analytics
	}

	resp, err := hc.Do(httpReq)
	if err != nil {
		c.logger.WarnContext(ctx, "backend unreachable",
			"method", req.Method, "url", httpReq.URL.String(), "error", err)
		return nil, newUnreachable(httpReq.URL.String(), err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.WarnContext(ctx, "close backend response body failed", "error", cerr)
		}
	}()

	// Always read as text first; the Backend may answer JSON or HTML.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, newUnreachable(httpReq.URL.String(), fmt.Errorf("read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WarnContext(ctx, "backend error response",
			"method", req.Method, "url", httpReq.URL.String(), "status", resp.StatusCode)
		return nil, newUpstream(httpReq.URL.String(), resp.StatusCode, body)
	}

	return &Response{Status: resp.StatusCode, Body: body, URL: httpReq.URL.String()}, nil
}

// build assembles the outgoing http.Request: URL, body encoding, and headers.
func (c *Client) build(ctx context.Context, req Request) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.JSON != nil:
		encoded, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("encode json body: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	case req.Form != nil:
		encoded, boundary, err := req.Form.Encode()
		if err != nil {
			return nil, fmt.Errorf("encode multipart body: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "multipart/form-data; boundary=" + boundary
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.Token != "" && !req.ServiceAuth {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	return httpReq, nil
}
