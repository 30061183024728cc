// Package httpx centralizes request construction and error normalization for
// all backend calls: base URL handling, bearer auth on mutating verbs,
// timeouts, rate limiting and manual HTTPS-upgrading redirect handling.
package httpx

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

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// maxManualRedirects bounds the manual redirect re-dispatch loop.
const maxManualRedirects = 3

// Config holds configuration for an API client.
type Config struct {
	BaseURL      string
	WriteToken   string
	Timeout      time.Duration
	RateLimit    float64 // requests per second
	RetryMax     int     // 0 disables automatic retry
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// DefaultConfig returns recommended defaults for the given base URL.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:      baseURL,
		Timeout:      30 * time.Second,
		RateLimit:    10.0,
		RetryMax:     0,
		RetryWaitMin: 100 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
	}
}

// Client is the single point of request construction for a backend. A bearer
// token is attached to mutating verbs only; GET requests are unauthenticated.
type Client struct {
	base       *url.URL
	writeToken string
	http       *retryablehttp.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// New creates an API client from config.
func New(cfg Config, logger *logrus.Logger) (*Client, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = cfg.Timeout
	// Redirects are handled manually so HTTP locations can be upgraded to
	// HTTPS before re-dispatch.
	retryClient.HTTPClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	rateLimit := cfg.RateLimit
	if rateLimit <= 0 {
		rateLimit = 10.0
	}

	return &Client{
		base:       base,
		writeToken: cfg.WriteToken,
		http:       retryClient,
		limiter:    rate.NewLimiter(rate.Limit(rateLimit), 1),
		logger:     logger,
	}, nil
}

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, params Params, out interface{}) error {
	body, err := c.do(ctx, http.MethodGet, path, params.Values(), nil)
	if err != nil {
		return err
	}
	return c.decode(http.MethodGet, path, body, out)
}

// GetRaw performs a GET request and returns the raw response bytes. Used for
// export endpoints that return opaque CSV/JSON blobs.
func (c *Client) GetRaw(ctx context.Context, path string, params Params) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, params.Values(), nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, reqBody, out interface{}) error {
	body, err := c.do(ctx, http.MethodPost, path, nil, reqBody)
	if err != nil {
		return err
	}
	return c.decode(http.MethodPost, path, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, reqBody, out interface{}) error {
	body, err := c.do(ctx, http.MethodPut, path, nil, reqBody)
	if err != nil {
		return err
	}
	return c.decode(http.MethodPut, path, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	body, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	return c.decode(http.MethodDelete, path, body, out)
}

// do executes one logical request, following redirects manually with HTTPS
// upgrade, and returns the response body bytes.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, reqBody interface{}) ([]byte, error) {
	start := time.Now()
	defer func() {
		APIRequestLatency.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}()

	var bodyBytes []byte
	if reqBody != nil {
		var err error
		bodyBytes, err = json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	target := c.resolve(path, query)

	for attempt := 0; ; attempt++ {
		respBody, redirect, err := c.dispatch(ctx, method, target, bodyBytes)
		if err != nil {
			return nil, err
		}
		if redirect == "" {
			APIRequestsTotal.WithLabelValues(method, "ok").Inc()
			return respBody, nil
		}
		if attempt >= maxManualRedirects {
			APIRequestsTotal.WithLabelValues(method, "http_error").Inc()
			return nil, fmt.Errorf("%w: %s %s", ErrTooManyRedirects, method, target)
		}
		// Force HTTPS on the redirected location so a redirect can never
		// downgrade the connection.
		if strings.HasPrefix(redirect, "http://") {
			redirect = "https://" + strings.TrimPrefix(redirect, "http://")
		}
		APIRedirectsTotal.Inc()
		c.logger.WithFields(logrus.Fields{
			"method":   method,
			"from":     target,
			"location": redirect,
		}).Debug("Following redirect")
		target = redirect
	}
}

// dispatch sends a single request. It returns the body bytes, or a non-empty
// redirect location when the server answered with a redirect status.
func (c *Client) dispatch(ctx context.Context, method, target string, bodyBytes []byte) ([]byte, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", fmt.Errorf("%w: rate limiter: %v", ErrNetwork, err)
	}

	var rawBody io.Reader
	if bodyBytes != nil {
		rawBody = bytes.NewReader(bodyBytes)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, rawBody)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if isMutating(method) {
		req.Header.Set("Authorization", "Bearer "+c.writeToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		APIRequestsTotal.WithLabelValues(method, "network_error").Inc()
		c.logger.WithFields(logrus.Fields{
			"method": method,
			"url":    target,
		}).WithError(err).Error("Network error, no response received")
		return nil, "", fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, target, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		if loc := resp.Header.Get("Location"); loc != "" {
			io.Copy(io.Discard, resp.Body)
			return nil, loc, nil
		}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		APIRequestsTotal.WithLabelValues(method, "network_error").Inc()
		return nil, "", fmt.Errorf("%w: %s %s: reading body: %v", ErrNetwork, method, target, err)
	}

	if resp.StatusCode >= 400 {
		APIRequestsTotal.WithLabelValues(method, "http_error").Inc()
		statusErr := &StatusError{
			Status:  resp.StatusCode,
			Method:  method,
			URL:     target,
			Message: extractMessage(respBody),
		}
		c.logStatus(statusErr)
		return nil, "", statusErr
	}

	return respBody, "", nil
}

// decode unmarshals a JSON response body. Malformed bodies are classified as
// network-level failures.
func (c *Client) decode(method, path string, body []byte, out interface{}) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s %s: malformed response body: %v", ErrNetwork, method, path, err)
	}
	return nil
}

// resolve joins the base URL with a normalized path and query string.
// Trailing slashes are stripped so collection and item routes stay canonical.
func (c *Client) resolve(path string, query url.Values) string {
	path = cleanPath(path)
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// cleanPath strips trailing slashes and guarantees a leading one.
func cleanPath(path string) string {
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func (c *Client) logStatus(e *StatusError) {
	fields := logrus.Fields{
		"method": e.Method,
		"url":    e.URL,
		"status": e.Status,
	}
	switch {
	case e.Status == http.StatusUnauthorized:
		c.logger.WithFields(fields).Error("Unauthorized, check bearer token")
	case e.Status == http.StatusForbidden:
		c.logger.WithFields(fields).Error("Forbidden, insufficient permissions")
	case e.Status == http.StatusNotFound:
		c.logger.WithFields(fields).Warn("Resource not found")
	case e.Status >= 500:
		c.logger.WithFields(fields).WithField("message", e.Message).Error("Server error")
	default:
		c.logger.WithFields(fields).Debug("Client error response")
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return true
	}
	return false
}

// extractMessage pulls a human-readable message from an error body.
func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	return payload.Error
}
