// internal/app/iaso/client.go
//
// Package iaso is the REST client for the upstream health-data platform:
// the assignments, org units, teams and profiles endpoints that planhub
// mirrors and writes back to.
package iaso

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

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Config holds upstream connection settings. Either Token (static bearer)
// or TokenURL+ClientID+ClientSecret (client credentials) must be set.
type Config struct {
	BaseURL string

	Token        string
	TokenURL     string
	ClientID     string
	ClientSecret string

	Timeout  time.Duration // per-attempt timeout; 0 means 30s
	RetryMax int           // retries on 5xx/network errors; 0 means 3
}

// Client calls the upstream REST API. Safe for concurrent use.
type Client struct {
	base *url.URL
	http *retryablehttp.Client
	log  *zap.Logger
}

// New builds a Client with retrying transport and bearer authentication.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid upstream base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("upstream base URL must be absolute: %q", cfg.BaseURL)
	}

	src, err := tokenSource(cfg)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	retryMax := cfg.RetryMax
	if retryMax == 0 {
		retryMax = 3
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.Logger = nil // zap below, not retryablehttp's internal logger
	rc.HTTPClient = &http.Client{
		Timeout: timeout,
		Transport: &oauth2.Transport{
			Source: src,
			Base:   cleanhttp.DefaultPooledTransport(),
		},
	}
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			logger.Warn("retrying upstream request",
				zap.String("method", req.Method),
				zap.String("url", req.URL.String()),
				zap.Int("attempt", attempt))
		}
	}

	return &Client{base: base, http: rc, log: logger}, nil
}

func tokenSource(cfg Config) (oauth2.TokenSource, error) {
	if cfg.Token != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}), nil
	}
	if cfg.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		return cc.TokenSource(context.Background()), nil
	}
	return nil, fmt.Errorf("upstream auth: either a static token or a token URL is required")
}

// APIError is a non-2xx upstream response. 5xx responses are retried by the
// transport and only surface here after retries are exhausted.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream API error: status %d: %s", e.Status, e.Body)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	api, ok := err.(*APIError)
	return ok && api.Status == http.StatusNotFound
}

// get issues a GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(buf)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// flexInt64 tolerates upstream ids arriving as either JSON numbers or
// strings ("12" vs 12), an inconsistency the platform API is known for.
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", s, err)
	}
	*f = flexInt64(n)
	return nil
}

func (f *flexInt64) ptr() *int64 {
	if f == nil || *f == 0 {
		return nil
	}
	v := int64(*f)
	return &v
}
