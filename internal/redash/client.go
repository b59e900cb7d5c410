// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package redash

// In this file: the HTTP client for the Redash API.

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
	"runtime/trace"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"
)

//go:generate mockgen -destination=mock_redash/mock_redash.go . Requester,API
//go:generate mockgen -destination=requester_mock_test.go -package redash -mock_names Requester=mockRequester . Requester

// Requester is the interface for the low level API calls.  path is relative
// to the base URL and may contain a query string, i.e.
// "/api/queries?q=foo".  The response JSON is decoded into v, if v is not
// nil.
type Requester interface {
	Get(ctx context.Context, path string, v any) error
	Post(ctx context.Context, path string, body any, v any) error
}

const (
	defUserAgent = "redash-mcp"
	// maxErrBody is the maximum number of bytes of the error response body
	// that is retained for diagnostics.
	maxErrBody = 1 << 20
)

// Client is the Redash API client.  It is safe for concurrent use.
type Client struct {
	hc      *http.Client
	baseURL string
	apiKey  string
	ua      string
	lim     *rate.Limiter
	lg      *slog.Logger
}

var _ Requester = (*Client)(nil)

// Option is the Client option.
type Option func(*Client)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// WithLimiter sets the rate limiter for outgoing requests.  By default, the
// requests are not limited.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		if l != nil {
			c.lim = l
		}
	}
}

// WithLogger sets the logger.
func WithLogger(lg *slog.Logger) Option {
	return func(c *Client) {
		if lg != nil {
			c.lg = lg
		}
	}
}

// WithUserAgent sets the User-Agent header value.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.ua = ua
		}
	}
}

// New creates a new Client for the Redash instance at baseURL, that
// authenticates with apiKey.
func New(baseURL string, apiKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base URL is empty")
	}
	if apiKey == "" {
		return nil, errors.New("API key is empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		hc:      http.DefaultClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		ua:      defUserAgent,
		lim:     rate.NewLimiter(rate.Inf, 1),
		lg:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get performs the GET request.
func (c *Client) Get(ctx context.Context, path string, v any) error {
	return c.do(ctx, http.MethodGet, path, nil, v)
}

// Post performs the POST request, body is encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, body any, v any) error {
	return c.do(ctx, http.MethodPost, path, body, v)
}

func (c *Client) do(ctx context.Context, method string, path string, body any, v any) error {
	ctx, task := trace.NewTask(ctx, "redash.do")
	defer task.End()
	trace.Logf(ctx, "request", "%s %s", method, path)

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encode request: %w", method, path, err)
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), r)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Key "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.ua)

	var werr error
	trace.WithRegion(ctx, "limiter.Wait", func() {
		werr = c.lim.Wait(ctx)
	})
	if werr != nil {
		return werr
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || http.StatusMultipleChoices <= resp.StatusCode {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		c.lg.DebugContext(ctx, "redash: request failed", "method", method, "path", path, "status", resp.StatusCode, "took", time.Since(start))
		return newStatusError(resp.StatusCode, resp.Status, string(data))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}
	c.lg.DebugContext(ctx, "redash: request", "method", method, "path", path, "status", resp.StatusCode, "size", humanize.Bytes(uint64(len(data))), "took", time.Since(start))
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// Get is the typed GET request.
func Get[T any](ctx context.Context, r Requester, path string) (T, error) {
	var v T
	if err := r.Get(ctx, path, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Post is the typed POST request.
func Post[T any](ctx context.Context, r Requester, path string, body any) (T, error) {
	var v T
	if err := r.Post(ctx, path, body, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
