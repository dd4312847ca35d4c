// Package transport is the single point of HTTP configuration for the EDGAR
// backend. Every JSON response arrives wrapped in an envelope; the helpers
// here unwrap it and collapse every failure shape into one *Error.
//
// There are no retries and no backoff: a call succeeds once or fails once.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/seenimoa/edgardash/internal/infra"
	"github.com/seenimoa/edgardash/pkg/models"
)

// DefaultTimeout is used when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// maxErrorBody bounds how much of a failed response is read.
const maxErrorBody = 64 << 10

// Options configures a Client.
type Options struct {
	BaseURL    string        // backend root including the /api suffix
	Timeout    time.Duration // fixed per-request timeout
	UserAgent  string
	Headers    map[string]string // extra default headers
	HTTPClient *http.Client      // optional; its Timeout is overridden
	Logger     *slog.Logger
	MaxRPS     int // client-side request rate cap; 0 disables
}

// Client issues requests against the backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	headers map[string]string
	log     *slog.Logger
	limiter *infra.RateLimiter
}

// New creates a client. The base URL must be absolute.
func New(opts Options) (*Client, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc := &http.Client{}
	if opts.HTTPClient != nil {
		copied := *opts.HTTPClient
		hc = &copied
	}
	hc.Timeout = timeout

	headers := map[string]string{
		"Accept": "application/json",
	}
	if opts.UserAgent != "" {
		headers["User-Agent"] = opts.UserAgent
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	logger := opts.Logger
	if logger == nil {
		logger = infra.Discard()
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: timeout,
		http:    hc,
		headers: headers,
		log:     logger,
		limiter: infra.PerSecond(opts.MaxRPS),
	}, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the fixed request timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Get issues GET path and returns the envelope's data.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	return call[T](ctx, c, http.MethodGet, path, nil)
}

// Post issues POST path with a JSON body and returns the envelope's data.
func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return call[T](ctx, c, http.MethodPost, path, body)
}

// Put issues PUT path with a JSON body and returns the envelope's data.
func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return call[T](ctx, c, http.MethodPut, path, body)
}

// Delete issues DELETE path and returns the envelope's data.
func Delete[T any](ctx context.Context, c *Client, path string) (T, error) {
	return call[T](ctx, c, http.MethodDelete, path, nil)
}

// Blob is a binary response body.
type Blob struct {
	Data        []byte
	ContentType string
	Filename    string // from Content-Disposition, if the server sent one
}

// DownloadFile POSTs body to path and returns the raw payload. Binary
// responses are not enveloped; failures still are.
func (c *Client) DownloadFile(ctx context.Context, path string, body any) (*Blob, error) {
	resp, err := c.do(ctx, http.MethodPost, path, body, "*/*")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusError(http.MethodPost, path, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.networkError(http.MethodPost, path, err)
	}

	blob := &Blob{Data: data, ContentType: resp.Header.Get("Content-Type")}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			blob.Filename = params["filename"]
		}
	}
	return blob, nil
}

func call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T

	resp, err := c.do(ctx, method, path, body, "")
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, c.statusError(method, path, resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, c.networkError(method, path, err)
	}
	// 204s and other empty 2xx bodies carry no data.
	if len(bytes.TrimSpace(raw)) == 0 {
		return zero, nil
	}

	var env models.Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, &Error{
			Message:    "invalid response envelope: " + err.Error(),
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Err:        err,
		}
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fallbackMessage
		}
		return zero, &Error{Message: msg, StatusCode: resp.StatusCode, Method: method, Path: path}
	}
	return env.Data, nil
}

// do builds and sends a request. Non-2xx responses are returned, not
// converted to errors; transport failures come back as *Error.
func (c *Client) do(ctx context.Context, method, path string, body any, accept string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, c.networkError(method, path, err)
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Message: "encode request body: " + err.Error(), Method: method, Path: path, Err: err}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, &Error{Message: "create request: " + err.Error(), Method: method, Path: path, Err: err}
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		observe(method, path, "error", elapsed)
		c.log.Debug("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, c.networkError(method, path, err)
	}

	observe(method, path, fmt.Sprintf("%d", resp.StatusCode), elapsed)
	c.log.Debug("request", "method", method, "path", path, "status", resp.StatusCode,
		"duration", elapsed, "request_id", requestID)
	return resp, nil
}

// statusError reads an error envelope from a non-2xx response.
func (c *Client) statusError(method, path string, resp *http.Response) *Error {
	e := &Error{
		Message:    fmt.Sprintf("Request failed with status code %d", resp.StatusCode),
		StatusCode: resp.StatusCode,
		Method:     method,
		Path:       path,
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return e
	}
	var env struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &env) == nil && env.Message != "" {
		e.Message = env.Message
	}
	return e
}

func (c *Client) networkError(method, path string, err error) *Error {
	msg := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			msg = fmt.Sprintf("timeout of %dms exceeded", c.timeout.Milliseconds())
		} else if urlErr.Err != nil {
			msg = urlErr.Err.Error()
		}
	}
	if msg == "" {
		msg = fallbackMessage
	}
	return &Error{Message: msg, Method: method, Path: path, Err: err}
}
