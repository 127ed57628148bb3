// Package apiclient is the dashboard's HTTP client for the business REST API.
//
// Every call goes through Client.Do: a fixed API root, JSON headers merged with
// the caller's, JSON bodies in both directions, non-2xx statuses normalized into
// one error carrying the backend's user-facing message, observer hooks around the
// call and an error toast pushed onto the request's toast queue on failure.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	apperrors "github.com/techmidia/painel/internal/errors"
	"github.com/techmidia/painel/internal/toast"
)

const (
	// DefaultBaseURL is the API root used when none is configured.
	DefaultBaseURL = "http://localhost:5000/api"

	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 10 << 20
)

// Config configures a Client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	Observer   Observer
}

// Credentials are the backend session cookies presented on behalf of one user.
type Credentials struct {
	Cookies []*http.Cookie
}

func (c Credentials) forJar() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(c.Cookies))
	for _, ck := range c.Cookies {
		if ck == nil || ck.Name == "" {
			continue
		}
		cp := *ck
		if cp.Path == "" {
			cp.Path = "/"
		}
		out = append(out, &cp)
	}
	return out
}

// Request describes one backend call.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        any
	Header      http.Header
	Credentials Credentials

	raw         io.Reader
	contentType string
}

// Response is a successful backend reply.
type Response struct {
	Status int
	Body   []byte
	// Cookies is the user's backend cookie set after the call.
	Cookies []*http.Cookie
}

// Decode unmarshals the JSON body into out. An empty body leaves out untouched.
func (r *Response) Decode(out any) error {
	if r == nil || out == nil || len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, MessageInvalidResponse)
	}
	return nil
}

// Client talks to the backend REST API. It is safe for concurrent use.
type Client struct {
	base     *url.URL
	http     *http.Client
	logger   *slog.Logger
	observer Observer
}

// New builds a Client. BaseURL defaults to DefaultBaseURL.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q must be http or https", raw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	observer := cfg.Observer
	if observer == nil {
		observer = NopObserver{}
	}

	return &Client{base: base, http: hc, logger: logger, observer: observer}, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.base.String() }

// Do performs req. On failure it returns an *errors.AppError whose Message is safe to show.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	return c.do(ctx, req, nil)
}

// do decodes into out before the outcome is recorded, so a 2xx reply that
// does not fit out still counts as a failure and toasts once.
func (c *Client) do(ctx context.Context, req Request, out any) (resp *Response, err error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	path := normalizePath(req.Path)

	c.observer.RequestStarted(method, path)
	start := time.Now()
	status := 0
	defer func() {
		c.observer.RequestFinished(RequestOutcome{
			Method:   method,
			Path:     path,
			Status:   status,
			Duration: time.Since(start),
			Err:      err,
		})
		if err != nil {
			toast.FromContext(ctx).Error(apperrors.UserMessage(err, MessageRequestFailed))
			c.logger.WarnContext(ctx, "backend request failed",
				"method", method, "path", path, "status", status, "error", err)
		}
	}()

	target, err := c.resolve(path, req.Query)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, MessageRequestFailed)
	}

	httpReq, err := c.buildRequest(ctx, method, target, req)
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, MessageRequestFailed)
	}
	jar.SetCookies(target, req.Credentials.forJar())
	hc := *c.http
	hc.Jar = jar

	httpResp, err := hc.Do(httpReq)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer httpResp.Body.Close()
	status = httpResp.StatusCode

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return nil, transportError(ctx, err)
	}

	if status < 200 || status >= 300 {
		return nil, statusError(status, body)
	}
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && !json.Valid(trimmed) {
		return nil, apperrors.Wrap(&StatusError{Status: status}, apperrors.ErrCodeUpstream, MessageInvalidResponse)
	}

	resp = &Response{Status: status, Body: body, Cookies: jar.Cookies(target)}
	if err := resp.Decode(out); err != nil {
		return nil, err
	}
	return resp, nil
}

// Get fetches path and decodes the JSON reply into out.
func (c *Client) Get(ctx context.Context, creds Credentials, path string, query url.Values, out any) error {
	return c.call(ctx, Request{Method: http.MethodGet, Path: path, Query: query, Credentials: creds}, out)
}

// Post sends body as JSON and decodes the reply into out.
func (c *Client) Post(ctx context.Context, creds Credentials, path string, body, out any) error {
	return c.call(ctx, Request{Method: http.MethodPost, Path: path, Body: body, Credentials: creds}, out)
}

// Put sends body as JSON and decodes the reply into out.
func (c *Client) Put(ctx context.Context, creds Credentials, path string, body, out any) error {
	return c.call(ctx, Request{Method: http.MethodPut, Path: path, Body: body, Credentials: creds}, out)
}

// Delete removes the resource at path.
func (c *Client) Delete(ctx context.Context, creds Credentials, path string) error {
	return c.call(ctx, Request{Method: http.MethodDelete, Path: path, Credentials: creds}, nil)
}

func (c *Client) call(ctx context.Context, req Request, out any) error {
	_, err := c.do(ctx, req, out)
	return err
}

func (c *Client) resolve(path string, query url.Values) (*url.URL, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	target := *c.base
	target.Path = strings.TrimRight(c.base.Path, "/") + rel.Path
	q := rel.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	target.RawQuery = q.Encode()
	return &target, nil
}

func (c *Client) buildRequest(ctx context.Context, method string, target *url.URL, req Request) (*http.Request, error) {
	var body io.Reader
	contentType := "application/json"
	switch {
	case req.raw != nil:
		body = req.raw
		if req.contentType != "" {
			contentType = req.contentType
		}
	case req.Body != nil:
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, MessageRequestFailed)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, MessageRequestFailed)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	return httpReq, nil
}

func normalizePath(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func transportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return apperrors.FromContext(fmt.Errorf("%w: %w", ctxErr, err))
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, MessageTimeout)
	}
	return apperrors.Wrap(err, apperrors.ErrCodeUpstream, MessageUnreachable)
}
