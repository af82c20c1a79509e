package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mithrel/eventwizard/pkg/api"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// HeaderSubmissionID carries the submission fingerprint for server-side correlation.
const HeaderSubmissionID = "X-Submission-ID"

// Client posts form submissions to the planner service.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
	log        zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets a per-request deadline. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("server url %q has no host", baseURL)
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
		log:        zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// Endpoint resolves the absolute URL for a variant.
func (c *Client) Endpoint(v api.Variant) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + v.Path
	return u.String()
}

// Submit performs exactly one POST of s to the variant's endpoint.
//
// A 2xx answer yields the decoded Result. A non-2xx answer yields a
// *StatusError carrying whatever the body decoded to. Decoding is lenient
// (see api.Result); only a body that is not JSON at all yields a
// *DecodeError, regardless of status. Transport failures are
// wrapped with ErrUnavailable when no server could be reached.
func (c *Client) Submit(ctx context.Context, v api.Variant, s api.Submission) (api.Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(v.Payload(s))
	if err != nil {
		return api.Result{}, fmt.Errorf("encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(v), bytes.NewReader(body))
	if err != nil {
		return api.Result{}, err
	}
	fp := v.Fingerprint(s)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderSubmissionID, fp)

	log := c.log.With().Str("variant", v.Name).Str("submission", fp).Logger()
	log.Debug().Str("url", req.URL.String()).Int("bytes", len(body)).Msg("posting submission")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = classifyTransport(err)
		log.Debug().Err(err).Dur("took", time.Since(start)).Msg("request failed")
		return api.Result{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return api.Result{}, fmt.Errorf("read response: %w", err)
	}
	log.Debug().Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("response received")

	var res api.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return api.Result{}, &DecodeError{Code: resp.StatusCode, Body: raw, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return res, &StatusError{Code: resp.StatusCode, Status: statusText(resp), Result: res}
	}
	return res, nil
}

// statusText returns the reason phrase of the response, e.g. "Not Found".
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if s := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); s != "" {
		return s
	}
	return http.StatusText(resp.StatusCode)
}

// IsUnavailable reports whether err means the service could not be reached.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
