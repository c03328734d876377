// Package client calls a catalog deployment over HTTP and normalizes every
// outcome, including transport failures, into an Envelope.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const DefaultTimeout = 10 * time.Second

var ErrRequestInFlight = errors.New("another request is already in flight")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Backend names one deployment. BaseURL is the scheme and host, optionally
// with a path prefix such as "/api".
type Backend struct {
	Name    string
	BaseURL string
}

type Option func(*Client)

// WithHTTPClient swaps the transport. A nil client is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each call, body included. It never touches the
// http.Client, so it composes with WithHTTPClient in any order. Zero or
// less disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client allows one request at a time. A call made while another is
// pending fails immediately with ErrRequestInFlight; nothing is queued and
// nothing is retried.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	pending    atomic.Bool
}

func New(opts ...Option) *Client {
	c := &Client{httpClient: &http.Client{}, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Pending() bool {
	return c.pending.Load()
}

func (c *Client) FetchCollection(ctx context.Context, backend Backend) Envelope {
	return c.fetch(ctx, backend, "/products")
}

func (c *Client) FetchProduct(ctx context.Context, backend Backend, id string) Envelope {
	return c.fetch(ctx, backend, "/products/"+url.PathEscape(id))
}

// Health returns nil when the deployment answers {"status":"ok"}.
func (c *Client) Health(ctx context.Context, backend Backend) error {
	if !c.pending.CompareAndSwap(false, true) {
		return ErrRequestInFlight
	}
	defer c.pending.Store(false)

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.get(ctx, backend, "/health")
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", res.Status)
	}
	var health struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(res.Body).Decode(&health); err != nil {
		return fmt.Errorf("decode health response: %w", err)
	}
	if health.Status != "ok" {
		return fmt.Errorf("unexpected health status %q", health.Status)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, backend Backend, path string) Envelope {
	if !c.pending.CompareAndSwap(false, true) {
		return connectionFailure(backend, ErrRequestInFlight)
	}
	defer c.pending.Store(false)

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.get(ctx, backend, path)
	if err != nil {
		return connectionFailure(backend, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return connectionFailure(backend, fmt.Errorf("read response: %w", err))
	}

	var envelope Envelope
	decodeErr := json.Unmarshal(body, &envelope)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		err := fmt.Errorf("unexpected status %s", res.Status)
		if decodeErr == nil && envelope.Error != "" {
			err = fmt.Errorf("%w: %s", err, envelope.Error)
		}
		return connectionFailure(backend, err)
	}
	if decodeErr != nil {
		return connectionFailure(backend, fmt.Errorf("decode response: %w", decodeErr))
	}
	return envelope
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) get(ctx context.Context, backend Backend, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(backend.BaseURL, "/")+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

func connectionFailure(backend Backend, err error) Envelope {
	return Envelope{
		Success: false,
		Message: fmt.Sprintf("Error connecting to %s API", backend.Name),
		Error:   err.Error(),
	}
}
