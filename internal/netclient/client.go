package netclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

// Defaults used when no option overrides them.
const (
	defaultTimeout = 30 * time.Second
	maxRedirects   = 10
)

// Client carries the connection settings shared by every request of a run.
type Client struct {
	// proxyURL is the configured proxy, empty for direct connections.
	proxyURL string

	// dialer is the SOCKS5 dialer, nil for direct connections.
	dialer proxy.Dialer

	timeout   time.Duration
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithProxy routes requests through a socks5://[user:pass@]host:port proxy.
// An empty string keeps direct connections.
func WithProxy(rawURL string) Option {
	return func(c *Client) {
		c.proxyURL = rawURL
	}
}

// NewClient creates a Client. It validates the proxy URL and prepares the
// SOCKS5 dialer but does not connect to anything.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.proxyURL != "" {
		u, err := url.Parse(c.proxyURL)
		if err != nil || u.Scheme != "socks5" || u.Host == "" || u.Port() == "" {
			return nil, ErrInvalidProxyURL
		}
		dialer, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		c.dialer = dialer
	}

	return c, nil
}

// ProxyURL returns the configured proxy URL, or "" for direct connections.
func (c *Client) ProxyURL() string {
	return c.proxyURL
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// HTTPClient returns a new *http.Client using the client's settings.
func (c *Client) HTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          2,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: c.timeout,
		ForceAttemptHTTP2:     true,
	}

	if c.dialer != nil {
		transport.DialContext = c.dialContext
	} else {
		transport.DialContext = (&net.Dialer{Timeout: c.timeout}).DialContext
	}

	return &http.Client{
		Transport: &userAgentTransport{base: transport, userAgent: c.userAgent},
		Timeout:   c.timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

// dialContext dials through the SOCKS5 proxy, honoring ctx when the dialer
// supports it.
func (c *Client) dialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := c.dialer.(proxy.ContextDialer); ok {
		return cd.DialContext(ctx, network, addr)
	}
	return c.dialer.Dial(network, addr)
}

// userAgentTransport sets the configured User-Agent header on every request,
// redirects included.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

// RoundTrip implements http.RoundTripper.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent == "" || req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(clone)
}
