package client

// This file defines functional options that configure the Client during
// construction, plus the pagination options of the list calls.

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/TanakaAkihiro0930/SocialEcho/client/internal/types"
	"github.com/TanakaAkihiro0930/SocialEcho/credential"
)

// Option configures a Client during construction in New.
//
// Options are applied before the credential transport wrapper is installed,
// so transport-related options (like debug logging) end up underneath it.
type Option func(*Client) error

// WithHTTPClient uses a copy of hc as the underlying transport client. Useful
// for custom TLS settings, proxies or test round trippers.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithHTTPTimeout sets the http.Client Timeout. By default the client imposes
// no timeout of its own and relies on the caller's context.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithCredentialProvider sets the source of the bearer token.
func WithCredentialProvider(p credential.Provider) Option {
	return func(c *Client) error {
		if p == nil {
			return fmt.Errorf("nil credential provider")
		}
		c.creds = p
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if strings.TrimSpace(ua) == "" {
			return fmt.Errorf("empty user agent")
		}
		c.userAgent = ua
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true. Dumps include headers and bodies; do not
// enable in production.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if !enabled {
			return nil
		}
		if _, already := c.http.Transport.(*debugTransport); already {
			return nil
		}
		transport := c.http.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}
		c.http.Transport = &debugTransport{base: transport}
		return nil
	}
}

// PageOption adjusts the limit/skip pair of a list call.
type PageOption func(*types.Page)

// WithLimit sets the page size.
func WithLimit(n int) PageOption {
	return func(p *types.Page) { p.Limit = n }
}

// WithSkip sets the number of posts to skip.
func WithSkip(n int) PageOption {
	return func(p *types.Page) { p.Skip = n }
}

func resolvePage(opts []PageOption) types.Page {
	page := types.DefaultPage()
	for _, opt := range opts {
		if opt != nil {
			opt(&page)
		}
	}
	return page
}
