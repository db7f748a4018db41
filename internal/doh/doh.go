// Package doh implements a DNS-over-HTTPS client using the JSON response
// format (application/dns-json) served by public resolvers such as
// Cloudflare and Google.
package doh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/imroc/req/v3"
	"github.com/miekg/dns"

	"github.com/scopehq/netscope/internal/apperr"
)

// DefaultEndpoint is the Cloudflare DNS-over-HTTPS JSON endpoint.
const DefaultEndpoint = "https://cloudflare-dns.com/dns-query"

// Response holds the parsed DoH JSON response.
type Response struct {
	Status int      `json:"Status"`
	Answer []Answer `json:"Answer,omitempty"`
}

// Answer holds a single DNS resource record from a DoH JSON response.
type Answer struct {
	Name string `json:"name"`
	Type uint16 `json:"type"`
	TTL  int    `json:"TTL"`
	Data string `json:"data"`
}

// Client queries a DoH JSON endpoint.
type Client struct {
	http     *req.Client
	endpoint string
}

// NewClient creates a DoH client using the given HTTP client and endpoint URL.
// An empty endpoint falls back to DefaultEndpoint.
func NewClient(http *req.Client, endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{http: http, endpoint: endpoint}
}

// Query performs a single DoH lookup for name with the given record type.
// The record type is sent as its textual mnemonic ("A", "PTR", ...).
// Transport errors, non-2xx statuses, and malformed bodies are reported as
// apperr.ErrRequestFailed; context cancellation passes through unwrapped.
func (c *Client) Query(ctx context.Context, name string, rtype uint16) (*Response, error) {
	typeName, ok := dns.TypeToString[rtype]
	if !ok {
		return nil, fmt.Errorf("%w: unknown DNS record type: %d", apperr.ErrInvalidInput, rtype)
	}

	httpResp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/dns-json").
		SetQueryParam("name", name).
		SetQueryParam("type", typeName).
		Get(c.endpoint)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: doh request error for %q type %s: %w", apperr.ErrRequestFailed, name, typeName, err)
	}
	if !httpResp.IsSuccessState() {
		body := httpResp.String()
		if len(body) > 200 {
			body = body[:200] + "..."
		}
		return nil, fmt.Errorf("%w: doh endpoint returned HTTP %d for %q type %s: %q", apperr.ErrRequestFailed, httpResp.StatusCode, name, typeName, body)
	}

	var resp Response
	if err := json.Unmarshal(httpResp.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed doh response for %q type %s: %w", apperr.ErrRequestFailed, name, typeName, err)
	}
	return &resp, nil
}
