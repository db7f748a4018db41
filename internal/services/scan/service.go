// Package scan fetches known open ports, hostnames, and vulnerabilities for
// an IP address from Shodan's InternetDB API. No API key is required.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/imroc/req/v3"

	"github.com/scopehq/netscope/internal/services"
	"github.com/scopehq/netscope/internal/target"
)

// internetDBURL is the Shodan InternetDB endpoint.
const internetDBURL = "https://internetdb.shodan.io/"

// Service queries Shodan InternetDB.
type Service struct {
	client *req.Client
	logger *slog.Logger
}

// NewService creates a new InternetDB scan service.
func NewService(client *req.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Name returns the service identifier.
func (s *Service) Name() string { return "scan" }

// Result holds the InternetDB record for a single IP.
type Result struct {
	Input     string   `json:"input"`
	Ports     []int    `json:"ports,omitempty"`
	Hostnames []string `json:"hostnames,omitempty"`
	CPEs      []string `json:"cpes,omitempty"`
	Vulns     []string `json:"vulns,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// IsEmpty reports whether InternetDB had no data for the IP.
func (r *Result) IsEmpty() bool {
	return len(r.Ports) == 0 && len(r.Hostnames) == 0 && len(r.CPEs) == 0 &&
		len(r.Vulns) == 0 && len(r.Tags) == 0
}

// internetDBResponse mirrors the InternetDB JSON schema.
type internetDBResponse struct {
	IP        string   `json:"ip"`
	Ports     []int    `json:"ports"`
	Hostnames []string `json:"hostnames"`
	CPEs      []string `json:"cpes"`
	Vulns     []string `json:"vulns"`
	Tags      []string `json:"tags"`
}

// Run fetches the InternetDB record for the given IP literal. An IP that is
// not in Shodan's database (HTTP 404) yields an empty result, not an error.
func (s *Service) Run(ctx context.Context, input string) (services.Result, error) {
	input = strings.TrimSpace(input)
	result := &Result{Input: input}

	if !target.Classify(input).IsIP() {
		return nil, fmt.Errorf("%w: must be an IP address literal: %q", services.ErrInvalidInput, input)
	}

	var body internetDBResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetSuccessResult(&body).
		Get(internetDBURL + input)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: internetdb request error for %q: %w", services.ErrRequestFailed, input, err)
	}
	if httpResp.StatusCode == http.StatusNotFound {
		s.logger.Debug("internetdb has no record", "ip", input)
		return result, nil
	}
	if !httpResp.IsSuccessState() {
		return nil, fmt.Errorf("%w: internetdb returned HTTP %d for %q", services.ErrRequestFailed, httpResp.StatusCode, input)
	}

	result.Ports = body.Ports
	result.Hostnames = body.Hostnames
	result.CPEs = body.CPEs
	result.Vulns = body.Vulns
	result.Tags = body.Tags
	return result, nil
}
