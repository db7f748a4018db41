// Package asn resolves ASN ownership for an IP address via the Team Cymru
// DNS service.
package asn

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/scopehq/netscope/internal/services"
	"github.com/scopehq/netscope/internal/target"
)

// Team Cymru DNS zone suffixes. The reversed IP is prepended to the origin
// zones; "AS<number>" is prepended to the asn zone.
const (
	cymruIPv4Zone = "%s.origin.asn.cymru.com"
	cymruIPv6Zone = "%s.origin6.asn.cymru.com"
	cymruASNZone  = "%s.asn.cymru.com"
)

// Service performs ASN lookups via the Team Cymru DNS service.
type Service struct {
	resolver services.DNSResolverInterface
	logger   *slog.Logger
}

// NewService creates a new ASN service.
func NewService(resolver services.DNSResolverInterface, logger *slog.Logger) *Service {
	return &Service{resolver: resolver, logger: logger}
}

// Name returns the service identifier.
func (s *Service) Name() string { return "asn" }

// Result holds the ASN ownership data for a single IP.
type Result struct {
	Input       string `json:"input"`
	ASN         string `json:"asn,omitempty"`
	Prefix      string `json:"prefix,omitempty"`
	Country     string `json:"country,omitempty"`
	Registry    string `json:"registry,omitempty"`
	Description string `json:"description,omitempty"`
}

// IsEmpty reports whether the lookup produced no ASN data.
func (r *Result) IsEmpty() bool {
	return r.ASN == "" && r.Prefix == "" && r.Country == "" &&
		r.Registry == "" && r.Description == ""
}

// Run resolves the originating ASN for the given IP literal, then enriches
// it with the AS description. A Cymru lookup miss yields an empty result,
// not an error.
func (s *Service) Run(ctx context.Context, input string) (services.Result, error) {
	input = strings.TrimSpace(input)
	result := &Result{Input: input}

	kind := target.Classify(input)
	if !kind.IsIP() {
		return nil, fmt.Errorf("%w: must be an IP address literal: %q", services.ErrInvalidInput, input)
	}

	zone := cymruIPv4Zone
	reversed := target.ReverseOctets(input)
	if kind == target.IPv6 {
		zone = cymruIPv6Zone
		reversed = target.ReverseNibbles(input)
	}

	txts, err := s.resolver.LookupTXT(ctx, fmt.Sprintf(zone, reversed))
	if err != nil {
		s.logger.Debug("Cymru origin lookup failed", "ip", input, "error", err)
		return result, nil
	}
	if len(txts) > 0 {
		parseOriginRecord(result, txts[0])
	}
	if result.ASN != "" {
		s.enrich(ctx, result)
	}
	return result, nil
}

// enrich fetches the description record for an already-known ASN.
func (s *Service) enrich(ctx context.Context, result *Result) {
	txts, err := s.resolver.LookupTXT(ctx, fmt.Sprintf(cymruASNZone, result.ASN))
	if err != nil {
		s.logger.Debug("Cymru ASN enrich failed", "asn", result.ASN, "error", err)
		return
	}
	if len(txts) > 0 {
		parseASNRecord(result, txts[0])
	}
}

// parseOriginRecord parses a Team Cymru origin TXT record of the form:
// "15169 | 8.8.8.0/24 | US | arin | 1992-12-01"
func parseOriginRecord(result *Result, txt string) {
	parts := strings.Split(txt, "|")
	if len(parts) >= 1 {
		result.ASN = "AS" + strings.TrimSpace(parts[0])
	}
	if len(parts) >= 2 {
		result.Prefix = strings.TrimSpace(parts[1])
	}
	if len(parts) >= 3 {
		result.Country = strings.TrimSpace(parts[2])
	}
	if len(parts) >= 4 {
		result.Registry = strings.TrimSpace(parts[3])
	}
}

// parseASNRecord parses a Team Cymru ASN TXT record of the form:
// "15169 | US | arin | 2000-03-30 | GOOGLE, US"
func parseASNRecord(result *Result, txt string) {
	parts := strings.Split(txt, "|")
	if len(parts) >= 5 {
		result.Description = strings.TrimSpace(parts[4])
	}
}
