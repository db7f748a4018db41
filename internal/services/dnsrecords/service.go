// Package dnsrecords aggregates DNS record lookups for a single target.
// It classifies the target once, decides per record type whether a query is
// applicable, fans the applicable queries out concurrently against a DoH
// resolver, and merges the answers into a complete per-type mapping.
package dnsrecords

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/miekg/dns"

	"github.com/scopehq/netscope/internal/doh"
	"github.com/scopehq/netscope/internal/services"
	"github.com/scopehq/netscope/internal/target"
)

// Querier is the DoH capability the aggregator depends on.
// *doh.Client satisfies it; tests substitute a mock.
type Querier interface {
	Query(ctx context.Context, name string, rtype uint16) (*doh.Response, error)
}

// DefaultTypes is the full record-type set queried when none is configured.
var DefaultTypes = []uint16{
	dns.TypeA,
	dns.TypeAAAA,
	dns.TypeMX,
	dns.TypeTXT,
	dns.TypeNS,
	dns.TypeCNAME,
	dns.TypeSOA,
	dns.TypePTR,
}

// Service aggregates DNS lookups via a DoH resolver.
type Service struct {
	doh    Querier
	types  []uint16
	logger *slog.Logger
}

// NewService creates a DNS aggregation service. An empty type list falls
// back to DefaultTypes.
func NewService(querier Querier, types []uint16, logger *slog.Logger) *Service {
	if len(types) == 0 {
		types = DefaultTypes
	}
	return &Service{doh: querier, types: types, logger: logger}
}

// Name returns the service identifier.
func (s *Service) Name() string { return "dns" }

// Run looks up every configured record type for the given target.
//
// PTR applies only to IP targets and queries the target's reverse-DNS name;
// every other type applies only to domain targets. Inapplicable types yield
// an empty answer list without a network call. Applicable queries run
// concurrently, each producing a (type, answers) pair that is joined
// single-threaded into the result map, so no locking is needed.
//
// A failed lookup for one type never aborts the others: its entry is an
// empty list, indistinguishable from an inapplicable type. The returned
// mapping always contains a key for every configured type.
func (s *Service) Run(ctx context.Context, input string) (services.Result, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: target must not be empty", services.ErrInvalidInput)
	}

	kind := target.Classify(input)
	result := &Result{
		Input:   input,
		Kind:    kind.String(),
		Records: make(map[string][]doh.Answer, len(s.types)),
	}

	type pair struct {
		typeName string
		answers  []doh.Answer
	}

	ch := make(chan pair, len(s.types))
	launched := 0
	for _, rtype := range s.types {
		typeName := dns.TypeToString[rtype]
		queryName, applicable := queryName(input, kind, rtype)
		if !applicable {
			result.Records[typeName] = []doh.Answer{}
			continue
		}
		launched++
		go func(rtype uint16, typeName, queryName string) {
			ch <- pair{typeName, s.lookup(ctx, queryName, rtype)}
		}(rtype, typeName, queryName)
	}
	for range launched {
		p := <-ch
		result.Records[p.typeName] = p.answers
	}

	return result, nil
}

// queryName decides whether rtype is applicable to the classified target and
// returns the name to query. PTR is only meaningful against an IP (via its
// arpa name); all other types are only meaningful against a domain.
func queryName(input string, kind target.Kind, rtype uint16) (string, bool) {
	if rtype == dns.TypePTR {
		if !kind.IsIP() {
			return "", false
		}
		return target.ArpaName(input, kind), true
	}
	if kind.IsIP() {
		return "", false
	}
	return input, true
}

// lookup performs one DoH query and absorbs any failure into an empty
// answer list. The answer list is returned as-is from the resolver, nil
// normalized to empty so the JSON rendering is always an array.
func (s *Service) lookup(ctx context.Context, name string, rtype uint16) []doh.Answer {
	resp, err := s.doh.Query(ctx, name, rtype)
	if err != nil {
		s.logger.Debug("dns lookup failed",
			"name", name,
			"type", dns.TypeToString[rtype],
			"error", err,
		)
		return []doh.Answer{}
	}
	if resp.Answer == nil {
		return []doh.Answer{}
	}
	return resp.Answer
}
