// Package services defines shared interfaces and types used across service implementations.
package services

import (
	"context"
	"net"

	"github.com/scopehq/netscope/internal/apperr"
)

// ErrInvalidInput is re-exported from apperr so callers can use
// errors.Is(err, services.ErrInvalidInput) to detect validation failures
// uniformly across all services.
var ErrInvalidInput = apperr.ErrInvalidInput

// ErrRequestFailed is re-exported from apperr so callers can use
// errors.Is(err, services.ErrRequestFailed) to detect request failures
// uniformly across all services.
var ErrRequestFailed = apperr.ErrRequestFailed

// Result is the common interface every service's Run output must satisfy.
type Result interface {
	IsEmpty() bool
}

// Service is the contract every netscope intelligence service implements.
type Service interface {
	Name() string
	Run(ctx context.Context, input string) (Result, error)
}

// DNSResolverInterface abstracts net.Resolver for the ASN service.
// *net.Resolver satisfies this interface directly.
type DNSResolverInterface interface {
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

var _ DNSResolverInterface = (*net.Resolver)(nil)
