// Package testutil provides shared test helpers for service unit tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/imroc/req/v3"
	"github.com/jarcoal/httpmock"

	"github.com/scopehq/netscope/internal/services"
)

// MockResolver implements services.DNSResolverInterface for testing.
// The field is a function so tests set only the behaviour they need.
type MockResolver struct {
	LookupTXTFn func(ctx context.Context, name string) ([]string, error)
}

var _ services.DNSResolverInterface = (*MockResolver)(nil)

// LookupTXT implements DNSResolverInterface.
func (m *MockResolver) LookupTXT(ctx context.Context, name string) ([]string, error) {
	if m.LookupTXTFn != nil {
		return m.LookupTXTFn(ctx, name)
	}
	return nil, nil
}

// NopLogger returns a logger that discards all output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewMockHTTPClient returns a *req.Client whose transport is intercepted by
// httpmock. Deactivation is registered as test cleanup.
func NewMockHTTPClient(t *testing.T) *req.Client {
	t.Helper()
	client := req.NewClient()
	httpmock.ActivateNonDefault(client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}
