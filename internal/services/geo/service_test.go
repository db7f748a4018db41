package geo_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopehq/netscope/internal/services"
	"github.com/scopehq/netscope/internal/services/geo"
	"github.com/scopehq/netscope/internal/testutil"
)

func TestRun_Success(t *testing.T) {
	client := testutil.NewMockHTTPClient(t)
	httpmock.RegisterResponder(http.MethodGet, "=~^http://ip-api\\.com/json/1\\.1\\.1\\.1",
		httpmock.NewStringResponder(http.StatusOK, `{
			"status": "success",
			"country": "Australia",
			"regionName": "Queensland",
			"city": "South Brisbane",
			"lat": -27.4766,
			"lon": 153.0166,
			"isp": "Cloudflare, Inc",
			"org": "APNIC and Cloudflare DNS Resolver project",
			"as": "AS13335 Cloudflare, Inc.",
			"query": "1.1.1.1"
		}`))

	svc := geo.NewService(client, testutil.NopLogger())
	raw, err := svc.Run(context.Background(), "1.1.1.1")
	require.NoError(t, err)

	result, ok := raw.(*geo.Result)
	require.True(t, ok)
	assert.Equal(t, "1.1.1.1", result.Input)
	assert.Equal(t, "Australia", result.Country)
	assert.Equal(t, "South Brisbane", result.City)
	assert.InDelta(t, -27.4766, result.Lat, 0.0001)
	assert.Equal(t, "AS13335 Cloudflare, Inc.", result.AS)
	assert.False(t, result.IsEmpty())
}

func TestRun_FailStatusYieldsEmptyResult(t *testing.T) {
	client := testutil.NewMockHTTPClient(t)
	httpmock.RegisterResponder(http.MethodGet, "=~^http://ip-api\\.com/json/",
		httpmock.NewStringResponder(http.StatusOK, `{"status":"fail","message":"private range","query":"10.0.0.1"}`))

	svc := geo.NewService(client, testutil.NopLogger())
	raw, err := svc.Run(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, raw.IsEmpty())
}

func TestRun_HTTPError(t *testing.T) {
	client := testutil.NewMockHTTPClient(t)
	httpmock.RegisterResponder(http.MethodGet, "=~^http://ip-api\\.com/json/",
		httpmock.NewStringResponder(http.StatusTooManyRequests, "rate limited"))

	svc := geo.NewService(client, testutil.NopLogger())
	_, err := svc.Run(context.Background(), "8.8.8.8")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrRequestFailed)
}

func TestRun_EmptyInput(t *testing.T) {
	svc := geo.NewService(testutil.NewMockHTTPClient(t), testutil.NopLogger())
	_, err := svc.Run(context.Background(), "  ")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestNewLocalService_MissingDatabase(t *testing.T) {
	_, err := geo.NewLocalService("/nonexistent/GeoLite2-City.mmdb", testutil.NopLogger())
	require.Error(t, err)
}
