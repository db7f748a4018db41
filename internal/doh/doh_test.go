package doh_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/imroc/req/v3"
	"github.com/jarcoal/httpmock"
	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopehq/netscope/internal/apperr"
	"github.com/scopehq/netscope/internal/doh"
)

func newTestClient(t *testing.T) *req.Client {
	t.Helper()
	client := req.NewClient()
	httpmock.ActivateNonDefault(client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}

func TestQuery_Success(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, "=~^https://cloudflare-dns\\.com/dns-query",
		func(r *http.Request) (*http.Response, error) {
			assert.Equal(t, "application/dns-json", r.Header.Get("Accept"))
			assert.Equal(t, "example.com", r.URL.Query().Get("name"))
			assert.Equal(t, "A", r.URL.Query().Get("type"))
			return httpmock.NewStringResponse(http.StatusOK,
				`{"Status":0,"Answer":[{"name":"example.com.","type":1,"TTL":300,"data":"93.184.216.34"}]}`), nil
		})

	c := doh.NewClient(client, "")
	resp, err := c.Query(context.Background(), "example.com", dns.TypeA)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Status)
	require.Len(t, resp.Answer, 1)
	assert.Equal(t, "example.com.", resp.Answer[0].Name)
	assert.Equal(t, dns.TypeA, resp.Answer[0].Type)
	assert.Equal(t, 300, resp.Answer[0].TTL)
	assert.Equal(t, "93.184.216.34", resp.Answer[0].Data)
}

func TestQuery_NoAnswerField(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, "=~^https://cloudflare-dns\\.com/dns-query",
		httpmock.NewStringResponder(http.StatusOK, `{"Status":3}`))

	c := doh.NewClient(client, "")
	resp, err := c.Query(context.Background(), "nxdomain.example", dns.TypeA)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Status)
	assert.Empty(t, resp.Answer)
}

func TestQuery_HTTPError(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, "=~^https://cloudflare-dns\\.com/dns-query",
		httpmock.NewStringResponder(http.StatusInternalServerError, "upstream broken"))

	c := doh.NewClient(client, "")
	_, err := c.Query(context.Background(), "example.com", dns.TypeA)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrRequestFailed)
}

func TestQuery_MalformedBody(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, "=~^https://cloudflare-dns\\.com/dns-query",
		httpmock.NewStringResponder(http.StatusOK, "<html>not json</html>"))

	c := doh.NewClient(client, "")
	_, err := c.Query(context.Background(), "example.com", dns.TypeMX)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrRequestFailed)
}

func TestQuery_UnknownType(t *testing.T) {
	c := doh.NewClient(newTestClient(t), "")
	_, err := c.Query(context.Background(), "example.com", 65534)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestQuery_CustomEndpoint(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, "=~^https://dns\\.google/resolve",
		httpmock.NewStringResponder(http.StatusOK, `{"Status":0}`))

	c := doh.NewClient(client, "https://dns.google/resolve")
	_, err := c.Query(context.Background(), "example.com", dns.TypeNS)
	require.NoError(t, err)
}
