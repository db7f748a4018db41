package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopehq/netscope/internal/config"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")

	cfg, err := config.Load(cfgFile, os.UserConfigDir)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "https://cloudflare-dns.com/dns-query", cfg.DoH.Endpoint)
	assert.Len(t, cfg.DoH.RecordTypes, 8)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`
server:
  addr: "127.0.0.1:9090"
doh:
  endpoint: "https://dns.google/resolve"
  record_types: ["A", "PTR"]
upstream:
  proxy: "socks5://127.0.0.1:9050"
  rps: 2
`), 0o600))

	cfg, err := config.Load(cfgFile, os.UserConfigDir)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, "https://dns.google/resolve", cfg.DoH.Endpoint)
	assert.Equal(t, []string{"A", "PTR"}, cfg.DoH.RecordTypes)
	assert.Equal(t, "socks5://127.0.0.1:9050", cfg.Upstream.Proxy)
	assert.Equal(t, float64(2), cfg.Upstream.RPS)
	// Untouched keys keep their defaults.
	assert.Equal(t, 20, cfg.Upstream.Burst)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("server: [not: valid"), 0o600))

	_, err := config.Load(cfgFile, os.UserConfigDir)
	require.Error(t, err)
}

func TestGetDefaultConfigPath(t *testing.T) {
	dir := t.TempDir()
	path, err := config.GetDefaultConfigPath(func() (string, error) { return dir, nil })
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "netscope", "config.yaml"), path)
	// The app directory must have been created.
	info, err := os.Stat(filepath.Join(dir, "netscope"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRecordTypes(t *testing.T) {
	cfg := config.NewDefaultConfig()
	types, err := cfg.RecordTypes()
	require.NoError(t, err)
	assert.Equal(t, []uint16{
		dns.TypeA, dns.TypeAAAA, dns.TypeMX, dns.TypeTXT,
		dns.TypeNS, dns.TypeCNAME, dns.TypeSOA, dns.TypePTR,
	}, types)
}

func TestRecordTypes_Unknown(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.DoH.RecordTypes = []string{"A", "BOGUS"}
	_, err := cfg.RecordTypes()
	require.Error(t, err)
}
