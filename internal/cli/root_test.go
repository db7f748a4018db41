package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	levelVar := &slog.LevelVar{}
	logger := slog.New(slog.NewTextHandler(&stderr, &slog.HandlerOptions{Level: levelVar}))

	cmd := NewRootCmd(logger, levelVar, &stdout, &stderr)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "netscope version")
}

func TestPreRun_VerboseSetsDebugLevel(t *testing.T) {
	levelVar := &slog.LevelVar{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar}))

	err := preRun(&RootOptions{Verbose: true}, logger, levelVar)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, levelVar.Level())
}

func TestPreRun_MissingConfigFile(t *testing.T) {
	levelVar := &slog.LevelVar{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar}))

	err := preRun(&RootOptions{Config: "/nonexistent/config.yaml"}, logger, levelVar)
	assert.Error(t, err)
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9999\"\n"), 0o600))

	cfg, err := loadConfig(&RootOptions{
		Config: path,
		Addr:   ":7777",
		DoHURL: "https://dns.example/dns-query",
		Proxy:  "socks5://127.0.0.1:9050",
	})
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Server.Addr, "flag wins over file")
	assert.Equal(t, "https://dns.example/dns-query", cfg.DoH.Endpoint)
	assert.Equal(t, "socks5://127.0.0.1:9050", cfg.Upstream.Proxy)
	assert.NotEmpty(t, cfg.DoH.RecordTypes, "defaults survive overrides")
}

func TestLoadConfig_FileValuesKeptWithoutFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("doh:\n  endpoint: \"https://doh.example/query\"\n"), 0o600))

	cfg, err := loadConfig(&RootOptions{Config: path})
	require.NoError(t, err)
	assert.Equal(t, "https://doh.example/query", cfg.DoH.Endpoint)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}
