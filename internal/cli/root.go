// Package cli provides the Cobra command tree for netscope.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/imroc/req/v3"
	"github.com/spf13/cobra"

	"github.com/scopehq/netscope/internal/config"
	"github.com/scopehq/netscope/internal/doh"
	"github.com/scopehq/netscope/internal/httpclient"
	"github.com/scopehq/netscope/internal/ratelimit"
	"github.com/scopehq/netscope/internal/resolver"
	"github.com/scopehq/netscope/internal/server"
	"github.com/scopehq/netscope/internal/services/asn"
	"github.com/scopehq/netscope/internal/services/dnsrecords"
	"github.com/scopehq/netscope/internal/services/geo"
	"github.com/scopehq/netscope/internal/services/scan"
	"github.com/scopehq/netscope/internal/version"
	"github.com/scopehq/netscope/internal/worker"
)

// lookupWorkers bounds the collaborator fan-out per request. One slot per
// collaborator (dns, geo, asn, scan) so a single request never queues.
const lookupWorkers = 4

// RootOptions holds all global flags for the root command.
type RootOptions struct {
	Config    string
	Verbose   bool
	Addr      string
	DoHURL    string
	Proxy     string
	UserAgent string
	GeoIPDB   string
}

// NewRootCmd creates the root command with dependency injection.
func NewRootCmd(
	logger *slog.Logger,
	levelVar *slog.LevelVar,
	stdout, stderr io.Writer,
) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "netscope",
		Short: "Netscope - network intelligence lookup server",
		Long: `Netscope serves a browser front-end and a JSON API that aggregate DNS
records, geolocation, ASN ownership, and exposed-port data for an IP
address or domain name.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return preRun(opts, logger, levelVar)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, logger)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(
		&opts.Config,
		"config",
		"",
		"config file (default: $HOME/.config/netscope/config.yaml)",
	)

	cmd.PersistentFlags().BoolVarP(
		&opts.Verbose,
		"verbose",
		"v",
		false,
		"enable verbose logging (debug level)",
	)

	cmd.Flags().StringVar(
		&opts.Addr,
		"addr",
		"",
		"listen address (default: :8080)",
	)

	cmd.Flags().StringVar(
		&opts.DoHURL,
		"doh-url",
		"",
		"DNS-over-HTTPS JSON endpoint (default: Cloudflare)",
	)

	cmd.Flags().StringVar(
		&opts.Proxy,
		"proxy",
		"",
		"proxy URL for upstream requests (supports HTTP, HTTPS, SOCKS5)",
	)

	cmd.Flags().StringVar(
		&opts.UserAgent,
		"user-agent",
		"",
		"custom User-Agent string for upstream requests",
	)

	cmd.Flags().StringVar(
		&opts.GeoIPDB,
		"geoip-db",
		"",
		"path to a MaxMind City database for local geolocation",
	)

	cmd.AddCommand(newVersionCmd())

	return cmd
}

// preRun handles persistent pre-run logic for the root command.
func preRun(opts *RootOptions, logger *slog.Logger, levelVar *slog.LevelVar) error {
	if opts.Verbose {
		levelVar.Set(slog.LevelDebug)
		logger.Debug("verbose logging enabled")
	}

	if opts.Config != "" {
		if _, err := os.Stat(opts.Config); err != nil {
			return fmt.Errorf("config file %q: %w", opts.Config, err)
		}
	}

	return nil
}

// runServe loads configuration, wires every collaborator, and runs
// the HTTP server until the command context is cancelled.
func runServe(cmd *cobra.Command, opts *RootOptions, logger *slog.Logger) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	types, err := cfg.RecordTypes()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	client, err := httpclient.New(cfg.Upstream.Proxy, cfg.Upstream.UserAgent, cfg.Upstream.Timeout, logger, opts.Verbose)
	if err != nil {
		return fmt.Errorf("building HTTP client: %w", err)
	}
	httpclient.AttachRateLimit(client, ratelimit.New(cfg.Upstream.RPS, cfg.Upstream.Burst))

	res, err := resolver.NewResolver(cfg.Upstream.Proxy)
	if err != nil {
		return fmt.Errorf("building DNS resolver: %w", err)
	}

	geoSvc, err := buildGeoService(cfg, client, logger)
	if err != nil {
		return err
	}

	srv := server.New(
		dnsrecords.NewService(doh.NewClient(client, cfg.DoH.Endpoint), types, logger),
		geoSvc,
		asn.NewService(res, logger),
		scan.NewService(client, logger),
		worker.NewPool(lookupWorkers, logger),
		logger,
	)

	logger.Info("starting netscope", "addr", cfg.Server.Addr, "doh_endpoint", cfg.DoH.Endpoint, "version", version.Version)
	return srv.Start(cmd.Context(), cfg.Server.Addr)
}

// loadConfig resolves the config file and applies flag overrides on top.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.Config, os.UserConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// Flags override file values.
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}
	if opts.DoHURL != "" {
		cfg.DoH.Endpoint = opts.DoHURL
	}
	if opts.Proxy != "" {
		cfg.Upstream.Proxy = opts.Proxy
	}
	if opts.UserAgent != "" {
		cfg.Upstream.UserAgent = opts.UserAgent
	}
	if opts.GeoIPDB != "" {
		cfg.Geo.DatabasePath = opts.GeoIPDB
	}
	return cfg, nil
}

// buildGeoService picks the local MaxMind backend when a database path is
// configured, and the remote ip-api.com backend otherwise.
func buildGeoService(cfg *config.Config, client *req.Client, logger *slog.Logger) (*geo.Service, error) {
	if cfg.Geo.DatabasePath != "" {
		svc, err := geo.NewLocalService(cfg.Geo.DatabasePath, logger)
		if err != nil {
			return nil, fmt.Errorf("opening GeoIP database %q: %w", cfg.Geo.DatabasePath, err)
		}
		return svc, nil
	}
	return geo.NewService(client, logger), nil
}
