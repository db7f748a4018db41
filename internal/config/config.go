package config

import (
	"fmt"
	"time"

	"github.com/miekg/dns"
)

// Config represents the complete netscope configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	DoH      DoHConfig      `yaml:"doh" mapstructure:"doh"`
	Geo      GeoConfig      `yaml:"geo" mapstructure:"geo"`
	Upstream UpstreamConfig `yaml:"upstream" mapstructure:"upstream"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	// Listen address, e.g. ":8080" or "127.0.0.1:8080"
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// DoHConfig holds the DNS-over-HTTPS resolver settings.
type DoHConfig struct {
	// JSON DoH endpoint URL
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Record types queried per lookup, by mnemonic ("A", "PTR", ...)
	RecordTypes []string `yaml:"record_types" mapstructure:"record_types"`
}

// GeoConfig holds geolocation settings.
type GeoConfig struct {
	// Path to a MaxMind City database. When set, geolocation is resolved
	// locally instead of via ip-api.com.
	DatabasePath string `yaml:"database_path" mapstructure:"database_path"`
}

// UpstreamConfig holds settings shared by all outbound HTTP calls.
type UpstreamConfig struct {
	// Proxy URL (supports HTTP, HTTPS, SOCKS5)
	Proxy string `yaml:"proxy" mapstructure:"proxy"`

	// Custom User-Agent string
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Per-request timeout
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Token-bucket rate limit for outbound requests
	RPS   float64 `yaml:"rps" mapstructure:"rps"`
	Burst int     `yaml:"burst" mapstructure:"burst"`
}

// defaultRecordTypes is the record-type set queried when the config names none.
var defaultRecordTypes = []string{"A", "AAAA", "MX", "TXT", "NS", "CNAME", "SOA", "PTR"}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		DoH: DoHConfig{
			Endpoint:    "https://cloudflare-dns.com/dns-query",
			RecordTypes: defaultRecordTypes,
		},
		Geo: GeoConfig{},
		Upstream: UpstreamConfig{
			Timeout: 10 * time.Second,
			RPS:     10,
			Burst:   20,
		},
	}
}

// RecordTypes converts the configured record-type mnemonics to their
// numeric codes. Unknown mnemonics are an error.
func (c *Config) RecordTypes() ([]uint16, error) {
	types := make([]uint16, 0, len(c.DoH.RecordTypes))
	for _, name := range c.DoH.RecordTypes {
		code, ok := dns.StringToType[name]
		if !ok {
			return nil, fmt.Errorf("unknown DNS record type %q", name)
		}
		types = append(types, code)
	}
	return types, nil
}
