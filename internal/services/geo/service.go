// Package geo resolves geolocation and network ownership metadata for an IP
// address or hostname, either via the ip-api.com JSON API or a local MaxMind
// City database.
package geo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/imroc/req/v3"
	"github.com/oschwald/geoip2-golang"

	"github.com/scopehq/netscope/internal/services"
	"github.com/scopehq/netscope/internal/target"
)

// ipAPIURL is the ip-api.com JSON endpoint. The free tier needs no key and
// accepts both IP literals and hostnames (hostnames are resolved upstream).
const ipAPIURL = "http://ip-api.com/json/"

// ipAPIFields limits the response to the fields we consume.
const ipAPIFields = "status,message,country,regionName,city,lat,lon,isp,org,as,query"

// Service performs geolocation lookups.
type Service struct {
	client *req.Client
	db     *geoip2.Reader
	logger *slog.Logger
}

// NewService creates a geolocation service backed by the ip-api.com API.
func NewService(client *req.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// NewLocalService creates a geolocation service backed by a MaxMind City
// database on disk. No network calls are made in this mode.
func NewLocalService(databasePath string, logger *slog.Logger) (*Service, error) {
	db, err := geoip2.Open(databasePath)
	if err != nil {
		return nil, fmt.Errorf("opening GeoIP database: %w", err)
	}
	return &Service{db: db, logger: logger}, nil
}

// Name returns the service identifier.
func (s *Service) Name() string { return "geo" }

// Close releases the MaxMind database handle, if any.
func (s *Service) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ipAPIResponse mirrors the ip-api.com JSON schema.
type ipAPIResponse struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	Country    string  `json:"country"`
	RegionName string  `json:"regionName"`
	City       string  `json:"city"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	ISP        string  `json:"isp"`
	Org        string  `json:"org"`
	AS         string  `json:"as"`
	Query      string  `json:"query"`
}

// Run resolves geolocation metadata for the given IP or hostname.
// In local-database mode hostnames yield an empty result, since the database
// is keyed by IP. A lookup miss is an empty result, not an error.
func (s *Service) Run(ctx context.Context, input string) (services.Result, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: target must not be empty", services.ErrInvalidInput)
	}
	result := &Result{Input: input}

	if s.db != nil {
		return s.lookupLocal(result, input)
	}
	return s.lookupRemote(ctx, result, input)
}

// lookupLocal reads the MaxMind City database.
func (s *Service) lookupLocal(result *Result, input string) (*Result, error) {
	if !target.Classify(input).IsIP() {
		return result, nil
	}
	record, err := s.db.City(net.ParseIP(input))
	if err != nil {
		s.logger.Debug("GeoIP database lookup failed", "ip", input, "error", err)
		return result, nil
	}
	result.Country = record.Country.Names["en"]
	if len(record.Subdivisions) > 0 {
		result.Region = record.Subdivisions[0].Names["en"]
	}
	result.City = record.City.Names["en"]
	result.Lat = record.Location.Latitude
	result.Lon = record.Location.Longitude
	return result, nil
}

// lookupRemote queries ip-api.com.
func (s *Service) lookupRemote(ctx context.Context, result *Result, input string) (*Result, error) {
	var body ipAPIResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("fields", ipAPIFields).
		SetSuccessResult(&body).
		Get(ipAPIURL + input)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: ip-api request error for %q: %w", services.ErrRequestFailed, input, err)
	}
	if !httpResp.IsSuccessState() {
		return nil, fmt.Errorf("%w: ip-api returned HTTP %d for %q", services.ErrRequestFailed, httpResp.StatusCode, input)
	}
	if body.Status != "success" {
		// ip-api reports unresolvable inputs with status "fail" and HTTP 200.
		s.logger.Debug("ip-api lookup failed", "input", input, "message", body.Message)
		return result, nil
	}

	result.Country = body.Country
	result.Region = body.RegionName
	result.City = body.City
	result.Lat = body.Lat
	result.Lon = body.Lon
	result.ISP = body.ISP
	result.Org = body.Org
	result.AS = body.AS
	return result, nil
}
