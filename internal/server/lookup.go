package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scopehq/netscope/internal/doh"
	"github.com/scopehq/netscope/internal/services"
	"github.com/scopehq/netscope/internal/services/asn"
	"github.com/scopehq/netscope/internal/services/dnsrecords"
	"github.com/scopehq/netscope/internal/services/geo"
	"github.com/scopehq/netscope/internal/services/scan"
	"github.com/scopehq/netscope/internal/target"
	"github.com/scopehq/netscope/internal/worker"
)

// lookupResponse is the aggregated payload returned to the browser.
// DNS is the per-record-type mapping; geo, asn, and scan hold collaborator
// results and degrade to empty placeholders when a collaborator fails or is
// inapplicable to the target kind.
type lookupResponse struct {
	Target string                  `json:"target"`
	Kind   string                  `json:"kind"`
	DNS    map[string][]doh.Answer `json:"dns"`
	Geo    services.Result         `json:"geo"`
	ASN    services.Result         `json:"asn"`
	Scan   services.Result         `json:"scan"`
}

// handleLookup classifies the target and fans the DNS aggregation and the
// collaborator services out through the worker pool. A collaborator failure
// is substituted with an empty placeholder; the response is always 200 with
// a complete shape once the target parameter is present.
func (s *Server) handleLookup(c *gin.Context) {
	input := strings.TrimSpace(c.Query("target"))
	if input == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing target parameter"})
		return
	}
	kind := target.Classify(input)

	resp := lookupResponse{
		Target: input,
		Kind:   kind.String(),
		DNS:    map[string][]doh.Answer{},
		Geo:    &geo.Result{Input: input},
		ASN:    &asn.Result{Input: input},
		Scan:   &scan.Result{Input: input},
	}

	jobs := make(chan worker.Job, 4)
	jobs <- worker.Job{Name: "dns", Run: func(ctx context.Context) (any, error) {
		return s.dns.Run(ctx, input)
	}}
	jobs <- worker.Job{Name: "geo", Run: func(ctx context.Context) (any, error) {
		return s.geo.Run(ctx, input)
	}}
	// ASN and port-scan intelligence are keyed by IP; for domain targets
	// they stay at their placeholders.
	if kind.IsIP() {
		jobs <- worker.Job{Name: "asn", Run: func(ctx context.Context) (any, error) {
			return s.asn.Run(ctx, input)
		}}
		jobs <- worker.Job{Name: "scan", Run: func(ctx context.Context) (any, error) {
			return s.scan.Run(ctx, input)
		}}
	}
	close(jobs)

	for res := range s.pool.Process(c.Request.Context(), jobs) {
		if res.Err != nil {
			s.logger.Warn("intelligence service failed",
				"service", res.Name,
				"target", input,
				"error", res.Err,
			)
			continue
		}
		switch res.Name {
		case "dns":
			resp.DNS = res.Value.(*dnsrecords.Result).Records
		case "geo":
			resp.Geo = res.Value.(services.Result)
		case "asn":
			resp.ASN = res.Value.(services.Result)
		case "scan":
			resp.Scan = res.Value.(services.Result)
		}
	}

	c.JSON(http.StatusOK, resp)
}
