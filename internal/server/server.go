// Package server exposes the lookup aggregation over HTTP and serves the
// static browser front-end.
package server

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scopehq/netscope/internal/services/asn"
	"github.com/scopehq/netscope/internal/services/dnsrecords"
	"github.com/scopehq/netscope/internal/services/geo"
	"github.com/scopehq/netscope/internal/services/scan"
	"github.com/scopehq/netscope/internal/version"
	"github.com/scopehq/netscope/internal/worker"
)

//go:embed static/index.html
var indexHTML []byte

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server wires the HTTP surface to the intelligence services.
type Server struct {
	engine *gin.Engine
	dns    *dnsrecords.Service
	geo    *geo.Service
	asn    *asn.Service
	scan   *scan.Service
	pool   *worker.Pool
	logger *slog.Logger
}

// New creates the server and registers its routes.
func New(
	dnsSvc *dnsrecords.Service,
	geoSvc *geo.Service,
	asnSvc *asn.Service,
	scanSvc *scan.Service,
	pool *worker.Pool,
	logger *slog.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	s := &Server{
		engine: engine,
		dns:    dnsSvc,
		geo:    geoSvc,
		asn:    asnSvc,
		scan:   scanSvc,
		pool:   pool,
		logger: logger,
	}

	engine.Use(gin.Recovery(), s.logRequests())

	engine.GET("/", s.handleIndex)
	engine.GET("/api/health", s.handleHealth)
	engine.GET("/api/lookup", s.handleLookup)

	return s
}

// Handler returns the underlying HTTP handler, used by tests and Start.
func (s *Server) Handler() http.Handler { return s.engine }

// Start runs the HTTP server on addr until ctx is cancelled, then shuts it
// down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// logRequests logs every request at INFO level via slog.
func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Version})
}
