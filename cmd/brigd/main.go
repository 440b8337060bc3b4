// Command brigd serves BRIG module verification over HTTP.
//
// Usage:
//
//	brigd [-config brig.toml] [-addr :8080]
//
// POST /v1/verify takes a module container as the request body and answers
// with the JSON report. GET /healthz reports liveness. When server.cache_path
// is set, verdicts are cached in SQLite by module digest.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gogpu/brig"
	"github.com/gogpu/brig/config"
	"github.com/gogpu/brig/container"
	"github.com/gogpu/brig/store"
)

const brigVersion = "0.1.0-dev"

// maxBody bounds the size of an uploaded container.
const maxBody = 64 << 20

var (
	configPath = flag.String("config", "", "TOML config file")
	addr       = flag.String("addr", "", "listen address (overrides server.addr)")
)

// service holds the state shared by the handlers.
type service struct {
	opts   brig.Options
	logger *zap.Logger
}

func newService(cfg *config.Config, logger *zap.Logger, cache *store.Store) *service {
	opts := brig.Options{Options: cfg.Options(), Cache: cache}
	opts.Logger = logger
	return &service{opts: opts, logger: logger}
}

func (s *service) setupRoutes(r *gin.Engine) {
	r.GET("/healthz", s.handleHealth)
	v1 := r.Group("/v1")
	{
		v1.POST("/verify", s.handleVerify)
	}
}

func (s *service) handleVerify(c *gin.Context) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBody))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	m, err := container.Unmarshal(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, brig.VerifyWithOptions(c.Request.Context(), m, s.opts))
}

func (s *service) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": brigVersion,
	})
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Int("bytes", c.Writer.Size()),
			zap.String("client", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func newRouter(s *service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))
	s.setupRoutes(r)
	return r
}

func main() {
	flag.Parse()
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "brigd: %v\n", err)
		os.Exit(1)
	}
}

func serve() error {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	cfg.ApplyEnv()
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var cache *store.Store
	if cfg.Server.CachePath != "" {
		if cache, err = store.Open(cfg.Server.CachePath); err != nil {
			return err
		}
		defer cache.Close()
		logger.Info("verdict cache opened", zap.String("path", cfg.Server.CachePath))
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(newService(cfg, logger, cache)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", zap.String("addr", cfg.Server.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving HTTP: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
