package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/server"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"limelink-mcp/internal/cache"
	"limelink-mcp/internal/config"
	"limelink-mcp/internal/docs"
	"limelink-mcp/internal/httpserver"
	"limelink-mcp/internal/limelink"
	"limelink-mcp/internal/mcpserver"
	"limelink-mcp/internal/metrics"
	"limelink-mcp/pkg/logging/logging"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("limelink-mcp exited with error: %v", err)
	}
}

func run() error {
	// ----- Logger -----
	logger := logging.DefaultLogger()
	defer logger.Sync()

	// ----- Metrics -----
	metrics.Register()

	// ----- Config -----
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Info("loaded config",
		zap.String("transport", cfg.Transport),
		zap.String("cache_backend", cfg.CacheBackend),
		zap.Duration("docs_ttl", cfg.DocsTTL),
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.String("docs_base_url", cfg.DocsBaseURL),
		zap.Bool("api_key_set", cfg.HasAPIKey()),
		zap.Bool("project_id_set", cfg.ProjectID != ""),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ----- Redis client (only if needed) -----
	var redisClient *redis.Client
	if cfg.CacheBackend == cache.BackendRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		defer redisClient.Close()

		// Fail fast if Redis is misconfigured
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Error("redis connection failed", zap.Error(err))
			return err
		}
		logger.Info("redis connection established",
			zap.String("addr", cfg.RedisAddr),
		)
	}

	// ----- Documentation cache + fetcher -----
	store := cache.NewStore(cache.Config{
		Backend: cfg.CacheBackend,
		TTL:     cfg.DocsTTL,
		Prefix:  "limelink:docs",
	}, redisClient)
	store = cache.NewLoggingStore(store)

	fetcher := docs.NewFetcher(docs.Config{BaseURL: cfg.DocsBaseURL}, store, logger)

	// ----- Limelink API client (tools report a missing key per call) -----
	var apiClient limelink.Client
	if cfg.HasAPIKey() {
		c, err := limelink.NewClient(limelink.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.APIBaseURL,
		}, logger)
		if err != nil {
			return err
		}
		if closer, ok := c.(interface{ Close() error }); ok {
			defer closer.Close()
		}
		apiClient = c
	} else {
		logger.Warn("LIMELINK_API_KEY not set; link tools will return errors")
	}

	// ----- MCP server -----
	mcpSrv := mcpserver.New(mcpserver.Deps{
		Client:    apiClient,
		ProjectID: cfg.ProjectID,
		Docs:      fetcher,
		Logger:    logger,
	})

	if cfg.Transport == config.TransportHTTP {
		return serveHTTP(ctx, cfg, logger, mcpSrv)
	}
	return serveStdio(ctx, logger, mcpSrv)
}

func serveStdio(ctx context.Context, logger *zap.Logger, mcpSrv *server.MCPServer) error {
	stdio := server.NewStdioServer(mcpSrv)
	stdio.SetErrorLogger(zap.NewStdLog(logger))

	logger.Info("serving MCP over stdio")
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("stdio transport closed")
	return nil
}

func serveHTTP(ctx context.Context, cfg config.Config, logger *zap.Logger, mcpSrv *server.MCPServer) error {
	// ----- Router + middleware -----
	r := chi.NewRouter()
	httpserver.SetupRouter(r, logger, server.NewStreamableHTTPServer(mcpSrv), httpserver.Options{})

	// ----- HTTP server -----
	// No WriteTimeout: GET /mcp holds an event stream open.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("serving MCP over HTTP",
		zap.String("addr", srv.Addr),
		zap.String("endpoint", "/mcp"),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// ----- Graceful shutdown -----
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return err
	}

	logger.Info("server shutdown complete")
	return nil
}
