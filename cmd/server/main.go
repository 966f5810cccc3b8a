package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"carprice/internal/catalog"
	"carprice/internal/config"
	"carprice/internal/handler"
	"carprice/internal/metrics"
	"carprice/internal/port"
	"carprice/internal/predictor"
	"carprice/internal/repository/memory"
	"carprice/internal/router"
	"carprice/internal/service"
	s3storage "carprice/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	predMetrics, err := metrics.NewPredictionMetrics(registry)
	if err != nil {
		return err
	}

	// Initialize optional archive storage
	var storage port.ObjectStorage
	if cfg.Storage.ArchiveEnabled() {
		storage, err = s3storage.NewS3Client(&cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		log.Printf("Archiving batch results to s3://%s", cfg.Storage.Bucket)
	}

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// Initialize services
	authSvc, err := service.NewAuthService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize auth: %w", err)
	}
	relaySvc := service.NewRelayService(cfg.Upstream, predMetrics)
	batchSvc := service.NewBatchService(
		predictor.NewClient(&cfg.Predictor),
		memory.NewBatchStore(cfg.Batch.StateTTL),
		storage,
		predMetrics,
		service.BatchServiceConfig{
			MaxSize:       cfg.Batch.MaxSize,
			Bucket:        cfg.Storage.Bucket,
			PresignExpiry: cfg.Storage.PresignExpiry,
		},
	)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	predictH := handler.NewPredictHandler(relaySvc, batchSvc)
	batchH := handler.NewBatchHandler(batchSvc, cfg.Batch.MaxFileSizeMB)
	catalogH := handler.NewCatalogHandler(cat)
	healthH := handler.NewHealthHandler(cfg.Server.Environment, handler.ProcessUptime, relaySvc)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, predictH, batchH, catalogH, healthH,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (predictor %s, upstream %s)", cfg.Server.Port, cfg.Predictor.APIBaseURL, cfg.Upstream.BaseURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
