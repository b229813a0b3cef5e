package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prodexa/internal/archive"
	"prodexa/internal/auth"
	"prodexa/internal/catalog"
	"prodexa/internal/config"
	"prodexa/internal/database"
	"prodexa/internal/export"
	"prodexa/internal/handler"
	"prodexa/internal/metrics"
	"prodexa/internal/middleware"
	"prodexa/internal/router"
	"prodexa/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting prodexa API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize catalogue store
	store, closeStore, err := newCatalogStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	manager := catalog.NewManager(store, logger)
	snap, err := manager.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if w := snap.Warning(); w != "" {
		logger.Warn().Str("warning", w).Msg("catalog loaded with warning")
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}

	// Initialize invoice archiver with S3 and local fallback
	localArchiver := archive.NewLocalArchiver(logger)
	var invoiceArchiver archive.Archiver

	if cfg.S3.Enabled {
		s3Archiver, err := archive.NewS3Archiver(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 archiver, keeping invoices on the local file system only")
			invoiceArchiver = localArchiver
		} else {
			invoiceArchiver = archive.NewFallbackArchiver(s3Archiver, localArchiver, true, logger)
		}
	} else {
		invoiceArchiver = localArchiver
		logger.Info().Msg("keeping invoices on the local file system (S3 disabled)")
	}

	// Initialize token authentication
	var authenticator auth.Authenticator
	var tokens middleware.TokenParser
	if cfg.Auth.JWTSecret != "" {
		authenticator = auth.NewAuthenticator(cfg.Auth.UsersFile, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger)
		tokens = authenticator
	}

	// Initialize services
	productService := service.NewProductService(manager, m, logger)
	billingService := service.NewBillingService(manager, invoiceArchiver, service.InvoiceSettings{
		Shop: export.Shop{
			Name:    cfg.Shop.Name,
			Address: cfg.Shop.Address,
			Phone:   cfg.Shop.Phone,
		},
		Dir: cfg.Invoice.Dir,
	}, m, logger)
	reportService := service.NewReportService(manager, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Product: handler.NewProductHandler(productService, logger),
		Bill:    handler.NewBillHandler(billingService, logger),
		Report:  handler.NewReportHandler(reportService, logger),
	}
	if authenticator != nil {
		handlers.Auth = handler.NewAuthHandler(authenticator, logger)
	}

	// Initialize router
	mux := router.New(handlers, m, cfg.Auth.APIKey, tokens, cfg.Server.CORSOrigins, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("catalog_backend", cfg.Catalog.Backend).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newCatalogStore opens the configured catalogue backend. The returned func
// releases any resources the store holds.
func newCatalogStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (catalog.Store, func(), error) {
	switch cfg.Catalog.Backend {
	case config.CatalogBackendPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return catalog.NewPostgresStore(pool, logger), pool.Close, nil
	default:
		logger.Info().Str("path", cfg.Catalog.Path).Msg("using JSON catalog file")
		return catalog.NewJSONStore(cfg.Catalog.Path, logger), func() {}, nil
	}
}
