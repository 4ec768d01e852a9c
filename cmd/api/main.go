package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/notify"
	"storefront/internal/payment"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"

	"github.com/redis/go-redis/v9"
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

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting storefront API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
	}

	// Repositories
	contentRepo := repository.NewContentRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Catalog import: S3 first when enabled, local disk otherwise
	importer := catalog.NewImporter(newCatalogLoader(ctx, cfg.Catalog, logger), contentRepo, logger)
	if cfg.Catalog.File != "" {
		if _, err := importer.Import(ctx, cfg.Catalog.File); err != nil {
			return fmt.Errorf("failed to import catalog %s: %w", cfg.Catalog.File, err)
		}
	}

	// Payment provider behind a circuit breaker
	provider := payment.NewBreakerProvider(
		payment.NewStripeProvider(cfg.Stripe.SecretKey, logger),
		cfg.Stripe.BreakerMaxFailures,
		cfg.Stripe.BreakerOpenTimeout,
		logger,
	)

	publisher, err := newPublisher(ctx, cfg.Notify, logger)
	if err != nil {
		return err
	}

	// Services
	contentService := service.NewContentService(contentRepo, logger)
	cartService := service.NewCartService(cart.NewRedisPersister(redisClient, cfg.Redis.CartTTL, logger), contentService, logger)
	checkoutService := service.NewCheckoutService(provider, contentService, cfg.Stripe.Currency, cfg.Checkout, logger)
	orderService := service.NewOrderService(provider, orderRepo, publisher, cfg.Checkout, logger)

	mux := router.New(router.Handlers{
		Health:      handler.NewHealthHandler(pool, provider, logger),
		Content:     handler.NewContentHandler(contentService, logger),
		Cart:        handler.NewCartHandler(cartService, logger),
		Checkout:    handler.NewCheckoutHandler(checkoutService, cfg.Server.PublicURL, logger),
		Order:       handler.NewOrderHandler(orderService, logger),
		Catalog:     handler.NewCatalogHandler(importer, logger),
		SuccessPage: handler.NewSuccessPageHandler(orderService, cartService, logger),
	}, cfg.Auth.APIKey, cfg.Server.RequestTimeout, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
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

func newCatalogLoader(ctx context.Context, cfg config.CatalogConfig, logger zerolog.Logger) catalog.Loader {
	fileLoader := catalog.NewFileLoader(cfg.Dir, logger)
	if !cfg.S3Enabled {
		logger.Info().Msg("using local file system for catalog exports (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := catalog.NewS3Loader(ctx, cfg.S3Bucket, cfg.S3Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3Prefix, true, logger)
}

func newPublisher(ctx context.Context, cfg config.NotifyConfig, logger zerolog.Logger) (notify.Publisher, error) {
	if !cfg.SNSEnabled {
		logger.Info().Msg("order notifications disabled")
		return notify.NopPublisher{}, nil
	}

	publisher, err := notify.NewSNSPublisher(ctx, cfg.SNSTopicARN, cfg.SNSRegion, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize order notifications: %w", err)
	}
	return publisher, nil
}
