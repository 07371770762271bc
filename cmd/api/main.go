package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/swiftcargo/swiftcargo-backend/api/routes"
	"github.com/swiftcargo/swiftcargo-backend/internal/eta"
	"github.com/swiftcargo/swiftcargo-backend/internal/geo"
	"github.com/swiftcargo/swiftcargo-backend/internal/quotes"
	"github.com/swiftcargo/swiftcargo-backend/internal/rates"
	"github.com/swiftcargo/swiftcargo-backend/internal/shipments"
	"github.com/swiftcargo/swiftcargo-backend/pkg/config"
	"github.com/swiftcargo/swiftcargo-backend/pkg/db"
	"github.com/swiftcargo/swiftcargo-backend/pkg/logger"
	"github.com/swiftcargo/swiftcargo-backend/pkg/metrics"
	"github.com/swiftcargo/swiftcargo-backend/pkg/migrate"
	"github.com/swiftcargo/swiftcargo-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.FeatureFlags.TariffCache {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	ratesRepo := rates.NewRepository(dbClient.DB())
	ratesService, err := rates.NewService(ratesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create rates service", err)
		os.Exit(1)
	}

	tariffFinder := rates.NewCachedFinder(ratesRepo, redisClient, cfg.Redis.TariffTTL, logg)

	quoteService, err := quotes.NewService(
		tariffFinder,
		geo.DefaultTable(),
		eta.DefaultLaneTable(),
		cfg.Pricing,
		appMetrics,
		logg,
		nil,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}

	shipmentService, err := shipments.NewService(
		shipments.NewRepository(dbClient.DB()),
		dbClient,
		quoteService,
		appMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create shipment service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			quoteService,
			shipmentService,
			ratesService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
