package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/nivela-brasil/intake-backend/config"
	"github.com/nivela-brasil/intake-backend/db"
	"github.com/nivela-brasil/intake-backend/handlers"
	"github.com/nivela-brasil/intake-backend/logger"
	"github.com/nivela-brasil/intake-backend/metrics"
	"github.com/nivela-brasil/intake-backend/router"
	"github.com/nivela-brasil/intake-backend/services"
	"github.com/nivela-brasil/intake-backend/store"
	pgstore "github.com/nivela-brasil/intake-backend/store/postgres"
	supastore "github.com/nivela-brasil/intake-backend/store/supabase"
)

func main() {
	// .env is a local development convenience; production uses real env vars.
	if os.Getenv("ENVIRONMENT") != string(config.EnvProduction) {
		_ = godotenv.Load()
	}

	logger.InitLogger()
	defer func() { _ = logger.Close() }()
	log := logger.GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalw("Failed to load configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		leadStore        store.LeadStore
		distributorStore store.DistributorStore
		pinger           services.Pinger
	)

	switch cfg.Intake.Driver {
	case config.DriverPostgres:
		if err := db.RunMigrations(cfg.Database.URL()); err != nil {
			log.Fatalw("Failed to run migrations", "error", err)
		}

		poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL())
		if err != nil {
			log.Fatalw("Invalid database configuration",
				"error", err,
				"url", logger.MaskConnectionString(cfg.Database.URL()))
		}
		poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			log.Fatalw("Failed to create connection pool", "error", err)
		}
		defer pool.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := pool.Ping(pingCtx); err != nil {
			cancel()
			log.Fatalw("Failed to reach database", "error", err)
		}
		cancel()

		leadStore = pgstore.NewLeadStore(pool)
		distributorStore = pgstore.NewDistributorStore(pool)
		pinger = pool

	case config.DriverSupabase:
		client, err := supastore.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
		if err != nil {
			log.Fatalw("Failed to create supabase client", "error", err)
		}
		leadStore = supastore.NewLeadStore(client)
		distributorStore = supastore.NewDistributorStore(client)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// The limiter fails open, so a Redis outage is not fatal.
			log.Warnw("Redis unreachable at startup, rate limiting degraded", "error", err)
		}
		cancel()
	}

	intakeMetrics := metrics.New()
	notifier := services.NewNotificationService(&cfg.Notification)
	healthService := services.NewHealthService(pinger, leadStore, distributorStore, cfg.Server.Version)

	persistTimeout := time.Duration(cfg.Intake.PersistTimeoutSeconds) * time.Second

	engine := router.SetupRouter(router.Dependencies{
		Config:             cfg,
		LeadHandler:        handlers.NewLeadHandler(leadStore, intakeMetrics, persistTimeout),
		DistributorHandler: handlers.NewDistributorHandler(distributorStore, notifier, intakeMetrics, persistTimeout),
		HealthHandler:      handlers.NewHealthHandler(healthService),
		RedisClient:        redisClient,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("Starting intake server",
			"port", cfg.Server.Port,
			"environment", cfg.Server.Environment,
			"driver", cfg.Intake.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Graceful shutdown failed", "error", err)
	}
	log.Info("Server stopped")
}
