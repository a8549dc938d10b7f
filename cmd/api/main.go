// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bazario/bazario-api/internal/admin"
	"github.com/bazario/bazario-api/internal/auth"
	"github.com/bazario/bazario-api/internal/config"
	"github.com/bazario/bazario-api/internal/core"
	"github.com/bazario/bazario-api/internal/favourite"
	"github.com/bazario/bazario-api/internal/health"
	"github.com/bazario/bazario-api/internal/listing"
	"github.com/bazario/bazario-api/internal/middleware"
	"github.com/bazario/bazario-api/internal/server"
	"github.com/bazario/bazario-api/internal/staff"
	"github.com/bazario/bazario-api/internal/storage"
	"github.com/bazario/bazario-api/internal/taxonomy"
	"github.com/bazario/bazario-api/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	if cfg.App.Environment != "production" {
		if _, statErr := os.Stat(cfg.JWT.PrivateKeyPath); os.IsNotExist(statErr) {
			if genErr := auth.GenerateKeyPair(
				cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath); genErr != nil {
				return genErr
			}
			logger.Info("generated development signing keys",
				"path", cfg.JWT.PrivateKeyPath,
			)
		}
	}

	sessions, err := auth.NewSessionManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("session manager initialized",
		"algorithm", "ES256",
		"key_id", sessions.GetKeyID(),
	)

	store, err := storage.NewMinioStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	logger.Info("object storage ready", "bucket", cfg.Storage.Bucket)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, sessions, cfg.OTP.Expire)
	userHandler := user.NewHandler(userSvc, cfg.JWT)

	taxonomyRepo := taxonomy.NewRepository(db.DB)
	taxonomySvc := taxonomy.NewService(taxonomyRepo)
	taxonomyHandler := taxonomy.NewHandler(taxonomySvc)

	staffRepo := staff.NewRepository(db.DB)
	staffSvc := staff.NewService(staffRepo)
	staffHandler := staff.NewHandler(staffSvc)

	listingRepo := listing.NewRepository(db.DB)
	favouriteSvc := favourite.NewService(
		favourite.NewRepository(db.DB),
		favouriteListingChecker{repo: listingRepo},
	)
	favouriteHandler := favourite.NewHandler(favouriteSvc)

	listingSvc := listing.NewService(
		db.DB, userSvc, staffSvc, taxonomySvc, store, favouriteSvc, logger)
	listingHandler := listing.NewHandler(
		listingSvc, cfg.Server.MaxUploadSize)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig: cfg.Server,
		Logger:       logger,
		OnShutdown: func() {
			healthHandler.SetShutdown(true)
			healthHandler.SetReady(false)
		},
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	if telemetry != nil {
		router.Use(middleware.Tracing(telemetry.Tracer))
	}
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", sessions.GetJWKSHandler())

	authenticator := middleware.Authenticator(
		sessions, userSvc, cfg.JWT.CookieName)

	// OTP issuance gets its own tight per-endpoint bucket on top of the
	// global limiter.
	otpLimiter := middleware.NewRateLimiter(
		redis.Client, middleware.RateLimitConfig{
			Limit:    middleware.PerHour(10, 3),
			KeyFunc:  middleware.KeyByEndpoint,
			FailOpen: true,
		})

	userHandler.RegisterRoutes(router, otpLimiter.Handler)

	taxonomyHandler.RegisterRoutes(router)

	router.Route("/listing", func(r chi.Router) {
		r.Use(authenticator)

		listingHandler.RegisterRoutes(r)
		staffHandler.RegisterRoutes(r)
		favouriteHandler.RegisterRoutes(r)
	})

	adminHandler.RegisterRoutes(router, authenticator)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// favouriteListingChecker adapts the listing repository to the favourites
// index's view of the world.
type favouriteListingChecker struct {
	repo listing.Repository
}

func (c favouriteListingChecker) ListingExists(
	ctx context.Context,
	listingID string,
) (bool, error) {
	return c.repo.Exists(ctx, listingID)
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
