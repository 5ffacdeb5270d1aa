package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/voltmetrix/batterypass/internal/adapter/cache"
	"github.com/voltmetrix/batterypass/internal/adapter/http/fiber/handlers"
	"github.com/voltmetrix/batterypass/internal/adapter/http/fiber/middleware"
	"github.com/voltmetrix/batterypass/internal/adapter/queue"
	"github.com/voltmetrix/batterypass/internal/adapter/storage/postgres"
	"github.com/voltmetrix/batterypass/internal/adapter/vault"
	"github.com/voltmetrix/batterypass/internal/observability/telemetry"
	"github.com/voltmetrix/batterypass/internal/service/analysis"
	"github.com/voltmetrix/batterypass/internal/service/health"
	"github.com/voltmetrix/batterypass/internal/service/passport"
	"github.com/voltmetrix/batterypass/internal/service/vehicle"
	"github.com/voltmetrix/batterypass/pkg/config"
)

const (
	serviceName    = "batterypass"
	serviceVersion = "v1.0.0"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting battery health service",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Vault, when enabled, supplies the database URL and JWT secret so
	// they never sit in the config file.
	if cfg.Vault.Enabled {
		sm, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
		if err != nil {
			logger.Fatal("Failed to connect to Vault", zap.Error(err))
		}
		if dsn, err := sm.GetDatabaseCredentials(); err == nil && dsn != "" {
			cfg.Database.URL = dsn
		}
		if secret, err := sm.GetJWTSecret(); err == nil && secret != "" {
			cfg.JWT.Secret = secret
		}
		logger.Info("Loaded secrets from Vault", zap.String("address", cfg.Vault.Address))
	}

	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, serviceVersion, cfg.OpenTelemetry.Jaeger.Endpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	db, err := postgres.NewConnection(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Redis is preferred; a single-node deployment can run on the
	// in-process cache instead.
	appCache, err := cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to local cache", zap.Error(err))
		appCache = cache.NewLocalCache(time.Minute, logger)
	}
	defer appCache.Close()

	var mq queue.MessageQueue
	switch cfg.Queue.Driver {
	case "rabbitmq":
		mq, err = queue.NewRabbitMQQueue(cfg.Queue.RabbitMQ.URL, logger)
	default:
		mq, err = queue.NewNATSQueue(cfg.Queue.NATS.URL, logger)
	}
	if err != nil {
		logger.Fatal("Failed to connect to message queue", zap.Error(err))
	}
	defer mq.Close()

	vehicleRepo := postgres.NewVehicleRepository(db, logger)
	sessionRepo := postgres.NewSessionRepository(db, logger)
	reportRepo := postgres.NewReportRepository(db, logger)
	passportRepo := postgres.NewPassportRepository(db, logger)

	engine := analysis.NewEngine(engineConfig(cfg.Engine))

	validity := 365 * 24 * time.Hour
	if cfg.Passport.ValidityDays > 0 {
		validity = time.Duration(cfg.Passport.ValidityDays) * 24 * time.Hour
	}
	certifier := passport.NewCertifier(validity)

	vehicleService := vehicle.NewService(vehicleRepo, logger)
	analysisService := analysis.NewService(engine, vehicleRepo, sessionRepo, reportRepo, appCache, mq, logger)
	passportService := passport.NewService(certifier, vehicleRepo, reportRepo, passportRepo, mq, logger)

	healthService := health.NewService(&health.Config{
		Version: serviceVersion,
		DB:      sqlDB,
		Redis:   redisClient(appCache),
	}, logger)

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS.AllowedOrigins))
	}
	if cfg.CircuitBreaker.Enabled {
		app.Use(middleware.CircuitBreaker(logger))
	}

	health.NewFiberHandler(healthService).RegisterRoutes(app)

	if cfg.Prometheus.Enabled {
		path := cfg.Prometheus.Path
		if path == "" {
			path = "/metrics"
		}
		metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		app.Get(path, func(c *fiber.Ctx) error {
			metricsHandler(c.Context())
			return nil
		})
	}

	v1 := app.Group("/api/v1")
	protected := v1.Group("", middleware.AuthRequired(cfg.JWT.Secret))

	vehicleHandler := handlers.NewVehicleHandler(vehicleService, logger)
	protected.Post("/vehicles", vehicleHandler.Register)
	protected.Get("/vehicles", vehicleHandler.List)
	protected.Get("/vehicles/:id", vehicleHandler.Get)

	sessionHandler := handlers.NewSessionHandler(analysisService, logger)
	protected.Post("/vehicles/:id/sessions", sessionHandler.Ingest)
	protected.Get("/vehicles/:id/sessions", sessionHandler.List)

	reportHandler := handlers.NewReportHandler(analysisService, logger)
	protected.Post("/vehicles/:id/analysis", reportHandler.Analyze)
	protected.Get("/vehicles/:id/reports", reportHandler.ListByVehicle)
	protected.Get("/reports/:id", reportHandler.Get)

	passportHandler := handlers.NewPassportHandler(passportService, logger)
	protected.Post("/vehicles/:id/passports", passportHandler.Issue)
	protected.Get("/vehicles/:id/passports", passportHandler.ListByVehicle)
	protected.Get("/passports/:id", passportHandler.Get)
	// Verification and hash lookup are public: a buyer checks a passport
	// without holding platform credentials.
	v1.Get("/passports/hash/:hash", passportHandler.GetByHash)
	v1.Post("/passports/:id/verify", passportHandler.Verify)

	go startBackgroundWorkers(mq, logger)

	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// engineConfig merges file overrides onto the engine defaults. Only
// non-zero values replace a default.
func engineConfig(overrides config.EngineConfig) analysis.Config {
	cfg := analysis.DefaultConfig()
	if overrides.MinSessions > 0 {
		cfg.MinSessions = overrides.MinSessions
	}
	if overrides.MinSocDelta > 0 {
		cfg.MinSocDelta = overrides.MinSocDelta
	}
	if overrides.ChargeEfficiency > 0 {
		cfg.ChargeEfficiency = overrides.ChargeEfficiency
	}
	if overrides.CapacityWindowLow > 0 {
		cfg.CapacityWindowLow = overrides.CapacityWindowLow
	}
	if overrides.CapacityWindowHigh > 0 {
		cfg.CapacityWindowHigh = overrides.CapacityWindowHigh
	}
	if overrides.RecencyHalfLifeDays > 0 {
		cfg.RecencyHalfLifeDays = overrides.RecencyHalfLifeDays
	}
	if len(overrides.ForecastHorizons) > 0 {
		cfg.ForecastHorizons = overrides.ForecastHorizons
	}
	return cfg
}

// redisClient unwraps the concrete Redis client for health checks; nil
// when running on the local cache.
func redisClient(c interface{ Close() error }) *redis.Client {
	if rc, ok := c.(*cache.RedisCache); ok {
		return rc.Client()
	}
	return nil
}

// startBackgroundWorkers consumes the domain events the services publish.
func startBackgroundWorkers(mq queue.MessageQueue, logger *zap.Logger) {
	logger.Info("Starting background workers")

	mq.Subscribe("report.created", func(msg []byte) error {
		logger.Info("Report created", zap.ByteString("msg", msg))
		return nil
	})

	mq.Subscribe("passport.issued", func(msg []byte) error {
		logger.Info("Passport issued", zap.ByteString("msg", msg))
		return nil
	})
}
