package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/auth"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/config"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/event"
	handler "github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/handler/http"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/repository/postgres"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/service"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/migrations"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/database"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/health"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/httpclient"
	pkgkafka "github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/kafka"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/middleware"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/tracing"
)

// ServiceName tags logs, metrics and traces emitted by this process.
const ServiceName = "agrilink-api"

// App wires together all dependencies and runs the marketplace API.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Tracing first so everything downstream picks up the provider.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:  ServiceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTELEndpoint,
		SampleRate:   cfg.OTELSampleRate,
		Enabled:      cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// PostgreSQL connection pool.
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.String("database", cfg.PostgresDB),
	)

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Redis for the reference data cache. A failed connect is fatal here;
	// to run without the cache, point REDIS_ADDR at a live instance or
	// stub it in tests.
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))

	// Kafka producer for listing lifecycle events.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Auth provider client behind a circuit breaker.
	authHTTP := httpclient.New(httpclient.Config{
		Timeout:    cfg.AuthTimeout(),
		MaxRetries: 2,
	})
	authClient := auth.NewClient(
		httpclient.NewCircuitBreakerClient(authHTTP, httpclient.DefaultCircuitBreakerConfig("auth-provider"), logger),
		cfg.AuthProviderURL,
		logger,
	)

	// Build the dependency graph.
	searchRepo := postgres.NewSearchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	favoriteRepo := postgres.NewFavoriteRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)

	eventProducer := event.NewProducer(producer, logger)

	searchService := service.NewSearchService(searchRepo, logger)
	productService := service.NewProductService(productRepo, profileRepo, eventProducer, logger)
	favoriteService := service.NewFavoriteService(favoriteRepo, productRepo, profileRepo, logger)
	profileService := service.NewProfileService(profileRepo, logger)
	locationService := service.NewLocationService(locationRepo, rdb, cfg.ReferenceTTL(), logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return pkgkafka.PingBrokers(ctx, cfg.KafkaBrokers)
	})

	// HTTP router.
	router := handler.NewRouter(handler.RouterDeps{
		SearchService:   searchService,
		ProductService:  productService,
		FavoriteService: favoriteService,
		ProfileService:  profileService,
		LocationService: locationService,
		AuthClient:      authClient,
		HealthHandler:   healthHandler,
		CORSConfig: middleware.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Environment:    cfg.Environment,
		},
		ServiceName: ServiceName,
		Logger:      logger,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		rdb:            rdb,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
