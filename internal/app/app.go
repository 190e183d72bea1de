package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/egalea504/LightBnB/internal/auth"
	"github.com/egalea504/LightBnB/internal/config"
	"github.com/egalea504/LightBnB/internal/event"
	handler "github.com/egalea504/LightBnB/internal/handler/http"
	"github.com/egalea504/LightBnB/internal/repository"
	"github.com/egalea504/LightBnB/internal/repository/memory"
	"github.com/egalea504/LightBnB/internal/repository/postgres"
	"github.com/egalea504/LightBnB/internal/service"
	"github.com/egalea504/LightBnB/pkg/database"
	"github.com/egalea504/LightBnB/pkg/health"
	pkgkafka "github.com/egalea504/LightBnB/pkg/kafka"
	"github.com/egalea504/LightBnB/pkg/middleware"
	"github.com/egalea504/LightBnB/pkg/tracing"
)

const serviceName = "lightbnb"

// App wires together all dependencies and runs the LightBnB API.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool // nil with the memory store
	redis          *redis.Client
	producer       *pkgkafka.Producer // nil when Kafka is disabled
	httpServer     *http.Server
	tracerShutdown tracing.Shutdown
}

type repositories struct {
	users        repository.UserRepository
	reservations repository.ReservationRepository
	properties   repository.PropertyRepository
}

// NewApp creates the application, connecting to every configured backend.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}
	ok := false
	defer func() {
		if !ok {
			a.closeBackends()
		}
	}()

	tracerShutdown, err := tracing.Init(ctx, tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = tracerShutdown

	healthHandler := health.NewHandler()

	repos, err := a.openStore(ctx, healthHandler)
	if err != nil {
		return nil, err
	}

	a.redis, err = database.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))
	healthHandler.RegisterCritical("redis", func(ctx context.Context) error {
		return a.redis.Ping(ctx).Err()
	})

	var events service.EventPublisher = event.Discard{}
	if cfg.KafkaEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		events = event.NewProducer(a.producer, event.DefaultBreakerConfig(), logger)
		healthHandler.RegisterNonCritical("kafka", health.Ping(a.producer))
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	denylist := auth.NewDenylist(a.redis)
	svc := service.New(repos.users, repos.reservations, repos.properties, tokens, denylist, events, logger)

	router := handler.NewRouter(handler.RouterConfig{
		Service:   svc,
		Validator: handler.NewTokenValidator(tokens, denylist),
		Health:    healthHandler,
		CORS:      middleware.CORSConfig{AllowedOrigins: cfg.CORSAllowedOrigins},
		AuthRateLimit: middleware.RateLimitConfig{
			PerMinute: cfg.AuthRateLimitPerMinute,
			Burst:     cfg.AuthRateLimitBurst,
		},
		Logger: logger,
	})

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ok = true
	return a, nil
}

func (a *App) openStore(ctx context.Context, h *health.Handler) (repositories, error) {
	if a.cfg.Store == config.StoreMemory {
		store, err := memory.NewSeeded()
		if err != nil {
			return repositories{}, fmt.Errorf("load memory store: %w", err)
		}
		a.logger.Warn("using in-memory store; data is lost on restart")
		return repositories{
			users:        store.Users(),
			reservations: store.Reservations(),
			properties:   store.Properties(),
		}, nil
	}

	pool, err := database.NewPostgresPool(ctx, a.cfg.Postgres(), a.logger)
	if err != nil {
		return repositories{}, fmt.Errorf("connect to postgres: %w", err)
	}
	a.pool = pool
	a.logger.Info("connected to PostgreSQL",
		slog.String("host", a.cfg.PostgresHost),
		slog.Int("port", a.cfg.PostgresPort),
		slog.String("database", a.cfg.PostgresDB),
	)

	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, serviceName); err != nil {
		a.logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
	}
	if a.cfg.SlowQueryThreshold > 0 {
		database.SetSlowQueryLogging(a.cfg.SlowQueryThreshold, a.logger)
	}
	h.RegisterCritical("postgres", health.Ping(pool))

	return repositories{
		users:        postgres.NewUserRepository(pool),
		reservations: postgres.NewReservationRepository(pool),
		properties:   postgres.NewPropertyRepository(pool),
	}, nil
}

// Run serves HTTP until ctx is canceled, then shuts down.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return errors.Join(err, a.Shutdown())
	}

	return a.Shutdown()
}

// Shutdown drains HTTP requests, flushes spans, then closes the backends.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.closeBackends(); err != nil {
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

func (a *App) closeBackends() error {
	var errs []error
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
	return errors.Join(errs...)
}
