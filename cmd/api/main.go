package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"applyapi/docs"
	"applyapi/internal/access"
	"applyapi/internal/config"
	"applyapi/internal/database"
	"applyapi/internal/database/migration"
	handlers "applyapi/internal/http/handler"
	"applyapi/internal/http/middleware"
	"applyapi/internal/logging"
	appotel "applyapi/internal/otel"
	"applyapi/internal/repository"
	"applyapi/internal/repository/mongo"
	"applyapi/internal/repository/postgres"
	"applyapi/internal/service"
	"applyapi/internal/storage"
)

// stores bundles the repositories of the selected backend.
type stores struct {
	apps          repository.ApplicationRepository
	notifications repository.NotificationRepository
	jobs          repository.JobProvider
	users         repository.UserProvider
	pinger        handlers.Pinger
	close         func(context.Context) error
}

// @title Job Application API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	loc := logging.LoadLocation(cfg.Timezone)
	logger := logging.New(cfg.LogLevel, loc, os.Stdout)

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.AppConfig, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := appotel.Init(ctx, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.WithError(err).Warn("tracing shutdown failed")
		}
	}()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			logger.WithError(err).Warn("store close failed")
		}
	}()

	attachments, err := openAttachments(ctx, cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := service.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register service metrics: %w", err)
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	svc := service.NewApplicationService(
		st.apps,
		st.jobs,
		st.users,
		service.NewNotificationEmitter(st.notifications),
		service.WithMetrics(metrics),
		service.WithLogger(logger.WithField("component", "service")),
		service.WithEvaluator(access.Evaluator{RestrictLookupByEmail: cfg.Policy.RestrictLookupByEmail}),
		service.WithAttachments(attachments),
	)

	auth, err := middleware.NewAuth(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if err != nil {
		return fmt.Errorf("configure auth: %w", err)
	}
	limiter, closeLimiter := newLimiter(cfg.Redis, logger)
	defer closeLimiter()

	app := fiber.New(fiber.Config{
		AppName:      "applyapi",
		BodyLimit:    cfg.MaxUploadBytes,
		Immutable:    true,
		ErrorHandler: handlers.ErrorHandler(logger),
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(logger))
	app.Use(httpMetrics.Handler())

	handlers.RegisterRoutes(app, st.pinger, svc, handlers.RouteOptions{
		Auth: auth.Handler(),
		SubmitLimit: middleware.RateLimit(limiter, "submit",
			cfg.RateLimit.SubmitLimit, time.Duration(cfg.RateLimit.SubmitWindowSec)*time.Second),
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.WithFields(logrus.Fields{
			"addr":         addr,
			"store_driver": cfg.StoreDriver,
			"attachments":  cfg.AttachmentBackend,
		}).Info("server starting")
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(sctx)
}

func openStores(ctx context.Context, cfg *config.AppConfig, logger *logrus.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		return &stores{
			apps:          postgres.NewApplicationPostgres(db),
			notifications: postgres.NewNotificationPostgres(db),
			jobs:          postgres.NewJobPostgres(db),
			users:         postgres.NewUserPostgres(db),
			pinger:        db,
			close:         closeSQL(db),
		}, nil

	case config.StoreDriverMongo:
		client, db, err := database.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("connect to mongo: %w", err)
		}
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		logger.WithFields(logrus.Fields{"component": "database", "event": "indexes_ensured"}).Info("mongo indexes ensured")
		return &stores{
			apps:          mongo.NewApplicationMongo(db),
			notifications: mongo.NewNotificationMongo(db),
			jobs:          mongo.NewJobMongo(db),
			users:         mongo.NewUserMongo(db),
			pinger: handlers.PingFunc(func(ctx context.Context) error {
				return client.Ping(ctx, readpref.Primary())
			}),
			close: client.Disconnect,
		}, nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func closeSQL(db *sql.DB) func(context.Context) error {
	return func(context.Context) error { return db.Close() }
}

func openAttachments(ctx context.Context, cfg *config.AppConfig) (storage.AttachmentStore, error) {
	switch cfg.AttachmentBackend {
	case config.AttachmentBackendInline:
		return storage.InlineAttachments{}, nil
	case config.AttachmentBackendMinIO:
		store, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("initialize object storage: %w", err)
		}
		return storage.NewObjectAttachments(store), nil
	default:
		return nil, errors.New("unknown ATTACHMENT_BACKEND " + cfg.AttachmentBackend)
	}
}

// newLimiter uses Redis when configured so every replica shares the submission budget.
func newLimiter(cfg config.RedisConfig, logger *logrus.Logger) (middleware.Limiter, func()) {
	if cfg.Addr == "" {
		return middleware.NewMemoryLimiter(), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return middleware.NewRedisLimiter(client, logger.WithField("component", "ratelimit")), func() {
		_ = client.Close()
	}
}
