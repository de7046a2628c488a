package main

import (
	"context"
	"database/sql"
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
	"github.com/rs/zerolog"

	"docshelf/docs"
	"docshelf/internal/category"
	"docshelf/internal/config"
	"docshelf/internal/database"
	"docshelf/internal/database/migration"
	handlers "docshelf/internal/http/handler"
	"docshelf/internal/http/middleware"
	"docshelf/internal/hostbridge"
	"docshelf/internal/kv"
	"docshelf/internal/logging"
	"docshelf/internal/metrics"
	"docshelf/internal/otel"
	"docshelf/internal/repository/postgres"
	"docshelf/internal/service"
	"docshelf/internal/storage"
	"docshelf/internal/strategy"
)

// @title Document Shelf API
// @version 1.0
// @BasePath /
func main() {
	cfg := config.Load()
	log := logging.New(logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Service: "docshelf-api"})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, "docshelf-api", logging.Component(log, "otel"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	storageMetrics, err := metrics.NewStorage(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register storage metrics")
	}

	slots, err := kv.OpenSQLite(ctx, cfg.KV.DSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", kv.DriverFor(cfg.KV.DSN)).Msg("failed to open key/value store")
	}
	defer slots.Close()

	strategies, db, err := buildStrategies(ctx, cfg, slots, storageMetrics, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure storage strategies")
	}
	if db != nil {
		defer db.Close()
	}

	active, ok := strategies.Get(cfg.Strategy)
	if !ok {
		log.Fatal().Str("strategy", cfg.Strategy).Strs("available", strategies.Names()).Msg("storage strategy not available")
	}

	mgr := service.NewDocumentManager(cfg.Strategy, active, logging.Component(log, "manager"),
		service.WithCategories(category.Default()))
	if err := mgr.Load(ctx); err != nil {
		// the shell still starts read-only; PUT /storage retries the load or switches strategy
		log.Error().Err(err).Str("strategy", cfg.Strategy).Msg("initial load failed")
	}

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register http metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    100 * 1024 * 1024,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logging.Component(log, "http"), time.Local))
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == middleware.MetricsPath
	})))
	app.Use(promMiddleware.Handler())

	app.Get(middleware.MetricsPath, middleware.MetricsHandler(reg))

	deps := handlers.Deps{
		Manager:    mgr,
		Strategies: strategies,
		Categories: category.Default(),
	}
	if db != nil {
		deps.DB = db
	}
	handlers.RegisterRoutes(app, deps)

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

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("strategy", cfg.Strategy).Strs("available", strategies.Names()).Msg("server starting")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// buildStrategies registers every strategy the configuration supports. Browser is always
// available; local and remote need the host process, remote also a database and an object store.
func buildStrategies(ctx context.Context, cfg *config.AppConfig, slots kv.Store, m *metrics.Storage, log zerolog.Logger) (*strategy.Registry, *sql.DB, error) {
	reg := strategy.NewRegistry()
	register := func(name string, s strategy.Strategy) {
		reg.Register(name, strategy.Instrument(name, s, m, logging.Component(log, "strategy")))
	}

	register(config.StrategyBrowser, strategy.NewBrowser(slots, logging.Component(log, "browser")))

	if cfg.Host.ValidateClient() != nil {
		return reg, nil, nil
	}
	host, err := hostbridge.NewClient(cfg.Host)
	if err != nil {
		return nil, nil, err
	}
	if err := host.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("url", cfg.Host.URL).Msg("host process unreachable")
	}
	register(config.StrategyLocal, strategy.NewLocal(slots, host, logging.Component(log, "local")))

	if !cfg.Database.Configured() {
		return reg, nil, nil
	}
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	if err := migration.EnsureMigrated(ctx, db, logging.Component(log, "migration"), cfg.Database.Host); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}
	objects, err := newObjectStore(ctx, cfg, log)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	expiry := time.Duration(cfg.ObjectStore.URLExpirySec) * time.Second
	register(config.StrategyRemote, strategy.NewRemote(postgres.NewDocumentPostgres(db), objects, host, expiry,
		logging.Component(log, "remote")))
	return reg, db, nil
}

func newObjectStore(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) (storage.Storage, error) {
	switch cfg.ObjectStore.Backend {
	case config.BackendS3:
		return storage.NewS3(ctx, cfg.S3)
	default:
		return storage.NewMinIO(ctx, cfg.MinIO, logging.Component(log, "minio"))
	}
}
