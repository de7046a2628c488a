package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"

	"docshelf/internal/config"
	"docshelf/internal/host"
	"docshelf/internal/hostbridge"
	"docshelf/internal/http/middleware"
	"docshelf/internal/logging"
	"docshelf/internal/otel"
)

// hostd is the privileged side of the local strategy: it owns the file directory and
// opens files and URLs with the platform defaults.
func main() {
	cfg := config.Load()
	log := logging.New(logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Service: "docshelf-hostd"})

	if err := cfg.Host.ValidateServer(); err != nil {
		log.Fatal().Err(err).Msg("invalid host configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, "docshelf-hostd", logging.Component(log, "otel"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	files, err := host.New(cfg.Host.BaseDir, host.NewSystemOpener(logging.Component(log, "opener")))
	if err != nil {
		log.Fatal().Err(err).Str("base_dir", cfg.Host.BaseDir).Msg("failed to prepare file directory")
	}

	app := fiber.New(fiber.Config{
		// base64 inflates uploads by a third
		BodyLimit: 150 * 1024 * 1024,
	})
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logging.Component(log, "http"), time.Local))
	app.Use(otelfiber.Middleware())

	signer := hostbridge.NewSigner(cfg.Host.Secret, time.Duration(cfg.Host.TokenTTLSec)*time.Second)
	hostbridge.RegisterRoutes(app, files, signer, logging.Component(log, "bridge"))

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	// loopback only: the bridge must not be reachable from other machines
	addr := "127.0.0.1:" + cfg.Host.Port
	log.Info().Str("addr", addr).Str("base_dir", files.BaseDir()).Msg("host process starting")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start host process")
	}
}
