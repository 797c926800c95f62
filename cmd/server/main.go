package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	fiberadapter "github.com/flowlyhq/flowly/adapters/fiber"
	pgxadapter "github.com/flowlyhq/flowly/adapters/pgx"
	"github.com/flowlyhq/flowly/config"
	"github.com/flowlyhq/flowly/core"
	"github.com/flowlyhq/flowly/email"
	"github.com/flowlyhq/flowly/oauth"
	"github.com/flowlyhq/flowly/pkg/crypto"
	"github.com/flowlyhq/flowly/pkg/token"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		logger.Fatal("failed to create connection pool", zap.Error(err))
	}
	if err := pool.Ping(ctx); err != nil {
		cancel()
		logger.Fatal("failed to reach database", zap.Error(err))
	}
	cancel()
	defer pool.Close()

	storage := pgxadapter.New(pool)

	var mailer core.Mailer
	if cfg.ResendAPIKey != "" {
		mailer = email.NewResendSender(cfg.ResendAPIKey, cfg.FromEmail, cfg.AppBaseURL, logger)
	} else {
		logger.Warn("RESEND_API_KEY not set, mail goes to the log")
		mailer = email.NewConsoleSender(logger)
	}

	codec := token.New(cfg.TokenSecret, cfg.TokenTTL)
	google := oauth.NewGoogleClient(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)

	authService := core.NewAuthService(storage, crypto.NewArgon2(), codec, mailer, logger)
	taskService := core.NewTaskService(storage)

	app := fiber.New(fiber.Config{
		AppName: "flowly",
	})
	app.Use(recoverer.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	fiberadapter.NewHandler(authService, taskService, google, codec, logger).Register(app)

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
