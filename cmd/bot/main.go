package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pluggkompis/pluggkompis_bot/internal/api"
	"github.com/pluggkompis/pluggkompis_bot/internal/app"
	"github.com/pluggkompis/pluggkompis_bot/internal/config"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller"
	"github.com/pluggkompis/pluggkompis_bot/internal/repository"
	"github.com/pluggkompis/pluggkompis_bot/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting pluggkompis bot",
		zap.String("environment", cfg.Environment),
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.String("timezone", cfg.Location.String()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	// Backend calls are traced by the otelhttp transport in the api client.
	shutdownTracing, err := app.SetupTracing(ctx, cfg.Tracing, logger)
	if err != nil {
		logger.Fatal("Failed to set up tracing", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("Failed to flush traces", zap.Error(err))
		}
	}()

	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger)
	sessionRepo := repository.NewSessionRepository(pool)

	sessions := service.NewSessionService(sessionRepo, client, logger)
	schedule := service.NewScheduleService(client, cfg.Location, logger)
	bookings := service.NewBookingService(client, cfg.Location, logger)
	volunteers := service.NewVolunteerService(client, cfg.Location, logger)
	coordinators := service.NewCoordinatorService(client, logger)

	b, err := bot.New(cfg.TelegramToken,
		bot.WithErrorsHandler(func(err error) {
			logger.Error("Telegram error", zap.Error(err))
		}),
	)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	ctrl := controller.NewBotController(b, sessions, schedule, bookings, volunteers, coordinators, cfg.Location, logger)
	if err := ctrl.RegisterHandlers(ctx); err != nil {
		logger.Warn("Bot started without command menu", zap.Error(err))
	}

	scheduler := app.NewScheduler(sessions, cfg.SessionSweepInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if err := ctrl.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Shutting down")
}
