package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"etalase/internal/database"
	"etalase/internal/images"
	"etalase/internal/server"
	"etalase/internal/services"
	"etalase/pkg/config"
	"etalase/pkg/logger"
	"etalase/pkg/rabbitmq"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	db, err := database.Open(cfg.DB, cfg.App.IsDevelopment(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	log.Info().Str("driver", cfg.DB.Driver).Msg("database connected")

	// A nil *rabbitmq.Client stored in the interface would not compare
	// equal to nil, so the publisher is only assigned on success.
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.MQ.URL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.MQ.URL, Exchange: cfg.MQ.Exchange}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		publisher = mqClient
	} else {
		log.Info().Msg("RABBITMQ_URL not set, catalog events disabled")
	}

	store, err := images.NewStore(cfg.Images, cfg.App.BaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize image store")
	}

	app := server.New(server.Options{
		Config:    cfg,
		Log:       log,
		DB:        db,
		Publisher: publisher,
		Images:    store,
	})

	listenErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("starting server")
		listenErr <- app.Listen(cfg.App.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	case err := <-listenErr:
		log.Error().Err(err).Msg("server failed to start")
		exitCode = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}
	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			log.Error().Err(err).Msg("error closing RabbitMQ client")
		}
	}
	if err := database.Close(db); err != nil {
		log.Error().Err(err).Msg("error closing database")
	}

	log.Info().Msg("server stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
