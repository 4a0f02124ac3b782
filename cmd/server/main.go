package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/promptduel/promptduel-go/internal/api"
	"github.com/promptduel/promptduel-go/internal/config"
	"github.com/promptduel/promptduel-go/internal/factory"
	"github.com/promptduel/promptduel-go/internal/services/session"
	redisstorage "github.com/promptduel/promptduel-go/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	factoryCfg := factory.Config{
		Logger:        logger,
		StorageType:   cfg.StorageType,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		OpenAIModel:   cfg.OpenAIModel,
		SessionConfig: session.Config{
			TurnLimit:        cfg.TurnLimit,
			MaxMessageLength: cfg.MaxMessageLength,
			TransitionTicks:  cfg.TransitionSeconds,
			TickInterval:     time.Second,
		},
	}

	if factoryCfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		Matchmaking:       app.Matchmaking,
		SessionController: app.SessionController,
		Broadcaster:       app.Broadcaster,
		HubManager:        app.HubManager,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("server stopped")
	}
}
