package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/goldshop/gateway"
	"github.com/example/goldshop/pkg/config"
	"github.com/example/goldshop/pkg/logger"
	"github.com/example/goldshop/pkg/repository"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to YAML config file")
	pflag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Gold Shop API",
		zap.String("name", cfg.Server.Name),
		zap.String("address", cfg.Server.Addr()))

	// The API keeps serving without a database so /test can report it.
	var store gateway.Store
	repo, err := repository.NewMongoRepository(&cfg.MongoDB)
	switch {
	case errors.Is(err, repository.ErrNotConnected):
		log.Warn("DATABASE_URL or DATABASE_NAME not set, continuing without database")
	case err != nil:
		log.Warn("Failed to connect to MongoDB, continuing without database", zap.Error(err))
	default:
		store = repo
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := repo.Close(ctx); err != nil {
				log.Error("Failed to close MongoDB client", zap.Error(err))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoDB.ConnectTimeout)
		if err := repo.Ping(ctx); err != nil {
			log.Warn("MongoDB ping failed", zap.Error(err))
		} else {
			log.Info("MongoDB connected successfully", zap.String("database", repo.DatabaseName()))
		}
		cancel()
	}

	gw := gateway.NewGateway(cfg, log, store)
	gw.SetupRoutes()

	// Start gateway in goroutine
	gwErr := make(chan error, 1)
	go func() {
		if err := gw.Start(); err != nil {
			gwErr <- err
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info("Received shutdown signal")
	case err := <-gwErr:
		log.Error("Gateway error", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := gw.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}

	log.Info("Gateway stopped")
}
