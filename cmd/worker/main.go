package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Harsh-BH/judgeworker/internal/blobstore"
	"github.com/Harsh-BH/judgeworker/internal/callback"
	"github.com/Harsh-BH/judgeworker/internal/config"
	"github.com/Harsh-BH/judgeworker/internal/evaluator"
	"github.com/Harsh-BH/judgeworker/internal/httpapi"
	"github.com/Harsh-BH/judgeworker/internal/language"
	"github.com/Harsh-BH/judgeworker/internal/supervisor"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("starting judgeworker")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	logger.Info("configuration loaded", zap.String("language", string(cfg.Execution.Language)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fetcher evaluator.BlobFetcher
	if cfg.Storage.Endpoint != "" {
		store, err := blobstore.New(ctx, blobstore.Config{
			Endpoint:        cfg.Storage.Endpoint,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			BucketName:      cfg.Storage.ContainerName,
			UseSSL:          cfg.Storage.UseSSL,
		}, logger)
		if err != nil {
			logger.Fatal("failed to connect to blob storage", zap.Error(err))
		}
		fetcher = store
	}

	sv := supervisor.New(logger)
	registry := language.NewRegistry(sv, logger)
	eval := evaluator.New(registry, fetcher, cfg.GlobalLimits, cfg.Execution.WorkingDirectory, logger)
	cb := callback.New(cfg.Orchestrator.Address, cfg.Orchestrator.ApiHeaderName, cfg.Orchestrator.ApiKey, logger)

	router := httpapi.NewRouter(&httpapi.RouterDeps{
		Runner:        eval,
		Callback:      cb,
		Language:      cfg.Execution.Language,
		MaxConcurrent: cfg.Execution.MaxConcurrent,
		ApiHeaderName: cfg.Server.ApiHeaderName,
		ApiKey:        cfg.Server.ApiKey,
		Logger:        logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down judgeworker")

	// 1. Cancel the root context (only the startup blob store connection
	//    used it).
	cancel()

	// 2. Stop accepting new batches: shut down the HTTP server first so
	//    POST /execute starts rejecting with connection errors.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", zap.Error(err))
	}

	// 3. Shutdown above only stops new connections. main does not wait
	//    for batches already accepted: when it returns the process exits,
	//    and any batch still running in its goroutine is abandoned
	//    without delivering its callback.
	logger.Info("judgeworker stopped")
}
