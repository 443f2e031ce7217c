package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	adapterHTTP "github.com/comitanigiacomo/kanso-routines/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-routines/internal/app"
	"github.com/comitanigiacomo/kanso-routines/internal/config"
	"github.com/comitanigiacomo/kanso-routines/internal/core/services"
	"github.com/comitanigiacomo/kanso-routines/internal/logger"
)

const defaultRateLimit = 120

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{Debug: cfg.Debug, Dir: cfg.DataDir, Stderr: true}); err != nil {
		logger.Fatal("Failed to initialize logger", "err", err)
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg); err != nil {
		logger.Fatal("Server exited with error", "err", err)
	}
}

func run(cfg config.Config) error {
	startTime := time.Now()

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx := context.Background()

	storage, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	session, err := services.OpenSession(ctx, services.NewTrackingStore(time.Now, location), storage.Repo)
	if err != nil {
		return err
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		Store:     session.Store,
		Analytics: session.Analytics,
		DB:        storage.DB,
		Redis:     storage.Redis,
		RateLimit: defaultRateLimit,
		StartTime: startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Kanso running", "addr", "http://localhost:"+cfg.Port, "storage", cfg.StorageDriver, "timezone", location.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Stop signal received. Shutting down...")
	case err := <-serverErr:
		logger.Error("Critical server error", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", "err", err)
	}

	if err := session.Close(shutdownCtx); err != nil {
		return err
	}

	logger.Info("Server stopped gracefully.")
	return nil
}
