package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"go-chi-compute/internal/buildinfo"
	"go-chi-compute/internal/config"
	"go-chi-compute/internal/observability"
	"go-chi-compute/internal/server"
)

func main() {

	ctx := context.Background()

	// Environment
	if err := loadDotEnv(); err != nil {
		panic(err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		panic(err)
	}

	// Logger
	if err := observability.InitLogger(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	info := buildinfo.Resolve(cfg.Service.Name, cfg.Service.Version, cfg.Service.Author)

	// Tracing, metrics and log export
	shutdowns, err := initTelemetry(ctx, cfg, info)
	defer func() {
		for i := len(shutdowns) - 1; i >= 0; i-- {
			if err := shutdowns[i](ctx); err != nil {
				observability.Logger.Warn("telemetry shutdown failed", zap.Error(err))
			}
		}
	}()
	if err != nil {
		panic(err)
	}

	// Engines and handlers
	services, err := initServices(cfg, info)
	if err != nil {
		panic(err)
	}

	// Router
	router := server.NewRouter(services)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.Addr),
			zap.String("service", info.Name),
			zap.String("version", info.Version),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(err)
		}
	}()

	waitForShutdown(srv, cfg.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, timeout time.Duration) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Error("graceful shutdown failed", zap.Error(err))
		return
	}

	observability.Logger.Info("server stopped")
}
