package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/riskibarqy/courtside/internal/app"
	"github.com/riskibarqy/courtside/internal/config"
	"github.com/riskibarqy/courtside/internal/observability"
	"github.com/riskibarqy/courtside/internal/platform/logging"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat).With(
		"service", cfg.ServiceName,
		"team", cfg.Team.TriCode,
	)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	stopProfiling, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	if a.FrameAPI != nil {
		go func() {
			logger.Info("frame api starting", "addr", cfg.FrameAPIAddr)
			if err := a.FrameAPI.ListenAndServe(cfg.FrameAPIAddr); err != nil {
				logger.Error("frame api failed", "error", err)
				stop()
			}
		}()
	}

	if err := a.Runner.Start(ctx); err != nil {
		logger.Error("start poll runner", "error", err)
		os.Exit(1)
	}
	logger.Info("courtside started",
		"team", cfg.Team.FullName(),
		"poll_interval", cfg.PollInterval.String(),
		"sinks", cfg.ArtifactSinks,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.Runner.Stop(); err != nil {
		logger.Error("stop poll runner", "error", err)
	}
	if a.FrameAPI != nil {
		if err := a.FrameAPI.Shutdown(shutdownCtx); err != nil {
			logger.Error("frame api shutdown", "error", err)
		}
	}
	if err := a.Close(); err != nil {
		logger.Error("close app", "error", err)
	}
	if err := stopProfiling(); err != nil {
		logger.Error("stop pyroscope", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("shutdown uptrace", "error", err)
	}

	logger.Info("courtside stopped")
}
