package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/visit-overstay/internal/config"
	"github.com/KasumiMercury/visit-overstay/internal/domain"
	"github.com/KasumiMercury/visit-overstay/internal/handler"
	"github.com/KasumiMercury/visit-overstay/internal/health"
	"github.com/KasumiMercury/visit-overstay/internal/infra/envoy"
	"github.com/KasumiMercury/visit-overstay/internal/infra/repository"
	"github.com/KasumiMercury/visit-overstay/internal/observability/logging"
	"github.com/KasumiMercury/visit-overstay/internal/observability/metrics"
	"github.com/KasumiMercury/visit-overstay/internal/observability/middleware"
	"github.com/KasumiMercury/visit-overstay/internal/service/duration"
	"github.com/KasumiMercury/visit-overstay/internal/service/notify"
	"github.com/KasumiMercury/visit-overstay/internal/service/settings"
	"github.com/KasumiMercury/visit-overstay/internal/service/threshold"
	"github.com/KasumiMercury/visit-overstay/internal/service/visit"
)

// Version is set via ldflags at build time
var Version = "dev"

const serviceModule = logging.Module("visit-overstay")

type ledger interface {
	domain.DispatchLedger
	health.Pinger
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	visitMetrics, err := metrics.NewVisitMetrics()
	if err != nil {
		slog.Error("failed to initialize visit metrics", slog.String("error", err.Error()))
		return 1
	}

	dispatchLedger, err := initLedger(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize dispatch ledger", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := dispatchLedger.Close(); err != nil {
			slog.Warn("failed to close dispatch ledger", slog.String("error", err.Error()))
		}
	}()

	thresholdStore, err := threshold.NewStore(domain.ThresholdSetting(cfg.Threshold.DefaultAllowedMinutes))
	if err != nil {
		slog.Error("invalid default allowed minutes", slog.String("error", err.Error()))
		return 1
	}

	envoyClient := envoy.NewClient(cfg.Envoy.BaseURL, cfg.Envoy.APIKey, cfg.Envoy.Timeout)

	interpreter := visit.NewInterpreter(thresholdStore, duration.NewCalculator(), visitMetrics)
	dispatcher := notify.NewDispatcher(dispatchLedger, envoyClient, cfg.Dispatch, visitMetrics)
	settingsService := settings.NewService(thresholdStore, visitMetrics)

	webhookHandler := handler.NewWebhookHandler(interpreter, dispatcher, cfg.WebhookMaxBodyBytes)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      serviceModule,
		TracerName:  "github.com/KasumiMercury/visit-overstay/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(Version, map[string]health.Pinger{
		"dispatch_ledger": dispatchLedger,
	})
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	handler.RegisterRoutes(r, webhookHandler, settingsHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Int("default_allowed_minutes", cfg.Threshold.DefaultAllowedMinutes),
			slog.String("dispatch_mode", string(cfg.Dispatch.Mode)),
			slog.Bool("redis_ledger", cfg.Redis.Enabled()),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		if err := dispatcher.Wait(shutdownCtx); err != nil {
			slog.Warn("pending note deliveries abandoned", slog.String("error", err.Error()))
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func initLedger(ctx context.Context, cfg *config.Config) (ledger, error) {
	if !cfg.Redis.Enabled() {
		slog.Warn("REDIS_ADDR not set, using in-process dispatch ledger")
		return repository.NewMemoryDispatchLedger(cfg.Dispatch.DedupTTL), nil
	}

	opts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	return repository.NewRedisDispatchLedger(redisClient, cfg.Dispatch.DedupTTL), nil
}
