package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/visit-overstay/internal/observability/logging"
	"github.com/KasumiMercury/visit-overstay/loadtest/internal/stub"
)

func main() {
	os.Exit(run())
}

func run() int {
	slog.SetDefault(logging.NewLogger(logging.Config{
		Service:       logging.ServiceInfo{Name: "envoy-stub", Version: "dev"},
		Environment:   logging.EnvDev,
		Level:         slog.LevelInfo,
		DefaultModule: logging.Module("envoy-stub"),
	}))

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}

	failStatus := 0
	if v := os.Getenv("STUB_FAIL_STATUS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 100 || parsed > 599 {
			slog.Error("invalid STUB_FAIL_STATUS", slog.String("value", v))
			return 1
		}
		failStatus = parsed
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	stub.NewHandler(stub.NewNoteStorage(), os.Getenv("STUB_API_KEY"), failStatus).RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting envoy stub", slog.String("port", port), slog.Int("fail_status", failStatus))
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown stub", slog.String("error", err.Error()))
			return 1
		}
		return 0
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("stub exited with error", slog.String("error", err.Error()))
		return 1
	}
}
