package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/config"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/logger"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/metrics"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/middleware"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/proxy"
)

// main runs the browser-facing proxy that re-issues /api/* to the internal service.
func main() {
	cfg := config.Load()
	appLogger := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(appLogger)

	m := metrics.New("cville_edge")
	p, err := proxy.New(cfg.InternalAPIURL, proxy.NewClient(proxy.DefaultTimeout), m, appLogger)
	if err != nil {
		log.Fatalf("proxy init: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	// Browsers talk to the edge directly; forwarded headers from them are not trusted.
	e.IPExtractor = echo.ExtractIPDirect()
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(appLogger))
	e.Use(echomw.Recover())
	e.Use(m.Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.Any("/api/*", p.Forward)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.EdgePort
		appLogger.Info("edge proxy listening", slog.String("addr", addr), slog.String("upstream", cfg.InternalAPIURL))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("edge run failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}
