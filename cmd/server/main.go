package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/evanWh1te/cville-kitchen-website-sub000/docs"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/auth"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/config"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/db"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/handler"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/logger"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/metrics"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/model"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/ratelimit"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/repository"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/router"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/service"
)

// @title Cville Kitchen API
// @version 1.0
// @description Food resource directory, volunteer opportunities, contact intake and back-office administration.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	appLogger := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		fatal(appLogger, "database init failed", err)
	}
	if cfg.ResetDB {
		appLogger.Warn("RESET_DB=true detected, dropping all tables")
		db.Reset(gormDB)
	}
	if err := db.Migrate(gormDB); err != nil {
		fatal(appLogger, "migration failed", err)
	}

	// Auth components
	jwtService, err := auth.NewJWTService(cfg.JWTSecret)
	if err != nil {
		fatal(appLogger, "jwt init failed", err)
	}
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	auditRepo := repository.NewAuditRepository(gormDB)
	resourceRepo := repository.NewCatalogRepository[model.Resource](gormDB)
	volunteerRepo := repository.NewCatalogRepository[model.VolunteerOpportunity](gormDB)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, hasher)
	userService := service.NewUserService(userRepo, auditRepo, hasher)
	resourceService := service.NewResourceService(resourceRepo)
	volunteerService := service.NewVolunteerService(volunteerRepo)
	contactService := service.NewContactService(appLogger)

	if cfg.HasBootstrapAdmin() {
		created, err := authService.EnsureBootstrapAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			fatal(appLogger, "bootstrap admin failed", err)
		}
		if created {
			appLogger.Info("bootstrap admin created", slog.String("email", model.NormalizeEmail(cfg.AdminEmail)))
		}
	}

	contactStore := contactLimiterStore(ctx, cfg, appLogger)
	m := metrics.New("cville_kitchen")

	e := echo.New()
	router.Register(e, cfg, router.Dependencies{
		Logger:       appLogger,
		Metrics:      m,
		Tokens:       jwtService,
		Identity:     authService,
		ContactStore: contactStore,
		Auth:         handler.NewAuthHandler(authService, m, cfg.IsProduction()),
		Resources:    handler.NewCatalogHandler(resourceService, "Resource"),
		Volunteers:   handler.NewCatalogHandler(volunteerService, "Volunteer opportunity"),
		Users:        handler.NewUserHandler(userService),
		Contact:      handler.NewContactHandler(contactService, m),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	appLogger.Info("swagger documentation available", slog.String("url", swaggerURL(cfg)))

	go func() {
		addr := ":" + cfg.ServerPort
		appLogger.Info("api server listening", slog.String("addr", addr), slog.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("server run failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// contactLimiterStore prefers Redis so quotas hold across replicas; the
// in-process store takes over while Redis is unreachable.
func contactLimiterStore(ctx context.Context, cfg *config.Config, appLogger *slog.Logger) ratelimit.Store {
	memory := ratelimit.NewMemoryStore()
	if cfg.RedisAddr == "" {
		appLogger.Info("REDIS_ADDR not set, contact rate limit is per process")
		return memory
	}

	rdb := ratelimit.NewRedisClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		appLogger.Warn("redis unreachable at startup, falling back while it recovers",
			slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
	}
	return &ratelimit.Fallback{
		Primary:   ratelimit.NewRedisStore(rdb, ""),
		Secondary: memory,
		Logger:    appLogger,
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}

func fatal(l *slog.Logger, msg string, err error) {
	l.Error(msg, slog.String("error", err.Error()))
	os.Exit(1)
}
