package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/auth"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/config"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/db"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/logger"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/model"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/repository"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/seed"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/service"
)

func main() {
	file := flag.String("file", "", "seed document to load instead of the embedded catalog")
	flag.Parse()

	cfg := config.Load()
	appLogger := logger.New(cfg.Env, cfg.LogLevel)
	appLogger.Info("starting seed")

	catalog, err := loadCatalog(*file)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	appLogger.Info("database ready", slog.String("driver", cfg.DBDriver))

	ctx := context.Background()

	if cfg.HasBootstrapAdmin() {
		hasher := auth.NewPasswordHasher(cfg.BcryptCost)
		// Seeding never issues tokens.
		authService := service.NewAuthService(repository.NewUserRepository(gormDB), nil, hasher)
		created, err := authService.EnsureBootstrapAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			log.Fatalf("bootstrap admin: %v", err)
		}
		appLogger.Info("bootstrap admin", slog.Bool("created", created))
	}

	seeder := seed.NewSeeder(
		service.NewResourceService(repository.NewCatalogRepository[model.Resource](gormDB)),
		service.NewVolunteerService(repository.NewCatalogRepository[model.VolunteerOpportunity](gormDB)),
		appLogger,
	)
	resources, volunteers, err := seeder.Run(ctx, catalog)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	appLogger.Info("seed completed",
		slog.Int("resources_created", resources.Created),
		slog.Int("resources_updated", resources.Updated),
		slog.Int("volunteers_created", volunteers.Created),
		slog.Int("volunteers_updated", volunteers.Updated),
	)
}

func loadCatalog(path string) (*seed.Catalog, error) {
	if path == "" {
		return seed.DefaultCatalog()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seed.Parse(raw)
}
