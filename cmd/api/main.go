// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/your-org/mattress-storefront/internal/config"
	"github.com/your-org/mattress-storefront/internal/domain/cart"
	"github.com/your-org/mattress-storefront/internal/domain/checkout"
	"github.com/your-org/mattress-storefront/internal/domain/product"
	"github.com/your-org/mattress-storefront/internal/infrastructure/database/memory"
	"github.com/your-org/mattress-storefront/internal/infrastructure/database/postgres"
	"github.com/your-org/mattress-storefront/internal/infrastructure/database/redis"
	"github.com/your-org/mattress-storefront/internal/interfaces/http"
	"github.com/your-org/mattress-storefront/internal/metrics"
	"github.com/your-org/mattress-storefront/internal/pkg/logger"
	"github.com/your-org/mattress-storefront/internal/pkg/pdf"
)

type flags struct {
	envFiles     []string
	port         string
	resetCatalog bool
}

func parseFlags() flags {
	var f flags
	pflag.StringArrayVar(&f.envFiles, "env-file", nil, "path to a .env file (repeatable)")
	pflag.StringVar(&f.port, "port", "", "HTTP port, overrides APP_PORT")
	pflag.BoolVar(&f.resetCatalog, "reset-catalog", false, "drop and recreate the catalog tables (postgres source only)")
	pflag.Parse()
	return f
}

func main() {
	f := parseFlags()

	cfg, err := config.Load(f.envFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if f.port != "" {
		cfg.Server.Port = f.port
	}

	log := logger.New(cfg.Logging)
	if err := run(cfg, f, log); err != nil {
		log.WithError(err).Fatal("Storefront stopped")
	}
}

func run(cfg *config.Config, f flags, log *logrus.Logger) error {
	log.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Infof("Starting %s", cfg.App.Name)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := http.Dependencies{
		Checks:   map[string]http.HealthChecker{},
		Gatherer: prometheus.DefaultGatherer,
		Receipts: pdf.NewService(cfg),
	}

	var repo cart.Repository
	switch cfg.Cart.Store {
	case config.CartStoreRedis:
		redisClient, err := redis.NewConnection(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		repo = redis.NewCartRepository(redisClient.GetClient(), cfg.Cart.TTL)
		deps.Redis = redisClient.GetClient()
		deps.Checks["redis"] = redisClient
	default:
		log.Warn("Carts are kept in memory and will not survive a restart")
		repo = memory.NewCartRepository()
	}

	catalog, closeCatalog, err := loadCatalog(ctx, cfg, f, log, deps.Checks)
	if err != nil {
		return err
	}
	defer closeCatalog()
	log.WithField("products", catalog.Len()).Info("Catalog loaded")

	carts, err := cart.NewService(catalog, repo, cfg, log, metrics.NewCart())
	if err != nil {
		return err
	}
	deps.Catalog = catalog
	deps.Carts = carts
	deps.Checkout = checkout.NewService(carts, cfg, log, metrics.NewCheckout())

	server, err := http.NewServer(cfg, log, deps)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Start()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		return err
	}
	log.Info("Server shutdown completed")
	return nil
}

// loadCatalog builds the catalog from the configured source. The returned
// func releases whatever the source opened.
func loadCatalog(ctx context.Context, cfg *config.Config, f flags, log *logrus.Logger, checks map[string]http.HealthChecker) (*product.Catalog, func(), error) {
	if cfg.Catalog.Source != config.CatalogSourcePostgres {
		if f.resetCatalog {
			return nil, nil, errors.New("--reset-catalog requires CATALOG_SOURCE=postgres")
		}
		return product.DefaultCatalog(), func() {}, nil
	}

	db, err := postgres.NewConnection(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Warn("Failed to close database")
		}
	}

	migration := postgres.NewMigration(db.GetDB(), log)
	if f.resetCatalog {
		if err := migration.DropAllTables(ctx); err != nil {
			closeDB()
			return nil, nil, err
		}
	}
	if err := migration.RunAutoMigrations(ctx); err != nil {
		closeDB()
		return nil, nil, err
	}
	if err := migration.CreateIndexes(ctx); err != nil {
		log.WithError(err).Warn("Index creation failed")
	}
	if cfg.Catalog.SeedOnStart || f.resetCatalog {
		if err := migration.SeedCatalog(ctx, product.DefaultProducts(), product.DefaultCategories()); err != nil {
			closeDB()
			return nil, nil, err
		}
	}

	catalog, err := postgres.NewCatalogRepository(db.GetDB()).LoadCatalog(ctx)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	checks["database"] = db
	return catalog, closeDB, nil
}
