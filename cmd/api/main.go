package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-service/internal/api/http"
	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/cache"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/storage"
	pgstore "github.com/spec-kit/helpdesk-service/internal/storage/postgres"
	sqlitestore "github.com/spec-kit/helpdesk-service/internal/storage/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}
	defer store.Close() //nolint:errcheck

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	clock := service.Clock(time.Now)

	ticketService := service.NewTicketService(store, clock)
	commentService := service.NewCommentService(store, clock)

	// Leave the cache as a nil interface when Redis is disabled; a typed nil
	// would slip past the service's nil check.
	var statsCache service.CountsCache
	if sc := cache.NewStatsCache(redis.ClientHandle(), cfg.Stats.CacheTTL()); sc != nil {
		statsCache = sc
	}
	statsService := service.NewStatsService(store, statsCache)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store, redis),
		Tickets:  handlers.NewTicketsHandler(ticketService, clock),
		Comments: handlers.NewCommentsHandler(commentService),
		Stats:    handlers.NewStatsHandler(statsService, clock),
		Metrics:  metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// openStore builds the configured storage backend: a pgx pool with SQL-file
// migrations, or the embedded SQLite database with schema auto-migration.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		return pgstore.NewStore(pg.PoolHandle()), nil
	default:
		db, err := persistence.OpenSQLite(cfg.SQLite, logger)
		if err != nil {
			return nil, err
		}
		if err := sqlitestore.AutoMigrate(db); err != nil {
			return nil, err
		}
		return sqlitestore.NewStore(db), nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
