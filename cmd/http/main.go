package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"fsanano/garden-shop/internal/config"
	"fsanano/garden-shop/internal/handler"
	"fsanano/garden-shop/internal/idempotency"
	"fsanano/garden-shop/internal/logger"
	"fsanano/garden-shop/internal/metrics"
	"fsanano/garden-shop/internal/repository"
	"fsanano/garden-shop/internal/service"
	"fsanano/garden-shop/migrations"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("server exiting")
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Setup database
	if cfg.MigrateOnStart {
		if err := migrate(cfg.DatabaseURL); err != nil {
			return err
		}
		log.Info("migrations applied")
	}

	pool, err := repository.Connect(ctx, repository.PoolConfig{
		URL:          cfg.DatabaseURL,
		MaxConns:     cfg.DatabaseMaxConns,
		ConnectRetry: cfg.ConnectRetry,
	}, log)
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info("connected to database")

	store, err := newIdempotencyStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	// 3. Setup logic
	db := repository.NewDatabase(pool, repository.WithReadRetry(cfg.ReadRetryMaxElapsed))
	users := repository.NewUserRepository(db)
	items := repository.NewItemRepository(db)
	holdings := repository.NewHoldingRepository(db)
	plants := repository.NewPlantRepository(db)

	h := handler.NewHandler(handler.Deps{
		Users:  service.NewUserService(users, service.NewBcryptHasher(0)),
		Items:  service.NewItemService(items),
		Plants: service.NewPlantService(plants),
		Purchases: service.NewPurchaseService(db, users, items, holdings, service.PurchaseConfig{
			TrustClientTotal: cfg.PurchaseTrustClientTotal,
			Timeout:          cfg.PurchaseTimeout,
		}, log),
		DB:             pool,
		Idempotency:    store,
		IdempotencyTTL: cfg.IdempotencyTTL,
		Metrics:        metrics.New(),
		Log:            log,
	})

	// 4. Setup server
	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// 5. Run server with graceful shutdown
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("port", cfg.ServerPort).Info("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func newIdempotencyStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (idempotency.Store, error) {
	if cfg.Redis.Addr == "" {
		log.Info("idempotency keys kept in memory")
		return idempotency.NewMemoryStore(0), nil
	}

	store, err := idempotency.NewRedisStore(ctx, idempotency.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}
	log.WithField("addr", cfg.Redis.Addr).Info("idempotency keys kept in redis")
	return store, nil
}

func migrate(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open database for migrations: %w", err)
	}
	defer db.Close()

	return migrations.Up(db)
}
