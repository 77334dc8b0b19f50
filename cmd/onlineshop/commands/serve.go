package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/thumbtack/onlineshop/internal/api"
	"github.com/thumbtack/onlineshop/internal/core/ports"
	"github.com/thumbtack/onlineshop/internal/core/service"
	"github.com/thumbtack/onlineshop/internal/infrastructure/db/mongo"
	"github.com/thumbtack/onlineshop/internal/infrastructure/db/redis"
	"github.com/thumbtack/onlineshop/internal/infrastructure/db/sqlstore"
	"github.com/thumbtack/onlineshop/internal/infrastructure/db/sqlstore/migrations"
	"github.com/thumbtack/onlineshop/internal/infrastructure/http/handlers"
	"github.com/thumbtack/onlineshop/internal/infrastructure/queue"
	"github.com/thumbtack/onlineshop/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "Apply pending migrations before serving")
}

func serve(ctx context.Context) error {
	log := logger.Get()

	db, err := sqlstore.Connect(ctx, sqlstore.Config{
		URL:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		Log:          log,
	})
	if err != nil {
		return err
	}
	defer func() { _ = sqlstore.Close(db) }()

	if migrateOnStart {
		applied, err := migrations.Up(ctx, db)
		if err != nil {
			return err
		}
		log.Info().Strs("versions", applied).Msg("migrations applied")
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	mongoClient, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	journal := mongo.NewPurchaseJournal(mdb)
	if err := journal.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("journal indexes: %w", err)
	}

	dispatcher := queue.NewDispatcher(cfg.Journal.Workers, journal, log)
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	sessions := redis.NewSessionStore(rdb, cfg.Session.TTL, log)
	accounts := sqlstore.NewAccountRepository(db)
	categories := sqlstore.NewCategoryRepository(db)
	products := sqlstore.NewProductRepository(db)
	guard := service.NewGuard(sessions, accounts)

	settings := ports.Settings{
		MaxNameLength:     cfg.Limits.MaxNameLength,
		MinPasswordLength: cfg.Limits.MinPasswordLength,
	}

	e := api.NewRouter(api.Services{
		Accounts:   service.NewAccountService(guard, accounts, sessions, log),
		Categories: service.NewCategoryService(guard, categories, log),
		Products:   service.NewProductService(guard, products, categories, log),
		Clients: service.NewClientService(guard, accounts, products,
			sqlstore.NewBasketRepository(db), sqlstore.NewPurchaseRepository(db),
			dispatcher, journal, log),
		Server: service.NewServerService(settings, log, sqlstore.NewCleaner(db), sessions, journal),
	}, api.Options{
		SessionCookie: cfg.Session.Cookie,
		Debug:         !cfg.IsProduction(),
		Checks: map[string]handlers.Check{
			"postgres": func(ctx context.Context) error { return sqlstore.Ping(ctx, db) },
			"redis":    func(ctx context.Context) error { return redis.Ping(ctx, rdb) },
			"mongodb":  func(ctx context.Context) error { return mongo.Ping(ctx, mdb) },
		},
	}, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
