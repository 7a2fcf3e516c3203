package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/asclub/club-api/internal/api"
	"github.com/asclub/club-api/internal/cache"
	"github.com/asclub/club-api/internal/config"
	"github.com/asclub/club-api/internal/db"
	"github.com/asclub/club-api/internal/logger"
	"github.com/asclub/club-api/internal/pkg/mailer"
	"github.com/asclub/club-api/internal/pkg/payment"
	"github.com/asclub/club-api/internal/repository/dao"
	"github.com/asclub/club-api/internal/scheduler"
	"github.com/asclub/club-api/internal/storage"
)

const (
	configPath      = "./cmd/app/config.yml"
	shutdownTimeout = 10 * time.Second
)

func Start() error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment, conf.API.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer zap.L().Sync() //nolint:errcheck

	config.Watch(configPath, func(updated *config.AppConfig, e fsnotify.Event) {
		if updated.API == nil {
			return
		}
		if err := logger.SetLevel(updated.API.LogLevel); err != nil {
			zap.L().Warn("ignoring config change", zap.String("file", e.Name), zap.Error(err))
			return
		}
		zap.L().Info("config reloaded", zap.String("file", e.Name), zap.String("log_level", updated.API.LogLevel))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := openDatabase(conf.Postgres)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if conf.Postgres.AutoMigrate {
		if err = dao.InitTables(database); err != nil {
			return fmt.Errorf("failed to migrate database -> %w", err)
		}
	}

	deps, err := buildDeps(ctx, conf)
	if err != nil {
		return err
	}

	s := api.NewServer(conf, database, deps)

	if conf.Admin.Email != "" && conf.Admin.Password != "" {
		if _, err = s.Auth.Bootstrap(ctx, conf.Admin.Email, conf.Admin.Password, conf.Admin.Name); err != nil {
			return fmt.Errorf("failed to create administrator -> %w", err)
		}
	}

	go s.Hub.Run(ctx)
	go scheduler.NewReactionCleanup(s.Reactions, conf.Reactions.CleanupInterval).Run(ctx)

	srv := &http.Server{
		Addr:              ":" + conf.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}

	return nil
}

func openDatabase(conf *config.PostgresConfig) (*gorm.DB, error) {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return db.OpenPostgresWithURL(dbURL)
	}

	return db.Open(conf)
}

// buildDeps wires the optional backends. Redis, SMTP and Stripe are only used
// when configured.
func buildDeps(ctx context.Context, conf *config.AppConfig) (api.Deps, error) {
	bucket, err := storage.NewLocalBucket(conf.Storage.Dir, conf.Storage.PublicURL)
	if err != nil {
		return api.Deps{}, fmt.Errorf("failed to initialize storage -> %w", err)
	}

	deps := api.Deps{
		Bucket:  bucket,
		Revoker: cache.NewMemoryRevocations(),
	}

	if conf.Redis.Enabled {
		client, err := cache.Open(ctx, conf.Redis, conf.Postgres.ConnectTries)
		if err != nil {
			return api.Deps{}, fmt.Errorf("failed to initialize redis -> %w", err)
		}
		deps.Revoker = cache.NewRevocations(client)
		deps.CountCache = cache.NewReactionCounts(client, conf.Redis.CountTTL)
	} else {
		zap.L().Warn("redis disabled, revoked tokens are kept in memory")
	}

	if conf.SMTP.Enabled {
		deps.Mailer = mailer.New(conf.SMTP, conf.API.PublicSiteURL)
	}

	if conf.Stripe.SecretKey != "" {
		deps.Gateway = payment.NewStripeGateway(conf.Stripe.SecretKey)
	}

	return deps, nil
}
