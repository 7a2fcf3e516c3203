package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // Registers the pure Go "sqlite" driver.

	"github.com/asclub/club-api/internal/config"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the database described by conf, retrying with exponential
// backoff while the server is not reachable yet.
func Open(conf *config.PostgresConfig) (*gorm.DB, error) {
	switch conf.Driver {
	case DriverSQLite:
		return OpenSQLite(conf.Path, conf.LogStatements)
	case DriverPostgres, "":
		return OpenPostgres(conf)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Driver)
	}
}

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		conf.Host, conf.User, conf.Password, conf.DB, conf.Port, conf.SSLMode, conf.TimeZone)

	return openWithRetry(postgres.Open(dsn), conf.ConnectTries, conf.LogStatements)
}

func OpenPostgresWithURL(url string) (*gorm.DB, error) {
	return openWithRetry(postgres.Open(url), 5, false)
}

// OpenSQLite opens a sqlite database through the modernc driver. Use
// ":memory:" for a throwaway database.
func OpenSQLite(path string, logStatements bool) (*gorm.DB, error) {
	if path == "" {
		path = "club.db"
	}
	db, err := gorm.Open(sqlite.New(sqlite.Config{
		DSN:        path,
		DriverName: "sqlite",
	}), gormConfig(logStatements))
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB -> %w", err)
	}
	// sqlite serializes writers anyway, and ":memory:" databases live per connection.
	sqlDB.SetMaxOpenConns(1)

	if err = db.Exec("PRAGMA foreign_keys = ON;").Error; err != nil {
		return nil, fmt.Errorf("enable foreign keys -> %w", err)
	}

	return db, nil
}

func openWithRetry(dialector gorm.Dialector, tries uint64, logStatements bool) (*gorm.DB, error) {
	if tries == 0 {
		tries = 1
	}

	var db *gorm.DB
	operation := func() error {
		var err error
		db, err = gorm.Open(dialector, gormConfig(logStatements))
		if err != nil {
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return backoff.Permanent(err)
		}

		return sqlDB.Ping()
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), tries-1)
	notify := func(err error, wait time.Duration) {
		zap.L().Warn("database not reachable, retrying", zap.Error(err), zap.Duration("wait", wait))
	}
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	return db, nil
}

func gormConfig(logStatements bool) *gorm.Config {
	if !logStatements {
		return &gorm.Config{Logger: gormLogger.Default.LogMode(gormLogger.Silent)}
	}

	return &gorm.Config{
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		),
	}
}
