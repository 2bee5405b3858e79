// Package db opens the gorm connection and owns schema migration.
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "bookmark_backend/internal/feature/auth/domain/entity"
	bookmarkentity "bookmark_backend/internal/feature/bookmark/domain/entity"
)

// retryInterval is the pause between connection attempts in ConnectWithRetry.
const retryInterval = 3 * time.Second

// pgUniqueViolation is the PostgreSQL SQLSTATE for a unique constraint violation.
const pgUniqueViolation = "23505"

// Config holds the PostgreSQL connection settings.
type Config struct {
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env:"DB_NAME" env-default:"bookmarks"`
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSLMODE" env-default:"disable"`

	// InstanceName is a Cloud SQL instance connection name. When set the
	// connection goes through the /cloudsql unix socket and Host/Port are ignored.
	InstanceName string `yaml:"instance_name" env:"INSTANCE_CONNECTION_NAME"`

	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"DB_CONNECT_TIMEOUT" env-default:"60s"`
	RunMigrations  bool          `yaml:"run_migrations" env:"RUN_MIGRATIONS" env-default:"false"`
}

// LoadConfigFromEnv reads Config from the environment, applying defaults.
func LoadConfigFromEnv() Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Warn("db config from env incomplete, using defaults", "error", err)
	}
	return cfg
}

// BuildDSN returns the PostgreSQL keyword/value connection string for cfg.
func BuildDSN(cfg Config) string {
	host, port := cfg.Host, cfg.Port
	if cfg.InstanceName != "" {
		host = "/cloudsql/" + cfg.InstanceName
		port = ""
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s", host, cfg.User, cfg.Password, cfg.Name)
	if port != "" {
		dsn += " port=" + port
	}
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return dsn + " sslmode=" + sslMode + " TimeZone=UTC"
}

// Opener opens a gorm connection for a DSN. It is swapped out in tests.
type Opener func(dsn string) (*gorm.DB, error)

// PostgresOpener opens dsn with the postgres driver and translated errors.
func PostgresOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// ConnectWithRetry calls open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		gdb, err := open(dsn)
		if err == nil {
			return gdb, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// OpenDB connects to PostgreSQL and runs migrations when cfg.RunMigrations is set.
func OpenDB(cfg Config) (*gorm.DB, error) {
	gdb, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, PostgresOpener)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := Migrate(gdb); err != nil {
			return nil, err
		}
		slog.Info("database migrated")
	}
	return gdb, nil
}

// Migrate creates or updates the users and bookmarks tables.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&authentity.User{},
		&bookmarkentity.Bookmark{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique-key violation, either as
// translated by gorm or as a raw PostgreSQL error.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
