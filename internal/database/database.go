package database

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// IsPostgres reports whether dsn points at PostgreSQL rather than a SQLite file.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Connect opens PostgreSQL for postgres:// URLs and SQLite (modernc, no cgo)
// for anything else, including "file:x?mode=memory&cache=shared" in tests.
func Connect(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger: logger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	if IsPostgres(dsn) {
		slog.Info("connecting to postgres")
		db, err := gorm.Open(postgres.Open(dsn), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
		if err := sqlDB.Ping(); err != nil {
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return db, nil
	}

	slog.Info("using sqlite", "dsn", dsn)
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		gcfg,
	)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer; a single connection also keeps shared
	// in-memory databases alive for the lifetime of the pool
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// AutoMigrate creates or updates tables for the given row models.
func AutoMigrate(db *gorm.DB, models ...any) error {
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("auto-migrate %T: %w", m, err)
		}
	}
	return nil
}

// SQLX exposes the gorm connection pool to sqlx for hand-written queries.
func SQLX(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	driver := "sqlite"
	if db.Dialector.Name() == "postgres" {
		driver = "pgx"
	}
	return sqlx.NewDb(sqlDB, driver), nil
}

// Migrator opens golang-migrate against a PostgreSQL database with SQL
// files from path (e.g. "file://migrations"). Callers must Close it.
func Migrator(path, dsn string) (*migrate.Migrate, error) {
	if !IsPostgres(dsn) {
		return nil, fmt.Errorf("sql migrations need a postgres DATABASE_URL")
	}
	return migrate.New(path, migrationURL(dsn))
}

// MigrateUp applies all pending migrations. It is a no-op when everything
// is applied.
func MigrateUp(path, dsn string) error {
	m, err := Migrator(path, dsn)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// the pgx/v5 migrate driver registers the pgx5 scheme
func migrationURL(dsn string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}
