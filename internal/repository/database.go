package repository

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations
var migrations embed.FS

// Supported database types.
const (
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// Open connects to the database of the given type and runs its migrations.
// For SQLite dsn is a file path, for PostgreSQL a connection URL.
func Open(dbType, dsn string, logger *zap.Logger) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch dbType {
	case SQLite:
		db, err = sqlx.Connect("sqlite", dsn)
		if err == nil {
			// SQLite allows a single writer.
			db.SetMaxOpenConns(1)
		}
	case Postgres:
		db, err = sqlx.Connect("postgres", dsn)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dbType, err)
	}

	if err := Migrate(db, dbType, logger); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Successfully connected to the database", zap.String("type", dbType))
	return db, nil
}

// Migrate applies the embedded migrations for dbType.
func Migrate(db *sqlx.DB, dbType string, logger *zap.Logger) error {
	var (
		driver database.Driver
		err    error
	)
	switch dbType {
	case SQLite:
		driver, err = sqlite.WithInstance(db.DB, &sqlite.Config{})
	case Postgres:
		driver, err = postgres.WithInstance(db.DB, &postgres.Config{})
	default:
		return fmt.Errorf("unsupported database type %q", dbType)
	}
	if err != nil {
		return fmt.Errorf("couldn't get database instance for running migrations: %w", err)
	}

	source, err := iofs.New(migrations, "migrations/"+dbType)
	if err != nil {
		return fmt.Errorf("couldn't open migrations: %w", err)
	}

	// Closing m would also close db, which stays in use.
	m, err := migrate.NewWithInstance("iofs", source, dbType, driver)
	if err != nil {
		return fmt.Errorf("couldn't create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("couldn't run database migration: %w", err)
	}

	logger.Info("Database migration was run successfully", zap.String("type", dbType))
	return nil
}
