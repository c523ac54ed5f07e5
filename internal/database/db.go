package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/mueblesstgo-roster/internal/config"
	"github.com/rs/zerolog"
)

// RosterTable is the relation the employee store reads from
const RosterTable = "empleados"

const pingTimeout = 5 * time.Second

// ErrRosterMissing is returned when the server is reachable but the roster
// table has not been migrated yet
var ErrRosterMissing = errors.New("roster table " + RosterTable + " does not exist")

// DB is the roster database handle
type DB struct {
	*sql.DB
	log zerolog.Logger
}

// New opens the roster database and waits for the server to answer a ping.
// The pool is closed again if it never does.
func New(cfg *config.DatabaseConfig, log zerolog.Logger) (*DB, error) {
	pool, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open roster database: %w", err)
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.MaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database %s at %s:%s: %w", cfg.Name, cfg.Host, cfg.Port, err)
	}

	db := &DB{
		DB:  pool,
		log: log.With().Str("component", "database").Str("table", RosterTable).Logger(),
	}
	db.log.Info().
		Str("host", cfg.Host).
		Str("database", cfg.Name).
		Msg("Roster database connected")

	return db, nil
}

// RunMigrations brings the roster schema up to date and returns the applied
// schema version (0 when the source holds no migrations)
func (db *DB) RunMigrations(migrationsPath string) (uint, error) {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return 0, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return 0, fmt.Errorf("failed to load roster migrations from %s: %w", migrationsPath, err)
	}

	err = m.Up()
	upToDate := errors.Is(err, migrate.ErrNoChange)
	if err != nil && !upToDate {
		return 0, fmt.Errorf("failed to migrate roster schema: %w", err)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read roster schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("roster schema version %d is dirty", version)
	}

	db.log.Info().
		Uint("version", version).
		Bool("up_to_date", upToDate).
		Msg("Roster schema ready")

	return version, nil
}

// HealthCheck pings the server and confirms the roster table exists
func (db *DB) HealthCheck(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("roster database unreachable: %w", err)
	}

	var present bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", RosterTable).Scan(&present); err != nil {
		return fmt.Errorf("failed to look up roster table: %w", err)
	}
	if !present {
		return ErrRosterMissing
	}
	return nil
}
