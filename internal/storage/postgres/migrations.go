package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lugondev/goatswap-cli/internal/storage"
)

type Migration struct {
	Version     int
	Description string
	Up          string
	Down        string
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Order book snapshots",
		Up: `
		CREATE TABLE IF NOT EXISTS order_book_snapshots (
			id UUID PRIMARY KEY,
			cluster TEXT NOT NULL,
			collection TEXT NOT NULL,
			source TEXT NOT NULL,
			pair_count INT NOT NULL,
			asks JSONB NOT NULL,
			bids JSONB NOT NULL,
			best_ask BIGINT,
			best_bid BIGINT,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_collection ON order_book_snapshots(collection, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON order_book_snapshots(created_at DESC);
		`,
		Down: `
		DROP TABLE IF EXISTS order_book_snapshots;
		`,
	},
	{
		Version:     2,
		Description: "Transaction activity",
		Up: `
		CREATE TABLE IF NOT EXISTS activity (
			id UUID PRIMARY KEY,
			kind TEXT NOT NULL,
			cluster TEXT NOT NULL,
			signature TEXT UNIQUE NOT NULL,
			pair TEXT NOT NULL,
			collection TEXT NOT NULL,
			wallet TEXT NOT NULL,
			price BIGINT NOT NULL,
			simulated BOOLEAN NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_activity_wallet ON activity(wallet, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_activity_created_at ON activity(created_at DESC);
		`,
		Down: `
		DROP TABLE IF EXISTS activity;
		`,
	},
}

type Migrator struct {
	pool *pgxpool.Pool
}

func NewMigrator(pool *pgxpool.Pool) *Migrator {
	return &Migrator{pool: pool}
}

func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INT PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
	`
	_, err := m.pool.Exec(ctx, query)
	return err
}

func (m *Migrator) getCurrentVersion(ctx context.Context) (int, error) {
	var version int
	err := m.pool.QueryRow(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.createMigrationsTable(ctx); err != nil {
		return 0, fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	applied := 0
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		if _, err := tx.Exec(ctx, migration.Up); err != nil {
			return 0, fmt.Errorf("failed to apply migration %d: %w", migration.Version, err)
		}

		if _, err := tx.Exec(ctx,
			"INSERT INTO schema_migrations (version, description) VALUES ($1, $2)",
			migration.Version, migration.Description,
		); err != nil {
			return 0, fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		applied++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit migrations: %w", err)
	}

	if applied > 0 {
		slog.Debug("applied migrations", "count", applied)
	}

	return applied, nil
}

func (m *Migrator) Down(ctx context.Context, steps int) (int, error) {
	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}

	if currentVersion == 0 {
		return 0, fmt.Errorf("no migrations to rollback")
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rolledBack := 0
	for i := len(migrations) - 1; i >= 0 && rolledBack < steps; i-- {
		migration := migrations[i]
		if migration.Version > currentVersion {
			continue
		}

		if _, err := tx.Exec(ctx, migration.Down); err != nil {
			return 0, fmt.Errorf("failed to rollback migration %d: %w", migration.Version, err)
		}

		if _, err := tx.Exec(ctx,
			"DELETE FROM schema_migrations WHERE version = $1",
			migration.Version,
		); err != nil {
			return 0, fmt.Errorf("failed to remove migration record %d: %w", migration.Version, err)
		}

		rolledBack++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit rollback: %w", err)
	}

	return rolledBack, nil
}

func (m *Migrator) Status(ctx context.Context) ([]storage.MigrationStatus, error) {
	if err := m.createMigrationsTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current version: %w", err)
	}

	statuses := make([]storage.MigrationStatus, 0, len(migrations))
	for _, migration := range migrations {
		statuses = append(statuses, storage.MigrationStatus{
			Version:     migration.Version,
			Description: migration.Description,
			Applied:     migration.Version <= currentVersion,
		})
	}
	return statuses, nil
}
