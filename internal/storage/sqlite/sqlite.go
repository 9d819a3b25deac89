package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/lugondev/goatswap-cli/internal/config"
	"github.com/lugondev/goatswap-cli/internal/storage"
	"github.com/lugondev/goatswap-cli/internal/storage/sqlstore"
)

func init() {
	storage.RegisterFactory(storage.DatabaseTypeSQLite, func(ctx context.Context, cfg *config.DatabaseConfig) (storage.Repository, error) {
		return NewSQLiteRepository(ctx, &cfg.SQLite)
	})
}

// NewSQLiteRepository opens (or creates) the database file at cfg.Path.
// ":memory:" gives a private in-memory database.
func NewSQLiteRepository(ctx context.Context, cfg *config.SQLiteConfig) (*sqlstore.Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := cfg.Path
	if dsn != ":memory:" {
		dsn += "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer, and every connection to ":memory:" would be a new database
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqlstore.New(db, Dialect), nil
}
