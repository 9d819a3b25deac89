package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lugondev/goatswap-cli/internal/config"
	"github.com/lugondev/goatswap-cli/internal/storage"
)

func init() {
	storage.RegisterFactory(storage.DatabaseTypePostgres, func(ctx context.Context, cfg *config.DatabaseConfig) (storage.Repository, error) {
		return NewPostgresRepository(ctx, &cfg.Postgres)
	})
}

type PostgresRepository struct {
	pool         *pgxpool.Pool
	snapshotRepo storage.SnapshotRepository
	activityRepo storage.ActivityRepository
}

// ConnString builds the pgx connection URL for cfg.
func ConnString(cfg *config.PostgresConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Database,
	}
	if cfg.SSLMode != "" {
		u.RawQuery = "sslmode=" + url.QueryEscape(cfg.SSLMode)
	}
	return u.String()
}

func NewPostgresRepository(ctx context.Context, cfg *config.PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(ConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	}
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	if cfg.ConnMaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.ConnMaxLifetime) * time.Second
	}
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{
		pool:         pool,
		snapshotRepo: &postgresSnapshotRepository{pool: pool},
		activityRepo: &postgresActivityRepository{pool: pool},
	}, nil
}

func (r *PostgresRepository) Snapshots() storage.SnapshotRepository {
	return r.snapshotRepo
}

func (r *PostgresRepository) Activity() storage.ActivityRepository {
	return r.activityRepo
}

func (r *PostgresRepository) Migrator() storage.Migrator {
	return NewMigrator(r.pool)
}

func (r *PostgresRepository) Close() error {
	if r.pool != nil {
		r.pool.Close()
	}
	return nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
