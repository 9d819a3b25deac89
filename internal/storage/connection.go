package storage

import (
	"context"
	"fmt"

	"github.com/lugondev/goatswap-cli/internal/config"
)

type DatabaseType string

const (
	DatabaseTypeMongoDB  DatabaseType = "mongodb"
	DatabaseTypePostgres DatabaseType = "postgres"
	DatabaseTypeMySQL    DatabaseType = "mysql"
	DatabaseTypeSQLite   DatabaseType = "sqlite"
)

type ConnectionManager struct {
	config      *config.DatabaseConfig
	repository  Repository
	autoMigrate bool
}

// ConnectOption configures a ConnectionManager.
type ConnectOption func(*ConnectionManager)

// WithAutoMigrate applies pending schema migrations right after connecting.
func WithAutoMigrate(enabled bool) ConnectOption {
	return func(cm *ConnectionManager) {
		cm.autoMigrate = enabled
	}
}

func NewConnectionManager(cfg *config.DatabaseConfig, opts ...ConnectOption) (*ConnectionManager, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("database is not enabled in configuration")
	}

	cm := &ConnectionManager{
		config: cfg,
	}
	for _, opt := range opts {
		opt(cm)
	}
	return cm, nil
}

func (cm *ConnectionManager) Connect(ctx context.Context) (Repository, error) {
	if cm.repository != nil {
		return cm.repository, nil
	}

	switch DatabaseType(cm.config.Type) {
	case DatabaseTypeMongoDB, DatabaseTypePostgres, DatabaseTypeMySQL, DatabaseTypeSQLite:
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cm.config.Type)
	}

	repo, err := NewRepositoryFromConfig(ctx, cm.config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := repo.Ping(ctx); err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if m, ok := repo.(Migratable); ok && cm.autoMigrate {
		if _, err := m.Migrator().Up(ctx); err != nil {
			repo.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	cm.repository = repo
	return repo, nil
}

func (cm *ConnectionManager) GetRepository() (Repository, error) {
	if cm.repository == nil {
		return nil, fmt.Errorf("database connection not established")
	}
	return cm.repository, nil
}

// Migrator returns the schema migrator of the connected backend.
func (cm *ConnectionManager) Migrator() (Migrator, error) {
	repo, err := cm.GetRepository()
	if err != nil {
		return nil, err
	}
	m, ok := repo.(Migratable)
	if !ok {
		return nil, fmt.Errorf("%s has no schema migrations", cm.config.Type)
	}
	return m.Migrator(), nil
}

func (cm *ConnectionManager) Close() error {
	if cm.repository != nil {
		return cm.repository.Close()
	}
	return nil
}
