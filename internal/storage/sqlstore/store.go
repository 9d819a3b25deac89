// Package sqlstore implements storage.Repository on database/sql. The mysql
// and sqlite backends share it and differ only in their Dialect.
package sqlstore

import (
	"context"
	"database/sql"

	"github.com/lugondev/goatswap-cli/internal/storage"
)

// Dialect holds what differs between SQL engines.
type Dialect struct {
	Name       string
	Migrations []Migration
}

type Store struct {
	db           *sql.DB
	dialect      Dialect
	snapshotRepo storage.SnapshotRepository
	activityRepo storage.ActivityRepository
}

// New wraps an open database. The schema is left as it is; run
// Migrator().Up to bring it current.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		db:           db,
		dialect:      dialect,
		snapshotRepo: &snapshotRepository{db: db},
		activityRepo: &activityRepository{db: db},
	}
}

func (s *Store) Snapshots() storage.SnapshotRepository {
	return s.snapshotRepo
}

func (s *Store) Activity() storage.ActivityRepository {
	return s.activityRepo
}

func (s *Store) Migrator() storage.Migrator {
	return NewMigrator(s.db, s.dialect.Migrations)
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
