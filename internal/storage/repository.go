package storage

import (
	"context"
)

type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *OrderBookSnapshotModel) error
	// FindByID returns nil, nil when no snapshot has the id.
	FindByID(ctx context.Context, id string) (*OrderBookSnapshotModel, error)
	FindByCollection(ctx context.Context, collection string, limit int, offset int) ([]*OrderBookSnapshotModel, error)
	FindRecent(ctx context.Context, limit int) ([]*OrderBookSnapshotModel, error)
}

type ActivityRepository interface {
	Save(ctx context.Context, activity *ActivityModel) error
	// FindBySignature returns nil, nil when no activity has the signature.
	FindBySignature(ctx context.Context, signature string) (*ActivityModel, error)
	FindByWallet(ctx context.Context, wallet string, limit int, offset int) ([]*ActivityModel, error)
	FindRecent(ctx context.Context, limit int) ([]*ActivityModel, error)
}

type Repository interface {
	Snapshots() SnapshotRepository
	Activity() ActivityRepository
	Close() error
	Ping(ctx context.Context) error
}

// MigrationStatus is one schema migration and whether it has been applied.
type MigrationStatus struct {
	Version     int
	Description string
	Applied     bool
}

// Migrator manages the schema of a SQL backend.
type Migrator interface {
	Up(ctx context.Context) (int, error)
	Down(ctx context.Context, steps int) (int, error)
	Status(ctx context.Context) ([]MigrationStatus, error)
}

// Migratable is implemented by backends with versioned schemas.
type Migratable interface {
	Migrator() Migrator
}
