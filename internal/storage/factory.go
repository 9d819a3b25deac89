package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lugondev/goatswap-cli/internal/config"
)

// Factory opens a repository for one database type.
type Factory func(ctx context.Context, cfg *config.DatabaseConfig) (Repository, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[DatabaseType]Factory)
)

// RegisterFactory makes a backend available under dbType. Backends call it
// from init, so importing the backend package is enough to enable it.
func RegisterFactory(dbType DatabaseType, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	if factory == nil {
		panic("storage: RegisterFactory factory is nil")
	}
	factories[dbType] = factory
}

// RegisteredTypes returns the registered database types, sorted.
func RegisteredTypes() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	types := make([]string, 0, len(factories))
	for t := range factories {
		types = append(types, string(t))
	}
	sort.Strings(types)
	return types
}

// NewRepositoryFromConfig opens the backend selected by cfg.Type.
func NewRepositoryFromConfig(ctx context.Context, cfg *config.DatabaseConfig) (Repository, error) {
	factoriesMu.RLock()
	factory, ok := factories[DatabaseType(cfg.Type)]
	factoriesMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%s factory not registered - import _ \"github.com/lugondev/goatswap-cli/internal/storage/%s\"", cfg.Type, cfg.Type)
	}
	return factory(ctx, cfg)
}
