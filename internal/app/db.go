package app

import (
	"context"
	"fmt"
	"io"

	"github.com/lugondev/goatswap-cli/internal/errors"
	"github.com/lugondev/goatswap-cli/internal/storage"
)

type MigrationView struct {
	Version     int    `json:"version" yaml:"version"`
	Description string `json:"description" yaml:"description"`
	Applied     bool   `json:"applied" yaml:"applied"`
}

func (a *App) migrator(command string) (storage.Migrator, error) {
	if a.repo == nil {
		return nil, errors.StorageDisabled(command)
	}
	if a.schema == nil {
		return nil, errors.NotSupported(command+" on this database", nil)
	}
	return a.schema, nil
}

// MigrationStatus prints every schema migration and whether it is applied.
func (a *App) MigrationStatus(ctx context.Context) error {
	m, err := a.migrator("db status")
	if err != nil {
		return err
	}

	statuses, err := m.Status(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to read migration status")
	}

	views := make([]MigrationView, 0, len(statuses))
	for _, s := range statuses {
		views = append(views, MigrationView{Version: s.Version, Description: s.Description, Applied: s.Applied})
	}

	return a.render(views, func(w io.Writer) error {
		for _, v := range views {
			state := "pending"
			if v.Applied {
				state = "applied"
			}
			if _, err := fmt.Fprintf(w, "%03d %-8s %s\n", v.Version, state, v.Description); err != nil {
				return err
			}
		}
		return nil
	})
}

// Migrate applies pending migrations.
func (a *App) Migrate(ctx context.Context) error {
	m, err := a.migrator("db migrate")
	if err != nil {
		return err
	}

	applied, err := m.Up(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}
	a.GetLogger().Info("applied migrations", "count", applied)

	return a.render(map[string]int{"applied": applied}, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "applied %d migrations\n", applied)
		return err
	})
}

// Rollback reverts the last steps migrations.
func (a *App) Rollback(ctx context.Context, steps int) error {
	if steps <= 0 {
		return errors.InvalidArgument("steps", "must be positive")
	}
	m, err := a.migrator("db rollback")
	if err != nil {
		return err
	}

	reverted, err := m.Down(ctx, steps)
	if err != nil {
		return errors.Wrap(err, "failed to roll back migrations")
	}
	a.GetLogger().Info("rolled back migrations", "count", reverted)

	return a.render(map[string]int{"reverted": reverted}, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "reverted %d migrations\n", reverted)
		return err
	})
}
