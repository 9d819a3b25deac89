package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lugondev/goatswap-cli/internal/app"
)

var rollbackSteps int

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database schema commands",
	Long:  `Inspect and manage the schema of the snapshot database (postgres, mysql, sqlite).`,
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, needStorage|needSchema, func(ctx context.Context, a *app.App) error {
			return a.MigrationStatus(ctx)
		})
	},
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, needStorage|needSchema, func(ctx context.Context, a *app.App) error {
			return a.Migrate(ctx)
		})
	},
}

var dbRollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Revert the latest migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, needStorage|needSchema, func(ctx context.Context, a *app.App) error {
			return a.Rollback(ctx, rollbackSteps)
		})
	},
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbStatusCmd)
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbRollbackCmd)

	dbRollbackCmd.Flags().IntVar(&rollbackSteps, "steps", 1, "number of migrations to revert")
}
