package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lugondev/goatswap-cli/internal/app"
)

var collectionsOpts app.CollectionsOptions

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List collections by pair count",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, needProgram|needStorage, func(ctx context.Context, a *app.App) error {
			return a.ListCollections(ctx, collectionsOpts)
		})
	},
}

func init() {
	rootCmd.AddCommand(collectionsCmd)

	collectionsCmd.Flags().IntVar(&collectionsOpts.Limit, "limit", 0, "print at most this many collections (0 for all)")
	collectionsCmd.Flags().BoolVar(&collectionsOpts.Save, "save", false, "snapshot the order book of every listed collection")
}
