package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lugondev/goatswap-cli/internal/app"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [collection]",
	Short: "List stored order book snapshots",
	Long:  `List the order book snapshots saved with --save, newest first. Requires database.enabled.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collection := ""
		if len(args) > 0 {
			collection = args[0]
		}
		return runApp(cmd, needStorage, func(ctx context.Context, a *app.App) error {
			return a.ShowHistory(ctx, collection, historyLimit)
		})
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity [wallet]",
	Short: "List recorded pair and swap transactions",
	Long:  `List the pair init and swap transactions recorded for a wallet, newest first. Requires database.enabled.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wallet := ""
		if len(args) > 0 {
			wallet = args[0]
		}
		return runApp(cmd, needStorage, func(ctx context.Context, a *app.App) error {
			return a.ShowActivity(ctx, wallet, historyLimit)
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(activityCmd)

	historyCmd.PersistentFlags().IntVar(&historyLimit, "limit", 20, "maximum rows to print")
}
