package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lugondev/goatswap-cli/internal/app"
)

var orderBookOpts app.OrderBookOptions

var orderBookCmd = &cobra.Command{
	Use:   "orderbook <collection>",
	Short: "Show the pairs of a collection as an order book",
	Long: `Fetch every pair of an NFT collection, unfold them into individual orders
and print the asks and bids in SOL.

Example:
  goatswap orderbook GWkXNWEq3DkEK1x9dMDBUedyGzsDfYaM2c1YpRCyXfGh
  goatswap orderbook <creator> --verification creator --aggregate
  goatswap orderbook <collection> --save -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, needProgram|needStorage, func(ctx context.Context, a *app.App) error {
			return a.ShowCollectionPairsAsOrderBooks(ctx, args[0], orderBookOpts)
		})
	},
}

func init() {
	rootCmd.AddCommand(orderBookCmd)

	orderBookCmd.Flags().StringVar(&orderBookOpts.Verification, "verification", "", "select pairs by verification (collection, creator, mint_list)")
	orderBookCmd.Flags().BoolVar(&orderBookOpts.Aggregate, "aggregate", false, "group equal prices into levels")
	orderBookCmd.Flags().BoolVar(&orderBookOpts.Save, "save", false, "store the order book as a snapshot")
}
