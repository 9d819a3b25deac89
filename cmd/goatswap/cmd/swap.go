package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lugondev/goatswap-cli/internal/app"
)

var maxPrice string

var swapCmd = &cobra.Command{
	Use:   "swap <pair> <nft-mint>",
	Short: "Buy an NFT from a pair",
	Long: `Swap SOL for an NFT held by a pair, paying at most --max-price.

Example:
  goatswap swap <pair> <nft-mint> --max-price 1.6 --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		swapArgs := app.SwapArgs{Pair: args[0], NFTMint: args[1], MaxPrice: maxPrice}
		return runApp(cmd, needProgram|needSigner|needChain|needStorage, func(ctx context.Context, a *app.App) error {
			return a.SwapTokenForNFT(ctx, swapArgs, txOptions())
		})
	},
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().StringVar(&maxPrice, "max-price", "", "maximum SOL to pay including fees (required)")
	addTxFlags(swapCmd)

	if err := swapCmd.MarkFlagRequired("max-price"); err != nil {
		fmt.Fprintf(os.Stderr, "Error marking flag required: %v\n", err)
	}
}
