package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lugondev/goatswap-cli/internal/app"
)

var initPairArgs app.InitPairArgs

var pairCmd = &cobra.Command{
	Use:   "pair",
	Short: "Liquidity pair commands",
}

var pairInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a liquidity pair",
	Long: `Create a token, nft or trade pair for a collection.

Token pairs buy NFTs and need a --deposit. NFT pairs sell NFTs and need at
least one --nft-mint. Trade pairs do both and may charge --fee-bps.
Linear curves move the price by --delta SOL, exponential ones by --delta bps.

Example:
  goatswap pair init --collection <address> --kind token --curve linear \
    --spot-price 1.2 --delta 0.05 --deposit 5 --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, needProgram|needSigner|needChain|needStorage, func(ctx context.Context, a *app.App) error {
			return a.InitPair(ctx, initPairArgs, txOptions())
		})
	},
}

// txOptions reads the submission settings, flags already merged into config.
func txOptions() app.TxOptions {
	return app.TxOptions{
		DryRun:        cfg.Swap.DryRun,
		SkipPreflight: cfg.Swap.SkipPreflight,
	}
}

func addTxFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "simulate only, do not send")
	cmd.Flags().Bool("skip-preflight", false, "skip the RPC node's preflight check on send")
}

func init() {
	rootCmd.AddCommand(pairCmd)
	pairCmd.AddCommand(pairInitCmd)

	flags := pairInitCmd.Flags()
	flags.StringVar(&initPairArgs.Collection, "collection", "", "collection address (required)")
	flags.StringVar(&initPairArgs.Kind, "kind", "token", "pair kind (token, nft, trade)")
	flags.StringVar(&initPairArgs.Curve, "curve", "linear", "bonding curve (linear, exponential)")
	flags.StringVar(&initPairArgs.SpotPrice, "spot-price", "", "spot price in SOL (required)")
	flags.StringVar(&initPairArgs.Delta, "delta", "", "price delta, SOL for linear and bps for exponential curves")
	flags.StringVar(&initPairArgs.FeeBps, "fee-bps", "", "trade fee in basis points (trade pairs only)")
	flags.StringVar(&initPairArgs.Deposit, "deposit", "", "SOL deposited into token and trade pairs")
	flags.StringSliceVar(&initPairArgs.NFTMints, "nft-mint", nil, "NFT mint deposited into nft and trade pairs (repeatable)")
	addTxFlags(pairInitCmd)

	for _, name := range []string{"collection", "spot-price"} {
		if err := pairInitCmd.MarkFlagRequired(name); err != nil {
			fmt.Fprintf(os.Stderr, "Error marking flag required: %v\n", err)
		}
	}
}
