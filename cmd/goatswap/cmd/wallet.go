package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lugondev/goatswap-cli/internal/app"
)

var forceNewWallet bool

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Wallet management commands",
	Long:  `Commands for managing Solana wallets including generation, balance checks and devnet airdrops.`,
}

var walletNewCmd = &cobra.Command{
	Use:   "new <path>",
	Short: "Generate a new wallet",
	Long:  `Generate a new Solana keypair and save it in Solana CLI format.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, 0, func(ctx context.Context, a *app.App) error {
			return a.WalletNew(args[0], forceNewWallet)
		})
	},
}

var walletAddressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the configured wallet address",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, 0, func(ctx context.Context, a *app.App) error {
			return a.WalletAddress()
		})
	},
}

var walletBalanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Check wallet balance",
	Long:  `Check the SOL balance of an address, or of the configured wallet.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address := ""
		if len(args) > 0 {
			address = args[0]
		}
		return runApp(cmd, needChain, func(ctx context.Context, a *app.App) error {
			return a.WalletBalance(ctx, address)
		})
	},
}

var walletAirdropCmd = &cobra.Command{
	Use:   "airdrop [amount]",
	Short: "Request a devnet airdrop",
	Long:  `Request SOL for the configured wallet (default 1 SOL). Devnet only.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount := "1"
		if len(args) > 0 {
			amount = args[0]
		}
		return runApp(cmd, needChain, func(ctx context.Context, a *app.App) error {
			return a.WalletAirdrop(ctx, amount)
		})
	},
}

func init() {
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(walletNewCmd)
	walletCmd.AddCommand(walletAddressCmd)
	walletCmd.AddCommand(walletBalanceCmd)
	walletCmd.AddCommand(walletAirdropCmd)

	walletNewCmd.Flags().BoolVar(&forceNewWallet, "force", false, "overwrite an existing keypair file")
}
