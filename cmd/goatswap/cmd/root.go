package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lugondev/goatswap-cli/internal/common"
	"github.com/lugondev/goatswap-cli/internal/config"

	_ "github.com/lugondev/goatswap-cli/internal/storage/mongo"
	_ "github.com/lugondev/goatswap-cli/internal/storage/mysql"
	_ "github.com/lugondev/goatswap-cli/internal/storage/postgres"
	_ "github.com/lugondev/goatswap-cli/internal/storage/sqlite"
	_ "github.com/lugondev/goatswap-cli/pkg/goatswap/fixture"
)

var (
	cfgFile      string
	driverParams map[string]string

	cfg    *config.Config
	logger *slog.Logger
)

// flagKeys maps config keys to the flags that override them. Flags missing
// from the running command are skipped.
var flagKeys = map[string]string{
	"solana.rpc":          "rpc",
	"solana.cluster":      "cluster",
	"wallet.keypair":      "keypair",
	"goatswap.driver":     "driver",
	"output.format":       "output",
	"log.level":           "log-level",
	"swap.dry_run":        "dry-run",
	"swap.skip_preflight": "skip-preflight",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "goatswap",
	Short: "Goatswap CLI - NFT liquidity pools on Solana",
	Long: `Goatswap is a demonstration client for the Goatswap NFT/token liquidity
pool program on Solana.

It provides commands for:
- Printing the pairs of a collection as an order book
- Listing collections by pair count
- Creating liquidity pairs
- Buying NFTs from pairs
- Wallet management`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .goatswap.yaml in . or $HOME)")
	rootCmd.PersistentFlags().String("rpc", "", "Solana RPC endpoint (defaults to the cluster endpoint)")
	rootCmd.PersistentFlags().String("cluster", "mainnet", "Solana cluster (mainnet, devnet)")
	rootCmd.PersistentFlags().String("keypair", "", "path to a Solana CLI keypair file")
	rootCmd.PersistentFlags().String("driver", "fixture", "goatswap SDK driver")
	rootCmd.PersistentFlags().StringToStringVar(&driverParams, "driver-param", nil, "driver parameter key=value (repeatable)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	v := viper.New()
	for key, name := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	for k, val := range driverParams {
		if loaded.Goatswap.Params == nil {
			loaded.Goatswap.Params = map[string]string{}
		}
		loaded.Goatswap.Params[k] = val
	}

	l, err := common.NewLogger(loaded.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if used := v.ConfigFileUsed(); used != "" {
		l.Debug("using config file", "path", used)
	}

	cfg = loaded
	logger = l
	return nil
}

// commandPath names a command without the binary, e.g. "wallet balance".
func commandPath(cmd *cobra.Command) string {
	return strings.TrimPrefix(cmd.CommandPath(), rootCmd.Name()+" ")
}
