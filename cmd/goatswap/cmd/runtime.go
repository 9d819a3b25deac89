package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/cobra"

	"github.com/lugondev/goatswap-cli/internal/app"
	apperrors "github.com/lugondev/goatswap-cli/internal/errors"
	"github.com/lugondev/goatswap-cli/internal/metrics"
	solanaclient "github.com/lugondev/goatswap-cli/internal/solana"
	"github.com/lugondev/goatswap-cli/internal/storage"
	"github.com/lugondev/goatswap-cli/pkg/goatswap"
)

// requirement lists what a command needs opened before its handler runs.
type requirement int

const (
	needProgram requirement = 1 << iota
	// needSigner opens the program bound to the configured wallet.
	needSigner
	needChain
	// needStorage connects the database when database.enabled is set.
	needStorage
	// needSchema leaves the schema as found and hands the migrator to the
	// command. Without it pending migrations are applied on connect.
	needSchema
)

func (r requirement) has(n requirement) bool {
	return r&n != 0
}

// runApp opens what the command requires, runs fn with a deadline of
// solana.timeout and releases everything afterwards.
func runApp(cmd *cobra.Command, req requirement, fn func(ctx context.Context, a *app.App) error) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Solana.TimeoutDuration())
	defer cancel()

	format, err := app.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	m := newMetrics()

	opts := []app.Option{
		app.WithFormat(format),
		app.WithCluster(cfg.Solana.ClusterName()),
		app.WithMetrics(m),
		app.WithLogger(logger),
	}

	wallet, err := solanaclient.LoadWallet(cfg.Wallet.Keypair, cfg.Wallet.PrivateKey)
	if err != nil {
		return err
	}
	if wallet != nil {
		opts = append(opts, app.WithWallet(wallet))
	}

	var client *solanaclient.Client
	if req.has(needChain) || req.has(needProgram) {
		client = solanaclient.NewClient(cfg.Solana.GetRPCEndpoint(),
			solanaclient.WithCommitment(rpc.CommitmentType(cfg.Solana.Commitment)),
			solanaclient.WithConfirmInterval(cfg.Solana.ConfirmIntervalDuration()),
		)
		defer client.Close()
		opts = append(opts, app.WithChain(client))
	}

	if req.has(needProgram) {
		programOpt, err := openProgram(ctx, client, wallet, req.has(needSigner))
		if err != nil {
			return err
		}
		opts = append(opts, programOpt)
	}

	if req.has(needStorage) && cfg.Database.Enabled {
		cm, err := storage.NewConnectionManager(&cfg.Database, storage.WithAutoMigrate(!req.has(needSchema)))
		if err != nil {
			return err
		}
		repo, err := cm.Connect(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := cm.Close(); err != nil {
				logger.Warn("failed to close database", "error", err)
			}
		}()
		opts = append(opts, app.WithRepository(repo))

		if req.has(needSchema) {
			if migrator, err := cm.Migrator(); err == nil {
				opts = append(opts, app.WithMigrator(migrator))
			} else {
				logger.Debug("schema commands unavailable", "error", err)
			}
		}
	}

	a := app.New(cmd.OutOrStdout(), opts...)
	err = fn(ctx, a)

	if m.Len() > 0 {
		metrics.ObserveDuration(ctx, m, metrics.MetricCommandDurationMs, start)
		if flushErr := m.Flush(context.Background()); flushErr != nil {
			logger.Warn("failed to flush metrics", "error", flushErr)
		}
	}
	if err != nil {
		logger.Debug("command failed", failureAttrs(cmd, err)...)
	}
	return err
}

func failureAttrs(cmd *cobra.Command, err error) []any {
	attrs := []any{"command", commandPath(cmd), "error", err}
	var coded *apperrors.Error
	if apperrors.As(err, &coded) {
		attrs = append(attrs, "code", coded.Code)
	}
	return attrs
}

// newMetrics returns the sinks enabled by the metrics section. An empty
// collection records nothing.
func newMetrics() *metrics.Collection {
	sinks := metrics.NewCollection()
	if cfg.Metrics.Enabled {
		sinks.Add(metrics.NewLogMetrics(logger))
	}
	return sinks
}

func openProgram(ctx context.Context, client *solanaclient.Client, wallet *solanaclient.Wallet, signer bool) (app.Option, error) {
	opts := goatswap.Options{
		RPC:     client.RPC(),
		Cluster: cfg.Solana.ClusterName(),
		Params:  cfg.Goatswap.Params,
	}
	if cfg.Goatswap.ProgramID != "" {
		id, err := solana.PublicKeyFromBase58(cfg.Goatswap.ProgramID)
		if err != nil {
			return nil, fmt.Errorf("invalid goatswap.program_id %q: %w", cfg.Goatswap.ProgramID, err)
		}
		opts.ProgramID = id
	}

	if signer && wallet != nil {
		program, err := goatswap.Open(ctx, cfg.Goatswap.Driver, opts, wallet.PublicKey())
		if err != nil {
			return nil, err
		}
		return app.WithProgram(program), nil
	}

	program, err := goatswap.OpenReadonly(ctx, cfg.Goatswap.Driver, opts)
	if err != nil {
		return nil, err
	}
	return app.WithReadonlyProgram(program), nil
}
