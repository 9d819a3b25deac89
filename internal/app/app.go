// Package app implements the goatswap commands. Each handler validates its
// arguments, makes one or two SDK calls and prints the result; the cobra layer
// only maps flags onto handler arguments.
package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/goatswap-cli/internal/common"
	"github.com/lugondev/goatswap-cli/internal/metrics"
	solanaclient "github.com/lugondev/goatswap-cli/internal/solana"
	"github.com/lugondev/goatswap-cli/internal/storage"
	"github.com/lugondev/goatswap-cli/pkg/goatswap"
)

// Chain is the part of the Solana RPC the commands use.
// *solana.Client implements it.
type Chain interface {
	GetBalance(ctx context.Context, pubkey solana.PublicKey) (uint64, error)
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
	RequestAirdrop(ctx context.Context, pubkey solana.PublicKey, lamports uint64) (solana.Signature, error)
	SimulateTransaction(ctx context.Context, tx *solana.Transaction) (*solanaclient.SimulationResult, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction, skipPreflight bool) (solana.Signature, error)
	ConfirmTransaction(ctx context.Context, sig solana.Signature) error
}

var _ Chain = (*solanaclient.Client)(nil)

// App holds the collaborators shared by all commands.
type App struct {
	common.LoggerMixin

	out     io.Writer
	format  Format
	cluster goatswap.Cluster

	readonly goatswap.ReadonlyProgram
	program  goatswap.Program
	wallet   *solanaclient.Wallet
	chain    Chain
	repo     storage.Repository
	schema   storage.Migrator
	metrics  metrics.Metrics
}

// Option configures an App.
type Option func(*App)

// WithFormat sets the output format.
func WithFormat(f Format) Option {
	return func(a *App) { a.format = f }
}

// WithCluster sets the cluster the commands run against.
func WithCluster(c goatswap.Cluster) Option {
	return func(a *App) { a.cluster = c }
}

// WithReadonlyProgram sets the SDK handle for read commands.
func WithReadonlyProgram(p goatswap.ReadonlyProgram) Option {
	return func(a *App) { a.readonly = p }
}

// WithProgram sets the wallet-bound SDK handle. It also serves read commands.
func WithProgram(p goatswap.Program) Option {
	return func(a *App) {
		a.program = p
		if p != nil {
			a.readonly = p
		}
	}
}

// WithWallet sets the signing wallet.
func WithWallet(w *solanaclient.Wallet) Option {
	return func(a *App) { a.wallet = w }
}

// WithChain sets the RPC used for balances and transactions.
func WithChain(c Chain) Option {
	return func(a *App) { a.chain = c }
}

// WithRepository enables snapshot and activity persistence.
func WithRepository(r storage.Repository) Option {
	return func(a *App) { a.repo = r }
}

// WithMigrator enables the schema commands.
func WithMigrator(m storage.Migrator) Option {
	return func(a *App) { a.schema = m }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m metrics.Metrics) Option {
	return func(a *App) {
		if m != nil {
			a.metrics = m
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.SetLogger(l) }
}

// New creates an App printing to out.
func New(out io.Writer, opts ...Option) *App {
	a := &App{
		LoggerMixin: common.NewLoggerMixin(),
		out:         out,
		format:      FormatText,
		cluster:     goatswap.ClusterMainnet,
		metrics:     metrics.NewNoopMetrics(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.readonly != nil {
		a.cluster = a.readonly.Cluster()
	}
	return a
}

func (a *App) count(ctx context.Context, name string, value int) {
	if value <= 0 {
		return
	}
	if err := a.metrics.IncrementCounter(ctx, name, uint64(value)); err != nil {
		a.GetLogger().Debug("metric update failed", "metric", name, "error", err)
	}
}
