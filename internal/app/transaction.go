package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/goatswap-cli/internal/errors"
	"github.com/lugondev/goatswap-cli/internal/metrics"
	solanaclient "github.com/lugondev/goatswap-cli/internal/solana"
	"github.com/lugondev/goatswap-cli/internal/storage"
	"github.com/lugondev/goatswap-cli/pkg/goatswap"
	"github.com/lugondev/goatswap-cli/pkg/programlog"
)

const (
	StatusSimulated = "simulated"
	StatusConfirmed = "confirmed"
)

// TxOptions control how a built transaction is submitted.
type TxOptions struct {
	// DryRun stops after the simulation.
	DryRun bool
	// SkipPreflight disables the node's own preflight on send. The local
	// simulation still runs.
	SkipPreflight bool
}

// txRequest is a planned transaction plus what gets recorded about it.
type txRequest struct {
	command    string
	kind       storage.ActivityKind
	plan       goatswap.TxPlan
	pair       solana.PublicKey
	collection solana.PublicKey
	price      uint64
}

// execute signs, simulates and, unless opts.DryRun, sends and confirms the plan.
// In text mode the simulation trace is printed as soon as it is available so a
// failed simulation still shows its logs.
func (a *App) execute(ctx context.Context, req txRequest, opts TxOptions) (*TxResultView, error) {
	if a.wallet == nil {
		return nil, errors.WalletRequired(req.command)
	}
	if a.chain == nil {
		return nil, errors.Custom("no rpc client configured")
	}

	a.count(ctx, metrics.MetricRPCRequests, 1)
	blockhash, err := a.chain.GetLatestBlockhash(ctx)
	if err != nil {
		return nil, errors.RPCFailed("get latest blockhash", err)
	}

	tx, err := solanaclient.BuildTransaction(req.plan.Instructions, blockhash, a.wallet, req.plan.Signers...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build transaction")
	}
	sig, err := solanaclient.Signature(tx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build transaction")
	}

	a.count(ctx, metrics.MetricRPCRequests, 1)
	sim, err := a.chain.SimulateTransaction(ctx, tx)
	if err != nil {
		return nil, errors.RPCFailed("simulate transaction", err)
	}
	a.count(ctx, metrics.MetricTransactionsSimulated, 1)

	if a.format == FormatText {
		if err := writeSimulation(a.out, sim); err != nil {
			return nil, err
		}
	}
	if sim.Failed() {
		reason := fmt.Sprint(sim.Err)
		if failure := programlog.FirstFailure(programlog.BuildTrace(sim.Logs)); failure != nil && failure.Reason != "" {
			reason = failure.Program + ": " + failure.Reason
		}
		a.GetLogger().Warn("simulation failed",
			"command", req.command,
			"error", sim.Err,
			"messages", programlog.NewParser().Messages(sim.Logs),
		)
		return nil, errors.SimulationFailed(reason, sim.Logs)
	}

	view := &TxResultView{
		Kind:          string(req.kind),
		Pair:          req.pair.String(),
		Signature:     sig.String(),
		Status:        StatusSimulated,
		UnitsConsumed: unitsConsumed(sim),
		Logs:          sim.Logs,
	}

	if !opts.DryRun {
		start := time.Now()
		a.count(ctx, metrics.MetricRPCRequests, 1)
		sent, err := a.chain.SendTransaction(ctx, tx, opts.SkipPreflight)
		if err != nil {
			return nil, errors.TransactionFailed(sig.String(), err)
		}
		a.count(ctx, metrics.MetricTransactionsSent, 1)
		a.GetLogger().Info("transaction sent", "command", req.command, "signature", sent)

		if err := a.chain.ConfirmTransaction(ctx, sent); err != nil {
			return nil, errors.TransactionFailed(sent.String(), err)
		}
		a.GetLogger().Info("transaction confirmed",
			"signature", sent,
			"duration", time.Since(start),
		)
		view.Signature = sent.String()
		view.Status = StatusConfirmed
	}

	a.record(ctx, req, view)
	return view, nil
}

// record stores the transaction in the activity log. Failures only warn, the
// transaction itself already succeeded.
func (a *App) record(ctx context.Context, req txRequest, view *TxResultView) {
	if a.repo == nil {
		return
	}

	activity := storage.NewActivity(
		req.kind,
		a.cluster,
		view.Signature,
		req.pair,
		req.collection,
		a.wallet.PublicKey(),
		req.price,
		view.Status == StatusSimulated,
	)
	if err := a.repo.Activity().Save(ctx, activity); err != nil {
		a.GetLogger().Warn("failed to record activity", "signature", view.Signature, "error", err)
	}
}

func writeSimulation(w io.Writer, sim *solanaclient.SimulationResult) error {
	if err := lines(w, "simulation:"); err != nil {
		return err
	}
	if err := programlog.Render(w, programlog.BuildTrace(sim.Logs)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "compute units: %d\n", unitsConsumed(sim))
	return err
}

// unitsConsumed falls back to the units reported in the logs when the node
// leaves unitsConsumed out of the simulation result.
func unitsConsumed(sim *solanaclient.SimulationResult) uint64 {
	if sim.UnitsConsumed != 0 {
		return sim.UnitsConsumed
	}
	return programlog.TotalUnits(programlog.BuildTrace(sim.Logs))
}

func writeTxResult(w io.Writer, view *TxResultView) error {
	return lines(w,
		"pair: "+view.Pair,
		"signature: "+view.Signature,
		"status: "+view.Status,
	)
}
