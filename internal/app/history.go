package app

import (
	"context"
	"fmt"
	"io"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/goatswap-cli/internal/errors"
	"github.com/lugondev/goatswap-cli/internal/storage"
)

// ShowHistory prints stored order book snapshots, newest first. An empty
// collectionArg lists snapshots of every collection.
func (a *App) ShowHistory(ctx context.Context, collectionArg string, limit int) error {
	if a.repo == nil {
		return errors.StorageDisabled("history")
	}
	if limit <= 0 {
		return errors.InvalidArgument("limit", "must be positive")
	}

	var (
		snapshots []*storage.OrderBookSnapshotModel
		err       error
	)
	if collectionArg == "" {
		snapshots, err = a.repo.Snapshots().FindRecent(ctx, limit)
	} else {
		collection, perr := solana.PublicKeyFromBase58(collectionArg)
		if perr != nil {
			return errors.InvalidPubkey("collection", collectionArg, perr)
		}
		snapshots, err = a.repo.Snapshots().FindByCollection(ctx, collection.String(), limit, 0)
	}
	if err != nil {
		return errors.Wrap(err, "failed to load snapshots")
	}

	views := make([]SnapshotView, 0, len(snapshots))
	for _, s := range snapshots {
		views = append(views, snapshotView(s))
	}

	return a.render(views, func(w io.Writer) error {
		for _, v := range views {
			if _, err := fmt.Fprintf(w, "%s %s %s pairs=%d asks=%d bids=%d best_ask=%s best_bid=%s\n",
				v.CreatedAt, v.ID, v.Collection, v.PairCount, v.Asks, v.Bids, orDash(v.BestAsk), orDash(v.BestBid),
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// ShowActivity prints init-pair and swap transactions recorded for a wallet,
// newest first. An empty walletArg uses the configured wallet.
func (a *App) ShowActivity(ctx context.Context, walletArg string, limit int) error {
	if a.repo == nil {
		return errors.StorageDisabled("activity")
	}
	if limit <= 0 {
		return errors.InvalidArgument("limit", "must be positive")
	}

	owner, err := a.resolveAddress("activity", walletArg)
	if err != nil {
		return err
	}

	activities, err := a.repo.Activity().FindByWallet(ctx, owner.String(), limit, 0)
	if err != nil {
		return errors.Wrap(err, "failed to load activity")
	}

	views := make([]ActivityView, 0, len(activities))
	for _, act := range activities {
		views = append(views, activityView(act))
	}

	return a.render(views, func(w io.Writer) error {
		for _, v := range views {
			status := "sent"
			if v.Simulated {
				status = "simulated"
			}
			if _, err := fmt.Fprintf(w, "%s %s %s pair=%s price=%s %s\n",
				v.CreatedAt, v.Kind, v.Signature, v.Pair, v.Price, status,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
