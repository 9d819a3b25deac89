package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/goatswap-cli/internal/errors"
	"github.com/lugondev/goatswap-cli/internal/metrics"
	"github.com/lugondev/goatswap-cli/internal/storage"
	"github.com/lugondev/goatswap-cli/pkg/goatswap"
)

// OrderBookOptions tune ShowCollectionPairsAsOrderBooks.
type OrderBookOptions struct {
	// Verification selects pairs by collection, creator or mint_list
	// verification instead of the plain collection lookup.
	Verification string
	// Aggregate prints price levels instead of individual orders.
	Aggregate bool
	// Save persists the book as a snapshot.
	Save bool
}

// ShowCollectionPairsAsOrderBooks fetches the pairs of a collection, unfolds
// them into an order book and prints the asks and bids in SOL.
func (a *App) ShowCollectionPairsAsOrderBooks(ctx context.Context, collectionArg string, opts OrderBookOptions) error {
	collection, err := solana.PublicKeyFromBase58(collectionArg)
	if err != nil {
		return errors.InvalidPubkey("collection", collectionArg, err)
	}
	if a.readonly == nil {
		return errors.Custom("no goatswap program configured")
	}
	if opts.Save && a.repo == nil {
		return errors.StorageDisabled("orderbook --save")
	}

	source := "collection"
	var verification goatswap.Verification
	if opts.Verification != "" {
		verification, err = goatswap.ParseVerification(opts.Verification, collection)
		if err != nil {
			return errors.InvalidArgument("verification", err.Error())
		}
		source = verification.Kind()
	}

	pairMetas, err := a.fetchPairMetas(ctx, collection, verification)
	if err != nil {
		return err
	}

	// Each pool is unfolded into individual orders
	books, err := a.readonly.OrderBooks(pairMetas)
	if err != nil {
		return errors.SDKFailed("pair metas into order books", err)
	}
	a.count(ctx, metrics.MetricOrdersAsks, len(books.Asks))
	a.count(ctx, metrics.MetricOrdersBids, len(books.Bids))

	view := OrderBookView{
		Cluster:    a.cluster.String(),
		Collection: collection.String(),
		Source:     source,
		PairCount:  len(pairMetas),
	}
	if opts.Aggregate {
		view.Asks = levelsView(goatswap.Levels(books.Asks))
		view.Bids = levelsView(goatswap.Levels(books.Bids))
	} else {
		view.Asks = ordersView(books.Asks)
		view.Bids = ordersView(books.Bids)
	}
	if ask, ok := books.BestAsk(); ok {
		view.BestAsk = goatswap.LamportsToUIAmount(ask.Price)
	}
	if bid, ok := books.BestBid(); ok {
		view.BestBid = goatswap.LamportsToUIAmount(bid.Price)
	}
	if spread, ok := books.Spread(); ok {
		view.Spread = goatswap.LamportsToUIAmount(spread)
	}
	if books.Crossed() {
		view.Crossed = true
		a.GetLogger().Warn("order book is crossed", "collection", collection, "best_ask", view.BestAsk, "best_bid", view.BestBid)
	}

	if opts.Save {
		snapshot := storage.OrderBooksToSnapshot(a.cluster, collection, source, len(pairMetas), books)
		if err := a.repo.Snapshots().Save(ctx, snapshot); err != nil {
			return errors.Wrap(err, "failed to save order book snapshot")
		}
		a.count(ctx, metrics.MetricSnapshotsSaved, 1)
		a.GetLogger().Info("saved order book snapshot", "id", snapshot.ID, "collection", snapshot.Collection)
		view.SnapshotID = snapshot.ID
	}

	return a.render(view, func(w io.Writer) error {
		return writeOrderBook(w, view, opts.Aggregate)
	})
}

func (a *App) fetchPairMetas(ctx context.Context, collection solana.PublicKey, verification goatswap.Verification) ([]goatswap.PairMeta, error) {
	start := time.Now()
	defer metrics.ObserveDuration(ctx, a.metrics, metrics.MetricSDKCallDurationMs, start)
	a.count(ctx, metrics.MetricRPCRequests, 1)

	var (
		pairMetas []goatswap.PairMeta
		err       error
	)
	if verification == nil {
		pairMetas, err = a.readonly.PairMetasForCollection(ctx, collection)
	} else {
		pairMetas, err = a.readonly.PairMetasForCollectionVerification(ctx, verification, goatswap.UnsupportedMintResolver)
	}
	if err != nil {
		if errors.Is(err, goatswap.ErrNotSupported) {
			return nil, errors.NotSupported("mint list resolution", err)
		}
		return nil, errors.SDKFailed("get pair metas for collection", err)
	}

	a.count(ctx, metrics.MetricPairMetasFetched, len(pairMetas))
	a.GetLogger().Debug("fetched pair metas",
		"collection", collection,
		"pairs", len(pairMetas),
		"duration", time.Since(start),
	)
	return pairMetas, nil
}

func writeOrderBook(w io.Writer, view OrderBookView, aggregate bool) error {
	if _, err := fmt.Fprintf(w, "pairMetas.length: %d\n", view.PairCount); err != nil {
		return err
	}
	if err := writeSide(w, "Asks:", view.Asks, aggregate); err != nil {
		return err
	}
	if err := writeSide(w, "Bids:", view.Bids, aggregate); err != nil {
		return err
	}
	if view.SnapshotID != "" {
		return lines(w, "snapshot: "+view.SnapshotID)
	}
	return nil
}

func writeSide(w io.Writer, title string, orders []OrderView, aggregate bool) error {
	if err := lines(w, title); err != nil {
		return err
	}
	for _, o := range orders {
		line := o.Price
		if aggregate {
			line = fmt.Sprintf("%s x %d", o.Price, o.Count)
		}
		if err := lines(w, line); err != nil {
			return err
		}
	}
	return nil
}
