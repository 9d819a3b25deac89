package app

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/lugondev/goatswap-cli/internal/errors"
	"github.com/lugondev/goatswap-cli/internal/metrics"
	"github.com/lugondev/goatswap-cli/internal/storage"
)

// CollectionsOptions tune ListCollections.
type CollectionsOptions struct {
	// Limit caps the rows printed; zero prints all.
	Limit int
	// Save snapshots the order book of every listed collection.
	Save bool
}

// ListCollections prints collections by pair count, most pairs first.
func (a *App) ListCollections(ctx context.Context, opts CollectionsOptions) error {
	if opts.Limit < 0 {
		return errors.InvalidArgument("limit", "must not be negative")
	}
	if a.readonly == nil {
		return errors.Custom("no goatswap program configured")
	}
	if opts.Save && a.repo == nil {
		return errors.StorageDisabled("collections --save")
	}

	a.count(ctx, metrics.MetricRPCRequests, 1)
	counts, err := a.readonly.CollectionPairCounts(ctx)
	if err != nil {
		return errors.SDKFailed("get collection pair counts", err)
	}

	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Pairs != counts[j].Pairs {
			return counts[i].Pairs > counts[j].Pairs
		}
		return counts[i].Collection.String() < counts[j].Collection.String()
	})
	if opts.Limit > 0 && len(counts) > opts.Limit {
		counts = counts[:opts.Limit]
	}
	a.count(ctx, metrics.MetricCollectionsListed, len(counts))

	if opts.Save {
		for _, c := range counts {
			pairMetas, err := a.fetchPairMetas(ctx, c.Collection, nil)
			if err != nil {
				return err
			}
			books, err := a.readonly.OrderBooks(pairMetas)
			if err != nil {
				return errors.SDKFailed("pair metas into order books", err)
			}
			snapshot := storage.OrderBooksToSnapshot(a.cluster, c.Collection, "collection", len(pairMetas), books)
			if err := a.repo.Snapshots().Save(ctx, snapshot); err != nil {
				return errors.Wrap(err, "failed to save order book snapshot")
			}
			a.count(ctx, metrics.MetricSnapshotsSaved, 1)
		}
		a.GetLogger().Info("saved order book snapshots", "collections", len(counts))
	}

	views := make([]CollectionView, 0, len(counts))
	for _, c := range counts {
		views = append(views, CollectionView{Collection: c.Collection.String(), Pairs: c.Pairs})
	}

	return a.render(views, func(w io.Writer) error {
		for _, v := range views {
			if _, err := fmt.Fprintf(w, "%s %d\n", v.Collection, v.Pairs); err != nil {
				return err
			}
		}
		return nil
	})
}
