package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lugondev/goatswap-cli/internal/storage"
)

const snapshotColumns = `id, cluster, collection, source, pair_count, asks, bids, best_ask, best_bid, created_at`

type postgresSnapshotRepository struct {
	pool *pgxpool.Pool
}

func (r *postgresSnapshotRepository) Save(ctx context.Context, snapshot *storage.OrderBookSnapshotModel) error {
	asks, err := json.Marshal(snapshot.Asks)
	if err != nil {
		return fmt.Errorf("failed to encode asks: %w", err)
	}
	bids, err := json.Marshal(snapshot.Bids)
	if err != nil {
		return fmt.Errorf("failed to encode bids: %w", err)
	}

	query := `INSERT INTO order_book_snapshots (` + snapshotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.pool.Exec(ctx, query,
		snapshot.ID, snapshot.Cluster, snapshot.Collection, snapshot.Source, snapshot.PairCount,
		asks, bids, toInt64(snapshot.BestAsk), toInt64(snapshot.BestBid), snapshot.CreatedAt,
	)
	return err
}

func (r *postgresSnapshotRepository) FindByID(ctx context.Context, id string) (*storage.OrderBookSnapshotModel, error) {
	query := `SELECT ` + snapshotColumns + ` FROM order_book_snapshots WHERE id = $1`
	return QueryOne(r.pool, ctx, query, scanSnapshot, id)
}

func (r *postgresSnapshotRepository) FindByCollection(ctx context.Context, collection string, limit int, offset int) ([]*storage.OrderBookSnapshotModel, error) {
	query := `SELECT ` + snapshotColumns + ` FROM order_book_snapshots
		WHERE collection = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return QueryMany(r.pool, ctx, query, scanSnapshot, collection, limit, offset)
}

func (r *postgresSnapshotRepository) FindRecent(ctx context.Context, limit int) ([]*storage.OrderBookSnapshotModel, error) {
	query := `SELECT ` + snapshotColumns + ` FROM order_book_snapshots ORDER BY created_at DESC LIMIT $1`
	return QueryMany(r.pool, ctx, query, scanSnapshot, limit)
}

func scanSnapshot(row pgx.Row) (*storage.OrderBookSnapshotModel, error) {
	var (
		snapshot         storage.OrderBookSnapshotModel
		asks, bids       []byte
		bestAsk, bestBid *int64
	)
	if err := row.Scan(
		&snapshot.ID, &snapshot.Cluster, &snapshot.Collection, &snapshot.Source, &snapshot.PairCount,
		&asks, &bids, &bestAsk, &bestBid, &snapshot.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(asks, &snapshot.Asks); err != nil {
		return nil, fmt.Errorf("failed to decode asks: %w", err)
	}
	if err := json.Unmarshal(bids, &snapshot.Bids); err != nil {
		return nil, fmt.Errorf("failed to decode bids: %w", err)
	}
	snapshot.BestAsk = toUint64(bestAsk)
	snapshot.BestBid = toUint64(bestBid)

	return &snapshot, nil
}

const activityColumns = `id, kind, cluster, signature, pair, collection, wallet, price, simulated, created_at`

type postgresActivityRepository struct {
	pool *pgxpool.Pool
}

func (r *postgresActivityRepository) Save(ctx context.Context, activity *storage.ActivityModel) error {
	query := `INSERT INTO activity (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		activity.ID, string(activity.Kind), activity.Cluster, activity.Signature, activity.Pair,
		activity.Collection, activity.Wallet, int64(activity.Price), activity.Simulated, activity.CreatedAt,
	)
	return err
}

func (r *postgresActivityRepository) FindBySignature(ctx context.Context, signature string) (*storage.ActivityModel, error) {
	query := `SELECT ` + activityColumns + ` FROM activity WHERE signature = $1`
	return QueryOne(r.pool, ctx, query, scanActivity, signature)
}

func (r *postgresActivityRepository) FindByWallet(ctx context.Context, wallet string, limit int, offset int) ([]*storage.ActivityModel, error) {
	query := `SELECT ` + activityColumns + ` FROM activity
		WHERE wallet = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return QueryMany(r.pool, ctx, query, scanActivity, wallet, limit, offset)
}

func (r *postgresActivityRepository) FindRecent(ctx context.Context, limit int) ([]*storage.ActivityModel, error) {
	query := `SELECT ` + activityColumns + ` FROM activity ORDER BY created_at DESC LIMIT $1`
	return QueryMany(r.pool, ctx, query, scanActivity, limit)
}

func scanActivity(row pgx.Row) (*storage.ActivityModel, error) {
	var (
		activity storage.ActivityModel
		kind     string
		price    int64
	)
	if err := row.Scan(
		&activity.ID, &kind, &activity.Cluster, &activity.Signature, &activity.Pair,
		&activity.Collection, &activity.Wallet, &price, &activity.Simulated, &activity.CreatedAt,
	); err != nil {
		return nil, err
	}
	activity.Kind = storage.ActivityKind(kind)
	activity.Price = uint64(price)
	return &activity, nil
}

func toInt64(p *uint64) *int64 {
	if p == nil {
		return nil
	}
	v := int64(*p)
	return &v
}

func toUint64(p *int64) *uint64 {
	if p == nil {
		return nil
	}
	v := uint64(*p)
	return &v
}
