package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lugondev/goatswap-cli/internal/storage"
)

const snapshotColumns = `id, cluster, collection, source, pair_count, asks, bids, best_ask, best_bid, created_at`

type snapshotRepository struct {
	db *sql.DB
}

func (r *snapshotRepository) Save(ctx context.Context, snapshot *storage.OrderBookSnapshotModel) error {
	asks, err := json.Marshal(snapshot.Asks)
	if err != nil {
		return fmt.Errorf("failed to encode asks: %w", err)
	}
	bids, err := json.Marshal(snapshot.Bids)
	if err != nil {
		return fmt.Errorf("failed to encode bids: %w", err)
	}

	query := `INSERT INTO order_book_snapshots (` + snapshotColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		snapshot.ID, snapshot.Cluster, snapshot.Collection, snapshot.Source, snapshot.PairCount,
		string(asks), string(bids), nullPrice(snapshot.BestAsk), nullPrice(snapshot.BestBid),
		snapshot.CreatedAt.UnixMicro(),
	)
	return err
}

func (r *snapshotRepository) FindByID(ctx context.Context, id string) (*storage.OrderBookSnapshotModel, error) {
	query := `SELECT ` + snapshotColumns + ` FROM order_book_snapshots WHERE id = ?`

	snapshot, err := scanSnapshot(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return snapshot, err
}

func (r *snapshotRepository) FindByCollection(ctx context.Context, collection string, limit int, offset int) ([]*storage.OrderBookSnapshotModel, error) {
	query := `SELECT ` + snapshotColumns + ` FROM order_book_snapshots
		WHERE collection = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`
	return querySnapshots(ctx, r.db, query, collection, limit, offset)
}

func (r *snapshotRepository) FindRecent(ctx context.Context, limit int) ([]*storage.OrderBookSnapshotModel, error) {
	query := `SELECT ` + snapshotColumns + ` FROM order_book_snapshots ORDER BY created_at DESC LIMIT ?`
	return querySnapshots(ctx, r.db, query, limit)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*storage.OrderBookSnapshotModel, error) {
	var (
		snapshot         storage.OrderBookSnapshotModel
		asks, bids       string
		bestAsk, bestBid sql.NullInt64
		createdAt        int64
	)
	if err := row.Scan(
		&snapshot.ID, &snapshot.Cluster, &snapshot.Collection, &snapshot.Source, &snapshot.PairCount,
		&asks, &bids, &bestAsk, &bestBid, &createdAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(asks), &snapshot.Asks); err != nil {
		return nil, fmt.Errorf("failed to decode asks: %w", err)
	}
	if err := json.Unmarshal([]byte(bids), &snapshot.Bids); err != nil {
		return nil, fmt.Errorf("failed to decode bids: %w", err)
	}
	snapshot.BestAsk = pricePtr(bestAsk)
	snapshot.BestBid = pricePtr(bestBid)
	snapshot.CreatedAt = time.UnixMicro(createdAt).UTC()

	return &snapshot, nil
}

func querySnapshots(ctx context.Context, db *sql.DB, query string, args ...any) ([]*storage.OrderBookSnapshotModel, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*storage.OrderBookSnapshotModel
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

const activityColumns = `id, kind, cluster, signature, pair, collection, wallet, price, simulated, created_at`

type activityRepository struct {
	db *sql.DB
}

func (r *activityRepository) Save(ctx context.Context, activity *storage.ActivityModel) error {
	query := `INSERT INTO activity (` + activityColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		activity.ID, string(activity.Kind), activity.Cluster, activity.Signature, activity.Pair,
		activity.Collection, activity.Wallet, int64(activity.Price), activity.Simulated,
		activity.CreatedAt.UnixMicro(),
	)
	return err
}

func (r *activityRepository) FindBySignature(ctx context.Context, signature string) (*storage.ActivityModel, error) {
	query := `SELECT ` + activityColumns + ` FROM activity WHERE signature = ?`

	activity, err := scanActivity(r.db.QueryRowContext(ctx, query, signature))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return activity, err
}

func (r *activityRepository) FindByWallet(ctx context.Context, wallet string, limit int, offset int) ([]*storage.ActivityModel, error) {
	query := `SELECT ` + activityColumns + ` FROM activity
		WHERE wallet = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`
	return queryActivity(ctx, r.db, query, wallet, limit, offset)
}

func (r *activityRepository) FindRecent(ctx context.Context, limit int) ([]*storage.ActivityModel, error) {
	query := `SELECT ` + activityColumns + ` FROM activity ORDER BY created_at DESC LIMIT ?`
	return queryActivity(ctx, r.db, query, limit)
}

func scanActivity(row rowScanner) (*storage.ActivityModel, error) {
	var (
		activity  storage.ActivityModel
		kind      string
		price     int64
		createdAt int64
	)
	if err := row.Scan(
		&activity.ID, &kind, &activity.Cluster, &activity.Signature, &activity.Pair,
		&activity.Collection, &activity.Wallet, &price, &activity.Simulated, &createdAt,
	); err != nil {
		return nil, err
	}
	activity.Kind = storage.ActivityKind(kind)
	activity.Price = uint64(price)
	activity.CreatedAt = time.UnixMicro(createdAt).UTC()
	return &activity, nil
}

func queryActivity(ctx context.Context, db *sql.DB, query string, args ...any) ([]*storage.ActivityModel, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*storage.ActivityModel
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

func nullPrice(p *uint64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func pricePtr(v sql.NullInt64) *uint64 {
	if !v.Valid {
		return nil
	}
	p := uint64(v.Int64)
	return &p
}
