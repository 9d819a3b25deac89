package storage

import (
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"

	"github.com/lugondev/goatswap-cli/pkg/goatswap"
)

// ActivityKind is the write command that produced an ActivityModel.
type ActivityKind string

const (
	ActivityInitPair ActivityKind = "init_pair"
	ActivitySwap     ActivityKind = "swap"
)

type PriceLevelModel struct {
	Price uint64 `json:"price" bson:"price"`
	Count int    `json:"count" bson:"count"`
}

// OrderBookSnapshotModel is an order book as printed by the orderbook command.
type OrderBookSnapshotModel struct {
	ID         string            `json:"id" bson:"_id,omitempty" db:"id"`
	Cluster    string            `json:"cluster" bson:"cluster" db:"cluster"`
	Collection string            `json:"collection" bson:"collection" db:"collection"`
	Source     string            `json:"source" bson:"source" db:"source"`
	PairCount  int               `json:"pair_count" bson:"pair_count" db:"pair_count"`
	Asks       []PriceLevelModel `json:"asks" bson:"asks" db:"asks"`
	Bids       []PriceLevelModel `json:"bids" bson:"bids" db:"bids"`
	BestAsk    *uint64           `json:"best_ask,omitempty" bson:"best_ask,omitempty" db:"best_ask"`
	BestBid    *uint64           `json:"best_bid,omitempty" bson:"best_bid,omitempty" db:"best_bid"`
	CreatedAt  time.Time         `json:"created_at" bson:"created_at" db:"created_at"`
}

// ActivityModel records an init-pair or swap transaction sent (or simulated) by the CLI.
type ActivityModel struct {
	ID         string       `json:"id" bson:"_id,omitempty" db:"id"`
	Kind       ActivityKind `json:"kind" bson:"kind" db:"kind"`
	Cluster    string       `json:"cluster" bson:"cluster" db:"cluster"`
	Signature  string       `json:"signature" bson:"signature" db:"signature"`
	Pair       string       `json:"pair" bson:"pair" db:"pair"`
	Collection string       `json:"collection,omitempty" bson:"collection,omitempty" db:"collection"`
	Wallet     string       `json:"wallet" bson:"wallet" db:"wallet"`
	Price      uint64       `json:"price" bson:"price" db:"price"`
	Simulated  bool         `json:"simulated" bson:"simulated" db:"simulated"`
	CreatedAt  time.Time    `json:"created_at" bson:"created_at" db:"created_at"`
}

// OrderBooksToSnapshot builds a snapshot from the order books of a collection.
// source names how the pairs were selected (collection, creator or mint_list).
func OrderBooksToSnapshot(cluster goatswap.Cluster, collection solana.PublicKey, source string, pairCount int, books goatswap.OrderBooks) *OrderBookSnapshotModel {
	snapshot := &OrderBookSnapshotModel{
		ID:         uuid.NewString(),
		Cluster:    cluster.String(),
		Collection: collection.String(),
		Source:     source,
		PairCount:  pairCount,
		Asks:       levelsToModel(goatswap.Levels(books.Asks)),
		Bids:       levelsToModel(goatswap.Levels(books.Bids)),
		CreatedAt:  time.Now().UTC(),
	}

	if ask, ok := books.BestAsk(); ok {
		price := ask.Price
		snapshot.BestAsk = &price
	}
	if bid, ok := books.BestBid(); ok {
		price := bid.Price
		snapshot.BestBid = &price
	}

	return snapshot
}

func levelsToModel(levels []goatswap.PriceLevel) []PriceLevelModel {
	models := make([]PriceLevelModel, 0, len(levels))
	for _, l := range levels {
		models = append(models, PriceLevelModel{Price: l.Price, Count: l.Count})
	}
	return models
}

// NewActivity creates an activity record stamped with a fresh id.
func NewActivity(kind ActivityKind, cluster goatswap.Cluster, signature string, pair, collection, wallet solana.PublicKey, price uint64, simulated bool) *ActivityModel {
	activity := &ActivityModel{
		ID:        uuid.NewString(),
		Kind:      kind,
		Cluster:   cluster.String(),
		Signature: signature,
		Pair:      pair.String(),
		Wallet:    wallet.String(),
		Price:     price,
		Simulated: simulated,
		CreatedAt: time.Now().UTC(),
	}
	if !collection.IsZero() {
		activity.Collection = collection.String()
	}
	return activity
}
