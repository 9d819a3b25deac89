package app

import (
	"github.com/lugondev/goatswap-cli/internal/storage"
	"github.com/lugondev/goatswap-cli/pkg/goatswap"
)

// OrderView is one order or aggregated price level. Price is in SOL.
type OrderView struct {
	Price    string `json:"price" yaml:"price"`
	Lamports uint64 `json:"lamports" yaml:"lamports"`
	Pair     string `json:"pair,omitempty" yaml:"pair,omitempty"`
	Count    int    `json:"count,omitempty" yaml:"count,omitempty"`
}

type OrderBookView struct {
	Cluster    string      `json:"cluster" yaml:"cluster"`
	Collection string      `json:"collection" yaml:"collection"`
	Source     string      `json:"source" yaml:"source"`
	PairCount  int         `json:"pair_count" yaml:"pair_count"`
	Asks       []OrderView `json:"asks" yaml:"asks"`
	Bids       []OrderView `json:"bids" yaml:"bids"`
	BestAsk    string      `json:"best_ask,omitempty" yaml:"best_ask,omitempty"`
	BestBid    string      `json:"best_bid,omitempty" yaml:"best_bid,omitempty"`
	Spread     string      `json:"spread,omitempty" yaml:"spread,omitempty"`
	Crossed    bool        `json:"crossed,omitempty" yaml:"crossed,omitempty"`
	SnapshotID string      `json:"snapshot_id,omitempty" yaml:"snapshot_id,omitempty"`
}

type CollectionView struct {
	Collection string `json:"collection" yaml:"collection"`
	Pairs      int    `json:"pairs" yaml:"pairs"`
}

type TxResultView struct {
	Kind          string   `json:"kind" yaml:"kind"`
	Pair          string   `json:"pair" yaml:"pair"`
	Signature     string   `json:"signature" yaml:"signature"`
	Status        string   `json:"status" yaml:"status"`
	UnitsConsumed uint64   `json:"units_consumed" yaml:"units_consumed"`
	Logs          []string `json:"logs,omitempty" yaml:"logs,omitempty"`
}

type SnapshotView struct {
	ID         string `json:"id" yaml:"id"`
	CreatedAt  string `json:"created_at" yaml:"created_at"`
	Cluster    string `json:"cluster" yaml:"cluster"`
	Collection string `json:"collection" yaml:"collection"`
	Source     string `json:"source" yaml:"source"`
	PairCount  int    `json:"pair_count" yaml:"pair_count"`
	Asks       int    `json:"asks" yaml:"asks"`
	Bids       int    `json:"bids" yaml:"bids"`
	BestAsk    string `json:"best_ask,omitempty" yaml:"best_ask,omitempty"`
	BestBid    string `json:"best_bid,omitempty" yaml:"best_bid,omitempty"`
}

type ActivityView struct {
	ID        string `json:"id" yaml:"id"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
	Kind      string `json:"kind" yaml:"kind"`
	Cluster   string `json:"cluster" yaml:"cluster"`
	Signature string `json:"signature" yaml:"signature"`
	Pair      string `json:"pair" yaml:"pair"`
	Price     string `json:"price" yaml:"price"`
	Simulated bool   `json:"simulated" yaml:"simulated"`
}

type WalletView struct {
	Address string `json:"address" yaml:"address"`
	Balance string `json:"balance,omitempty" yaml:"balance,omitempty"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
}

type AirdropView struct {
	Address   string `json:"address" yaml:"address"`
	Amount    string `json:"amount" yaml:"amount"`
	Signature string `json:"signature" yaml:"signature"`
}

func ordersView(orders []goatswap.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, OrderView{
			Price:    goatswap.LamportsToUIAmount(o.Price),
			Lamports: o.Price,
			Pair:     o.Pair.String(),
		})
	}
	return views
}

func levelsView(levels []goatswap.PriceLevel) []OrderView {
	views := make([]OrderView, 0, len(levels))
	for _, l := range levels {
		views = append(views, OrderView{
			Price:    goatswap.LamportsToUIAmount(l.Price),
			Lamports: l.Price,
			Count:    l.Count,
		})
	}
	return views
}

func optionalPrice(p *uint64) string {
	if p == nil {
		return ""
	}
	return goatswap.LamportsToUIAmount(*p)
}

func snapshotView(s *storage.OrderBookSnapshotModel) SnapshotView {
	v := SnapshotView{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt.UTC().Format(timeLayout),
		Cluster:    s.Cluster,
		Collection: s.Collection,
		Source:     s.Source,
		PairCount:  s.PairCount,
		BestAsk:    optionalPrice(s.BestAsk),
		BestBid:    optionalPrice(s.BestBid),
	}
	for _, l := range s.Asks {
		v.Asks += l.Count
	}
	for _, l := range s.Bids {
		v.Bids += l.Count
	}
	return v
}

func activityView(a *storage.ActivityModel) ActivityView {
	return ActivityView{
		ID:        a.ID,
		CreatedAt: a.CreatedAt.UTC().Format(timeLayout),
		Kind:      string(a.Kind),
		Cluster:   a.Cluster,
		Signature: a.Signature,
		Pair:      a.Pair,
		Price:     goatswap.LamportsToUIAmount(a.Price),
		Simulated: a.Simulated,
	}
}

const timeLayout = "2006-01-02T15:04:05Z07:00"
