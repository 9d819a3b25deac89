package goatswap

import "github.com/gagliardetto/solana-go"

// Order is a single priced unit of liquidity: one NFT for sale (ask) or one
// NFT purchase a pair is willing to make (bid).
type Order struct {
	Pair  solana.PublicKey `json:"pair" yaml:"pair"`
	Price uint64           `json:"price" yaml:"price"`
}

// OrderBooks is the synthetic book projected from a set of pairs.
type OrderBooks struct {
	Asks []Order `json:"asks" yaml:"asks"`
	Bids []Order `json:"bids" yaml:"bids"`
}

// Len returns the total number of orders on both sides.
func (b OrderBooks) Len() int {
	return len(b.Asks) + len(b.Bids)
}

// BestAsk returns the lowest ask.
func (b OrderBooks) BestAsk() (Order, bool) {
	if len(b.Asks) == 0 {
		return Order{}, false
	}
	return b.Asks[0], true
}

// BestBid returns the highest bid.
func (b OrderBooks) BestBid() (Order, bool) {
	if len(b.Bids) == 0 {
		return Order{}, false
	}
	return b.Bids[0], true
}

// Crossed reports whether the best bid is at or above the best ask.
func (b OrderBooks) Crossed() bool {
	ask, okAsk := b.BestAsk()
	bid, okBid := b.BestBid()
	return okAsk && okBid && bid.Price >= ask.Price
}

// Spread returns best ask minus best bid in lamports. ok is false when a side
// is empty or the book is crossed.
func (b OrderBooks) Spread() (spread uint64, ok bool) {
	ask, okAsk := b.BestAsk()
	bid, okBid := b.BestBid()
	if !okAsk || !okBid || bid.Price >= ask.Price {
		return 0, false
	}
	return ask.Price - bid.Price, true
}

// PriceLevel aggregates consecutive orders at the same price.
type PriceLevel struct {
	Price uint64 `json:"price" yaml:"price"`
	Count int    `json:"count" yaml:"count"`
}

// Levels groups a sorted side of the book into price levels, preserving order.
func Levels(orders []Order) []PriceLevel {
	levels := make([]PriceLevel, 0, len(orders))
	for _, o := range orders {
		if n := len(levels); n > 0 && levels[n-1].Price == o.Price {
			levels[n-1].Count++
			continue
		}
		levels = append(levels, PriceLevel{Price: o.Price, Count: 1})
	}
	return levels
}
