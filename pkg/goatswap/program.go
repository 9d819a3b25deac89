package goatswap

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// ReadonlyProgram is the read side of the SDK. It needs no wallet.
type ReadonlyProgram interface {
	Cluster() Cluster
	ProgramID() solana.PublicKey

	// PairMetasForCollection returns every pair trading NFTs of the collection.
	PairMetasForCollection(ctx context.Context, collection solana.PublicKey) ([]PairMeta, error)

	// PairMetasForCollectionVerification returns the pairs matching a verification.
	// resolve is consulted for verifications that need mint lookups.
	PairMetasForCollectionVerification(ctx context.Context, v Verification, resolve MintResolver) ([]PairMeta, error)

	// CollectionPairCounts returns the number of pairs per collection.
	CollectionPairCounts(ctx context.Context) ([]CollectionPairCount, error)

	// OrderBooks unfolds pairs into individually priced orders.
	// Asks are sorted ascending and bids descending.
	OrderBooks(pairs []PairMeta) (OrderBooks, error)
}

// Program is a ReadonlyProgram bound to a wallet that can build transactions.
type Program interface {
	ReadonlyProgram

	// Wallet is the fee payer and owner used for built instructions.
	Wallet() solana.PublicKey

	InitPair(ctx context.Context, params InitPairParams) (*InitPairPlan, error)
	SwapTokenForNFT(ctx context.Context, params SwapParams) (*TxPlan, error)
}
