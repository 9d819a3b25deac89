package goatswap

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// PairKind tells which side of the book a pair provides liquidity to.
type PairKind string

const (
	// PairKindToken pairs hold tokens and buy NFTs (bids).
	PairKindToken PairKind = "token"
	// PairKindNFT pairs hold NFTs and sell them (asks).
	PairKindNFT PairKind = "nft"
	// PairKindTrade pairs hold both and quote both sides.
	PairKindTrade PairKind = "trade"
)

// ParsePairKind parses a pair kind name.
func ParsePairKind(s string) (PairKind, error) {
	switch k := PairKind(strings.ToLower(strings.TrimSpace(s))); k {
	case PairKindToken, PairKindNFT, PairKindTrade:
		return k, nil
	default:
		return "", fmt.Errorf("unknown pair kind %q (expected token, nft or trade)", s)
	}
}

// Curve is the bonding curve a pair moves its spot price along.
type Curve string

const (
	CurveLinear      Curve = "linear"
	CurveExponential Curve = "exponential"
)

// ParseCurve parses a curve name.
func ParseCurve(s string) (Curve, error) {
	switch c := Curve(strings.ToLower(strings.TrimSpace(s))); c {
	case CurveLinear, CurveExponential:
		return c, nil
	default:
		return "", fmt.Errorf("unknown curve %q (expected linear or exponential)", s)
	}
}

// PairMeta is the SDK's view of a pair account. Only the fields the CLI prints
// are exposed; the rest of the pair state stays inside the SDK.
type PairMeta struct {
	Address      solana.PublicKey `json:"address" yaml:"address"`
	Owner        solana.PublicKey `json:"owner" yaml:"owner"`
	Collection   solana.PublicKey `json:"collection" yaml:"collection"`
	Kind         PairKind         `json:"kind" yaml:"kind"`
	NFTCount     uint32           `json:"nft_count" yaml:"nft_count"`
	TokenBalance uint64           `json:"token_balance" yaml:"token_balance"`
}

// CollectionPairCount is one row of the collections listing.
type CollectionPairCount struct {
	Collection solana.PublicKey `json:"collection" yaml:"collection"`
	Pairs      int              `json:"pairs" yaml:"pairs"`
}

// InitPairParams are the arguments of a pair initialization. Prices are in lamports,
// Delta is lamports for linear curves and basis points for exponential ones.
type InitPairParams struct {
	Collection solana.PublicKey
	Kind       PairKind
	Curve      Curve
	SpotPrice  uint64
	Delta      uint64
	FeeBps     uint16
	// Deposit is the token amount (lamports) funded into token and trade pairs.
	Deposit uint64
	// NFTMints are deposited into nft and trade pairs.
	NFTMints []solana.PublicKey
}

// SwapParams describe buying one NFT from a pair with tokens.
type SwapParams struct {
	Pair    solana.PublicKey
	NFTMint solana.PublicKey
	// MaxPrice bounds the lamports paid, including fees.
	MaxPrice uint64
}

// TxPlan is a set of instructions built by the SDK, ready to be wrapped in a
// transaction paid for and signed by the program's wallet. Signers lists the
// additional keypairs the instructions require.
type TxPlan struct {
	Instructions []solana.Instruction
	Signers      []solana.PrivateKey
}

// InitPairPlan is the TxPlan of a pair initialization.
type InitPairPlan struct {
	TxPlan
	Pair solana.PublicKey
}
