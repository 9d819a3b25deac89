package goatswap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// ErrNotSupported is returned by operations a program or resolver does not implement.
var ErrNotSupported = errors.New("Not supported")

// Verification selects how pairs prove their NFTs belong to a collection.
// Implementations are CollectionVerification, CreatorVerification and
// MintListVerification.
type Verification interface {
	// Key is the public key the verification is anchored on.
	Key() solana.PublicKey
	// Kind names the variant.
	Kind() string

	verification()
}

// CollectionVerification matches pairs verified by a Metaplex certified collection.
type CollectionVerification struct {
	Collection solana.PublicKey
}

func (v CollectionVerification) Key() solana.PublicKey { return v.Collection }
func (v CollectionVerification) Kind() string          { return "collection" }
func (CollectionVerification) verification()           {}

// CreatorVerification matches pairs verified by a first verified creator.
type CreatorVerification struct {
	Creator solana.PublicKey
}

func (v CreatorVerification) Key() solana.PublicKey { return v.Creator }
func (v CreatorVerification) Kind() string          { return "creator" }
func (CreatorVerification) verification()           {}

// MintListVerification matches pairs verified against an on-chain mint list.
// Resolving it requires a MintResolver.
type MintListVerification struct {
	Root solana.PublicKey
}

func (v MintListVerification) Key() solana.PublicKey { return v.Root }
func (v MintListVerification) Kind() string          { return "mint_list" }
func (MintListVerification) verification()           {}

// ParseVerification builds the variant named by kind anchored on key.
// kind is collection, creator or mint_list ("mint-list" is accepted too).
func ParseVerification(kind string, key solana.PublicKey) (Verification, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(kind)), "-", "_") {
	case "collection":
		return CollectionVerification{Collection: key}, nil
	case "creator":
		return CreatorVerification{Creator: key}, nil
	case "mint_list":
		return MintListVerification{Root: key}, nil
	default:
		return nil, fmt.Errorf("unknown verification %q (expected collection, creator or mint_list)", kind)
	}
}

// MintResolver is called by the SDK with candidate mints and returns the subset
// that satisfies the verification being resolved.
type MintResolver func(ctx context.Context, mints []solana.PublicKey) ([]solana.PublicKey, error)

// UnsupportedMintResolver rejects every resolution request.
func UnsupportedMintResolver(ctx context.Context, mints []solana.PublicKey) ([]solana.PublicKey, error) {
	return nil, ErrNotSupported
}
