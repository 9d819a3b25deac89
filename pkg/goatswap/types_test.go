package goatswap

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
)

func TestParseCluster(t *testing.T) {
	tests := []struct {
		in      string
		want    Cluster
		wantErr bool
	}{
		{in: "mainnet", want: ClusterMainnet},
		{in: "mainnet-beta", want: ClusterMainnet},
		{in: " Devnet ", want: ClusterDevnet},
		{in: "testnet", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseCluster(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCluster(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCluster(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if ClusterMainnet.DefaultRPCEndpoint() != "https://api.mainnet-beta.solana.com" {
		t.Errorf("unexpected mainnet endpoint %s", ClusterMainnet.DefaultRPCEndpoint())
	}
}

func TestParsePairKindAndCurve(t *testing.T) {
	if k, err := ParsePairKind("NFT"); err != nil || k != PairKindNFT {
		t.Errorf("ParsePairKind(NFT) = %q, %v", k, err)
	}
	if _, err := ParsePairKind("both"); err == nil {
		t.Error("expected error for unknown pair kind")
	}
	if c, err := ParseCurve("exponential"); err != nil || c != CurveExponential {
		t.Errorf("ParseCurve(exponential) = %q, %v", c, err)
	}
	if _, err := ParseCurve("xyk"); err == nil {
		t.Error("expected error for unknown curve")
	}
}

func TestVerificationVariants(t *testing.T) {
	key := solana.NewWallet().PublicKey()

	variants := map[string]Verification{
		"collection": CollectionVerification{Collection: key},
		"creator":    CreatorVerification{Creator: key},
		"mint_list":  MintListVerification{Root: key},
	}
	for kind, v := range variants {
		if v.Kind() != kind {
			t.Errorf("Kind() = %q, want %q", v.Kind(), kind)
		}
		if !v.Key().Equals(key) {
			t.Errorf("%s Key() = %s, want %s", kind, v.Key(), key)
		}
	}
}

func TestUnsupportedMintResolver(t *testing.T) {
	_, err := UnsupportedMintResolver(context.Background(), []solana.PublicKey{solana.NewWallet().PublicKey()})
	if !errors.Is(err, ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported, got %v", err)
	}
}

func TestParseVerification(t *testing.T) {
	key := solana.NewWallet().PublicKey()

	for _, kind := range []string{"collection", "Creator", "mint_list", "mint-list"} {
		v, err := ParseVerification(kind, key)
		if err != nil {
			t.Fatalf("ParseVerification(%q) failed: %v", kind, err)
		}
		if !v.Key().Equals(key) {
			t.Errorf("%s key = %s", kind, v.Key())
		}
	}

	if v, _ := ParseVerification("mint-list", key); v.Kind() != "mint_list" {
		t.Errorf("mint-list parsed as %s", v.Kind())
	}
	if _, err := ParseVerification("royalty", key); err == nil {
		t.Error("expected error for unknown verification")
	}
}
