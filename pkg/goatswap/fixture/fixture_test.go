package fixture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/goatswap-cli/pkg/goatswap"
)

var (
	bitmon    = solana.MustPublicKeyFromBase58("GWkXNWEq3DkEK1x9dMDBUedyGzsDfYaM2c1YpRCyXfGh")
	creator   = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")
	mintRoot  = solana.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")
	otherColl = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
)

func openTestProgram(t *testing.T) goatswap.ReadonlyProgram {
	t.Helper()

	program, err := goatswap.OpenReadonly(context.Background(), DriverName, goatswap.Options{
		Cluster: goatswap.ClusterMainnet,
		Params:  map[string]string{"path": filepath.Join("testdata", "pairs.yaml")},
	})
	if err != nil {
		t.Fatalf("failed to open fixture: %v", err)
	}
	return program
}

func TestPairMetasForCollection(t *testing.T) {
	program := openTestProgram(t)

	pairs, err := program.PairMetasForCollection(context.Background(), bitmon)
	if err != nil {
		t.Fatalf("PairMetasForCollection failed: %v", err)
	}
	if len(pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(pairs))
	}
	if pairs[0].Kind != goatswap.PairKindNFT || pairs[0].NFTCount != 2 {
		t.Errorf("unexpected first pair: %+v", pairs[0])
	}
	for _, p := range pairs {
		if !p.Collection.Equals(bitmon) {
			t.Errorf("pair %s has collection %s", p.Address, p.Collection)
		}
	}

	none, err := program.PairMetasForCollection(context.Background(), creator)
	if err != nil {
		t.Fatalf("PairMetasForCollection failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no pairs for unknown collection, got %d", len(none))
	}
}

func TestOrderBooksSorted(t *testing.T) {
	program := openTestProgram(t)

	pairs, err := program.PairMetasForCollection(context.Background(), bitmon)
	if err != nil {
		t.Fatalf("PairMetasForCollection failed: %v", err)
	}

	books, err := program.OrderBooks(pairs)
	if err != nil {
		t.Fatalf("OrderBooks failed: %v", err)
	}

	wantAsks := []uint64{1500000000, 1500000000, 1650000000}
	wantBids := []uint64{1450000000, 1400000000, 1300000000}
	if len(books.Asks) != len(wantAsks) || len(books.Bids) != len(wantBids) {
		t.Fatalf("unexpected book sizes: %d asks, %d bids", len(books.Asks), len(books.Bids))
	}
	for i, want := range wantAsks {
		if books.Asks[i].Price != want {
			t.Errorf("asks[%d] = %d, want %d", i, books.Asks[i].Price, want)
		}
	}
	for i, want := range wantBids {
		if books.Bids[i].Price != want {
			t.Errorf("bids[%d] = %d, want %d", i, books.Bids[i].Price, want)
		}
	}

	// equal asks keep pair order
	if !books.Asks[0].Pair.Equals(pairs[0].Address) || !books.Asks[1].Pair.Equals(pairs[2].Address) {
		t.Errorf("equal-priced asks reordered: %v", books.Asks[:2])
	}
}

func TestOrderBooksUnknownPair(t *testing.T) {
	program := openTestProgram(t)

	_, err := program.OrderBooks([]goatswap.PairMeta{{Address: solana.NewWallet().PublicKey()}})
	if err == nil || !strings.Contains(err.Error(), "no recorded orders") {
		t.Fatalf("expected unknown pair error, got %v", err)
	}
}

func TestVerificationLookup(t *testing.T) {
	program := openTestProgram(t)
	ctx := context.Background()

	byCollection, err := program.PairMetasForCollectionVerification(ctx,
		goatswap.CollectionVerification{Collection: bitmon}, goatswap.UnsupportedMintResolver)
	if err != nil || len(byCollection) != 3 {
		t.Fatalf("collection verification = %d pairs, err %v", len(byCollection), err)
	}

	byCreator, err := program.PairMetasForCollectionVerification(ctx,
		goatswap.CreatorVerification{Creator: creator}, goatswap.UnsupportedMintResolver)
	if err != nil || len(byCreator) != 3 {
		t.Fatalf("creator verification = %d pairs, err %v", len(byCreator), err)
	}

	_, err = program.PairMetasForCollectionVerification(ctx,
		goatswap.MintListVerification{Root: mintRoot}, goatswap.UnsupportedMintResolver)
	if !errors.Is(err, goatswap.ErrNotSupported) {
		t.Fatalf("mint list verification error = %v, want ErrNotSupported", err)
	}

	resolved, err := program.PairMetasForCollectionVerification(ctx,
		goatswap.MintListVerification{Root: mintRoot},
		func(ctx context.Context, mints []solana.PublicKey) ([]solana.PublicKey, error) {
			return mints, nil
		})
	if err != nil || len(resolved) != 1 || !resolved[0].Collection.Equals(otherColl) {
		t.Fatalf("resolved mint list verification = %v, err %v", resolved, err)
	}
}

func TestCollectionPairCounts(t *testing.T) {
	program := openTestProgram(t)

	counts, err := program.CollectionPairCounts(context.Background())
	if err != nil {
		t.Fatalf("CollectionPairCounts failed: %v", err)
	}
	if len(counts) != 2 || counts[0].Pairs != 3 || counts[1].Pairs != 1 {
		t.Errorf("unexpected counts: %+v", counts)
	}
}

func TestWriteOperationsNotSupported(t *testing.T) {
	wallet := solana.NewWallet().PublicKey()
	program, err := goatswap.Open(context.Background(), DriverName, goatswap.Options{
		Params: map[string]string{"path": filepath.Join("testdata", "pairs.yaml")},
	}, wallet)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !program.Wallet().Equals(wallet) {
		t.Errorf("Wallet() = %s, want %s", program.Wallet(), wallet)
	}

	if _, err := program.InitPair(context.Background(), goatswap.InitPairParams{}); !errors.Is(err, goatswap.ErrNotSupported) {
		t.Errorf("InitPair error = %v, want ErrNotSupported", err)
	}
	if _, err := program.SwapTokenForNFT(context.Background(), goatswap.SwapParams{}); !errors.Is(err, goatswap.ErrNotSupported) {
		t.Errorf("SwapTokenForNFT error = %v, want ErrNotSupported", err)
	}
}

func TestProgramIDOverride(t *testing.T) {
	override := solana.NewWallet().PublicKey()
	program, err := goatswap.OpenReadonly(context.Background(), DriverName, goatswap.Options{
		ProgramID: override,
		Params:    map[string]string{"path": filepath.Join("testdata", "pairs.yaml")},
	})
	if err != nil {
		t.Fatalf("OpenReadonly failed: %v", err)
	}
	if !program.ProgramID().Equals(override) {
		t.Errorf("ProgramID() = %s, want %s", program.ProgramID(), override)
	}
}

func TestInvalidFixtures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad collection",
			content: "collections:\n  - address: nope\n",
			wantErr: "invalid address",
		},
		{
			name: "bad kind",
			content: "collections:\n  - address: GWkXNWEq3DkEK1x9dMDBUedyGzsDfYaM2c1YpRCyXfGh\n" +
				"    pairs:\n      - address: SysvarRent111111111111111111111111111111111\n        kind: both\n",
			wantErr: "unknown pair kind",
		},
		{
			name: "duplicate pair",
			content: "collections:\n  - address: GWkXNWEq3DkEK1x9dMDBUedyGzsDfYaM2c1YpRCyXfGh\n" +
				"    pairs:\n      - address: SysvarRent111111111111111111111111111111111\n        kind: nft\n" +
				"      - address: SysvarRent111111111111111111111111111111111\n        kind: nft\n",
			wantErr: "duplicate pair",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "fixture.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			_, err := goatswap.OpenReadonly(context.Background(), DriverName, goatswap.Options{
				Params: map[string]string{"path": path},
			})
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMissingPathParam(t *testing.T) {
	_, err := goatswap.OpenReadonly(context.Background(), DriverName, goatswap.Options{})
	if err == nil || !strings.Contains(err.Error(), "missing \"path\"") {
		t.Fatalf("expected missing path error, got %v", err)
	}
}
