// Package fixture provides a goatswap driver that replays recorded SDK output
// from a YAML file. It is meant for demos and tests that must run without a
// live cluster. Importing the package registers the driver as "fixture":
//
//	import _ "github.com/lugondev/goatswap-cli/pkg/goatswap/fixture"
//
// The driver reads the file named by the "path" parameter. Transaction building
// is not recorded, so InitPair and SwapTokenForNFT return goatswap.ErrNotSupported.
package fixture

import (
	"context"
	"fmt"
	"sort"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/goatswap-cli/pkg/goatswap"
)

// DriverName is the name the driver registers under.
const DriverName = "fixture"

func init() {
	goatswap.Register(DriverName, &Driver{})
}

// Driver opens fixture-backed programs.
type Driver struct{}

// OpenReadonly implements goatswap.Driver.
func (d *Driver) OpenReadonly(ctx context.Context, opts goatswap.Options) (goatswap.ReadonlyProgram, error) {
	return d.open(opts, solana.PublicKey{})
}

// Open implements goatswap.Driver.
func (d *Driver) Open(ctx context.Context, opts goatswap.Options, wallet solana.PublicKey) (goatswap.Program, error) {
	return d.open(opts, wallet)
}

func (d *Driver) open(opts goatswap.Options, wallet solana.PublicKey) (*Program, error) {
	path := opts.Param("path", "")
	if path == "" {
		return nil, fmt.Errorf("fixture driver: missing \"path\" parameter")
	}

	file, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture driver: %w", err)
	}

	program, err := NewProgram(file, opts.Cluster, wallet)
	if err != nil {
		return nil, fmt.Errorf("fixture driver: %s: %w", path, err)
	}
	if !opts.ProgramID.IsZero() {
		program.programID = opts.ProgramID
	}
	return program, nil
}

// Program serves a fixture through the goatswap.Program interface.
type Program struct {
	cluster     goatswap.Cluster
	programID   solana.PublicKey
	wallet      solana.PublicKey
	collections []collection
	orders      map[solana.PublicKey]pairOrders
}

var _ goatswap.Program = (*Program)(nil)

// NewProgram validates a fixture and builds a program over it.
func NewProgram(file *File, cluster goatswap.Cluster, wallet solana.PublicKey) (*Program, error) {
	collections, orders, err := file.compile()
	if err != nil {
		return nil, err
	}

	p := &Program{
		cluster:     cluster,
		wallet:      wallet,
		collections: collections,
		orders:      orders,
	}
	if file.ProgramID != "" {
		if p.programID, err = solana.PublicKeyFromBase58(file.ProgramID); err != nil {
			return nil, fmt.Errorf("invalid program_id %q: %w", file.ProgramID, err)
		}
	}
	return p, nil
}

func (p *Program) Cluster() goatswap.Cluster   { return p.cluster }
func (p *Program) ProgramID() solana.PublicKey { return p.programID }
func (p *Program) Wallet() solana.PublicKey    { return p.wallet }

// PairMetasForCollection returns the recorded pairs of a collection.
func (p *Program) PairMetasForCollection(ctx context.Context, address solana.PublicKey) ([]goatswap.PairMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var pairs []goatswap.PairMeta
	for _, c := range p.collections {
		if c.address.Equals(address) {
			pairs = append(pairs, c.pairs...)
		}
	}
	return pairs, nil
}

// PairMetasForCollectionVerification matches recorded collections against v.
func (p *Program) PairMetasForCollectionVerification(
	ctx context.Context,
	v goatswap.Verification,
	resolve goatswap.MintResolver,
) ([]goatswap.PairMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var pairs []goatswap.PairMeta
	for _, c := range p.collections {
		ok, err := c.matches(ctx, v, resolve)
		if err != nil {
			return nil, err
		}
		if ok {
			pairs = append(pairs, c.pairs...)
		}
	}
	return pairs, nil
}

func (c collection) matches(ctx context.Context, v goatswap.Verification, resolve goatswap.MintResolver) (bool, error) {
	switch v := v.(type) {
	case goatswap.CollectionVerification:
		return c.address.Equals(v.Collection), nil
	case goatswap.CreatorVerification:
		for _, creator := range c.creators {
			if creator.Equals(v.Creator) {
				return true, nil
			}
		}
		return false, nil
	case goatswap.MintListVerification:
		if c.mintListRoot.IsZero() || !c.mintListRoot.Equals(v.Root) {
			return false, nil
		}
		if resolve == nil {
			return false, fmt.Errorf("mint list verification requires a mint resolver")
		}
		verified, err := resolve(ctx, c.mints)
		if err != nil {
			return false, fmt.Errorf("failed to resolve mints for %s: %w", c.address, err)
		}
		return len(verified) > 0, nil
	default:
		return false, fmt.Errorf("unsupported verification %T", v)
	}
}

// CollectionPairCounts returns the number of recorded pairs per collection.
func (p *Program) CollectionPairCounts(ctx context.Context) ([]goatswap.CollectionPairCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := make([]goatswap.CollectionPairCount, 0, len(p.collections))
	for _, c := range p.collections {
		counts = append(counts, goatswap.CollectionPairCount{Collection: c.address, Pairs: len(c.pairs)})
	}
	return counts, nil
}

// OrderBooks merges the recorded orders of the given pairs.
func (p *Program) OrderBooks(pairs []goatswap.PairMeta) (goatswap.OrderBooks, error) {
	var books goatswap.OrderBooks
	for _, pair := range pairs {
		recorded, ok := p.orders[pair.Address]
		if !ok {
			return goatswap.OrderBooks{}, fmt.Errorf("no recorded orders for pair %s", pair.Address)
		}
		for _, price := range recorded.asks {
			books.Asks = append(books.Asks, goatswap.Order{Pair: pair.Address, Price: price})
		}
		for _, price := range recorded.bids {
			books.Bids = append(books.Bids, goatswap.Order{Pair: pair.Address, Price: price})
		}
	}

	sort.SliceStable(books.Asks, func(i, j int) bool { return books.Asks[i].Price < books.Asks[j].Price })
	sort.SliceStable(books.Bids, func(i, j int) bool { return books.Bids[i].Price > books.Bids[j].Price })
	return books, nil
}

// InitPair is not recorded in fixtures.
func (p *Program) InitPair(ctx context.Context, params goatswap.InitPairParams) (*goatswap.InitPairPlan, error) {
	return nil, fmt.Errorf("fixture driver: init pair: %w", goatswap.ErrNotSupported)
}

// SwapTokenForNFT is not recorded in fixtures.
func (p *Program) SwapTokenForNFT(ctx context.Context, params goatswap.SwapParams) (*goatswap.TxPlan, error) {
	return nil, fmt.Errorf("fixture driver: swap: %w", goatswap.ErrNotSupported)
}
