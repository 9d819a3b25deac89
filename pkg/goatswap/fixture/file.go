package fixture

import (
	"fmt"
	"io"
	"os"

	"github.com/gagliardetto/solana-go"
	"gopkg.in/yaml.v3"

	"github.com/lugondev/goatswap-cli/pkg/goatswap"
)

// File is the on-disk layout of a fixture.
//
//	program_id: GoaT...
//	collections:
//	  - address: GWkX...
//	    creators: [9uBX...]
//	    pairs:
//	      - address: 5xyz...
//	        owner: 8abc...
//	        kind: nft
//	        nft_count: 2
//	        asks: [1500000000, 1650000000]
type File struct {
	ProgramID   string           `yaml:"program_id"`
	Collections []CollectionFile `yaml:"collections"`
}

type CollectionFile struct {
	Address      string     `yaml:"address"`
	Creators     []string   `yaml:"creators,omitempty"`
	MintListRoot string     `yaml:"mint_list_root,omitempty"`
	Mints        []string   `yaml:"mints,omitempty"`
	Pairs        []PairFile `yaml:"pairs"`
}

// PairFile holds a pair and the orders the SDK unfolded from it when recorded.
type PairFile struct {
	Address      string   `yaml:"address"`
	Owner        string   `yaml:"owner"`
	Kind         string   `yaml:"kind"`
	NFTCount     uint32   `yaml:"nft_count"`
	TokenBalance uint64   `yaml:"token_balance"`
	Asks         []uint64 `yaml:"asks,omitempty"`
	Bids         []uint64 `yaml:"bids,omitempty"`
}

type collection struct {
	address      solana.PublicKey
	creators     []solana.PublicKey
	mintListRoot solana.PublicKey
	mints        []solana.PublicKey
	pairs        []goatswap.PairMeta
}

type pairOrders struct {
	asks []uint64
	bids []uint64
}

// LoadFile reads a fixture from disk.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a fixture.
func Load(r io.Reader) (*File, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if err == io.EOF {
			return &file, nil
		}
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	return &file, nil
}

func parseKeys(what string, values []string) ([]solana.PublicKey, error) {
	keys := make([]solana.PublicKey, 0, len(values))
	for _, v := range values {
		key, err := solana.PublicKeyFromBase58(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", what, v, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (f *File) compile() ([]collection, map[solana.PublicKey]pairOrders, error) {
	collections := make([]collection, 0, len(f.Collections))
	orders := make(map[solana.PublicKey]pairOrders)

	for i, cf := range f.Collections {
		address, err := solana.PublicKeyFromBase58(cf.Address)
		if err != nil {
			return nil, nil, fmt.Errorf("collections[%d]: invalid address %q: %w", i, cf.Address, err)
		}

		c := collection{address: address}
		if c.creators, err = parseKeys("creator", cf.Creators); err != nil {
			return nil, nil, fmt.Errorf("collections[%d]: %w", i, err)
		}
		if c.mints, err = parseKeys("mint", cf.Mints); err != nil {
			return nil, nil, fmt.Errorf("collections[%d]: %w", i, err)
		}
		if cf.MintListRoot != "" {
			if c.mintListRoot, err = solana.PublicKeyFromBase58(cf.MintListRoot); err != nil {
				return nil, nil, fmt.Errorf("collections[%d]: invalid mint_list_root: %w", i, err)
			}
		}

		for j, pf := range cf.Pairs {
			meta, err := pf.meta(address)
			if err != nil {
				return nil, nil, fmt.Errorf("collections[%d].pairs[%d]: %w", i, j, err)
			}
			if _, dup := orders[meta.Address]; dup {
				return nil, nil, fmt.Errorf("collections[%d].pairs[%d]: duplicate pair %s", i, j, meta.Address)
			}
			orders[meta.Address] = pairOrders{asks: pf.Asks, bids: pf.Bids}
			c.pairs = append(c.pairs, meta)
		}

		collections = append(collections, c)
	}

	return collections, orders, nil
}

func (pf PairFile) meta(collection solana.PublicKey) (goatswap.PairMeta, error) {
	address, err := solana.PublicKeyFromBase58(pf.Address)
	if err != nil {
		return goatswap.PairMeta{}, fmt.Errorf("invalid address %q: %w", pf.Address, err)
	}

	var owner solana.PublicKey
	if pf.Owner != "" {
		if owner, err = solana.PublicKeyFromBase58(pf.Owner); err != nil {
			return goatswap.PairMeta{}, fmt.Errorf("invalid owner %q: %w", pf.Owner, err)
		}
	}

	kind, err := goatswap.ParsePairKind(pf.Kind)
	if err != nil {
		return goatswap.PairMeta{}, err
	}

	return goatswap.PairMeta{
		Address:      address,
		Owner:        owner,
		Collection:   collection,
		Kind:         kind,
		NFTCount:     pf.NFTCount,
		TokenBalance: pf.TokenBalance,
	}, nil
}
