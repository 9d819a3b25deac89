// Package goatswap defines the Go binding of the Goatswap SDK consumed by the CLI.
//
// Goatswap is an NFT/token liquidity pool protocol on Solana. Everything protocol
// specific (pair account layouts, price curves, order-book unfolding, instruction
// encoding) lives behind the ReadonlyProgram and Program interfaces. Concrete
// implementations are provided by drivers registered with Register, in the same
// way database/sql drivers are linked into a binary:
//
//	import _ "github.com/lugondev/goatswap-cli/pkg/goatswap/fixture"
//
//	program, err := goatswap.OpenReadonly(ctx, "fixture", goatswap.Options{
//	    Cluster: goatswap.ClusterMainnet,
//	    Params:  map[string]string{"path": "pairs.yaml"},
//	})
//
// The package also carries the small presentation helpers the CLI needs around
// SDK output: lamports formatting and order book summaries.
package goatswap

import (
	"fmt"
	"strings"
)

// Cluster is the Solana cluster a program instance talks to.
type Cluster string

const (
	ClusterMainnet Cluster = "mainnet"
	ClusterDevnet  Cluster = "devnet"
)

// ParseCluster accepts the cluster names used by the Solana tooling.
func ParseCluster(s string) (Cluster, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mainnet", "mainnet-beta":
		return ClusterMainnet, nil
	case "devnet":
		return ClusterDevnet, nil
	default:
		return "", fmt.Errorf("unknown cluster %q (expected mainnet or devnet)", s)
	}
}

// DefaultRPCEndpoint returns the public RPC endpoint for the cluster.
func (c Cluster) DefaultRPCEndpoint() string {
	if c == ClusterMainnet {
		return "https://api.mainnet-beta.solana.com"
	}
	return "https://api.devnet.solana.com"
}

func (c Cluster) String() string {
	return string(c)
}
