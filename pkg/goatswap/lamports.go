package goatswap

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const lamportsExp = -9

// LamportsToUIAmount renders lamports as SOL without trailing zeros.
func LamportsToUIAmount(lamports uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), lamportsExp).String()
}

// UIAmountToLamports parses a SOL amount such as "1.25" into lamports.
func UIAmountToLamports(amount string) (uint64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("invalid amount %q: must not be negative", amount)
	}

	shifted := d.Shift(-lamportsExp)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("invalid amount %q: more than 9 decimal places", amount)
	}

	n := shifted.BigInt()
	if !n.IsUint64() {
		return 0, fmt.Errorf("invalid amount %q: out of range", amount)
	}
	return n.Uint64(), nil
}
