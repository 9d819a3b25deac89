package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lugondev/goatswap-cli/pkg/goatswap"
)

func TestIsMatchesByCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"invalid pubkey", InvalidPubkey("collection", "x", nil), ErrInvalidPubkey, true},
		{"wrapped", fmt.Errorf("orderbook: %w", InvalidArgument("limit", "negative")), ErrInvalidArgument, true},
		{"different code", WalletRequired("swap"), ErrNotSupported, false},
		{"plain error", errors.New("boom"), ErrSDKFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.target); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnwrapReachesCause(t *testing.T) {
	err := NotSupported("swap", goatswap.ErrNotSupported)
	if !errors.Is(err, goatswap.ErrNotSupported) {
		t.Fatalf("expected cause to be reachable through %v", err)
	}
	if !strings.HasPrefix(err.Error(), ErrCodeNotSupported+": swap is not supported") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestSimulationFailedDetails(t *testing.T) {
	logs := []string{"Program log: slippage exceeded"}
	err := SimulationFailed("custom program error: 0x1771", logs)

	var coded *Error
	if !As(fmt.Errorf("swap: %w", err), &coded) {
		t.Fatal("expected *Error in chain")
	}
	got, _ := coded.Details["logs"].([]string)
	if len(got) != 1 || got[0] != logs[0] {
		t.Errorf("details logs = %v, want %v", got, logs)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if err := Wrap(errors.New("x"), "ctx"); err.Error() != "ctx: x" {
		t.Errorf("Wrap() = %q", err.Error())
	}
}
