package goatswap

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
)

type stubDriver struct {
	opened  Options
	wallets []solana.PublicKey
}

func (d *stubDriver) OpenReadonly(ctx context.Context, opts Options) (ReadonlyProgram, error) {
	d.opened = opts
	return nil, nil
}

func (d *stubDriver) Open(ctx context.Context, opts Options, wallet solana.PublicKey) (Program, error) {
	d.opened = opts
	d.wallets = append(d.wallets, wallet)
	return nil, nil
}

func TestRegisterAndOpen(t *testing.T) {
	driver := &stubDriver{}
	Register("stub-open", driver)

	found := false
	for _, name := range Drivers() {
		if name == "stub-open" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Drivers() = %v, missing stub-open", Drivers())
	}

	opts := Options{Cluster: ClusterDevnet, Params: map[string]string{"path": "x.yaml"}}
	if _, err := OpenReadonly(context.Background(), "stub-open", opts); err != nil {
		t.Fatalf("OpenReadonly failed: %v", err)
	}
	if driver.opened.Param("path", "") != "x.yaml" {
		t.Errorf("driver received params %v", driver.opened.Params)
	}

	wallet := solana.NewWallet().PublicKey()
	if _, err := Open(context.Background(), "stub-open", opts, wallet); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(driver.wallets) != 1 || !driver.wallets[0].Equals(wallet) {
		t.Errorf("driver received wallets %v", driver.wallets)
	}
}

func TestOpenRequiresWallet(t *testing.T) {
	Register("stub-wallet", &stubDriver{})

	_, err := Open(context.Background(), "stub-wallet", Options{}, solana.PublicKey{})
	if err == nil || !strings.Contains(err.Error(), "wallet is required") {
		t.Fatalf("expected wallet error, got %v", err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := OpenReadonly(context.Background(), "does-not-exist", Options{})
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", &stubDriver{})

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("stub-dup", &stubDriver{})
}

func TestOptionsParamDefault(t *testing.T) {
	var opts Options
	if got := opts.Param("missing", "fallback"); got != "fallback" {
		t.Errorf("Param() = %q, want fallback", got)
	}
}
