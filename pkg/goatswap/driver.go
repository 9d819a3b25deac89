package goatswap

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// ErrUnknownDriver is returned when opening a driver that was never registered.
var ErrUnknownDriver = errors.New("unknown goatswap driver")

// Options are handed to a driver when a program is opened.
type Options struct {
	// RPC is the connection used for chain reads. Drivers that do not talk to
	// the chain may ignore it.
	RPC *rpc.Client

	Cluster Cluster

	// ProgramID overrides the cluster's default program address when non-zero.
	ProgramID solana.PublicKey

	// Params carries driver specific settings.
	Params map[string]string
}

// Param returns a driver parameter or def when unset.
func (o Options) Param(key, def string) string {
	if v, ok := o.Params[key]; ok && v != "" {
		return v
	}
	return def
}

// Driver creates program instances.
type Driver interface {
	OpenReadonly(ctx context.Context, opts Options) (ReadonlyProgram, error)
	Open(ctx context.Context, opts Options, wallet solana.PublicKey) (Program, error)
}

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// Register makes a driver available under name. It panics if the driver is nil
// or the name is taken.
func Register(name string, driver Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()

	if driver == nil {
		panic("goatswap: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("goatswap: Register called twice for driver " + name)
	}
	drivers[name] = driver
}

// Drivers returns the sorted names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookup(name string) (Driver, error) {
	driversMu.RLock()
	driver, ok := drivers[name]
	driversMu.RUnlock()

	if !ok {
		registered := Drivers()
		if len(registered) == 0 {
			return nil, fmt.Errorf("%w %q: no drivers linked into this binary", ErrUnknownDriver, name)
		}
		return nil, fmt.Errorf("%w %q (registered: %s)", ErrUnknownDriver, name, strings.Join(registered, ", "))
	}
	return driver, nil
}

// OpenReadonly opens a read-only program with the named driver.
func OpenReadonly(ctx context.Context, name string, opts Options) (ReadonlyProgram, error) {
	driver, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return driver.OpenReadonly(ctx, opts)
}

// Open opens a wallet-bound program with the named driver.
func Open(ctx context.Context, name string, opts Options, wallet solana.PublicKey) (Program, error) {
	driver, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if wallet.IsZero() {
		return nil, fmt.Errorf("goatswap: open %s: wallet is required", name)
	}
	return driver.Open(ctx, opts, wallet)
}
