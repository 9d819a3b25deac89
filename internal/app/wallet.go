package app

import (
	"context"
	"io"
	"os"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/goatswap-cli/internal/errors"
	"github.com/lugondev/goatswap-cli/internal/metrics"
	solanaclient "github.com/lugondev/goatswap-cli/internal/solana"
	"github.com/lugondev/goatswap-cli/pkg/goatswap"
)

// WalletNew generates a keypair and saves it in Solana CLI format at path.
// An existing file is only replaced when force is set.
func (a *App) WalletNew(path string, force bool) error {
	if path == "" {
		return errors.InvalidArgument("path", "required")
	}
	if _, err := os.Stat(path); err == nil && !force {
		return errors.InvalidArgument("path", path+" already exists (use --force to overwrite)")
	}

	w := solanaclient.NewWallet()
	if err := w.SaveToFile(path); err != nil {
		return errors.Wrap(err, "failed to save wallet")
	}
	a.GetLogger().Info("generated wallet", "address", w.PublicKey(), "path", path)

	view := WalletView{Address: w.PublicKey().String(), Path: path}
	return a.render(view, func(out io.Writer) error {
		return lines(out, "address: "+view.Address, "saved: "+view.Path)
	})
}

// WalletAddress prints the configured wallet's public key.
func (a *App) WalletAddress() error {
	if a.wallet == nil {
		return errors.WalletRequired("wallet address")
	}

	view := WalletView{Address: a.wallet.PublicKey().String()}
	return a.render(view, func(out io.Writer) error {
		return lines(out, view.Address)
	})
}

// WalletBalance prints the SOL balance of addressArg, or of the configured
// wallet when addressArg is empty.
func (a *App) WalletBalance(ctx context.Context, addressArg string) error {
	address, err := a.resolveAddress("wallet balance", addressArg)
	if err != nil {
		return err
	}
	if a.chain == nil {
		return errors.Custom("no rpc client configured")
	}

	a.count(ctx, metrics.MetricRPCRequests, 1)
	lamports, err := a.chain.GetBalance(ctx, address)
	if err != nil {
		return errors.RPCFailed("get balance", err)
	}

	view := WalletView{Address: address.String(), Balance: goatswap.LamportsToUIAmount(lamports)}
	return a.render(view, func(out io.Writer) error {
		return lines(out, view.Balance+" SOL")
	})
}

// WalletAirdrop requests amount SOL for the configured wallet and waits for
// the airdrop to confirm. Only devnet hands out airdrops.
func (a *App) WalletAirdrop(ctx context.Context, amount string) error {
	if a.cluster != goatswap.ClusterDevnet {
		return errors.NotSupported("airdrop on "+a.cluster.String(), nil)
	}
	if a.wallet == nil {
		return errors.WalletRequired("wallet airdrop")
	}
	if a.chain == nil {
		return errors.Custom("no rpc client configured")
	}

	lamports, err := goatswap.UIAmountToLamports(amount)
	if err != nil {
		return errors.InvalidArgument("amount", err.Error())
	}
	if lamports == 0 {
		return errors.InvalidArgument("amount", "must be positive")
	}

	a.count(ctx, metrics.MetricRPCRequests, 1)
	sig, err := a.chain.RequestAirdrop(ctx, a.wallet.PublicKey(), lamports)
	if err != nil {
		return errors.RPCFailed("request airdrop", err)
	}
	if err := a.chain.ConfirmTransaction(ctx, sig); err != nil {
		return errors.TransactionFailed(sig.String(), err)
	}

	view := AirdropView{
		Address:   a.wallet.PublicKey().String(),
		Amount:    goatswap.LamportsToUIAmount(lamports),
		Signature: sig.String(),
	}
	return a.render(view, func(out io.Writer) error {
		return lines(out, "airdropped "+view.Amount+" SOL to "+view.Address, "signature: "+view.Signature)
	})
}

func (a *App) resolveAddress(command, arg string) (solana.PublicKey, error) {
	if arg == "" {
		if a.wallet == nil {
			return solana.PublicKey{}, errors.WalletRequired(command)
		}
		return a.wallet.PublicKey(), nil
	}

	address, err := solana.PublicKeyFromBase58(arg)
	if err != nil {
		return solana.PublicKey{}, errors.InvalidPubkey("address", arg, err)
	}
	return address, nil
}
