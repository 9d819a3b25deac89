package app

import (
	"context"
	"io"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/goatswap-cli/internal/errors"
	"github.com/lugondev/goatswap-cli/internal/storage"
	"github.com/lugondev/goatswap-cli/pkg/goatswap"
)

// SwapArgs are the raw swap arguments. MaxPrice is a SOL amount.
type SwapArgs struct {
	Pair     string
	NFTMint  string
	MaxPrice string
}

// Params validates the arguments.
func (args SwapArgs) Params() (goatswap.SwapParams, error) {
	var params goatswap.SwapParams

	pair, err := solana.PublicKeyFromBase58(args.Pair)
	if err != nil {
		return params, errors.InvalidPubkey("pair", args.Pair, err)
	}
	mint, err := solana.PublicKeyFromBase58(args.NFTMint)
	if err != nil {
		return params, errors.InvalidPubkey("nft mint", args.NFTMint, err)
	}
	maxPrice, err := goatswap.UIAmountToLamports(args.MaxPrice)
	if err != nil {
		return params, errors.InvalidArgument("max price", err.Error())
	}
	if maxPrice == 0 {
		return params, errors.InvalidArgument("max price", "must be positive")
	}

	params.Pair = pair
	params.NFTMint = mint
	params.MaxPrice = maxPrice
	return params, nil
}

// SwapTokenForNFT buys an NFT from a pair, paying at most MaxPrice.
func (a *App) SwapTokenForNFT(ctx context.Context, args SwapArgs, opts TxOptions) error {
	params, err := args.Params()
	if err != nil {
		return err
	}
	if a.program == nil || a.wallet == nil {
		return errors.WalletRequired("swap")
	}

	plan, err := a.program.SwapTokenForNFT(ctx, params)
	if err != nil {
		if errors.Is(err, goatswap.ErrNotSupported) {
			return errors.NotSupported("swap", err)
		}
		return errors.SDKFailed("swap token for nft", err)
	}

	view, err := a.execute(ctx, txRequest{
		command: "swap",
		kind:    storage.ActivitySwap,
		plan:    *plan,
		pair:    params.Pair,
		price:   params.MaxPrice,
	}, opts)
	if err != nil {
		return err
	}

	return a.render(view, func(w io.Writer) error {
		return writeTxResult(w, view)
	})
}
