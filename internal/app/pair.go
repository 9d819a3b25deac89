package app

import (
	"context"
	"io"
	"strconv"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/goatswap-cli/internal/errors"
	"github.com/lugondev/goatswap-cli/internal/storage"
	"github.com/lugondev/goatswap-cli/pkg/goatswap"
)

const maxFeeBps = 10000

// InitPairArgs are the raw pair init arguments as typed on the command line.
// Prices are SOL amounts. Delta is SOL for linear curves and basis points for
// exponential ones.
type InitPairArgs struct {
	Collection string
	Kind       string
	Curve      string
	SpotPrice  string
	Delta      string
	FeeBps     string
	Deposit    string
	NFTMints   []string
}

// Params validates the arguments and converts them to lamports.
func (args InitPairArgs) Params() (goatswap.InitPairParams, error) {
	var params goatswap.InitPairParams

	if args.Collection == "" {
		return params, errors.InvalidArgument("collection", "required")
	}
	collection, err := solana.PublicKeyFromBase58(args.Collection)
	if err != nil {
		return params, errors.InvalidPubkey("collection", args.Collection, err)
	}
	params.Collection = collection

	if params.Kind, err = goatswap.ParsePairKind(args.Kind); err != nil {
		return params, errors.InvalidArgument("kind", err.Error())
	}
	if params.Curve, err = goatswap.ParseCurve(args.Curve); err != nil {
		return params, errors.InvalidArgument("curve", err.Error())
	}

	if params.SpotPrice, err = goatswap.UIAmountToLamports(args.SpotPrice); err != nil {
		return params, errors.InvalidArgument("spot price", err.Error())
	}
	if params.SpotPrice == 0 {
		return params, errors.InvalidArgument("spot price", "must be positive")
	}

	if args.Delta != "" {
		switch params.Curve {
		case goatswap.CurveLinear:
			params.Delta, err = goatswap.UIAmountToLamports(args.Delta)
		default:
			params.Delta, err = strconv.ParseUint(args.Delta, 10, 64)
		}
		if err != nil {
			return params, errors.InvalidArgument("delta", err.Error())
		}
	}

	if args.FeeBps != "" {
		fee, err := strconv.ParseUint(args.FeeBps, 10, 16)
		if err != nil {
			return params, errors.InvalidArgument("fee", err.Error())
		}
		if fee > maxFeeBps {
			return params, errors.InvalidArgument("fee", "must not exceed 10000 bps")
		}
		params.FeeBps = uint16(fee)
	}
	if params.FeeBps > 0 && params.Kind != goatswap.PairKindTrade {
		return params, errors.InvalidArgument("fee", "only trade pairs charge a fee")
	}

	if args.Deposit != "" {
		if params.Deposit, err = goatswap.UIAmountToLamports(args.Deposit); err != nil {
			return params, errors.InvalidArgument("deposit", err.Error())
		}
	}

	for _, m := range args.NFTMints {
		mint, err := solana.PublicKeyFromBase58(m)
		if err != nil {
			return params, errors.InvalidPubkey("nft mint", m, err)
		}
		params.NFTMints = append(params.NFTMints, mint)
	}

	switch params.Kind {
	case goatswap.PairKindToken:
		if params.Deposit == 0 {
			return params, errors.InvalidArgument("deposit", "token pairs need a token deposit")
		}
		if len(params.NFTMints) > 0 {
			return params, errors.InvalidArgument("nft mints", "token pairs hold no nfts")
		}
	case goatswap.PairKindNFT:
		if len(params.NFTMints) == 0 {
			return params, errors.InvalidArgument("nft mints", "nft pairs need at least one nft")
		}
		if params.Deposit > 0 {
			return params, errors.InvalidArgument("deposit", "nft pairs hold no tokens")
		}
	}

	return params, nil
}

// InitPair creates a liquidity pair for a collection.
func (a *App) InitPair(ctx context.Context, args InitPairArgs, opts TxOptions) error {
	params, err := args.Params()
	if err != nil {
		return err
	}
	if a.program == nil || a.wallet == nil {
		return errors.WalletRequired("pair init")
	}

	plan, err := a.program.InitPair(ctx, params)
	if err != nil {
		if errors.Is(err, goatswap.ErrNotSupported) {
			return errors.NotSupported("pair init", err)
		}
		return errors.SDKFailed("init pair", err)
	}
	a.GetLogger().Debug("built init pair plan",
		"pair", plan.Pair,
		"instructions", len(plan.Instructions),
		"signers", len(plan.Signers),
	)

	view, err := a.execute(ctx, txRequest{
		command:    "pair init",
		kind:       storage.ActivityInitPair,
		plan:       plan.TxPlan,
		pair:       plan.Pair,
		collection: params.Collection,
		price:      params.SpotPrice,
	}, opts)
	if err != nil {
		return err
	}

	return a.render(view, func(w io.Writer) error {
		return writeTxResult(w, view)
	})
}
