package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	routertypes "github.com/basil-chain/basil/x/router/types"
	"github.com/basil-chain/basil/x/xyk/types"
)

// calcOutGivenIn is the constant-product quote: out = Ro * in / (Ri + in),
// truncated in the pool's favor.
func calcOutGivenIn(reserveIn, reserveOut, amountIn math.Int) math.Int {
	return reserveOut.Mul(amountIn).Quo(reserveIn.Add(amountIn))
}

// calcInGivenOut is the inverse quote: in = Ri * out / (Ro - out),
// rounded up so the pool is never undercharged.
func calcInGivenOut(reserveIn, reserveOut, amountOut math.Int) (math.Int, error) {
	if amountOut.GTE(reserveOut) {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf(
			"amount out %s not covered by reserve %s", amountOut, reserveOut,
		)
	}
	numerator := reserveIn.Mul(amountOut)
	denominator := reserveOut.Sub(amountOut)
	return numerator.Add(denominator).Sub(math.OneInt()).Quo(denominator), nil
}

func (k Keeper) reservesFor(ctx context.Context, pool types.Pool, assetIn, assetOut string) (math.Int, math.Int, error) {
	poolAddr := PoolAddress(pool.AssetA, pool.AssetB)
	reserveIn := k.bankKeeper.GetBalance(ctx, poolAddr, assetIn).Amount
	reserveOut := k.bankKeeper.GetBalance(ctx, poolAddr, assetOut).Amount
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidity.Wrapf(
			"pair %s/%s has an empty reserve", pool.AssetA, pool.AssetB,
		)
	}
	return reserveIn, reserveOut, nil
}

// CalculateSell quotes selling amountIn of assetIn. The trade fee is
// carved out of the gross output and stays in the pool reserves.
func (k Keeper) CalculateSell(ctx context.Context, assetIn, assetOut string, amountIn math.Int) (math.Int, math.Int, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return math.Int{}, math.Int{}, fmt.Errorf("CalculateSell: get params: %w", err)
	}
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return math.Int{}, math.Int{}, types.ErrZeroAmount
	}
	if amountIn.LT(params.MinTradingLimit) {
		return math.Int{}, math.Int{}, types.ErrMinTradingLimit.Wrapf(
			"amount %s below minimum %s", amountIn, params.MinTradingLimit,
		)
	}

	pool, err := k.GetPool(ctx, assetIn, assetOut)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	reserveIn, reserveOut, err := k.reservesFor(ctx, pool, assetIn, assetOut)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if amountIn.GT(reserveIn.QuoRaw(int64(params.MaxInRatio))) {
		return math.Int{}, math.Int{}, types.ErrMaxInRatioExceeded.Wrapf(
			"amount %s exceeds %s / %d", amountIn, reserveIn, params.MaxInRatio,
		)
	}

	grossOut := calcOutGivenIn(reserveIn, reserveOut, amountIn)
	if grossOut.GT(reserveOut.QuoRaw(int64(params.MaxOutRatio))) {
		return math.Int{}, math.Int{}, types.ErrMaxOutRatioExceeded.Wrapf(
			"amount %s exceeds %s / %d", grossOut, reserveOut, params.MaxOutRatio,
		)
	}

	fee := math.LegacyNewDecFromInt(grossOut).Mul(pool.Fee).Ceil().TruncateInt()
	amountOut := grossOut.Sub(fee)
	if !amountOut.IsPositive() {
		return math.Int{}, math.Int{}, types.ErrZeroAmount.Wrap("trade yields no output")
	}
	return amountOut, fee, nil
}

// CalculateBuy quotes buying amountOut of assetOut. The trade fee is
// charged on top of the invariant input and stays in the pool reserves.
func (k Keeper) CalculateBuy(ctx context.Context, assetIn, assetOut string, amountOut math.Int) (math.Int, math.Int, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return math.Int{}, math.Int{}, fmt.Errorf("CalculateBuy: get params: %w", err)
	}
	if amountOut.IsNil() || !amountOut.IsPositive() {
		return math.Int{}, math.Int{}, types.ErrZeroAmount
	}
	if amountOut.LT(params.MinTradingLimit) {
		return math.Int{}, math.Int{}, types.ErrMinTradingLimit.Wrapf(
			"amount %s below minimum %s", amountOut, params.MinTradingLimit,
		)
	}

	pool, err := k.GetPool(ctx, assetIn, assetOut)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	reserveIn, reserveOut, err := k.reservesFor(ctx, pool, assetIn, assetOut)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if amountOut.GT(reserveOut.QuoRaw(int64(params.MaxOutRatio))) {
		return math.Int{}, math.Int{}, types.ErrMaxOutRatioExceeded.Wrapf(
			"amount %s exceeds %s / %d", amountOut, reserveOut, params.MaxOutRatio,
		)
	}

	grossIn, err := calcInGivenOut(reserveIn, reserveOut, amountOut)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	keep := math.LegacyOneDec().Sub(pool.Fee)
	amountIn := math.LegacyNewDecFromInt(grossIn).Quo(keep).Ceil().TruncateInt()
	if amountIn.GT(reserveIn.QuoRaw(int64(params.MaxInRatio))) {
		return math.Int{}, math.Int{}, types.ErrMaxInRatioExceeded.Wrapf(
			"amount %s exceeds %s / %d", amountIn, reserveIn, params.MaxInRatio,
		)
	}
	return amountIn, amountIn.Sub(grossIn), nil
}

// ExecuteSell settles a calculated sell. The fee already sits inside the
// pool reserves, so settlement is two plain transfers.
func (k Keeper) ExecuteSell(ctx context.Context, trade routertypes.Trade) error {
	return k.settle(ctx, types.EventTypeSell, trade)
}

// ExecuteBuy settles a calculated buy.
func (k Keeper) ExecuteBuy(ctx context.Context, trade routertypes.Trade) error {
	return k.settle(ctx, types.EventTypeBuy, trade)
}

func (k Keeper) settle(ctx context.Context, eventType string, trade routertypes.Trade) error {
	pool, err := k.GetPool(ctx, trade.AssetIn, trade.AssetOut)
	if err != nil {
		return err
	}
	poolAddr := PoolAddress(pool.AssetA, pool.AssetB)

	in := sdk.NewCoins(sdk.NewCoin(trade.AssetIn, trade.AmountIn))
	if err := k.bankKeeper.SendCoins(ctx, trade.Origin, poolAddr, in); err != nil {
		return types.ErrInsufficientLiquidity.Wrapf("collect input: %v", err)
	}
	out := sdk.NewCoins(sdk.NewCoin(trade.AssetOut, trade.AmountOut))
	if err := k.bankKeeper.SendCoins(ctx, poolAddr, trade.Origin, out); err != nil {
		return types.ErrInsufficientLiquidity.Wrapf("pay output: %v", err)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyTrader, trade.Origin.String()),
			sdk.NewAttribute(types.AttributeKeyAssetIn, trade.AssetIn),
			sdk.NewAttribute(types.AttributeKeyAssetOut, trade.AssetOut),
			sdk.NewAttribute(types.AttributeKeyAmountIn, trade.AmountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, trade.AmountOut.String()),
			sdk.NewAttribute(types.AttributeKeyFeeAmount, trade.FeeAmount.String()),
		),
	)
	return nil
}

// Sell is the direct single-pool entry point for an exact-input trade.
func (k Keeper) Sell(
	ctx context.Context,
	trader sdk.AccAddress,
	assetIn, assetOut string,
	amountIn, minAmountOut math.Int,
) (routertypes.Trade, error) {
	amountOut, fee, err := k.CalculateSell(ctx, assetIn, assetOut, amountIn)
	if err != nil {
		return routertypes.Trade{}, err
	}
	if amountOut.LT(minAmountOut) {
		return routertypes.Trade{}, types.ErrLimitNotReached.Wrapf(
			"output %s below minimum %s", amountOut, minAmountOut,
		)
	}

	trade := routertypes.Trade{
		Origin:    trader,
		AssetIn:   assetIn,
		AssetOut:  assetOut,
		AmountIn:  amountIn,
		AmountOut: amountOut,
		FeeAsset:  assetOut,
		FeeAmount: fee,
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	if err := k.ExecuteSell(cacheCtx, trade); err != nil {
		return routertypes.Trade{}, err
	}
	write()
	return trade, nil
}

// Buy is the direct single-pool entry point for an exact-output trade.
func (k Keeper) Buy(
	ctx context.Context,
	trader sdk.AccAddress,
	assetIn, assetOut string,
	amountOut, maxAmountIn math.Int,
) (routertypes.Trade, error) {
	amountIn, fee, err := k.CalculateBuy(ctx, assetIn, assetOut, amountOut)
	if err != nil {
		return routertypes.Trade{}, err
	}
	if amountIn.GT(maxAmountIn) {
		return routertypes.Trade{}, types.ErrLimitExceeded.Wrapf(
			"input %s above maximum %s", amountIn, maxAmountIn,
		)
	}

	trade := routertypes.Trade{
		Origin:    trader,
		AssetIn:   assetIn,
		AssetOut:  assetOut,
		AmountIn:  amountIn,
		AmountOut: amountOut,
		FeeAsset:  assetIn,
		FeeAmount: fee,
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	if err := k.ExecuteBuy(cacheCtx, trade); err != nil {
		return routertypes.Trade{}, err
	}
	write()
	return trade, nil
}

// Guard configuration surfaced to the router.

func (k Keeper) MinTradingLimit(ctx context.Context) math.Int {
	return k.paramsOrDefault(ctx).MinTradingLimit
}

func (k Keeper) MinPoolLiquidity(ctx context.Context) math.Int {
	return k.paramsOrDefault(ctx).MinPoolLiquidity
}

func (k Keeper) MaxInRatio(ctx context.Context) math.Int {
	return math.NewIntFromUint64(k.paramsOrDefault(ctx).MaxInRatio)
}

func (k Keeper) MaxOutRatio(ctx context.Context) math.Int {
	return math.NewIntFromUint64(k.paramsOrDefault(ctx).MaxOutRatio)
}

func (k Keeper) paramsOrDefault(ctx context.Context) types.Params {
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.DefaultParams()
	}
	return params
}
