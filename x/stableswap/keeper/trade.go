package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	routertypes "github.com/basil-chain/basil/x/router/types"
	"github.com/basil-chain/basil/x/stableswap/types"
)

// IteratePools walks every pool record. The callback returns true to stop.
func (k Keeper) IteratePools(ctx context.Context, fn func(pool types.PoolInfo) bool) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.PoolInfo
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("IteratePools: unmarshal %s: %w", iterator.Key(), err)
		}
		if fn(pool) {
			return nil
		}
	}
	return nil
}

// PoolForPair finds the pool trading both assets. Share denoms are
// iterated in lexical order, so when several pools carry the pair the
// same one is always chosen.
func (k Keeper) PoolForPair(ctx context.Context, assetIn, assetOut string) (types.PoolInfo, error) {
	var match types.PoolInfo
	found := false
	err := k.IteratePools(ctx, func(pool types.PoolInfo) bool {
		if pool.Contains(assetIn) && pool.Contains(assetOut) {
			match = pool
			found = true
			return true
		}
		return false
	})
	if err != nil {
		return types.PoolInfo{}, err
	}
	if !found {
		return types.PoolInfo{}, types.ErrPoolNotFound.Wrapf("pair %s/%s", assetIn, assetOut)
	}
	return match, nil
}

type swapView struct {
	pool     types.PoolInfo
	reserves []math.Int
	indexIn  int
	indexOut int
}

func (k Keeper) swapViewFor(ctx context.Context, assetIn, assetOut string) (swapView, error) {
	pool, err := k.PoolForPair(ctx, assetIn, assetOut)
	if err != nil {
		return swapView{}, err
	}
	indexIn, err := pool.AssetIndex(assetIn)
	if err != nil {
		return swapView{}, err
	}
	indexOut, err := pool.AssetIndex(assetOut)
	if err != nil {
		return swapView{}, err
	}

	coins := k.poolReserves(ctx, pool)
	reserves := make([]math.Int, len(coins))
	for i, coin := range coins {
		if coin.Amount.IsZero() {
			return swapView{}, types.ErrInsufficientLiquidity.Wrapf(
				"pool %s has an empty %s reserve", pool.ShareDenom, coin.Denom,
			)
		}
		reserves[i] = coin.Amount
	}
	return swapView{pool: pool, reserves: reserves, indexIn: indexIn, indexOut: indexOut}, nil
}

// CalculateSell quotes selling amountIn of assetIn. The trade fee is
// carved out of the gross output and stays in the pool reserves, so the
// returned fee, denominated in assetOut, is informational.
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

	view, err := k.swapViewFor(ctx, assetIn, assetOut)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if amountIn.GT(view.reserves[view.indexIn].QuoRaw(int64(params.MaxInRatio))) {
		return math.Int{}, math.Int{}, types.ErrMaxInRatioExceeded.Wrapf(
			"amount %s exceeds %s / %d", amountIn, view.reserves[view.indexIn], params.MaxInRatio,
		)
	}

	grossOut, err := calcOutGivenIn(view.reserves, view.pool.Amplification, view.indexIn, view.indexOut, amountIn)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if grossOut.GT(view.reserves[view.indexOut].QuoRaw(int64(params.MaxOutRatio))) {
		return math.Int{}, math.Int{}, types.ErrMaxOutRatioExceeded.Wrapf(
			"amount %s exceeds %s / %d", grossOut, view.reserves[view.indexOut], params.MaxOutRatio,
		)
	}

	fee := math.LegacyNewDecFromInt(grossOut).Mul(view.pool.TradeFee).Ceil().TruncateInt()
	amountOut := grossOut.Sub(fee)
	if !amountOut.IsPositive() {
		return math.Int{}, math.Int{}, types.ErrZeroAmount.Wrap("trade yields no output")
	}
	return amountOut, fee, nil
}

// CalculateBuy quotes buying amountOut of assetOut. The trade fee is
// charged on top of the invariant input and stays in the pool reserves,
// so the returned fee, denominated in assetIn, is informational.
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

	view, err := k.swapViewFor(ctx, assetIn, assetOut)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if amountOut.GT(view.reserves[view.indexOut].QuoRaw(int64(params.MaxOutRatio))) {
		return math.Int{}, math.Int{}, types.ErrMaxOutRatioExceeded.Wrapf(
			"amount %s exceeds %s / %d", amountOut, view.reserves[view.indexOut], params.MaxOutRatio,
		)
	}

	grossIn, err := calcInGivenOut(view.reserves, view.pool.Amplification, view.indexIn, view.indexOut, amountOut)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	keep := math.LegacyOneDec().Sub(view.pool.TradeFee)
	amountIn := math.LegacyNewDecFromInt(grossIn).Quo(keep).Ceil().TruncateInt()
	if amountIn.GT(view.reserves[view.indexIn].QuoRaw(int64(params.MaxInRatio))) {
		return math.Int{}, math.Int{}, types.ErrMaxInRatioExceeded.Wrapf(
			"amount %s exceeds %s / %d", amountIn, view.reserves[view.indexIn], params.MaxInRatio,
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
	pool, err := k.PoolForPair(ctx, trade.AssetIn, trade.AssetOut)
	if err != nil {
		return err
	}
	poolAddr := PoolAddress(pool.ShareDenom)

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
			sdk.NewAttribute(types.AttributeKeyShareDenom, pool.ShareDenom),
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
