package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/basil-chain/basil/x/lbp/types"
	routertypes "github.com/basil-chain/basil/x/router/types"
)

// tradeView is everything a quote needs: the pool record, its live
// reserves oriented to the trade direction, and the weights at the
// current block height.
type tradeView struct {
	pool       types.Pool
	reserveIn  math.Int
	reserveOut math.Int
	weightIn   uint64
	weightOut  uint64
}

func (k Keeper) tradeViewFor(ctx context.Context, assetIn, assetOut string) (tradeView, error) {
	pool, err := k.GetPool(ctx, assetIn, assetOut)
	if err != nil {
		return tradeView{}, err
	}
	if !pool.IsRunning(blockHeight(ctx)) {
		return tradeView{}, types.ErrSaleNotRunning.Wrapf(
			"pair %s/%s is not open at block %d", pool.AssetA, pool.AssetB, blockHeight(ctx),
		)
	}

	weightA, weightB, err := PoolWeightsAt(pool, blockHeight(ctx))
	if err != nil {
		return tradeView{}, err
	}

	poolAddr := PoolAddress(pool.AssetA, pool.AssetB)
	view := tradeView{
		pool:       pool,
		reserveIn:  k.bankKeeper.GetBalance(ctx, poolAddr, assetIn).Amount,
		reserveOut: k.bankKeeper.GetBalance(ctx, poolAddr, assetOut).Amount,
	}
	if assetIn == pool.AssetA {
		view.weightIn, view.weightOut = weightA, weightB
	} else {
		view.weightIn, view.weightOut = weightB, weightA
	}
	if view.reserveIn.IsZero() || view.reserveOut.IsZero() {
		return tradeView{}, types.ErrInsufficientLiquidity.Wrapf(
			"pair %s/%s has an empty reserve", pool.AssetA, pool.AssetB,
		)
	}
	return view, nil
}

// feeOn charges the pool fee on the given gross amount, rounding the fee
// up so the collector is never shortchanged.
func feeOn(amount math.Int, fee types.Fee) math.Int {
	num := math.NewIntFromUint64(uint64(fee.Numerator))
	den := math.NewIntFromUint64(uint64(fee.Denominator))
	return math.LegacyNewDecFromInt(amount.Mul(num)).QuoInt(den).Ceil().TruncateInt()
}

// CalculateSell quotes selling amountIn of assetIn. The fee is charged on
// the output side, so the returned amountOut is net and the fee is
// denominated in assetOut.
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

	view, err := k.tradeViewFor(ctx, assetIn, assetOut)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if amountIn.GT(view.reserveIn.QuoRaw(int64(params.MaxInRatio))) {
		return math.Int{}, math.Int{}, types.ErrMaxInRatioExceeded.Wrapf(
			"amount %s exceeds %s / %d", amountIn, view.reserveIn, params.MaxInRatio,
		)
	}

	grossOut, err := CalcOutGivenIn(view.reserveIn, view.reserveOut, view.weightIn, view.weightOut, amountIn)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if grossOut.GT(view.reserveOut.QuoRaw(int64(params.MaxOutRatio))) {
		return math.Int{}, math.Int{}, types.ErrMaxOutRatioExceeded.Wrapf(
			"amount %s exceeds %s / %d", grossOut, view.reserveOut, params.MaxOutRatio,
		)
	}

	fee := feeOn(grossOut, view.pool.Fee)
	amountOut := grossOut.Sub(fee)
	if !amountOut.IsPositive() {
		return math.Int{}, math.Int{}, types.ErrZeroAmount.Wrap("trade yields no output")
	}
	return amountOut, fee, nil
}

// CalculateBuy quotes buying amountOut of assetOut. The fee is charged on
// the input side, so the returned amountIn is gross and the fee is
// denominated in assetIn.
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

	view, err := k.tradeViewFor(ctx, assetIn, assetOut)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if amountOut.GT(view.reserveOut.QuoRaw(int64(params.MaxOutRatio))) {
		return math.Int{}, math.Int{}, types.ErrMaxOutRatioExceeded.Wrapf(
			"amount %s exceeds %s / %d", amountOut, view.reserveOut, params.MaxOutRatio,
		)
	}

	grossIn, err := CalcInGivenOut(view.reserveIn, view.reserveOut, view.weightIn, view.weightOut, amountOut)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if grossIn.GT(view.reserveIn.QuoRaw(int64(params.MaxInRatio))) {
		return math.Int{}, math.Int{}, types.ErrMaxInRatioExceeded.Wrapf(
			"amount %s exceeds %s / %d", grossIn, view.reserveIn, params.MaxInRatio,
		)
	}
	if grossIn.IsZero() {
		return math.Int{}, math.Int{}, types.ErrZeroAmount.Wrap("trade requires no input")
	}

	fee := feeOn(grossIn, view.pool.Fee)
	return grossIn.Add(fee), fee, nil
}

// ExecuteSell settles a calculated sell. The trader's input goes to the
// pool in full; the pool pays the trader the net output and forwards the
// fee, also in the output asset, to the fee collector.
func (k Keeper) ExecuteSell(ctx context.Context, trade routertypes.Trade) error {
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
	if err := k.payFee(ctx, pool, poolAddr, trade.FeeAsset, trade.FeeAmount); err != nil {
		return err
	}

	emitTrade(ctx, types.EventTypeSell, trade)
	return nil
}

// ExecuteBuy settles a calculated buy. The fee is carved out of the
// trader's gross input and sent to the fee collector; the remainder goes
// to the pool, which pays out the requested amount.
func (k Keeper) ExecuteBuy(ctx context.Context, trade routertypes.Trade) error {
	pool, err := k.GetPool(ctx, trade.AssetIn, trade.AssetOut)
	if err != nil {
		return err
	}
	poolAddr := PoolAddress(pool.AssetA, pool.AssetB)

	toPool := trade.AmountIn.Sub(trade.FeeAmount)
	if toPool.IsNegative() {
		return types.ErrInvalidFee.Wrapf("fee %s exceeds input %s", trade.FeeAmount, trade.AmountIn)
	}
	in := sdk.NewCoins(sdk.NewCoin(trade.AssetIn, toPool))
	if err := k.bankKeeper.SendCoins(ctx, trade.Origin, poolAddr, in); err != nil {
		return types.ErrInsufficientLiquidity.Wrapf("collect input: %v", err)
	}
	if err := k.payFee(ctx, pool, trade.Origin, trade.FeeAsset, trade.FeeAmount); err != nil {
		return err
	}
	out := sdk.NewCoins(sdk.NewCoin(trade.AssetOut, trade.AmountOut))
	if err := k.bankKeeper.SendCoins(ctx, poolAddr, trade.Origin, out); err != nil {
		return types.ErrInsufficientLiquidity.Wrapf("pay output: %v", err)
	}

	emitTrade(ctx, types.EventTypeBuy, trade)
	return nil
}

func (k Keeper) payFee(ctx context.Context, pool types.Pool, from sdk.AccAddress, feeAsset string, feeAmount math.Int) error {
	if feeAmount.IsNil() || !feeAmount.IsPositive() {
		return nil
	}
	collector, err := sdk.AccAddressFromBech32(pool.FeeCollector)
	if err != nil {
		return fmt.Errorf("payFee: fee collector address: %w", err)
	}
	fee := sdk.NewCoins(sdk.NewCoin(feeAsset, feeAmount))
	if err := k.bankKeeper.SendCoins(ctx, from, collector, fee); err != nil {
		return types.ErrInsufficientLiquidity.Wrapf("pay fee: %v", err)
	}
	return nil
}

func emitTrade(ctx context.Context, eventType string, trade routertypes.Trade) {
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyTrader, trade.Origin.String()),
			sdk.NewAttribute(types.AttributeKeyAssetIn, trade.AssetIn),
			sdk.NewAttribute(types.AttributeKeyAssetOut, trade.AssetOut),
			sdk.NewAttribute(types.AttributeKeyAmountIn, trade.AmountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, trade.AmountOut.String()),
			sdk.NewAttribute(types.AttributeKeyFeeAsset, trade.FeeAsset),
			sdk.NewAttribute(types.AttributeKeyFeeAmount, trade.FeeAmount.String()),
		),
	)
}

// Sell is the direct single-pool entry point. It quotes, enforces the
// trader's minimum, and settles inside a cache context so a failed
// settlement leaves no partial state.
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
