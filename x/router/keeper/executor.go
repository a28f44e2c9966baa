package keeper

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/basil-chain/basil/x/router/types"
)

// Sell swaps amountIn of assetIn along the given route and credits the
// trader with the final output, requiring it to be at least minAmountOut.
//
// The route is walked twice: a pure calculate pass that prices every hop
// without touching state, then an execute pass inside a branched store
// context that settles every hop or none of them. The slippage limit is
// checked between the passes, so a limit violation never moves funds.
func (k Keeper) Sell(
	ctx context.Context,
	trader sdk.AccAddress,
	assetIn, assetOut string,
	amountIn, minAmountOut math.Int,
	route []types.Hop,
) (math.Int, error) {
	start := time.Now()
	defer func() {
		k.metrics.RouteLatency.Observe(time.Since(start).Seconds())
	}()
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	params, err := k.GetParams(ctx)
	if err != nil {
		return math.ZeroInt(), fmt.Errorf("Sell: get params: %w", err)
	}
	if err := types.ValidateRoute(assetIn, assetOut, route, params.MaxHops); err != nil {
		k.metrics.RoutesTotal.WithLabelValues(assetIn, assetOut, "rejected").Inc()
		return math.ZeroInt(), err
	}
	if amountIn.IsNil() || amountIn.IsZero() {
		return math.ZeroInt(), types.ErrZeroAmount
	}
	if amountIn.IsNegative() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrapf("amount in %s", amountIn)
	}

	// Calculate pass: price every hop forward, no mutation.
	trades := make([]types.Trade, len(route))
	amount := amountIn
	for i, hop := range route {
		executor, err := k.Executor(hop.Kind)
		if err != nil {
			return math.ZeroInt(), err
		}
		amountOut, fee, err := executor.CalculateSell(ctx, hop.AssetIn, hop.AssetOut, amount)
		if err != nil {
			return math.ZeroInt(), fmt.Errorf("Sell: calculate hop %d (%s): %w", i, hop.Kind, err)
		}
		if amountOut.IsZero() {
			return math.ZeroInt(), types.ErrZeroAmount.Wrapf("hop %d produced no output", i)
		}
		trades[i] = types.Trade{
			Origin:    trader,
			AssetIn:   hop.AssetIn,
			AssetOut:  hop.AssetOut,
			AmountIn:  amount,
			AmountOut: amountOut,
			FeeAsset:  hop.AssetOut,
			FeeAmount: fee,
		}
		amount = amountOut
	}

	if amount.LT(minAmountOut) {
		k.metrics.RoutesTotal.WithLabelValues(assetIn, assetOut, "rejected").Inc()
		return math.ZeroInt(), types.ErrLimitNotReached.Wrapf(
			"expected at least %s, got %s", minAmountOut, amount,
		)
	}

	// Execute pass: settle every hop inside one branched context.
	if err := k.commit(sdkCtx, route, trades, func(executor types.PoolExecutor, cacheCtx context.Context, trade types.Trade) error {
		return executor.ExecuteSell(cacheCtx, trade)
	}); err != nil {
		k.metrics.RoutesTotal.WithLabelValues(assetIn, assetOut, "failed").Inc()
		return math.ZeroInt(), err
	}

	k.emitRouteExecuted(sdkCtx, trader, assetIn, assetOut, amountIn, amount, len(route))
	k.metrics.RoutesTotal.WithLabelValues(assetIn, assetOut, "success").Inc()
	k.metrics.RouteHops.Observe(float64(len(route)))
	return amount, nil
}

// Buy swaps along the route so the trader receives exactly amountOut of
// assetOut, paying at most maxAmountIn of assetIn.
//
// Amount propagation runs backward: the last hop is assigned the caller's
// target output, and each hop's required input becomes the preceding
// hop's required output. Execution then runs forward like a sell.
func (k Keeper) Buy(
	ctx context.Context,
	trader sdk.AccAddress,
	assetIn, assetOut string,
	amountOut, maxAmountIn math.Int,
	route []types.Hop,
) (math.Int, error) {
	start := time.Now()
	defer func() {
		k.metrics.RouteLatency.Observe(time.Since(start).Seconds())
	}()
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	params, err := k.GetParams(ctx)
	if err != nil {
		return math.ZeroInt(), fmt.Errorf("Buy: get params: %w", err)
	}
	if err := types.ValidateRoute(assetIn, assetOut, route, params.MaxHops); err != nil {
		k.metrics.RoutesTotal.WithLabelValues(assetIn, assetOut, "rejected").Inc()
		return math.ZeroInt(), err
	}
	if amountOut.IsNil() || amountOut.IsZero() {
		return math.ZeroInt(), types.ErrZeroAmount
	}
	if amountOut.IsNegative() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrapf("amount out %s", amountOut)
	}

	// Calculate pass: walk hops backward, assigning each hop the output it
	// must produce and computing the input it requires.
	trades := make([]types.Trade, len(route))
	required := amountOut
	for i := len(route) - 1; i >= 0; i-- {
		hop := route[i]
		executor, err := k.Executor(hop.Kind)
		if err != nil {
			return math.ZeroInt(), err
		}
		amountIn, fee, err := executor.CalculateBuy(ctx, hop.AssetIn, hop.AssetOut, required)
		if err != nil {
			return math.ZeroInt(), fmt.Errorf("Buy: calculate hop %d (%s): %w", i, hop.Kind, err)
		}
		if amountIn.IsZero() {
			return math.ZeroInt(), types.ErrZeroAmount.Wrapf("hop %d requires no input", i)
		}
		trades[i] = types.Trade{
			Origin:    trader,
			AssetIn:   hop.AssetIn,
			AssetOut:  hop.AssetOut,
			AmountIn:  amountIn,
			AmountOut: required,
			FeeAsset:  hop.AssetIn,
			FeeAmount: fee,
		}
		required = amountIn
	}

	amountIn := trades[0].AmountIn
	if amountIn.GT(maxAmountIn) {
		k.metrics.RoutesTotal.WithLabelValues(assetIn, assetOut, "rejected").Inc()
		return math.ZeroInt(), types.ErrLimitExceeded.Wrapf(
			"requires %s, maximum %s", amountIn, maxAmountIn,
		)
	}

	if err := k.commit(sdkCtx, route, trades, func(executor types.PoolExecutor, cacheCtx context.Context, trade types.Trade) error {
		return executor.ExecuteBuy(cacheCtx, trade)
	}); err != nil {
		k.metrics.RoutesTotal.WithLabelValues(assetIn, assetOut, "failed").Inc()
		return math.ZeroInt(), err
	}

	k.emitRouteExecuted(sdkCtx, trader, assetIn, assetOut, amountIn, amountOut, len(route))
	k.metrics.RoutesTotal.WithLabelValues(assetIn, assetOut, "success").Inc()
	k.metrics.RouteHops.Observe(float64(len(route)))
	return amountIn, nil
}

// commit runs the execute pass for every hop inside one CacheContext and
// applies the writes only when all hops settled. Engine-level events
// emitted during the pass are carried through on the write.
func (k Keeper) commit(
	sdkCtx sdk.Context,
	route []types.Hop,
	trades []types.Trade,
	settle func(types.PoolExecutor, context.Context, types.Trade) error,
) error {
	cacheCtx, write := sdkCtx.CacheContext()
	for i, hop := range route {
		executor, err := k.Executor(hop.Kind)
		if err != nil {
			return err
		}
		if err := settle(executor, cacheCtx, trades[i]); err != nil {
			k.metrics.HopsTotal.WithLabelValues(string(hop.Kind), "failed").Inc()
			return fmt.Errorf("execute hop %d (%s): %w", i, hop.Kind, err)
		}
		k.metrics.HopsTotal.WithLabelValues(string(hop.Kind), "success").Inc()
	}
	write()
	return nil
}

func (k Keeper) emitRouteExecuted(
	sdkCtx sdk.Context,
	trader sdk.AccAddress,
	assetIn, assetOut string,
	amountIn, amountOut math.Int,
	hops int,
) {
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRouteExecuted,
			sdk.NewAttribute(types.AttributeKeyTrader, trader.String()),
			sdk.NewAttribute(types.AttributeKeyAssetIn, assetIn),
			sdk.NewAttribute(types.AttributeKeyAssetOut, assetOut),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
			sdk.NewAttribute(types.AttributeKeyHops, fmt.Sprintf("%d", hops)),
		),
	)
}
