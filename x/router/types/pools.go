package types

import (
	"context"

	"cosmossdk.io/math"
)

// PoolExecutor is the capability interface every AMM engine exposes to the
// router. Calculate methods are pure reads; Execute methods move funds and
// emit the engine's own event. The router never branches on a concrete
// engine beyond looking one up by its PoolKind tag.
type PoolExecutor interface {
	// CalculateSell quotes selling amountIn of assetIn for assetOut.
	// The returned amountOut is net of fee; fee is denominated in assetOut.
	CalculateSell(ctx context.Context, assetIn, assetOut string, amountIn math.Int) (amountOut, fee math.Int, err error)

	// CalculateBuy quotes buying amountOut of assetOut with assetIn.
	// The returned amountIn includes the fee; fee is denominated in assetIn.
	CalculateBuy(ctx context.Context, assetIn, assetOut string, amountOut math.Int) (amountIn, fee math.Int, err error)

	// ExecuteSell settles a previously calculated sell.
	ExecuteSell(ctx context.Context, trade Trade) error

	// ExecuteBuy settles a previously calculated buy.
	ExecuteBuy(ctx context.Context, trade Trade) error

	// Guard configuration used by the engine and surfaced to callers.
	MinTradingLimit(ctx context.Context) math.Int
	MinPoolLiquidity(ctx context.Context) math.Int
	MaxInRatio(ctx context.Context) math.Int
	MaxOutRatio(ctx context.Context) math.Int
}
