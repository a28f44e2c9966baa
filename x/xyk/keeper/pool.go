package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/basil-chain/basil/x/xyk/types"
)

// CreatePool creates a constant-product pool for the asset pair and seeds
// it with the creator's initial liquidity. Anyone may create a pool.
func (k Keeper) CreatePool(
	ctx context.Context,
	creator sdk.AccAddress,
	pool types.Pool,
	amountA, amountB math.Int,
) error {
	if err := pool.Validate(); err != nil {
		return err
	}
	if !k.registry.Exists(ctx, pool.AssetA) {
		return types.ErrAssetNotRegistered.Wrap(pool.AssetA)
	}
	if !k.registry.Exists(ctx, pool.AssetB) {
		return types.ErrAssetNotRegistered.Wrap(pool.AssetB)
	}
	if k.HasPool(ctx, pool.AssetA, pool.AssetB) {
		return types.ErrPoolAlreadyExists.Wrapf("pair %s/%s", pool.AssetA, pool.AssetB)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return fmt.Errorf("CreatePool: get params: %w", err)
	}
	if amountA.LT(params.MinPoolLiquidity) || amountB.LT(params.MinPoolLiquidity) {
		return types.ErrInsufficientLiquidity.Wrapf(
			"initial liquidity below minimum %s", params.MinPoolLiquidity,
		)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	poolAddr := PoolAddress(pool.AssetA, pool.AssetB)
	liquidity := sdk.NewCoins(
		sdk.NewCoin(pool.AssetA, amountA),
		sdk.NewCoin(pool.AssetB, amountB),
	)
	if err := k.bankKeeper.SendCoins(cacheCtx, creator, poolAddr, liquidity); err != nil {
		return types.ErrInsufficientLiquidity.Wrapf("transfer initial liquidity: %v", err)
	}
	if err := k.SetPool(cacheCtx, pool); err != nil {
		return err
	}
	write()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyCreator, pool.Creator),
			sdk.NewAttribute(types.AttributeKeyAssetA, pool.AssetA),
			sdk.NewAttribute(types.AttributeKeyAssetB, pool.AssetB),
		),
	)
	return nil
}
