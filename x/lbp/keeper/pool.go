package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/basil-chain/basil/x/lbp/types"
)

// PoolUpdate carries the optional fields of an UpdatePoolData call. Nil
// fields keep the pool's current value.
type PoolUpdate struct {
	Owner         *string
	Start         *uint64
	End           *uint64
	InitialWeight *uint64
	FinalWeight   *uint64
	Fee           *types.Fee
	FeeCollector  *string
}

// CreatePool creates a weighted pool for the asset pair and seeds it with
// the creator's initial liquidity. Only the configured authority may
// create pools; the pool becomes tradable once its sale window opens.
func (k Keeper) CreatePool(
	ctx context.Context,
	creator sdk.AccAddress,
	pool types.Pool,
	amountA, amountB math.Int,
) error {
	if !k.authority.Empty() && !creator.Equals(k.authority) {
		return types.ErrNotOwner.Wrap("only the authority may create pools")
	}
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

	owner, err := sdk.AccAddressFromBech32(pool.Owner)
	if err != nil {
		return fmt.Errorf("CreatePool: owner address: %w", err)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	poolAddr := PoolAddress(pool.AssetA, pool.AssetB)
	liquidity := sdk.NewCoins(
		sdk.NewCoin(pool.AssetA, amountA),
		sdk.NewCoin(pool.AssetB, amountB),
	)
	if err := k.bankKeeper.SendCoins(cacheCtx, owner, poolAddr, liquidity); err != nil {
		return types.ErrInsufficientLiquidity.Wrapf("transfer initial liquidity: %v", err)
	}
	if err := k.SetPool(cacheCtx, pool); err != nil {
		return err
	}
	write()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyOwner, pool.Owner),
			sdk.NewAttribute(types.AttributeKeyAssetA, pool.AssetA),
			sdk.NewAttribute(types.AttributeKeyAssetB, pool.AssetB),
			sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
		),
	)
	return nil
}

// UpdatePoolData mutates a pool that has not started trading yet. Once
// the sale window opens the record is frozen; only weights keep moving,
// and only as a function of block height.
func (k Keeper) UpdatePoolData(
	ctx context.Context,
	sender sdk.AccAddress,
	assetA, assetB string,
	update PoolUpdate,
) error {
	pool, err := k.GetPool(ctx, assetA, assetB)
	if err != nil {
		return err
	}
	if pool.Owner != sender.String() {
		return types.ErrNotOwner.Wrap(sender.String())
	}
	if pool.HasStarted(blockHeight(ctx)) {
		return types.ErrSaleStarted.Wrapf("sale opened at block %d", pool.Start)
	}

	if update.Owner != nil {
		if _, err := sdk.AccAddressFromBech32(*update.Owner); err != nil {
			return fmt.Errorf("UpdatePoolData: new owner address: %w", err)
		}
		pool.Owner = *update.Owner
	}
	if update.Start != nil {
		pool.Start = *update.Start
	}
	if update.End != nil {
		pool.End = *update.End
	}
	if update.InitialWeight != nil {
		pool.InitialWeight = *update.InitialWeight
	}
	if update.FinalWeight != nil {
		pool.FinalWeight = *update.FinalWeight
	}
	if update.Fee != nil {
		pool.Fee = *update.Fee
	}
	if update.FeeCollector != nil {
		if _, err := sdk.AccAddressFromBech32(*update.FeeCollector); err != nil {
			return fmt.Errorf("UpdatePoolData: fee collector address: %w", err)
		}
		pool.FeeCollector = *update.FeeCollector
	}

	if err := pool.Validate(); err != nil {
		return err
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoolUpdated,
			sdk.NewAttribute(types.AttributeKeyOwner, pool.Owner),
			sdk.NewAttribute(types.AttributeKeyAssetA, pool.AssetA),
			sdk.NewAttribute(types.AttributeKeyAssetB, pool.AssetB),
		),
	)
	return nil
}

// AddLiquidity moves additional reserves from the owner into the pool
// sub-account. Allowed until the sale has ended.
func (k Keeper) AddLiquidity(
	ctx context.Context,
	sender sdk.AccAddress,
	assetA, assetB string,
	amountA, amountB math.Int,
) error {
	pool, err := k.GetPool(ctx, assetA, assetB)
	if err != nil {
		return err
	}
	if pool.Owner != sender.String() {
		return types.ErrNotOwner.Wrap(sender.String())
	}
	if pool.HasEnded(blockHeight(ctx)) {
		return types.ErrSaleStarted.Wrap("sale already ended")
	}
	if !amountA.IsPositive() && !amountB.IsPositive() {
		return types.ErrZeroAmount
	}

	deposit := sdk.NewCoins()
	if amountA.IsPositive() {
		deposit = deposit.Add(sdk.NewCoin(pool.AssetA, amountA))
	}
	if amountB.IsPositive() {
		deposit = deposit.Add(sdk.NewCoin(pool.AssetB, amountB))
	}
	poolAddr := PoolAddress(pool.AssetA, pool.AssetB)
	if err := k.bankKeeper.SendCoins(ctx, sender, poolAddr, deposit); err != nil {
		return types.ErrInsufficientLiquidity.Wrapf("transfer liquidity: %v", err)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityAdded,
			sdk.NewAttribute(types.AttributeKeyOwner, pool.Owner),
			sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
		),
	)
	return nil
}

// RemoveLiquidity returns all reserves to the owner and destroys the pool
// record. Rejected while the sale is running.
func (k Keeper) RemoveLiquidity(
	ctx context.Context,
	sender sdk.AccAddress,
	assetA, assetB string,
) error {
	pool, err := k.GetPool(ctx, assetA, assetB)
	if err != nil {
		return err
	}
	if pool.Owner != sender.String() {
		return types.ErrNotOwner.Wrap(sender.String())
	}
	if pool.IsRunning(blockHeight(ctx)) {
		return types.ErrSaleNotEnded.Wrap("sale is still running")
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	poolAddr := PoolAddress(pool.AssetA, pool.AssetB)
	balanceA := k.bankKeeper.GetBalance(cacheCtx, poolAddr, pool.AssetA)
	balanceB := k.bankKeeper.GetBalance(cacheCtx, poolAddr, pool.AssetB)
	refund := sdk.NewCoins(balanceA, balanceB)
	if !refund.IsZero() {
		if err := k.bankKeeper.SendCoins(cacheCtx, poolAddr, sender, refund); err != nil {
			return fmt.Errorf("RemoveLiquidity: refund: %w", err)
		}
	}
	k.deletePool(cacheCtx, pool.AssetA, pool.AssetB)
	write()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityRemoved,
			sdk.NewAttribute(types.AttributeKeyOwner, pool.Owner),
			sdk.NewAttribute(types.AttributeKeyAmountA, balanceA.Amount.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, balanceB.Amount.String()),
		),
	)
	return nil
}
