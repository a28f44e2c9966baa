package keeper

import (
	"context"
	"fmt"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/basil-chain/basil/x/stableswap/types"
)

// CreatePool creates a multi-asset stableswap pool, registers its share
// denom, seeds it with the creator's initial deposit, and mints the
// bootstrap share issuance. Only the configured authority may create
// pools.
func (k Keeper) CreatePool(
	ctx context.Context,
	creator sdk.AccAddress,
	pool types.PoolInfo,
	initialDeposit sdk.Coins,
) error {
	if !k.authority.Empty() && !creator.Equals(k.authority) {
		return fmt.Errorf("CreatePool: only the authority may create pools")
	}
	if err := pool.Validate(); err != nil {
		return err
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return fmt.Errorf("CreatePool: get params: %w", err)
	}
	if pool.Amplification < params.MinAmplification || pool.Amplification > params.MaxAmplification {
		return types.ErrInvalidAmplification.Wrapf(
			"%d outside [%d, %d]", pool.Amplification, params.MinAmplification, params.MaxAmplification,
		)
	}
	for _, asset := range pool.Assets {
		if !k.registry.Exists(ctx, asset) {
			return types.ErrAssetNotRegistered.Wrap(asset)
		}
	}
	if k.HasPool(ctx, pool.ShareDenom) {
		return types.ErrPoolAlreadyExists.Wrap(pool.ShareDenom)
	}

	// An initial deposit is optional. An empty pool is bootstrapped later
	// through AddLiquidity, whose first deposit mints the full invariant.
	shares := math.ZeroInt()
	if !initialDeposit.IsZero() {
		deposits := make([]math.Int, len(pool.Assets))
		for i, asset := range pool.Assets {
			amount := initialDeposit.AmountOf(asset)
			if amount.LT(params.MinPoolLiquidity) {
				return types.ErrInsufficientLiquidity.Wrapf(
					"initial %s deposit %s below minimum %s", asset, amount, params.MinPoolLiquidity,
				)
			}
			deposits[i] = amount
		}

		zeroes := make([]math.Int, len(pool.Assets))
		for i := range zeroes {
			zeroes[i] = math.ZeroInt()
		}
		shares, err = calcShares(zeroes, deposits, pool.Amplification, math.ZeroInt())
		if err != nil {
			return err
		}
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	if err := k.registry.CreateSharedAsset(cacheCtx, pool.ShareDenom); err != nil {
		return fmt.Errorf("CreatePool: register share denom: %w", err)
	}
	if !initialDeposit.IsZero() {
		poolAddr := PoolAddress(pool.ShareDenom)
		if err := k.bankKeeper.SendCoins(cacheCtx, creator, poolAddr, initialDeposit); err != nil {
			return types.ErrInsufficientLiquidity.Wrapf("transfer initial deposit: %v", err)
		}
		if err := k.mintSharesTo(cacheCtx, creator, pool.ShareDenom, shares); err != nil {
			return err
		}
	}
	if err := k.SetPool(cacheCtx, pool); err != nil {
		return err
	}
	write()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyShareDenom, pool.ShareDenom),
			sdk.NewAttribute(types.AttributeKeyAssets, strings.Join(pool.Assets, ",")),
			sdk.NewAttribute(types.AttributeKeyProvider, creator.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)
	return nil
}

func (k Keeper) mintSharesTo(ctx context.Context, to sdk.AccAddress, shareDenom string, shares math.Int) error {
	if !shares.IsPositive() {
		return types.ErrZeroAmount.Wrap("no shares to mint")
	}
	minted := sdk.NewCoins(sdk.NewCoin(shareDenom, shares))
	if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, minted); err != nil {
		return fmt.Errorf("mint shares: %w", err)
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, to, minted); err != nil {
		return fmt.Errorf("distribute shares: %w", err)
	}
	return nil
}

func (k Keeper) burnSharesFrom(ctx context.Context, from sdk.AccAddress, shareDenom string, shares math.Int) error {
	burned := sdk.NewCoins(sdk.NewCoin(shareDenom, shares))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, from, types.ModuleName, burned); err != nil {
		return types.ErrInsufficientShares.Wrapf("collect shares: %v", err)
	}
	if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, burned); err != nil {
		return fmt.Errorf("burn shares: %w", err)
	}
	return nil
}
