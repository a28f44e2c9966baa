package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/basil-chain/basil/x/stableswap/types"
)

// AddLiquidity deposits any subset of the pool's assets, in any ratio,
// and mints shares priced off the invariant growth. Unbalanced deposits
// are allowed; the invariant math charges the implicit rebalancing cost.
func (k Keeper) AddLiquidity(
	ctx context.Context,
	provider sdk.AccAddress,
	shareDenom string,
	deposit sdk.Coins,
) (math.Int, error) {
	pool, err := k.GetPool(ctx, shareDenom)
	if err != nil {
		return math.Int{}, err
	}
	if deposit.IsZero() {
		return math.Int{}, types.ErrZeroAmount.Wrap("empty deposit")
	}
	for _, coin := range deposit {
		if !pool.Contains(coin.Denom) {
			return math.Int{}, types.ErrAssetNotInPool.Wrap(coin.Denom)
		}
	}

	reserves := k.poolReserves(ctx, pool)
	oldReserves := make([]math.Int, len(pool.Assets))
	deposits := make([]math.Int, len(pool.Assets))
	for i, asset := range pool.Assets {
		oldReserves[i] = reserves[i].Amount
		deposits[i] = deposit.AmountOf(asset)
	}

	issuance := k.bankKeeper.GetSupply(ctx, shareDenom).Amount
	if issuance.IsZero() {
		// The bootstrap deposit sets the pool's working range and must
		// cover every asset at or above the minimum pool liquidity.
		params, err := k.GetParams(ctx)
		if err != nil {
			return math.Int{}, fmt.Errorf("AddLiquidity: get params: %w", err)
		}
		for i, asset := range pool.Assets {
			if deposits[i].LT(params.MinPoolLiquidity) {
				return math.Int{}, types.ErrInsufficientLiquidity.Wrapf(
					"bootstrap %s deposit %s below minimum %s", asset, deposits[i], params.MinPoolLiquidity,
				)
			}
		}
	}
	shares, err := calcShares(oldReserves, deposits, pool.Amplification, issuance)
	if err != nil {
		return math.Int{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	poolAddr := PoolAddress(shareDenom)
	if err := k.bankKeeper.SendCoins(cacheCtx, provider, poolAddr, deposit); err != nil {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf("transfer deposit: %v", err)
	}
	if err := k.mintSharesTo(cacheCtx, provider, shareDenom, shares); err != nil {
		return math.Int{}, err
	}
	write()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityAdded,
			sdk.NewAttribute(types.AttributeKeyShareDenom, shareDenom),
			sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)
	return shares, nil
}

// RemoveLiquidity burns the provider's shares and pays out a proportional
// slice of every reserve, less the pool's withdraw fee. A withdrawal may
// take the pool to exactly zero issuance, but never into the dust band
// below the minimum pool liquidity.
func (k Keeper) RemoveLiquidity(
	ctx context.Context,
	provider sdk.AccAddress,
	shareDenom string,
	shares math.Int,
) (sdk.Coins, error) {
	pool, err := k.GetPool(ctx, shareDenom)
	if err != nil {
		return nil, err
	}
	if shares.IsNil() || !shares.IsPositive() {
		return nil, types.ErrZeroAmount.Wrap("no shares to burn")
	}

	issuance := k.bankKeeper.GetSupply(ctx, shareDenom).Amount
	if shares.GT(issuance) {
		return nil, types.ErrInsufficientShares.Wrapf(
			"%s exceeds issuance %s", shares, issuance,
		)
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: get params: %w", err)
	}
	remaining := issuance.Sub(shares)
	if remaining.IsPositive() && remaining.LT(params.MinPoolLiquidity) {
		return nil, types.ErrPoolDrained.Wrapf(
			"remaining issuance %s below minimum %s", remaining, params.MinPoolLiquidity,
		)
	}

	keep := math.LegacyOneDec().Sub(pool.WithdrawFee)
	reserves := k.poolReserves(ctx, pool)
	payout := sdk.NewCoins()
	for _, reserve := range reserves {
		amount := reserve.Amount.Mul(shares).Quo(issuance)
		net := math.LegacyNewDecFromInt(amount).Mul(keep).TruncateInt()
		if net.IsPositive() {
			payout = payout.Add(sdk.NewCoin(reserve.Denom, net))
		}
	}
	if payout.IsZero() {
		return nil, types.ErrZeroAmount.Wrap("withdrawal yields no output")
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	if err := k.burnSharesFrom(cacheCtx, provider, shareDenom, shares); err != nil {
		return nil, err
	}
	poolAddr := PoolAddress(shareDenom)
	if err := k.bankKeeper.SendCoins(cacheCtx, poolAddr, provider, payout); err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: payout: %w", err)
	}
	write()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityRemoved,
			sdk.NewAttribute(types.AttributeKeyShareDenom, shareDenom),
			sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)
	return payout, nil
}
