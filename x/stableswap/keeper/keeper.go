package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/basil-chain/basil/x/stableswap/types"
)

// Keeper of the stableswap store
type Keeper struct {
	storeKey   storetypes.StoreKey
	bankKeeper types.BankKeeper
	registry   types.AssetRegistry
	authority  sdk.AccAddress
}

// NewKeeper creates a new stableswap Keeper instance. The authority is
// the only account allowed to create pools; an empty authority disables
// the check.
func NewKeeper(
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	registry types.AssetRegistry,
	authority sdk.AccAddress,
) *Keeper {
	return &Keeper{
		storeKey:   key,
		bankKeeper: bankKeeper,
		registry:   registry,
		authority:  authority,
	}
}

// getStore returns the KVStore for the stableswap module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// PoolAddress derives the sub-account holding a pool's reserves.
func PoolAddress(shareDenom string) sdk.AccAddress {
	return address.Module(types.ModuleName, []byte(shareDenom))
}

// GetPool retrieves the pool identified by its share denom.
func (k Keeper) GetPool(ctx context.Context, shareDenom string) (types.PoolInfo, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.PoolKey(shareDenom))
	if bz == nil {
		return types.PoolInfo{}, types.ErrPoolNotFound.Wrap(shareDenom)
	}
	var pool types.PoolInfo
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.PoolInfo{}, fmt.Errorf("GetPool: unmarshal %s: %w", shareDenom, err)
	}
	return pool, nil
}

// SetPool saves a pool to the store
func (k Keeper) SetPool(ctx context.Context, pool types.PoolInfo) error {
	store := k.getStore(ctx)
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("SetPool: marshal %s: %w", pool.ShareDenom, err)
	}
	store.Set(types.PoolKey(pool.ShareDenom), bz)
	return nil
}

// HasPool reports whether a pool exists for the share denom.
func (k Keeper) HasPool(ctx context.Context, shareDenom string) bool {
	return k.getStore(ctx).Has(types.PoolKey(shareDenom))
}

// GetParams returns the current parameters from the store
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams(), nil
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.Params{}, fmt.Errorf("GetParams: unmarshal: %w", err)
	}
	return params, nil
}

// SetParams sets the parameters in the store
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	store := k.getStore(ctx)
	bz, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("SetParams: marshal: %w", err)
	}
	store.Set(types.ParamsKey, bz)
	return nil
}

// poolReserves reads the live reserves of every pool asset, in asset order.
func (k Keeper) poolReserves(ctx context.Context, pool types.PoolInfo) []sdk.Coin {
	poolAddr := PoolAddress(pool.ShareDenom)
	reserves := make([]sdk.Coin, len(pool.Assets))
	for i, asset := range pool.Assets {
		reserves[i] = k.bankKeeper.GetBalance(ctx, poolAddr, asset)
	}
	return reserves
}
