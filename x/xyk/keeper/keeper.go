package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/basil-chain/basil/x/xyk/types"
)

// Keeper of the xyk store
type Keeper struct {
	storeKey   storetypes.StoreKey
	bankKeeper types.BankKeeper
	registry   types.AssetRegistry
}

// NewKeeper creates a new xyk Keeper instance
func NewKeeper(
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	registry types.AssetRegistry,
) *Keeper {
	return &Keeper{
		storeKey:   key,
		bankKeeper: bankKeeper,
		registry:   registry,
	}
}

// getStore returns the KVStore for the xyk module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// PoolAddress derives the sub-account holding a pool's reserves.
func PoolAddress(assetA, assetB string) sdk.AccAddress {
	return address.Module(types.ModuleName, types.PairKey(assetA, assetB))
}

// GetPool retrieves the pool trading the given pair, in either asset order.
func (k Keeper) GetPool(ctx context.Context, assetA, assetB string) (types.Pool, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.PoolKey(assetA, assetB))
	if bz == nil {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pair %s/%s", assetA, assetB)
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.Pool{}, fmt.Errorf("GetPool: unmarshal pair %s/%s: %w", assetA, assetB, err)
	}
	return pool, nil
}

// SetPool saves a pool to the store
func (k Keeper) SetPool(ctx context.Context, pool types.Pool) error {
	store := k.getStore(ctx)
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("SetPool: marshal pair %s/%s: %w", pool.AssetA, pool.AssetB, err)
	}
	store.Set(types.PoolKey(pool.AssetA, pool.AssetB), bz)
	return nil
}

// HasPool reports whether a pool exists for the pair.
func (k Keeper) HasPool(ctx context.Context, assetA, assetB string) bool {
	return k.getStore(ctx).Has(types.PoolKey(assetA, assetB))
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
