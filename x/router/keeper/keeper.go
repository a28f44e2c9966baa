package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/basil-chain/basil/x/router/types"
)

// Keeper orchestrates multi-hop swaps over the registered AMM engines. It
// holds no pool state of its own; routes exist only for the duration of a
// call.
type Keeper struct {
	storeKey  storetypes.StoreKey
	executors map[types.PoolKind]types.PoolExecutor
	metrics   *RouterMetrics
}

// NewKeeper creates a new router Keeper instance
func NewKeeper(key storetypes.StoreKey) *Keeper {
	return &Keeper{
		storeKey:  key,
		executors: make(map[types.PoolKind]types.PoolExecutor),
		metrics:   NewRouterMetrics(),
	}
}

// RegisterExecutor wires an AMM engine under its pool-kind tag. Called at
// app construction; a kind appearing in a route without a registered
// executor fails the whole route with ErrPoolNotSupported.
func (k *Keeper) RegisterExecutor(kind types.PoolKind, executor types.PoolExecutor) {
	k.executors[kind] = executor
}

// Executor returns the engine registered for the given pool kind.
func (k Keeper) Executor(kind types.PoolKind) (types.PoolExecutor, error) {
	executor, ok := k.executors[kind]
	if !ok {
		return nil, types.ErrPoolNotSupported.Wrapf("pool kind %q", kind)
	}
	return executor, nil
}

// getStore returns the KVStore for the router module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
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
