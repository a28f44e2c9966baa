package keeper

import (
	"context"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// TestAssetRegistry is a store-backed asset registry so registrations
// made inside a cache context roll back with it.
type TestAssetRegistry struct {
	storeKey storetypes.StoreKey
}

func NewTestAssetRegistry(key storetypes.StoreKey) *TestAssetRegistry {
	return &TestAssetRegistry{storeKey: key}
}

func registryKey(denom string) []byte {
	return []byte("r/" + denom)
}

func (r *TestAssetRegistry) store(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(r.storeKey)
}

// Exists reports whether the denom has been registered.
func (r *TestAssetRegistry) Exists(ctx context.Context, denom string) bool {
	return r.store(ctx).Has(registryKey(denom))
}

// CreateSharedAsset registers a denom, failing on duplicates.
func (r *TestAssetRegistry) CreateSharedAsset(ctx context.Context, denom string) error {
	if r.Exists(ctx, denom) {
		return fmt.Errorf("asset %s already registered", denom)
	}
	r.store(ctx).Set(registryKey(denom), []byte{1})
	return nil
}

// Register seeds denoms directly, for test setup.
func (r *TestAssetRegistry) Register(ctx context.Context, denoms ...string) {
	for _, denom := range denoms {
		r.store(ctx).Set(registryKey(denom), []byte{1})
	}
}
