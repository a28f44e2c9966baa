package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	lbpkeeper "github.com/basil-chain/basil/x/lbp/keeper"
	lbptypes "github.com/basil-chain/basil/x/lbp/types"
	routerkeeper "github.com/basil-chain/basil/x/router/keeper"
	routertypes "github.com/basil-chain/basil/x/router/types"
	stableswapkeeper "github.com/basil-chain/basil/x/stableswap/keeper"
	stableswaptypes "github.com/basil-chain/basil/x/stableswap/types"
	xykkeeper "github.com/basil-chain/basil/x/xyk/keeper"
	xyktypes "github.com/basil-chain/basil/x/xyk/types"
)

// bankStoreKey backs the test bank and registry; it shares the test
// multistore with the module stores so cache contexts cover all of them.
const bankStoreKey = "testbank"

// Fixture bundles the full set of keepers wired against one in-memory
// multistore, the way the app would wire them.
type Fixture struct {
	Ctx        sdk.Context
	Bank       *TestBankKeeper
	Registry   *TestAssetRegistry
	Router     *routerkeeper.Keeper
	LBP        *lbpkeeper.Keeper
	Stableswap *stableswapkeeper.Keeper
	XYK        *xykkeeper.Keeper
}

// NewFixture creates every module keeper over a fresh in-memory IAVL
// multistore and registers the three engines with the router.
func NewFixture(t testing.TB) *Fixture {
	t.Helper()

	bankKey := storetypes.NewKVStoreKey(bankStoreKey)
	routerKey := storetypes.NewKVStoreKey(routertypes.ModuleName)
	lbpKey := storetypes.NewKVStoreKey(lbptypes.ModuleName)
	stableswapKey := storetypes.NewKVStoreKey(stableswaptypes.StoreKey)
	xykKey := storetypes.NewKVStoreKey(xyktypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	for _, key := range []*storetypes.KVStoreKey{bankKey, routerKey, lbpKey, stableswapKey, xykKey} {
		stateStore.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	}
	require.NoError(t, stateStore.LoadLatestVersion())

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())

	bank := NewTestBankKeeper(bankKey)
	registry := NewTestAssetRegistry(bankKey)

	lbp := lbpkeeper.NewKeeper(lbpKey, bank, registry, nil)
	stableswap := stableswapkeeper.NewKeeper(stableswapKey, bank, registry, nil)
	xyk := xykkeeper.NewKeeper(xykKey, bank, registry)

	router := routerkeeper.NewKeeper(routerKey)
	router.RegisterExecutor(routertypes.KindLBP, lbp)
	router.RegisterExecutor(routertypes.KindStableswap, stableswap)
	router.RegisterExecutor(routertypes.KindXYK, xyk)

	return &Fixture{
		Ctx:        ctx,
		Bank:       bank,
		Registry:   registry,
		Router:     router,
		LBP:        lbp,
		Stableswap: stableswap,
		XYK:        xyk,
	}
}

// AtHeight returns a copy of the fixture context at the given block height.
func (f *Fixture) AtHeight(height int64) sdk.Context {
	return f.Ctx.WithBlockHeight(height)
}

// Addr builds a deterministic test account address.
func Addr(name string) sdk.AccAddress {
	addr := make([]byte, 20)
	copy(addr, name)
	return addr
}
