package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	testkeeper "github.com/basil-chain/basil/testutil/keeper"
	"github.com/basil-chain/basil/x/lbp/keeper"
	"github.com/basil-chain/basil/x/lbp/types"
)

func setupLBP(t *testing.T) (*testkeeper.Fixture, sdk.AccAddress, types.Pool) {
	t.Helper()
	f := testkeeper.NewFixture(t)
	owner := testkeeper.Addr("owner")

	f.Registry.Register(f.Ctx, "tokena", "tokenb")
	f.Bank.FundAccount(f.Ctx, owner, sdk.NewCoins(
		sdk.NewCoin("tokena", math.NewInt(1_000_000_000)),
		sdk.NewCoin("tokenb", math.NewInt(1_000_000_000)),
	))

	pool := types.Pool{
		Owner:         owner.String(),
		Start:         100,
		End:           200,
		AssetA:        "tokena",
		AssetB:        "tokenb",
		InitialWeight: 20_000_000,
		FinalWeight:   80_000_000,
		WeightCurve:   types.WeightCurveLinear,
		Fee:           types.DefaultFee(),
		FeeCollector:  testkeeper.Addr("collector").String(),
	}
	return f, owner, pool
}

func TestCreatePool(t *testing.T) {
	f, owner, pool := setupLBP(t)

	err := f.LBP.CreatePool(f.Ctx, owner, pool, math.NewInt(100_000_000), math.NewInt(100_000_000))
	require.NoError(t, err)

	stored, err := f.LBP.GetPool(f.Ctx, "tokena", "tokenb")
	require.NoError(t, err)
	require.Equal(t, pool, stored)

	// Lookup works in either asset order.
	flipped, err := f.LBP.GetPool(f.Ctx, "tokenb", "tokena")
	require.NoError(t, err)
	require.Equal(t, pool, flipped)

	poolAddr := keeper.PoolAddress("tokena", "tokenb")
	require.Equal(t, math.NewInt(100_000_000), f.Bank.GetBalance(f.Ctx, poolAddr, "tokena").Amount)
	require.Equal(t, math.NewInt(100_000_000), f.Bank.GetBalance(f.Ctx, poolAddr, "tokenb").Amount)
}

func TestCreatePoolRejectsDuplicate(t *testing.T) {
	f, owner, pool := setupLBP(t)

	require.NoError(t, f.LBP.CreatePool(f.Ctx, owner, pool, math.NewInt(100_000_000), math.NewInt(100_000_000)))
	err := f.LBP.CreatePool(f.Ctx, owner, pool, math.NewInt(100_000_000), math.NewInt(100_000_000))
	require.ErrorIs(t, err, types.ErrPoolAlreadyExists)
}

func TestCreatePoolRejectsUnregisteredAsset(t *testing.T) {
	f, owner, pool := setupLBP(t)
	pool.AssetB = "unknown"

	err := f.LBP.CreatePool(f.Ctx, owner, pool, math.NewInt(100_000_000), math.NewInt(100_000_000))
	require.ErrorIs(t, err, types.ErrAssetNotRegistered)
}

func TestCreatePoolRejectsDustLiquidity(t *testing.T) {
	f, owner, pool := setupLBP(t)

	err := f.LBP.CreatePool(f.Ctx, owner, pool, math.NewInt(100), math.NewInt(100_000_000))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestCreatePoolRejectsInvalidWeights(t *testing.T) {
	f, owner, pool := setupLBP(t)
	pool.InitialWeight = types.MaxWeight

	err := f.LBP.CreatePool(f.Ctx, owner, pool, math.NewInt(100_000_000), math.NewInt(100_000_000))
	require.ErrorIs(t, err, types.ErrInvalidWeight)
}

func TestUpdatePoolData(t *testing.T) {
	f, owner, pool := setupLBP(t)
	require.NoError(t, f.LBP.CreatePool(f.Ctx, owner, pool, math.NewInt(100_000_000), math.NewInt(100_000_000)))

	newEnd := uint64(300)
	newFinal := uint64(60_000_000)
	err := f.LBP.UpdatePoolData(f.AtHeight(50), owner, "tokena", "tokenb", keeper.PoolUpdate{
		End:         &newEnd,
		FinalWeight: &newFinal,
	})
	require.NoError(t, err)

	stored, err := f.LBP.GetPool(f.Ctx, "tokena", "tokenb")
	require.NoError(t, err)
	require.Equal(t, newEnd, stored.End)
	require.Equal(t, newFinal, stored.FinalWeight)
}

func TestUpdatePoolDataFrozenAfterStart(t *testing.T) {
	f, owner, pool := setupLBP(t)
	require.NoError(t, f.LBP.CreatePool(f.Ctx, owner, pool, math.NewInt(100_000_000), math.NewInt(100_000_000)))

	newEnd := uint64(300)
	err := f.LBP.UpdatePoolData(f.AtHeight(150), owner, "tokena", "tokenb", keeper.PoolUpdate{End: &newEnd})
	require.ErrorIs(t, err, types.ErrSaleStarted)
}

func TestUpdatePoolDataOwnerOnly(t *testing.T) {
	f, owner, pool := setupLBP(t)
	require.NoError(t, f.LBP.CreatePool(f.Ctx, owner, pool, math.NewInt(100_000_000), math.NewInt(100_000_000)))

	newEnd := uint64(300)
	err := f.LBP.UpdatePoolData(f.AtHeight(50), testkeeper.Addr("mallory"), "tokena", "tokenb", keeper.PoolUpdate{End: &newEnd})
	require.ErrorIs(t, err, types.ErrNotOwner)
}

func TestAddLiquidity(t *testing.T) {
	f, owner, pool := setupLBP(t)
	require.NoError(t, f.LBP.CreatePool(f.Ctx, owner, pool, math.NewInt(100_000_000), math.NewInt(100_000_000)))

	err := f.LBP.AddLiquidity(f.AtHeight(150), owner, "tokena", "tokenb", math.NewInt(50_000_000), math.ZeroInt())
	require.NoError(t, err)

	poolAddr := keeper.PoolAddress("tokena", "tokenb")
	require.Equal(t, math.NewInt(150_000_000), f.Bank.GetBalance(f.Ctx, poolAddr, "tokena").Amount)
}

func TestAddLiquidityAfterEnd(t *testing.T) {
	f, owner, pool := setupLBP(t)
	require.NoError(t, f.LBP.CreatePool(f.Ctx, owner, pool, math.NewInt(100_000_000), math.NewInt(100_000_000)))

	err := f.LBP.AddLiquidity(f.AtHeight(250), owner, "tokena", "tokenb", math.NewInt(50_000_000), math.ZeroInt())
	require.Error(t, err)
}

func TestRemoveLiquidityWhileRunning(t *testing.T) {
	f, owner, pool := setupLBP(t)
	require.NoError(t, f.LBP.CreatePool(f.Ctx, owner, pool, math.NewInt(100_000_000), math.NewInt(100_000_000)))

	err := f.LBP.RemoveLiquidity(f.AtHeight(150), owner, "tokena", "tokenb")
	require.ErrorIs(t, err, types.ErrSaleNotEnded)
}

func TestRemoveLiquidityDestroysPool(t *testing.T) {
	f, owner, pool := setupLBP(t)
	require.NoError(t, f.LBP.CreatePool(f.Ctx, owner, pool, math.NewInt(100_000_000), math.NewInt(100_000_000)))

	before := f.Bank.GetBalance(f.Ctx, owner, "tokena").Amount

	err := f.LBP.RemoveLiquidity(f.AtHeight(250), owner, "tokena", "tokenb")
	require.NoError(t, err)

	// All reserves returned, record gone.
	require.Equal(t, before.Add(math.NewInt(100_000_000)), f.Bank.GetBalance(f.Ctx, owner, "tokena").Amount)
	require.False(t, f.LBP.HasPool(f.Ctx, "tokena", "tokenb"))

	poolAddr := keeper.PoolAddress("tokena", "tokenb")
	require.True(t, f.Bank.GetBalance(f.Ctx, poolAddr, "tokena").Amount.IsZero())
	require.True(t, f.Bank.GetBalance(f.Ctx, poolAddr, "tokenb").Amount.IsZero())
}
