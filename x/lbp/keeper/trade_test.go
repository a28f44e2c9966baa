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

// tradingLBP creates a running pool with 100M/100M reserves and a funded
// trader, returning a context inside the sale window where the weights
// sit at 50/50.
func tradingLBP(t *testing.T) (*testkeeper.Fixture, sdk.Context, sdk.AccAddress) {
	t.Helper()
	f, owner, pool := setupLBP(t)
	require.NoError(t, f.LBP.CreatePool(f.Ctx, owner, pool, math.NewInt(100_000_000), math.NewInt(100_000_000)))

	trader := testkeeper.Addr("trader")
	f.Bank.FundAccount(f.Ctx, trader, sdk.NewCoins(
		sdk.NewCoin("tokena", math.NewInt(50_000_000)),
		sdk.NewCoin("tokenb", math.NewInt(50_000_000)),
	))
	return f, f.AtHeight(150), trader
}

func TestSell(t *testing.T) {
	f, ctx, trader := tradingLBP(t)

	trade, err := f.LBP.Sell(ctx, trader, "tokena", "tokenb", math.NewInt(10_000), math.ZeroInt())
	require.NoError(t, err)

	// At 50/50 weights the quote is constant product: gross 9999, fee
	// ceil(9999 * 2/1000) = 20, net 9979.
	require.Equal(t, math.NewInt(9_979), trade.AmountOut)
	require.Equal(t, math.NewInt(20), trade.FeeAmount)
	require.Equal(t, "tokenb", trade.FeeAsset)

	require.Equal(t, math.NewInt(50_000_000-10_000), f.Bank.GetBalance(ctx, trader, "tokena").Amount)
	require.Equal(t, math.NewInt(50_000_000+9_979), f.Bank.GetBalance(ctx, trader, "tokenb").Amount)

	// The fee left the pool in the output asset.
	collector := testkeeper.Addr("collector")
	require.Equal(t, math.NewInt(20), f.Bank.GetBalance(ctx, collector, "tokenb").Amount)

	poolAddr := keeper.PoolAddress("tokena", "tokenb")
	require.Equal(t, math.NewInt(100_000_000+10_000), f.Bank.GetBalance(ctx, poolAddr, "tokena").Amount)
	require.Equal(t, math.NewInt(100_000_000-9_999), f.Bank.GetBalance(ctx, poolAddr, "tokenb").Amount)
}

func TestSellLimitNotReached(t *testing.T) {
	f, ctx, trader := tradingLBP(t)

	_, err := f.LBP.Sell(ctx, trader, "tokena", "tokenb", math.NewInt(10_000), math.NewInt(999_999))
	require.ErrorIs(t, err, types.ErrLimitNotReached)

	// A rejected trade moves nothing.
	require.Equal(t, math.NewInt(50_000_000), f.Bank.GetBalance(ctx, trader, "tokena").Amount)
}

func TestBuy(t *testing.T) {
	f, ctx, trader := tradingLBP(t)

	trade, err := f.LBP.Buy(ctx, trader, "tokena", "tokenb", math.NewInt(10_000), math.NewInt(1_000_000))
	require.NoError(t, err)

	// Gross in is 10002 (rounded up), fee ceil(10002 * 2/1000) = 21 on
	// the input side, total 10023.
	require.Equal(t, math.NewInt(10_023), trade.AmountIn)
	require.Equal(t, math.NewInt(21), trade.FeeAmount)
	require.Equal(t, "tokena", trade.FeeAsset)

	require.Equal(t, math.NewInt(50_000_000+10_000), f.Bank.GetBalance(ctx, trader, "tokenb").Amount)
	require.Equal(t, math.NewInt(50_000_000-10_023), f.Bank.GetBalance(ctx, trader, "tokena").Amount)

	// The fee went to the collector in the input asset; the pool got the rest.
	collector := testkeeper.Addr("collector")
	require.Equal(t, math.NewInt(21), f.Bank.GetBalance(ctx, collector, "tokena").Amount)

	poolAddr := keeper.PoolAddress("tokena", "tokenb")
	require.Equal(t, math.NewInt(100_000_000+10_002), f.Bank.GetBalance(ctx, poolAddr, "tokena").Amount)
}

func TestBuyLimitExceeded(t *testing.T) {
	f, ctx, trader := tradingLBP(t)

	_, err := f.LBP.Buy(ctx, trader, "tokena", "tokenb", math.NewInt(10_000), math.NewInt(5_000))
	require.ErrorIs(t, err, types.ErrLimitExceeded)
}

func TestTradeOutsideSaleWindow(t *testing.T) {
	f, _, trader := tradingLBP(t)

	for _, height := range []int64{50, 250} {
		_, err := f.LBP.Sell(f.AtHeight(height), trader, "tokena", "tokenb", math.NewInt(10_000), math.ZeroInt())
		require.ErrorIs(t, err, types.ErrSaleNotRunning, "height %d", height)
	}
}

func TestTradeBelowMinimum(t *testing.T) {
	f, ctx, trader := tradingLBP(t)

	_, err := f.LBP.Sell(ctx, trader, "tokena", "tokenb", math.NewInt(999), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrMinTradingLimit)

	_, err = f.LBP.Buy(ctx, trader, "tokena", "tokenb", math.NewInt(999), math.NewInt(1_000_000))
	require.ErrorIs(t, err, types.ErrMinTradingLimit)
}

func TestTradeRatioGuards(t *testing.T) {
	f, ctx, trader := tradingLBP(t)
	f.Bank.FundAccount(ctx, trader, sdk.NewCoins(sdk.NewCoin("tokena", math.NewInt(100_000_000))))

	// More than a third of the input reserve.
	_, err := f.LBP.Sell(ctx, trader, "tokena", "tokenb", math.NewInt(40_000_000), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrMaxInRatioExceeded)

	// More than a third of the output reserve.
	_, err = f.LBP.Buy(ctx, trader, "tokena", "tokenb", math.NewInt(40_000_000), math.NewInt(100_000_000))
	require.ErrorIs(t, err, types.ErrMaxOutRatioExceeded)
}

func TestSellWeightSkewMovesPrice(t *testing.T) {
	f, owner, pool := setupLBP(t)
	require.NoError(t, f.LBP.CreatePool(f.Ctx, owner, pool, math.NewInt(100_000_000), math.NewInt(100_000_000)))

	trader := testkeeper.Addr("trader")
	f.Bank.FundAccount(f.Ctx, trader, sdk.NewCoins(sdk.NewCoin("tokena", math.NewInt(1_000_000))))

	// Early in the sale tokena carries 20% weight, so selling it is
	// expensive; late in the sale it carries 80% and the same sell
	// yields much more. Quotes only, no settlement.
	early, _, err := f.LBP.CalculateSell(f.AtHeight(100), "tokena", "tokenb", math.NewInt(100_000))
	require.NoError(t, err)
	late, _, err := f.LBP.CalculateSell(f.AtHeight(200), "tokena", "tokenb", math.NewInt(100_000))
	require.NoError(t, err)
	require.True(t, late.GT(early), "late %s should beat early %s", late, early)
}
