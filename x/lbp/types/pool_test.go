package types_test

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/basil-chain/basil/x/lbp/types"
)

func validPool() types.Pool {
	return types.Pool{
		Owner:         "owner",
		Start:         100,
		End:           200,
		AssetA:        "tokena",
		AssetB:        "tokenb",
		InitialWeight: 20_000_000,
		FinalWeight:   80_000_000,
		WeightCurve:   types.WeightCurveLinear,
		Fee:           types.DefaultFee(),
		FeeCollector:  "collector",
	}
}

func TestPoolValidate(t *testing.T) {
	require.NoError(t, validPool().Validate())

	samePair := validPool()
	samePair.AssetB = samePair.AssetA
	require.ErrorIs(t, samePair.Validate(), types.ErrInvalidAsset)

	zeroWeight := validPool()
	zeroWeight.InitialWeight = 0
	require.ErrorIs(t, zeroWeight.Validate(), types.ErrInvalidWeight)

	fullWeight := validPool()
	fullWeight.FinalWeight = types.MaxWeight
	require.ErrorIs(t, fullWeight.Validate(), types.ErrInvalidWeight)

	badFee := validPool()
	badFee.Fee = types.Fee{Numerator: 1, Denominator: 0}
	require.ErrorIs(t, badFee.Validate(), types.ErrInvalidFee)

	confiscatoryFee := validPool()
	confiscatoryFee.Fee = types.Fee{Numerator: 5, Denominator: 5}
	require.ErrorIs(t, confiscatoryFee.Validate(), types.ErrInvalidFee)

	badCurve := validPool()
	badCurve.WeightCurve = "cubic"
	require.Error(t, badCurve.Validate())
}

func TestValidateBlockRange(t *testing.T) {
	require.NoError(t, types.ValidateBlockRange(100, 200))
	// Both zero means not scheduled yet.
	require.NoError(t, types.ValidateBlockRange(0, 0))

	require.ErrorIs(t, types.ValidateBlockRange(0, 200), types.ErrInvalidBlockRange)
	require.ErrorIs(t, types.ValidateBlockRange(200, 100), types.ErrInvalidBlockRange)
	require.ErrorIs(t, types.ValidateBlockRange(100, 100), types.ErrInvalidBlockRange)
	require.ErrorIs(t, types.ValidateBlockRange(1, 2+gomath.MaxUint32), types.ErrInvalidBlockRange)
}

func TestPoolLifecyclePredicates(t *testing.T) {
	pool := validPool()

	require.True(t, pool.IsScheduled())
	require.False(t, pool.IsRunning(99))
	require.True(t, pool.IsRunning(100))
	require.True(t, pool.IsRunning(200))
	require.False(t, pool.IsRunning(201))
	require.False(t, pool.HasStarted(99))
	require.True(t, pool.HasStarted(100))
	require.False(t, pool.HasEnded(200))
	require.True(t, pool.HasEnded(201))

	unscheduled := validPool()
	unscheduled.Start, unscheduled.End = 0, 0
	require.False(t, unscheduled.IsScheduled())
	require.False(t, unscheduled.IsRunning(150))
	require.False(t, unscheduled.HasStarted(150))
	require.False(t, unscheduled.HasEnded(150))
}
