package keeper

import (
	"github.com/basil-chain/basil/x/lbp/types"
	"github.com/basil-chain/basil/x/shared/safemath"
)

// PoolWeightsAt computes the weights of (AssetA, AssetB) at the given
// block height. Weights are never stored; they are recomputed from the
// pool record on every access so there is no cached state to go stale.
// Outside the sale window the boundary weight applies. The two returned
// weights always sum to exactly types.MaxWeight.
func PoolWeightsAt(pool types.Pool, at uint64) (weightA, weightB uint64, err error) {
	switch {
	case !pool.IsScheduled() || at <= pool.Start:
		weightA = pool.InitialWeight
	case at >= pool.End:
		weightA = pool.FinalWeight
	default:
		weightA, err = interpolateLinear(pool.Start, pool.End, pool.InitialWeight, pool.FinalWeight, at)
		if err != nil {
			return 0, 0, types.ErrOverflow.Wrapf("weight interpolation: %v", err)
		}
	}
	return weightA, types.MaxWeight - weightA, nil
}

// interpolateLinear evaluates
//
//	initial + (final - initial) * (at - start) / (end - start)
//
// with checked arithmetic. Callers guarantee start < at < end.
func interpolateLinear(start, end, initial, final, at uint64) (uint64, error) {
	span := end - start
	elapsed := at - start

	var distance uint64
	if final >= initial {
		distance = final - initial
	} else {
		distance = initial - final
	}
	scaled, err := safemath.MulUint64(distance, elapsed)
	if err != nil {
		return 0, err
	}
	delta := scaled / span

	if final >= initial {
		return safemath.AddUint64(initial, delta)
	}
	return safemath.SubUint64(initial, delta)
}
