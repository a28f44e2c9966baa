package types

import (
	"math"
)

// MaxWeight is the fixed-point scale of pool weights: a weight of
// MaxWeight corresponds to 100%. Pool weights live strictly inside
// (0, MaxWeight) and the two asset weights always sum to exactly MaxWeight.
const MaxWeight uint64 = 100_000_000

// WeightCurveType selects how weights move over the sale window.
type WeightCurveType string

const (
	// WeightCurveLinear interpolates linearly between the initial and
	// final weight over [Start, End]. The only curve currently supported.
	WeightCurveLinear WeightCurveType = "linear"
)

// Fee is a rational trade fee, charged on the output side of a trade.
type Fee struct {
	Numerator   uint32 `json:"numerator"`
	Denominator uint32 `json:"denominator"`
}

// DefaultFee returns the default 0.2% trade fee.
func DefaultFee() Fee {
	return Fee{Numerator: 2, Denominator: 1000}
}

// Pool is a two-asset pool whose relative weights move over a block range.
// Reserves are not part of the record; they are the pool sub-account's
// bank balances and are always read live.
type Pool struct {
	Owner         string          `json:"owner"`
	Start         uint64          `json:"start"` // first sale block, inclusive; zero = not scheduled
	End           uint64          `json:"end"`   // last sale block, inclusive
	AssetA        string          `json:"asset_a"`
	AssetB        string          `json:"asset_b"`
	InitialWeight uint64          `json:"initial_weight"` // weight of AssetA at Start
	FinalWeight   uint64          `json:"final_weight"`   // weight of AssetA at End
	WeightCurve   WeightCurveType `json:"weight_curve"`
	Fee           Fee             `json:"fee"`
	FeeCollector  string          `json:"fee_collector"`
}

// Validate checks the structural invariants of the pool record.
func (p Pool) Validate() error {
	if p.AssetA == p.AssetB {
		return ErrInvalidAsset.Wrap("pool assets must differ")
	}
	if err := ValidateBlockRange(p.Start, p.End); err != nil {
		return err
	}
	if err := ValidateWeight(p.InitialWeight); err != nil {
		return err
	}
	if err := ValidateWeight(p.FinalWeight); err != nil {
		return err
	}
	if p.WeightCurve != WeightCurveLinear {
		return ErrInvalidBlockRange.Wrapf("unsupported weight curve %q", p.WeightCurve)
	}
	if p.Fee.Denominator == 0 {
		return ErrInvalidFee.Wrap("fee denominator cannot be zero")
	}
	if uint64(p.Fee.Numerator) >= uint64(p.Fee.Denominator) {
		return ErrInvalidFee.Wrapf("fee %d/%d is not below 100%%", p.Fee.Numerator, p.Fee.Denominator)
	}
	return nil
}

// ValidateWeight requires a weight strictly inside (0, MaxWeight).
func ValidateWeight(w uint64) error {
	if w == 0 || w >= MaxWeight {
		return ErrInvalidWeight.Wrapf("weight %d", w)
	}
	return nil
}

// ValidateBlockRange requires start < end (or both zero, meaning the sale
// is not scheduled yet) with a window that fits in 32 bits.
func ValidateBlockRange(start, end uint64) error {
	if start == 0 && end == 0 {
		return nil
	}
	if start == 0 || start >= end {
		return ErrInvalidBlockRange.Wrapf("start %d, end %d", start, end)
	}
	if end-start > math.MaxUint32 {
		return ErrInvalidBlockRange.Wrapf("window %d exceeds u32 range", end-start)
	}
	return nil
}

// IsScheduled reports whether the sale window has been set.
func (p Pool) IsScheduled() bool {
	return p.Start != 0 || p.End != 0
}

// IsRunning reports whether trading is open at the given block height.
func (p Pool) IsRunning(at uint64) bool {
	return p.IsScheduled() && p.Start <= at && at <= p.End
}

// HasStarted reports whether the sale window has opened by the given height.
func (p Pool) HasStarted(at uint64) bool {
	return p.IsScheduled() && at >= p.Start
}

// HasEnded reports whether the sale window has closed by the given height.
func (p Pool) HasEnded(at uint64) bool {
	return p.IsScheduled() && at > p.End
}

// Contains reports whether the asset is one of the pool's pair.
func (p Pool) Contains(asset string) bool {
	return asset == p.AssetA || asset == p.AssetB
}
