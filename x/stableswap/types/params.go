package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Params holds the stableswap module parameters.
type Params struct {
	// MinTradingLimit is the smallest trade amount the engine accepts.
	MinTradingLimit math.Int `json:"min_trading_limit"`
	// MinPoolLiquidity is the smallest share issuance a pool may be left with.
	MinPoolLiquidity math.Int `json:"min_pool_liquidity"`
	// MaxInRatio bounds a sell to reserve_in / MaxInRatio.
	MaxInRatio uint64 `json:"max_in_ratio"`
	// MaxOutRatio bounds a buy to reserve_out / MaxOutRatio.
	MaxOutRatio uint64 `json:"max_out_ratio"`
	// MinAmplification and MaxAmplification bound pool amplification.
	MinAmplification uint64 `json:"min_amplification"`
	MaxAmplification uint64 `json:"max_amplification"`
}

// DefaultParams returns default parameters for the stableswap module
func DefaultParams() Params {
	return Params{
		MinTradingLimit:  math.NewInt(1000),
		MinPoolLiquidity: math.NewInt(1000),
		MaxInRatio:       3,
		MaxOutRatio:      3,
		MinAmplification: 2,
		MaxAmplification: 10_000,
	}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if p.MinTradingLimit.IsNil() || !p.MinTradingLimit.IsPositive() {
		return fmt.Errorf("min trading limit must be positive")
	}
	if p.MinPoolLiquidity.IsNil() || !p.MinPoolLiquidity.IsPositive() {
		return fmt.Errorf("min pool liquidity must be positive")
	}
	if p.MaxInRatio == 0 {
		return fmt.Errorf("max in ratio cannot be zero")
	}
	if p.MaxOutRatio == 0 {
		return fmt.Errorf("max out ratio cannot be zero")
	}
	if p.MinAmplification < 2 {
		return fmt.Errorf("min amplification must be at least 2")
	}
	if p.MaxAmplification < p.MinAmplification {
		return fmt.Errorf("max amplification below min amplification")
	}
	return nil
}
