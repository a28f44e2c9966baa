package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Params holds the LBP module parameters.
type Params struct {
	// MinTradingLimit is the smallest trade amount the engine accepts.
	MinTradingLimit math.Int `json:"min_trading_limit"`
	// MinPoolLiquidity is the smallest reserve a pool may be created with.
	MinPoolLiquidity math.Int `json:"min_pool_liquidity"`
	// MaxInRatio bounds a sell to reserve_in / MaxInRatio.
	MaxInRatio uint64 `json:"max_in_ratio"`
	// MaxOutRatio bounds a buy to reserve_out / MaxOutRatio.
	MaxOutRatio uint64 `json:"max_out_ratio"`
}

// DefaultParams returns default parameters for the LBP module
func DefaultParams() Params {
	return Params{
		MinTradingLimit:  math.NewInt(1000),
		MinPoolLiquidity: math.NewInt(1000),
		MaxInRatio:       3,
		MaxOutRatio:      3,
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
	return nil
}
