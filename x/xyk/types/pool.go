package types

import (
	"cosmossdk.io/math"
)

// Pool is a constant-product pool record. Reserves are the pool
// sub-account's bank balances and are always read live.
type Pool struct {
	Creator string         `json:"creator"`
	AssetA  string         `json:"asset_a"`
	AssetB  string         `json:"asset_b"`
	Fee     math.LegacyDec `json:"fee"`
}

// Validate checks the structural invariants of the pool record.
func (p Pool) Validate() error {
	if p.AssetA == "" || p.AssetB == "" {
		return ErrInvalidAsset.Wrap("asset cannot be empty")
	}
	if p.AssetA == p.AssetB {
		return ErrInvalidAsset.Wrap("pool assets must differ")
	}
	if p.Fee.IsNil() || p.Fee.IsNegative() || p.Fee.GTE(math.LegacyOneDec()) {
		return ErrInvalidFee.Wrap("fee must be in [0, 1)")
	}
	return nil
}

// Contains reports whether the asset is one of the pool's pair.
func (p Pool) Contains(asset string) bool {
	return asset == p.AssetA || asset == p.AssetB
}
