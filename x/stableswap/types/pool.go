package types

import (
	"fmt"
	"slices"

	"cosmossdk.io/math"
)

const (
	// MinPoolAssets is the smallest pool a stableswap invariant makes sense for.
	MinPoolAssets = 2
	// MaxPoolAssets bounds the D solver's working set.
	MaxPoolAssets = 5
)

// PoolInfo is the stableswap pool record. Reserves are not part of the
// record; they are the pool sub-account's bank balances and are always
// read live. The share denom doubles as the pool identifier.
type PoolInfo struct {
	ShareDenom    string         `json:"share_denom"`
	Assets        []string       `json:"assets"` // sorted, unique
	Amplification uint64         `json:"amplification"`
	TradeFee      math.LegacyDec `json:"trade_fee"`
	WithdrawFee   math.LegacyDec `json:"withdraw_fee"`
}

// NewPoolInfo builds a pool record with a sorted asset list.
func NewPoolInfo(shareDenom string, assets []string, amplification uint64, tradeFee, withdrawFee math.LegacyDec) PoolInfo {
	sorted := slices.Clone(assets)
	slices.Sort(sorted)
	return PoolInfo{
		ShareDenom:    shareDenom,
		Assets:        sorted,
		Amplification: amplification,
		TradeFee:      tradeFee,
		WithdrawFee:   withdrawFee,
	}
}

// Validate checks the structural invariants of the pool record. The
// amplification bounds come from module params and are checked by the
// keeper, not here.
func (p PoolInfo) Validate() error {
	if p.ShareDenom == "" {
		return fmt.Errorf("share denom cannot be empty")
	}
	if len(p.Assets) < MinPoolAssets || len(p.Assets) > MaxPoolAssets {
		return ErrInvalidAssetCount.Wrapf("got %d, want %d..%d", len(p.Assets), MinPoolAssets, MaxPoolAssets)
	}
	if !slices.IsSorted(p.Assets) {
		return fmt.Errorf("pool assets must be sorted")
	}
	for i, asset := range p.Assets {
		if asset == "" {
			return fmt.Errorf("pool asset cannot be empty")
		}
		if i > 0 && asset == p.Assets[i-1] {
			return ErrDuplicateAsset.Wrap(asset)
		}
	}
	if p.Amplification == 0 {
		return ErrInvalidAmplification.Wrap("amplification cannot be zero")
	}
	if err := validateFee(p.TradeFee, "trade fee"); err != nil {
		return err
	}
	return validateFee(p.WithdrawFee, "withdraw fee")
}

func validateFee(fee math.LegacyDec, name string) error {
	if fee.IsNil() || fee.IsNegative() || fee.GTE(math.LegacyOneDec()) {
		return ErrInvalidFee.Wrapf("%s must be in [0, 1)", name)
	}
	return nil
}

// Contains reports whether the asset belongs to the pool.
func (p PoolInfo) Contains(asset string) bool {
	_, found := slices.BinarySearch(p.Assets, asset)
	return found
}

// AssetIndex returns the position of the asset in the sorted asset list.
func (p PoolInfo) AssetIndex(asset string) (int, error) {
	i, found := slices.BinarySearch(p.Assets, asset)
	if !found {
		return 0, ErrAssetNotInPool.Wrap(asset)
	}
	return i, nil
}
