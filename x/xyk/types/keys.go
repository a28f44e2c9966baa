package types

import "strings"

const (
	// ModuleName defines the module name
	ModuleName = "xyk"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

var (
	// PoolKeyPrefix is the prefix for pool records
	PoolKeyPrefix = []byte{0x01}
	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x02}
)

// PairKey returns the canonical, order-independent key material for an
// asset pair.
func PairKey(assetA, assetB string) []byte {
	if strings.Compare(assetA, assetB) > 0 {
		assetA, assetB = assetB, assetA
	}
	return []byte(assetA + "/" + assetB)
}

// PoolKey returns the store key for the pool trading the pair.
func PoolKey(assetA, assetB string) []byte {
	return append(PoolKeyPrefix, PairKey(assetA, assetB)...)
}
