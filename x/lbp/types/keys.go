package types

const (
	// ModuleName defines the module name
	ModuleName = "lbp"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

// Store key prefixes
var (
	PoolKeyPrefix = []byte{0x01} // prefix for pool records, keyed by canonical pair
	ParamsKey     = []byte{0x02} // key for module parameters
)

// PairKey returns the canonical store suffix for an asset pair. The pair
// is sorted so both trade directions resolve to the same pool.
func PairKey(assetA, assetB string) []byte {
	if assetA > assetB {
		assetA, assetB = assetB, assetA
	}
	return []byte(assetA + "/" + assetB)
}

// PoolKey returns the store key for the pool holding the given pair.
func PoolKey(assetA, assetB string) []byte {
	return append(PoolKeyPrefix, PairKey(assetA, assetB)...)
}
