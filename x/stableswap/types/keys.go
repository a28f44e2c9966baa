package types

const (
	// ModuleName defines the module name
	ModuleName = "stableswap"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

var (
	// PoolKeyPrefix is the prefix for pool records, keyed by share denom
	PoolKeyPrefix = []byte{0x01}
	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x02}
)

// PoolKey returns the store key for the pool identified by its share denom.
func PoolKey(shareDenom string) []byte {
	return append(PoolKeyPrefix, []byte(shareDenom)...)
}
