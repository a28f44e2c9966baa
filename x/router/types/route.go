package types

// PoolKind tags the AMM engine a hop trades against.
type PoolKind string

const (
	KindXYK        PoolKind = "xyk"
	KindLBP        PoolKind = "lbp"
	KindStableswap PoolKind = "stableswap"
)

// Hop is a single pool-kind-specific swap within a route.
type Hop struct {
	Kind     PoolKind `json:"kind"`
	AssetIn  string   `json:"asset_in"`
	AssetOut string   `json:"asset_out"`
}

// ValidateRoute checks the structural invariants of a route: non-empty,
// bounded length, endpoints matching the caller's asset pair, and adjacent
// hops chaining (hop i's asset out is hop i+1's asset in).
func ValidateRoute(assetIn, assetOut string, route []Hop, maxHops int) error {
	if len(route) == 0 {
		return ErrEmptyRoute
	}
	if maxHops > 0 && len(route) > maxHops {
		return ErrRouteTooLong.Wrapf("%d hops, maximum %d", len(route), maxHops)
	}
	if route[0].AssetIn != assetIn {
		return ErrInvalidRoute.Wrapf("route starts with %s, expected %s", route[0].AssetIn, assetIn)
	}
	if route[len(route)-1].AssetOut != assetOut {
		return ErrInvalidRoute.Wrapf("route ends with %s, expected %s", route[len(route)-1].AssetOut, assetOut)
	}
	for i, hop := range route {
		if hop.AssetIn == hop.AssetOut {
			return ErrInvalidRoute.Wrapf("hop %d trades %s against itself", i, hop.AssetIn)
		}
		if i > 0 && route[i-1].AssetOut != hop.AssetIn {
			return ErrInvalidRoute.Wrapf(
				"hop chain broken at hop %d: %s != %s",
				i, route[i-1].AssetOut, hop.AssetIn,
			)
		}
	}
	return nil
}
