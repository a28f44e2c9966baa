package types

// Event types for the router module
const (
	EventTypeRouteExecuted = "route_executed"

	AttributeKeyTrader    = "trader"
	AttributeKeyAssetIn   = "asset_in"
	AttributeKeyAssetOut  = "asset_out"
	AttributeKeyAmountIn  = "amount_in"
	AttributeKeyAmountOut = "amount_out"
	AttributeKeyHops      = "hops"
)
