package types

// Event types for the xyk module
const (
	EventTypePoolCreated = "xyk_pool_created"
	EventTypeSell        = "xyk_sell"
	EventTypeBuy         = "xyk_buy"

	AttributeKeyCreator   = "creator"
	AttributeKeyAssetA    = "asset_a"
	AttributeKeyAssetB    = "asset_b"
	AttributeKeyTrader    = "trader"
	AttributeKeyAssetIn   = "asset_in"
	AttributeKeyAssetOut  = "asset_out"
	AttributeKeyAmountIn  = "amount_in"
	AttributeKeyAmountOut = "amount_out"
	AttributeKeyFeeAmount = "fee_amount"
)
