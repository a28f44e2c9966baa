package types

// Event types for the LBP module
const (
	EventTypePoolCreated      = "lbp_pool_created"
	EventTypePoolUpdated      = "lbp_pool_updated"
	EventTypeLiquidityAdded   = "lbp_liquidity_added"
	EventTypeLiquidityRemoved = "lbp_liquidity_removed"
	EventTypeSell             = "lbp_sell"
	EventTypeBuy              = "lbp_buy"

	AttributeKeyOwner     = "owner"
	AttributeKeyAssetA    = "asset_a"
	AttributeKeyAssetB    = "asset_b"
	AttributeKeyAmountA   = "amount_a"
	AttributeKeyAmountB   = "amount_b"
	AttributeKeyTrader    = "trader"
	AttributeKeyAssetIn   = "asset_in"
	AttributeKeyAssetOut  = "asset_out"
	AttributeKeyAmountIn  = "amount_in"
	AttributeKeyAmountOut = "amount_out"
	AttributeKeyFeeAsset  = "fee_asset"
	AttributeKeyFeeAmount = "fee_amount"
)
