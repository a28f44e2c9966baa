package types

// Event types for the stableswap module
const (
	EventTypePoolCreated      = "stableswap_pool_created"
	EventTypeLiquidityAdded   = "stableswap_liquidity_added"
	EventTypeLiquidityRemoved = "stableswap_liquidity_removed"
	EventTypeSell             = "stableswap_sell"
	EventTypeBuy              = "stableswap_buy"

	AttributeKeyShareDenom = "share_denom"
	AttributeKeyAssets     = "assets"
	AttributeKeyProvider   = "provider"
	AttributeKeyShares     = "shares"
	AttributeKeyTrader     = "trader"
	AttributeKeyAssetIn    = "asset_in"
	AttributeKeyAssetOut   = "asset_out"
	AttributeKeyAmountIn   = "amount_in"
	AttributeKeyAmountOut  = "amount_out"
	AttributeKeyFeeAmount  = "fee_amount"
)
