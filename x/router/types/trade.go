package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Trade is the transfer descriptor produced by a calculate pass and
// consumed by the matching execute pass. It is never persisted.
type Trade struct {
	Origin    sdk.AccAddress `json:"origin"`
	AssetIn   string         `json:"asset_in"`
	AssetOut  string         `json:"asset_out"`
	AmountIn  math.Int       `json:"amount_in"`
	AmountOut math.Int       `json:"amount_out"`
	FeeAsset  string         `json:"fee_asset"`
	FeeAmount math.Int       `json:"fee_amount"`
}
