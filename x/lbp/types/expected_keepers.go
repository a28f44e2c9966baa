package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper is the ledger collaborator: every execute step and liquidity
// operation settles through it.
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
}

// AssetRegistry is the external asset registry collaborator.
type AssetRegistry interface {
	Exists(ctx context.Context, denom string) bool
}
