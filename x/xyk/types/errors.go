package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/xyk module sentinel errors
var (
	ErrPoolNotFound          = errorsmod.Register(ModuleName, 1, "pool not found")
	ErrPoolAlreadyExists     = errorsmod.Register(ModuleName, 2, "pool already exists")
	ErrInvalidAsset          = errorsmod.Register(ModuleName, 3, "invalid asset")
	ErrAssetNotRegistered    = errorsmod.Register(ModuleName, 4, "asset not registered")
	ErrInvalidFee            = errorsmod.Register(ModuleName, 5, "invalid fee")
	ErrZeroAmount            = errorsmod.Register(ModuleName, 6, "amount is zero")
	ErrMinTradingLimit       = errorsmod.Register(ModuleName, 7, "amount below minimum trading limit")
	ErrInsufficientLiquidity = errorsmod.Register(ModuleName, 8, "insufficient liquidity")
	ErrMaxInRatioExceeded    = errorsmod.Register(ModuleName, 9, "amount in exceeds reserve ratio limit")
	ErrMaxOutRatioExceeded   = errorsmod.Register(ModuleName, 10, "amount out exceeds reserve ratio limit")
	ErrLimitNotReached       = errorsmod.Register(ModuleName, 11, "minimum amount not reached")
	ErrLimitExceeded         = errorsmod.Register(ModuleName, 12, "maximum amount exceeded")
)
