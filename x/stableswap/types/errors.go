package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/stableswap module sentinel errors
var (
	ErrPoolNotFound          = errorsmod.Register(ModuleName, 1, "pool not found")
	ErrPoolAlreadyExists     = errorsmod.Register(ModuleName, 2, "pool already exists")
	ErrInvalidAssetCount     = errorsmod.Register(ModuleName, 3, "invalid number of pool assets")
	ErrDuplicateAsset        = errorsmod.Register(ModuleName, 4, "duplicate pool asset")
	ErrAssetNotInPool        = errorsmod.Register(ModuleName, 5, "asset not in pool")
	ErrAssetNotRegistered    = errorsmod.Register(ModuleName, 6, "asset not registered")
	ErrInvalidAmplification  = errorsmod.Register(ModuleName, 7, "amplification out of range")
	ErrInvalidFee            = errorsmod.Register(ModuleName, 8, "invalid fee")
	ErrZeroAmount            = errorsmod.Register(ModuleName, 9, "amount is zero")
	ErrMinTradingLimit       = errorsmod.Register(ModuleName, 10, "amount below minimum trading limit")
	ErrInsufficientLiquidity = errorsmod.Register(ModuleName, 11, "insufficient liquidity")
	ErrInsufficientShares    = errorsmod.Register(ModuleName, 12, "insufficient pool shares")
	ErrMaxInRatioExceeded    = errorsmod.Register(ModuleName, 13, "amount in exceeds reserve ratio limit")
	ErrMaxOutRatioExceeded   = errorsmod.Register(ModuleName, 14, "amount out exceeds reserve ratio limit")
	ErrInvariantNotConverged = errorsmod.Register(ModuleName, 15, "invariant solver did not converge")
	ErrLimitNotReached       = errorsmod.Register(ModuleName, 16, "minimum amount not reached")
	ErrLimitExceeded         = errorsmod.Register(ModuleName, 17, "maximum amount exceeded")
	ErrPoolDrained           = errorsmod.Register(ModuleName, 18, "withdrawal would leave dust shares")
)
