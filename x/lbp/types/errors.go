package types

import (
	"cosmossdk.io/errors"
)

// LBP module sentinel errors
var (
	ErrPoolNotFound          = errors.Register(ModuleName, 1, "pool not found")
	ErrPoolAlreadyExists     = errors.Register(ModuleName, 2, "pool already exists")
	ErrNotOwner              = errors.Register(ModuleName, 3, "caller is not the pool owner")
	ErrSaleStarted           = errors.Register(ModuleName, 4, "sale already started")
	ErrSaleNotEnded          = errors.Register(ModuleName, 5, "sale not ended")
	ErrSaleNotRunning        = errors.Register(ModuleName, 6, "sale is not running")
	ErrInvalidWeight         = errors.Register(ModuleName, 7, "weight outside the open (0, MaxWeight) range")
	ErrInvalidBlockRange     = errors.Register(ModuleName, 8, "invalid sale block range")
	ErrInvalidFee            = errors.Register(ModuleName, 9, "invalid fee")
	ErrInvalidAsset          = errors.Register(ModuleName, 10, "asset is not a member of the pool")
	ErrAssetNotRegistered    = errors.Register(ModuleName, 11, "asset not registered")
	ErrMaxInRatioExceeded    = errors.Register(ModuleName, 12, "trade exceeds max in ratio")
	ErrMaxOutRatioExceeded   = errors.Register(ModuleName, 13, "trade exceeds max out ratio")
	ErrMinTradingLimit       = errors.Register(ModuleName, 14, "amount below minimum trading limit")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 15, "insufficient pool liquidity")
	ErrZeroAmount            = errors.Register(ModuleName, 16, "amount cannot be zero")
	ErrOverflow              = errors.Register(ModuleName, 17, "arithmetic overflow")
	ErrLimitNotReached       = errors.Register(ModuleName, 18, "output amount less than minimum required")
	ErrLimitExceeded         = errors.Register(ModuleName, 19, "input amount exceeds maximum allowed")
)
