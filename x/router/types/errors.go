package types

import (
	"cosmossdk.io/errors"
)

// Router module sentinel errors
var (
	ErrEmptyRoute       = errors.Register(ModuleName, 1, "route cannot be empty")
	ErrRouteTooLong     = errors.Register(ModuleName, 2, "route exceeds maximum number of hops")
	ErrInvalidRoute     = errors.Register(ModuleName, 3, "route assets do not chain")
	ErrPoolNotSupported = errors.Register(ModuleName, 4, "pool kind not supported")
	ErrLimitNotReached  = errors.Register(ModuleName, 5, "output amount less than minimum required")
	ErrLimitExceeded    = errors.Register(ModuleName, 6, "input amount exceeds maximum allowed")
	ErrZeroAmount       = errors.Register(ModuleName, 7, "amount cannot be zero")
	ErrInvalidAmount    = errors.Register(ModuleName, 8, "invalid amount")
)
