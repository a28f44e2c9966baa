package types

import (
	"fmt"
)

// Params holds the router module parameters.
type Params struct {
	// MaxHops bounds the length of a route.
	MaxHops int `json:"max_hops"`
}

// DefaultParams returns default parameters for the router module
func DefaultParams() Params {
	return Params{
		MaxHops: 5,
	}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if p.MaxHops <= 0 {
		return fmt.Errorf("max hops must be positive: %d", p.MaxHops)
	}
	return nil
}
