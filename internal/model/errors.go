package model

import (
	"errors"
	"fmt"
)

// ErrUninitializedPool is returned when a pool has a zero reserve on either
// side. Pricing is undefined until both reserves are seeded.
var ErrUninitializedPool = errors.New("pool is not initialized")

// ErrUnknownAsset is returned when a request names an asset the pool does not hold.
var ErrUnknownAsset = errors.New("asset is not part of the pool")

// ErrInvalidAmount is returned for non-positive swap amounts.
var ErrInvalidAmount = errors.New("swap amount must be greater than zero")

// SlippageError reports an output below the slippage-adjusted minimum.
// Both the expected and realized amounts are carried for diagnostics.
type SlippageError struct {
	Expected      float64
	Actual        float64
	MinAcceptable float64
}

func (e *SlippageError) Error() string {
	return fmt.Sprintf("slippage exceeded: expected %.8f, got %.8f (minimum acceptable %.8f)",
		e.Expected, e.Actual, e.MinAcceptable)
}

// PriceImpactError reports a price impact above the caller-supplied ceiling.
type PriceImpactError struct {
	Impact float64
	Limit  float64
}

func (e *PriceImpactError) Error() string {
	return fmt.Sprintf("price impact %.4f%% exceeds limit %.4f%%", e.Impact, e.Limit)
}
