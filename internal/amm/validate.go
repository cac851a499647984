package amm

import "ndtswap/internal/model"

// ValidateSwap enforces the request's slippage tolerance and optional price
// impact ceiling against a priced result. It mutates nothing; a rejection
// here must leave the pool untouched.
func ValidateSwap(req model.SwapRequest, outputAmount, priceImpact, spotRate float64) error {
	expected := req.Amount * spotRate
	minAcceptable := expected * (1 - req.SlippageTolerance/100)
	if outputAmount < minAcceptable {
		return &model.SlippageError{
			Expected:      expected,
			Actual:        outputAmount,
			MinAcceptable: minAcceptable,
		}
	}

	if req.MaxPriceImpact != nil && priceImpact > *req.MaxPriceImpact {
		return &model.PriceImpactError{
			Impact: priceImpact,
			Limit:  *req.MaxPriceImpact,
		}
	}

	return nil
}
