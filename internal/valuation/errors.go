package valuation

import "errors"

var (
	// ErrInsufficientData means no usable historical free-cash-flow
	// entries exist, or the most recent FCF is non-positive. The input
	// cannot be valued; retrying with the same data will not help.
	ErrInsufficientData = errors.New("insufficient free cash flow data")

	// ErrTerminalValueUndefined means the discount rate does not exceed
	// the capped terminal growth rate, so the Gordon-growth denominator
	// is non-positive.
	ErrTerminalValueUndefined = errors.New("terminal value undefined: WACC does not exceed terminal growth")

	// ErrUnknownScenario means the requested scenario name is not one of
	// base, optimistic, pessimistic.
	ErrUnknownScenario = errors.New("unknown scenario")
)
