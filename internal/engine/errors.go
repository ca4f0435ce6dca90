package engine

import "errors"

// Typed failure conditions. None of these are retried internally: they mean
// bad input data or a genuinely unsupported case, not a transient fault, and
// every one is surfaced unchanged so the caller can distinguish them.
var (
	// ErrUnsupportedPoolType means the pool-kind tag matches no known
	// valuator. Silent misrouting would produce a plausible-looking but
	// wrong dollar figure, which is worse than a visible failure.
	ErrUnsupportedPoolType = errors.New("unsupported pool type")

	// ErrInsufficientPriceData means more prices are missing than the active
	// valuator's imputation rule can tolerate.
	ErrInsufficientPriceData = errors.New("insufficient price data for valuation")

	// ErrArithmetic means a degenerate numeric operation, e.g. division by a
	// zero weight or a non-positive exchange rate.
	ErrArithmetic = errors.New("arithmetic error")

	// ErrMalformedSnapshot means a structural invariant of the snapshot is
	// violated. Raised before any arithmetic is attempted.
	ErrMalformedSnapshot = errors.New("malformed pool snapshot")
)
