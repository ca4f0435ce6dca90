/*
This file contains common utility functions for fixed-point decimal handling:
scaling raw on-chain balances to human units and formatting results. All money
math runs on 18-decimal fixed point; truncation, never rounding, mirrors the
on-chain arithmetic the results are compared against.
*/

package utils

import (
	"errors"
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"
)

// Error definitions for zero-tolerance error handling
var (
	ErrInvalidDecimals = errors.New("token decimals are invalid")
	ErrAmountNil       = errors.New("amount is nil")
	ErrAmountNegative  = errors.New("amount is negative")
	ErrInvalidBalance  = errors.New("balance string is invalid")
	ErrDivisionByZero  = errors.New("division by zero")
)

// HumanBalance converts a raw on-chain balance to human units by shifting the
// token's decimals, i.e. raw / 10^decimals. Exact for decimals in [0, 18].
func HumanBalance(raw sdkmath.Int, decimals int) (sdkmath.LegacyDec, error) {
	if decimals < 0 || decimals > 18 {
		return sdkmath.LegacyDec{}, fmt.Errorf("%w: %d (must be between 0 and 18)", ErrInvalidDecimals, decimals)
	}
	if raw.IsNil() {
		return sdkmath.LegacyDec{}, ErrAmountNil
	}
	if raw.IsNegative() {
		return sdkmath.LegacyDec{}, ErrAmountNegative
	}
	return sdkmath.LegacyNewDecFromIntWithPrec(raw, int64(decimals)), nil
}

// ParseRawBalance parses an integer string as a raw on-chain balance.
func ParseRawBalance(s string) (sdkmath.Int, error) {
	raw, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("%w: %q", ErrInvalidBalance, s)
	}
	if raw.IsNegative() {
		return sdkmath.Int{}, ErrAmountNegative
	}
	return raw, nil
}

// SafeQuoTruncate divides a by b with 18-decimal truncation, refusing a zero
// divisor instead of panicking.
func SafeQuoTruncate(a, b sdkmath.LegacyDec) (sdkmath.LegacyDec, error) {
	if b.IsNil() || b.IsZero() {
		return sdkmath.LegacyDec{}, ErrDivisionByZero
	}
	return a.QuoTruncate(b), nil
}

// FormatDec renders a fixed-point value as a decimal string with trailing
// zeros trimmed. At least one fractional digit is always kept, so whole
// numbers render as "640000.0" rather than "640000".
func FormatDec(d sdkmath.LegacyDec) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		return s + ".0"
	}
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
