package utils

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanBalance(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		decimals int
		want     string
	}{
		{"18 decimals", "1500000000000000000", 18, "1.500000000000000000"},
		{"6 decimals", "40512319230000", 6, "40512319.230000000000000000"},
		{"8 decimals", "50000000", 8, "0.500000000000000000"},
		{"zero decimals", "42", 0, "42.000000000000000000"},
		{"zero balance", "0", 18, "0.000000000000000000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, ok := sdkmath.NewIntFromString(tc.raw)
			require.True(t, ok)
			got, err := HumanBalance(raw, tc.decimals)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestHumanBalanceRejectsBadInput(t *testing.T) {
	one := sdkmath.NewInt(1)

	_, err := HumanBalance(one, -1)
	require.ErrorIs(t, err, ErrInvalidDecimals)

	_, err = HumanBalance(one, 19)
	require.ErrorIs(t, err, ErrInvalidDecimals)

	_, err = HumanBalance(sdkmath.Int{}, 18)
	require.ErrorIs(t, err, ErrAmountNil)

	_, err = HumanBalance(sdkmath.NewInt(-5), 18)
	require.ErrorIs(t, err, ErrAmountNegative)
}

func TestParseRawBalance(t *testing.T) {
	raw, err := ParseRawBalance("5192296858534827628530496329220095")
	require.NoError(t, err)
	assert.Equal(t, "5192296858534827628530496329220095", raw.String())

	_, err = ParseRawBalance("12.5")
	require.ErrorIs(t, err, ErrInvalidBalance)

	_, err = ParseRawBalance("")
	require.ErrorIs(t, err, ErrInvalidBalance)

	_, err = ParseRawBalance("-100")
	require.ErrorIs(t, err, ErrAmountNegative)
}

func TestSafeQuoTruncate(t *testing.T) {
	a := sdkmath.LegacyMustNewDecFromStr("1")
	b := sdkmath.LegacyMustNewDecFromStr("3")

	got, err := SafeQuoTruncate(a, b)
	require.NoError(t, err)
	// Truncated, not rounded: the tail of 3s is cut, never bumped.
	assert.Equal(t, "0.333333333333333333", got.String())

	_, err = SafeQuoTruncate(a, sdkmath.LegacyZeroDec())
	require.ErrorIs(t, err, ErrDivisionByZero)

	_, err = SafeQuoTruncate(a, sdkmath.LegacyDec{})
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestMulTruncateMatchesOnChainSemantics(t *testing.T) {
	// 18-decimal product truncation: excess precision is dropped, not
	// rounded up, so 0.000000000000000001 * 0.1 collapses to zero.
	tiny := sdkmath.LegacyNewDecWithPrec(1, 18)
	tenth := sdkmath.LegacyMustNewDecFromStr("0.1")
	assert.True(t, tiny.MulTruncate(tenth).IsZero())
}

func TestFormatDec(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"640000", "640000.0"},
		{"130524319.23", "130524319.23"},
		{"130304713.065278948964422831", "130304713.065278948964422831"},
		{"0", "0.0"},
		{"0.100000000000000000", "0.1"},
	}

	for _, tc := range cases {
		d := sdkmath.LegacyMustNewDecFromStr(tc.in)
		assert.Equal(t, tc.want, FormatDec(d), "input %s", tc.in)
	}
}
