package engine

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/poolwatch/poolwatch/internal/types"
	"github.com/poolwatch/poolwatch/internal/utils"
)

// valueWeightedPool computes liquidity for a constant-weight pool.
//
// With every price known the weights drop out entirely: total value is just
// the sum of each token's USD value. With exactly one price missing the
// constant-weight invariant (valueUSD_i / weight_i equal across tokens) lets
// us impute the missing token's value from any priced token. Two or more
// missing prices leave the ratio unanchored and fail.
func (e *Engine) valueWeightedPool(pool types.PoolSnapshot, values []TokenValue) (sdkmath.LegacyDec, error) {
	missing := missingPriceIndexes(values)

	switch len(missing) {
	case 0:
		return sumKnownValues(values), nil

	case 1:
		missingIdx := missing[0]
		anchorIdx := -1
		for i, v := range values {
			if v.HasPrice {
				anchorIdx = i
				break
			}
		}
		if anchorIdx < 0 {
			return sdkmath.LegacyDec{}, fmt.Errorf("%w: pool %s has no priced token to anchor imputation", ErrInsufficientPriceData, pool.ID)
		}

		anchorWeight := pool.Weights[anchorIdx]
		if anchorWeight.IsZero() {
			return sdkmath.LegacyDec{}, fmt.Errorf("%w: zero anchor weight in pool %s", ErrArithmetic, pool.ID)
		}

		// valueUSD_missing = valueUSD_anchor * (weight_missing / weight_anchor)
		imputed, err := utils.SafeQuoTruncate(
			values[anchorIdx].ValueUSD.MulTruncate(pool.Weights[missingIdx]),
			anchorWeight,
		)
		if err != nil {
			return sdkmath.LegacyDec{}, fmt.Errorf("%w: %v", ErrArithmetic, err)
		}

		e.log.Debug().
			Str("pool", pool.ID).
			Str("token", values[missingIdx].Address).
			Str("imputedValueUSD", imputed.String()).
			Msg("Imputed missing token value from weight ratio")

		return sumKnownValues(values).Add(imputed), nil

	default:
		return sdkmath.LegacyDec{}, fmt.Errorf("%w: pool %s has %d unpriced tokens, at most 1 tolerated", ErrInsufficientPriceData, pool.ID, len(missing))
	}
}
