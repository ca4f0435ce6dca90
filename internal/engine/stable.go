package engine

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/poolwatch/poolwatch/internal/types"
)

// valueStablePool computes liquidity for a pool whose constituents are
// assumed to trade near 1:1 parity.
//
// Default path is a plain sum of humanBalance * price. With exactly one
// price missing, the parity assumption stands in for the weight ratio used
// by weighted pools: the missing token is valued at the mean of the known
// unit prices. More than one missing price fails.
func (e *Engine) valueStablePool(pool types.PoolSnapshot, values []TokenValue) (sdkmath.LegacyDec, error) {
	missing := missingPriceIndexes(values)

	switch len(missing) {
	case 0:
		return sumKnownValues(values), nil

	case 1:
		avg, err := averageKnownPrice(values)
		if err != nil {
			return sdkmath.LegacyDec{}, fmt.Errorf("pool %s: %w", pool.ID, err)
		}
		imputed := values[missing[0]].HumanBalance.MulTruncate(avg)

		e.log.Debug().
			Str("pool", pool.ID).
			Str("token", values[missing[0]].Address).
			Str("averagePrice", avg.String()).
			Str("imputedValueUSD", imputed.String()).
			Msg("Imputed missing token value from average known price")

		return sumKnownValues(values).Add(imputed), nil

	default:
		return sdkmath.LegacyDec{}, fmt.Errorf("%w: pool %s has %d unpriced tokens, at most 1 tolerated", ErrInsufficientPriceData, pool.ID, len(missing))
	}
}
