package engine

import (
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"

	"github.com/poolwatch/poolwatch/internal/types"
)

// valuePhantomStablePool computes liquidity for a stable pool that mints its
// own pool token as a tradeable balance. The self-held token represents
// unminted supply, not an asset of the pool; counting it would double count
// the pool's own liquidity, so it is excluded outright. The remaining
// balances are scaled by their price rates and valued with stable-pool
// missing-price discipline.
func (e *Engine) valuePhantomStablePool(pool types.PoolSnapshot, values []TokenValue) (sdkmath.LegacyDec, error) {
	adjusted := make([]TokenValue, 0, len(values)-1)
	for i, v := range values {
		if strings.EqualFold(v.Address, pool.Address) {
			continue
		}
		rate := pool.PriceRates[i]
		v.HumanBalance = v.HumanBalance.MulTruncate(rate)
		if v.HasPrice {
			v.ValueUSD = v.HumanBalance.MulTruncate(v.Price)
		}
		adjusted = append(adjusted, v)
	}

	missing := missingPriceIndexes(adjusted)

	switch len(missing) {
	case 0:
		return sumKnownValues(adjusted), nil

	case 1:
		avg, err := averageKnownPrice(adjusted)
		if err != nil {
			return sdkmath.LegacyDec{}, fmt.Errorf("pool %s: %w", pool.ID, err)
		}
		imputed := adjusted[missing[0]].HumanBalance.MulTruncate(avg)

		e.log.Debug().
			Str("pool", pool.ID).
			Str("token", adjusted[missing[0]].Address).
			Str("imputedValueUSD", imputed.String()).
			Msg("Imputed missing token value from average known price")

		return sumKnownValues(adjusted).Add(imputed), nil

	default:
		return sdkmath.LegacyDec{}, fmt.Errorf("%w: pool %s has %d unpriced tokens, at most 1 tolerated", ErrInsufficientPriceData, pool.ID, len(missing))
	}
}
