package engine

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/poolwatch/poolwatch/internal/types"
)

// valueMetaStablePool computes liquidity for a two-token pool where one
// token is a rate-adjusted wrapper of the other (e.g. a staking derivative).
// Each balance is scaled by its price rate before pricing. No imputation
// branch exists for this variant: both prices are required.
func (e *Engine) valueMetaStablePool(pool types.PoolSnapshot, values []TokenValue) (sdkmath.LegacyDec, error) {
	total := sdkmath.LegacyZeroDec()

	for i, v := range values {
		if !v.HasPrice {
			return sdkmath.LegacyDec{}, fmt.Errorf("%w: no price for %s in metastable pool %s", ErrInsufficientPriceData, v.Address, pool.ID)
		}
		adjusted := v.HumanBalance.MulTruncate(pool.PriceRates[i])
		total = total.Add(adjusted.MulTruncate(v.Price))
	}

	return total, nil
}
