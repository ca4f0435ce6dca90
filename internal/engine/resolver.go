package engine

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/poolwatch/poolwatch/internal/types"
	"github.com/poolwatch/poolwatch/internal/utils"
)

// TokenValue is the per-token result of resolution: a human-scale balance
// and, when a price is available, a USD value. A missing price is a state,
// not an error; the active valuator decides whether it is tolerable.
type TokenValue struct {
	Address      string
	HumanBalance sdkmath.LegacyDec
	Price        sdkmath.LegacyDec
	ValueUSD     sdkmath.LegacyDec
	HasPrice     bool
}

// resolveTokenValues scales every balance to human units and attempts a USD
// price lookup per token. Metadata lookups must succeed; price lookups may
// come back empty.
func (e *Engine) resolveTokenValues(ctx context.Context, pool types.PoolSnapshot) ([]TokenValue, error) {
	values := make([]TokenValue, len(pool.Tokens))

	for i, address := range pool.Tokens {
		token, err := e.tokens.GetToken(ctx, address)
		if err != nil {
			return nil, fmt.Errorf("token metadata lookup for %s: %w", address, err)
		}

		humanBalance, err := utils.HumanBalance(pool.Balances[i], token.Decimals)
		if err != nil {
			return nil, fmt.Errorf("%w: balance of %s: %v", ErrMalformedSnapshot, token.Symbol, err)
		}

		value := TokenValue{
			Address:      address,
			HumanBalance: humanBalance,
		}

		price, ok, err := e.prices.GetPrice(ctx, address)
		if err != nil {
			return nil, fmt.Errorf("price lookup for %s: %w", address, err)
		}
		if ok {
			if price.PriceUSD.IsNil() || price.PriceUSD.IsNegative() {
				return nil, fmt.Errorf("%w: negative or nil price for %s", ErrArithmetic, token.Symbol)
			}
			value.Price = price.PriceUSD
			value.ValueUSD = humanBalance.MulTruncate(price.PriceUSD)
			value.HasPrice = true
		} else {
			e.log.Debug().
				Str("pool", pool.ID).
				Str("token", token.Symbol).
				Msg("No USD price available, marking token as unpriced")
		}

		values[i] = value
	}

	return values, nil
}

// missingPriceIndexes returns the positions of unpriced tokens.
func missingPriceIndexes(values []TokenValue) []int {
	var missing []int
	for i, v := range values {
		if !v.HasPrice {
			missing = append(missing, i)
		}
	}
	return missing
}

// sumKnownValues adds the USD values of all priced tokens.
func sumKnownValues(values []TokenValue) sdkmath.LegacyDec {
	total := sdkmath.LegacyZeroDec()
	for _, v := range values {
		if v.HasPrice {
			total = total.Add(v.ValueUSD)
		}
	}
	return total
}

// averageKnownPrice is the arithmetic mean of the known unit prices,
// truncated at 18 decimals.
func averageKnownPrice(values []TokenValue) (sdkmath.LegacyDec, error) {
	sum := sdkmath.LegacyZeroDec()
	count := 0
	for _, v := range values {
		if v.HasPrice {
			sum = sum.Add(v.Price)
			count++
		}
	}
	if count == 0 {
		return sdkmath.LegacyDec{}, ErrInsufficientPriceData
	}
	avg, err := utils.SafeQuoTruncate(sum, sdkmath.LegacyNewDec(int64(count)))
	if err != nil {
		return sdkmath.LegacyDec{}, fmt.Errorf("%w: %v", ErrArithmetic, err)
	}
	return avg, nil
}
