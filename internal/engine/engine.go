/*
This package is the pool valuation engine: given an immutable pool snapshot
and the token/price providers, it computes a single USD liquidity figure for
weighted, stable, metastable and phantom-stable pools. It is purely
computational over already-fetched data; it never initiates I/O of its own
and holds no mutable state, so concurrent valuations need no coordination.
*/

package engine

import (
	"context"
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog"

	"github.com/poolwatch/poolwatch/internal/logger"
	"github.com/poolwatch/poolwatch/internal/provider"
	"github.com/poolwatch/poolwatch/internal/types"
	"github.com/poolwatch/poolwatch/internal/utils"
)

// weightSumTolerance bounds |sum(weights) - 1| for weighted pools.
var weightSumTolerance = sdkmath.LegacyNewDecWithPrec(1, 6)

// Engine values pool snapshots. Construct with New; the zero value is not
// usable.
type Engine struct {
	tokens provider.TokenProvider
	prices provider.PriceProvider
	log    zerolog.Logger
}

func New(tokens provider.TokenProvider, prices provider.PriceProvider) (*Engine, error) {
	if tokens == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}
	if prices == nil {
		return nil, fmt.Errorf("price provider cannot be nil")
	}
	return &Engine{
		tokens: tokens,
		prices: prices,
		log:    logger.GetForComponent("liquidity_engine"),
	}, nil
}

// GetLiquidity is the single entry point: classify the pool kind, resolve
// per-token values, route to the matching valuator and format the result as
// a decimal string. Typed failures propagate unchanged; no partial or
// default value is ever returned.
func (e *Engine) GetLiquidity(ctx context.Context, pool types.PoolSnapshot) (string, error) {
	variant, err := classifyPool(pool.Type)
	if err != nil {
		return "", err
	}

	if err := validateSnapshot(pool, variant); err != nil {
		return "", err
	}

	values, err := e.resolveTokenValues(ctx, pool)
	if err != nil {
		return "", err
	}

	var total sdkmath.LegacyDec
	switch variant {
	case variantWeighted:
		total, err = e.valueWeightedPool(pool, values)
	case variantStable:
		total, err = e.valueStablePool(pool, values)
	case variantMetaStable:
		total, err = e.valueMetaStablePool(pool, values)
	case variantPhantomStable:
		total, err = e.valuePhantomStablePool(pool, values)
	}
	if err != nil {
		return "", err
	}

	result := utils.FormatDec(total)
	e.log.Debug().
		Str("pool", pool.ID).
		Str("poolType", string(pool.Type)).
		Str("liquidityUSD", result).
		Msg("Pool valuation complete")

	return result, nil
}

// validateSnapshot checks the snapshot's structural invariants. It runs
// before any arithmetic so a malformed snapshot can never yield a partial
// figure.
func validateSnapshot(pool types.PoolSnapshot, variant poolVariant) error {
	if len(pool.Tokens) == 0 {
		return fmt.Errorf("%w: pool %s has no tokens", ErrMalformedSnapshot, pool.ID)
	}
	if len(pool.Balances) != len(pool.Tokens) {
		return fmt.Errorf("%w: pool %s has %d tokens but %d balances", ErrMalformedSnapshot, pool.ID, len(pool.Tokens), len(pool.Balances))
	}
	for i, balance := range pool.Balances {
		if balance.IsNil() || balance.IsNegative() {
			return fmt.Errorf("%w: pool %s balance %d is nil or negative", ErrMalformedSnapshot, pool.ID, i)
		}
	}

	switch variant {
	case variantWeighted:
		return validateWeights(pool)
	case variantMetaStable:
		if len(pool.Tokens) != 2 {
			return fmt.Errorf("%w: metastable pool %s must hold exactly 2 tokens, has %d", ErrMalformedSnapshot, pool.ID, len(pool.Tokens))
		}
		return validatePriceRates(pool)
	case variantPhantomStable:
		if !hasSelfToken(pool) {
			return fmt.Errorf("%w: phantom-stable pool %s does not list its own token", ErrMalformedSnapshot, pool.ID)
		}
		return validatePriceRates(pool)
	}
	return nil
}

func validateWeights(pool types.PoolSnapshot) error {
	if len(pool.Weights) != len(pool.Tokens) {
		return fmt.Errorf("%w: weighted pool %s has %d tokens but %d weights", ErrMalformedSnapshot, pool.ID, len(pool.Tokens), len(pool.Weights))
	}
	sum := sdkmath.LegacyZeroDec()
	for i, weight := range pool.Weights {
		if weight.IsNil() || weight.IsNegative() {
			return fmt.Errorf("%w: weighted pool %s weight %d is nil or negative", ErrMalformedSnapshot, pool.ID, i)
		}
		sum = sum.Add(weight)
	}
	if sum.Sub(sdkmath.LegacyOneDec()).Abs().GT(weightSumTolerance) {
		return fmt.Errorf("%w: weighted pool %s weights sum to %s, expected 1", ErrMalformedSnapshot, pool.ID, sum.String())
	}
	return nil
}

func validatePriceRates(pool types.PoolSnapshot) error {
	if len(pool.PriceRates) != len(pool.Tokens) {
		return fmt.Errorf("%w: pool %s has %d tokens but %d price rates", ErrMalformedSnapshot, pool.ID, len(pool.Tokens), len(pool.PriceRates))
	}
	for i, rate := range pool.PriceRates {
		if rate.IsNil() || !rate.IsPositive() {
			return fmt.Errorf("%w: non-positive price rate for token %d in pool %s", ErrArithmetic, i, pool.ID)
		}
	}
	return nil
}

func hasSelfToken(pool types.PoolSnapshot) bool {
	for _, address := range pool.Tokens {
		if strings.EqualFold(address, pool.Address) {
			return true
		}
	}
	return false
}
