/*

This is a custom type for pools which contains all the state needed for valuing them.

*/

package types

import (
	sdkmath "cosmossdk.io/math"
)

// PoolType tags the pricing invariant a pool runs on. Anything outside the
// four known variants is rejected by the engine rather than guessed at.
type PoolType string

const (
	PoolTypeWeighted      PoolType = "Weighted"
	PoolTypeStable        PoolType = "Stable"
	PoolTypeMetaStable    PoolType = "MetaStable"
	PoolTypePhantomStable PoolType = "PhantomStable"
)

type PoolSnapshot struct {
	ID      string   `json:"id"`        // unique pool id, e.g. "staBAL3"
	Address string   `json:"address"`   // on-chain pool address
	Type    PoolType `json:"pool_type"` // pricing variant tag

	// Tokens and Balances are parallel, same order as on chain. Balances are
	// raw integers in each token's native decimals.
	Tokens   []string      `json:"tokens"`
	Balances []sdkmath.Int `json:"balances"`

	// Weights are normalized target weights, parallel to Tokens. Required for
	// Weighted pools, absent otherwise.
	Weights []sdkmath.LegacyDec `json:"weights,omitempty"`

	// PriceRates are per-token exchange rates applied before pricing
	// (e.g. a wrapped staking derivative trading above its underlying).
	// Required for MetaStable and PhantomStable pools, absent otherwise.
	PriceRates []sdkmath.LegacyDec `json:"price_rates,omitempty"`

	// SwapFee is part of the snapshot's identity but plays no role in
	// valuation.
	SwapFee sdkmath.LegacyDec `json:"swap_fee,omitempty"`
}
