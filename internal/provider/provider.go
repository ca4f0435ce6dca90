/*
This file defines the narrow data-provider capabilities the valuation engine
consumes. Implementations are injected, so the engine can run against static
in-memory fixtures or the Postgres store with no code change.
*/

package provider

import (
	"context"
	"errors"

	"github.com/poolwatch/poolwatch/internal/types"
)

var (
	ErrPoolNotFound  = errors.New("pool not found")
	ErrTokenNotFound = errors.New("token metadata not found")
)

// PoolProvider resolves a pool snapshot by id or address.
type PoolProvider interface {
	GetPool(ctx context.Context, id string) (types.PoolSnapshot, error)
}

// PoolLister enumerates known pool snapshots.
type PoolLister interface {
	ListPools(ctx context.Context) ([]types.PoolSnapshot, error)
}

// TokenProvider resolves per-token decimal metadata by address.
type TokenProvider interface {
	GetToken(ctx context.Context, address string) (types.TokenInfo, error)
}

// PriceProvider resolves a USD unit price by token address. A missing price
// is reported as ok=false with a nil error; it is a valid state, not a
// failure.
type PriceProvider interface {
	GetPrice(ctx context.Context, address string) (types.PriceInfo, bool, error)
}
