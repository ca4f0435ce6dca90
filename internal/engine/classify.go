package engine

import (
	"fmt"

	"github.com/poolwatch/poolwatch/internal/types"
)

// poolVariant is the closed set of valuation strategies. Classification maps
// a snapshot's declared kind onto exactly one variant or fails; there is no
// default route.
type poolVariant int

const (
	variantWeighted poolVariant = iota
	variantStable
	variantMetaStable
	variantPhantomStable
)

func classifyPool(kind types.PoolType) (poolVariant, error) {
	switch kind {
	case types.PoolTypeWeighted:
		return variantWeighted, nil
	case types.PoolTypeStable:
		return variantStable, nil
	case types.PoolTypeMetaStable:
		return variantMetaStable, nil
	case types.PoolTypePhantomStable:
		return variantPhantomStable, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedPoolType, kind)
	}
}
