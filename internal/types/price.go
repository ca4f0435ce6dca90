package types

import (
	"time"

	sdkmath "cosmossdk.io/math"
)

// PriceInfo holds a USD unit price for a token as of some reference time.
// Absence of a price is a valid state and is signalled by the provider, not
// by a zero value here.
type PriceInfo struct {
	Address  string            `json:"address"`
	PriceUSD sdkmath.LegacyDec `json:"price_usd"`
	AsOf     time.Time         `json:"as_of,omitempty"`
}
