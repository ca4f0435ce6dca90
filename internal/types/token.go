/*

This is a custom type for tokens which contains the metadata needed for scaling raw balances.

*/

package types

type TokenInfo struct {
	Address  string `json:"address"`  // e.g., "0x6b17...1d0f"
	Symbol   string `json:"symbol"`   // e.g., "DAI"
	Decimals int    `json:"decimals"` // e.g., 18 = 1e18 base units per token
}
