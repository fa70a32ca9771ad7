package common

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// LowerHex is the canonical lowercase 0x form of addr.
func LowerHex(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

// ShortHex abbreviates a 0x-prefixed hex string to 0x1234...abcd. Strings
// of ten characters or fewer are returned as they are.
func ShortHex(s string) string {
	s = strings.ToLower(s)
	if len(s) <= 10 {
		return s
	}
	return s[:6] + "..." + s[len(s)-4:]
}

func ShortAddress(addr common.Address) string {
	return ShortHex(addr.Hex())
}

func ShortHash(hash common.Hash) string {
	return ShortHex(hash.Hex())
}

// TokenInfo is the ERC-20 metadata needed to render an amount.
type TokenInfo struct {
	Decimals uint8  `json:"decimals"`
	Symbol   string `json:"symbol"`
}
