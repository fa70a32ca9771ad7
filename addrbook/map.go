package addrbook

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Map is a lightweight LabelResolver for tests. Keys are lower-cased hex
// addresses; anything not in the map has no label.
//
// Example:
//
//	r := addrbook.Map{
//	    "0xd8da6bf26964af9d7eed9e03e53415d37aa96045": "Vitalik Buterin",
//	    "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48": "USDC",
//	}
type Map map[string]string

func (m Map) ResolveLabel(_ context.Context, addr common.Address) (string, error) {
	return m[strings.ToLower(addr.Hex())], nil
}
