package common

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

func StringToBigInt(str string) (*big.Int, error) {
	result, success := big.NewInt(0).SetString(strings.TrimSpace(str), 10)
	if !success {
		return nil, fmt.Errorf("parsed %s to big int failed", str)
	}
	return result, nil
}

// FormatUnits renders a raw integer amount with the given number of decimals
// and no trailing zeros.
// Example:
// - FormatUnits("1500000", 6) = "1.5"
// - FormatUnits("1000000000000000000", 18) = "1"
// - FormatUnits("1", 18) = "0.000000000000000001"
//
// Input that is not an integer is returned unchanged.
func FormatUnits(raw string, decimals uint8) string {
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.Equal(d.Truncate(0)) {
		return raw
	}
	return d.Shift(-int32(decimals)).String()
}

// BigToFloatString is FormatUnits for a *big.Int.
func BigToFloatString(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0"
	}
	return decimal.NewFromBigInt(value, -int32(decimals)).String()
}

// ParseUnits converts a human amount such as "1.5" into its raw integer
// form with the given decimals. More fractional digits than decimals is an
// error rather than a silent truncation.
func ParseUnits(amount string, decimals uint8) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, fmt.Errorf("couldn't parse %q as a number: %w", amount, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("amount %q is negative", amount)
	}
	shifted := d.Shift(int32(decimals))
	if !shifted.Equal(shifted.Truncate(0)) {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", amount, decimals)
	}
	return shifted.BigInt(), nil
}
