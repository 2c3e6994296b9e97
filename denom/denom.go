// Package denom converts between human readable decimal amounts and the
// ledger's smallest indivisible unit.
package denom

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// LedgerDecimals is the number of fractional digits of the native ledger currency.
const LedgerDecimals = 18

// ErrInvalidAmount signals an amount string that cannot be converted.
var ErrInvalidAmount = errors.New("invalid amount")

// ToSmallest parses a decimal amount such as "2.5" and returns it scaled by 10^decimals.
// The conversion is exact, so amounts with more fractional digits than decimals are rejected.
func ToSmallest(amount string, decimals uint) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	intPart, fracPart := amount, ""
	if dot := strings.IndexByte(amount, '.'); dot >= 0 {
		intPart, fracPart = amount[:dot], amount[dot+1:]
	}
	if intPart == "" && fracPart == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	if uint(len(fracPart)) > decimals {
		return nil, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidAmount, amount, decimals)
	}

	digits := intPart + fracPart + strings.Repeat("0", int(decimals)-len(fracPart))
	value, ok := big.NewInt(0).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}

	return value, nil
}

// FromSmallest renders value / 10^decimals as the shortest exact decimal string.
func FromSmallest(value *big.Int, decimals uint) string {
	if value == nil || value.Sign() == 0 {
		return "0"
	}

	sign := ""
	digits := value.String()
	if value.Sign() < 0 {
		sign, digits = "-", digits[1:]
	}

	width := int(decimals) + 1
	if len(digits) < width {
		digits = strings.Repeat("0", width-len(digits)) + digits
	}

	split := len(digits) - int(decimals)
	intPart := digits[:split]
	fracPart := strings.TrimRight(digits[split:], "0")
	if fracPart == "" {
		return sign + intPart
	}

	return sign + intPart + "." + fracPart
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
