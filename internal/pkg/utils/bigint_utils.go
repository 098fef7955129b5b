package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/params"
	"github.com/shopspring/decimal"
)

var weiPerEther = decimal.NewFromBigInt(big.NewInt(params.Ether), 0)

// ParseIntegerAmount parses a raw base-10 integer amount as sent by upstream feeds.
// An empty string is a missing amount and parses as zero.
func ParseIntegerAmount(amount string) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return nil, fmt.Errorf("not a base-10 integer: %q", amount)
	}
	return v, nil
}

// ScaleByDecimals converts a raw integer amount to token units: amount / 10^decimals.
// Example: amount=1234500000000000000, decimals=18 => 1.2345
func ScaleByDecimals(amount *big.Int, decimals int) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, int32(-decimals))
}

// WeiToNative converts a wei string (base-10 or 0x hex) to native units assuming 18 decimals.
// Unparseable input yields 0.
func WeiToNative(value string) float64 {
	v, ok := math.ParseBig256(strings.TrimSpace(value))
	if !ok || v == nil {
		return 0
	}
	f, _ := decimal.NewFromBigInt(v, 0).Div(weiPerEther).Float64()
	return f
}

// FormatDecimal renders d with at most places fractional digits and no trailing zeros.
func FormatDecimal(d decimal.Decimal, places int32) string {
	s := d.Round(places).String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}
