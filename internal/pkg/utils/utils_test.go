package utils

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntegerAmount(t *testing.T) {
	v, err := ParseIntegerAmount("1234500000000000000")
	require.NoError(t, err)
	assert.Equal(t, "1234500000000000000", v.String())

	v, err = ParseIntegerAmount("")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	_, err = ParseIntegerAmount("12.5")
	assert.Error(t, err)
	_, err = ParseIntegerAmount("abc")
	assert.Error(t, err)
}

func TestScaleByDecimals(t *testing.T) {
	v, _ := new(big.Int).SetString("1234500000000000000", 10)
	assert.True(t, ScaleByDecimals(v, 18).Equal(decimal.RequireFromString("1.2345")))
	assert.True(t, ScaleByDecimals(big.NewInt(42), 0).Equal(decimal.NewFromInt(42)))
	assert.True(t, ScaleByDecimals(nil, 6).IsZero())

	// Well past float64 integer precision; the decimal keeps every digit.
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	assert.Equal(t, "123456789012.34567890123456789", ScaleByDecimals(huge, 18).String())
}

func TestWeiToNative(t *testing.T) {
	assert.InDelta(t, 1.5, WeiToNative("1500000000000000000"), 1e-12)
	assert.InDelta(t, 1.0, WeiToNative("0xde0b6b3a7640000"), 1e-12)
	assert.Equal(t, 0.0, WeiToNative("not-a-number"))
	assert.Equal(t, 0.0, WeiToNative(""))
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "1.2345", FormatDecimal(decimal.RequireFromString("1.23450000"), 8))
	assert.Equal(t, "2", FormatDecimal(decimal.RequireFromString("2.0000"), 4))
	assert.Equal(t, "0.33", FormatDecimal(decimal.RequireFromString("0.333333"), 2))
}

func TestJoinChainIDs(t *testing.T) {
	assert.Equal(t, "1,8453", JoinChainIDs([]uint64{1, 8453}))
	assert.Equal(t, "", JoinChainIDs(nil))
}
