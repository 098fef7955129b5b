package portfolio

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strategy_dashboard/internal/domain/entity"
)

func TestComputeTokens_SortsDescendingByValue(t *testing.T) {
	tokens, err := ComputeTokens([]entity.Balance{
		makeBalance("A", "ethereum", 5),
		makeBalance("B", "ethereum", 50),
		makeBalance("C", "base", 1),
	})
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	got := []float64{tokens[0].ValueUSD, tokens[1].ValueUSD, tokens[2].ValueUSD}
	assert.Equal(t, []float64{50, 5, 1}, got)
	assert.Equal(t, "B", tokens[0].Symbol)
}

func TestComputeTokens_DropsZeroAndNegativeValues(t *testing.T) {
	tokens, err := ComputeTokens([]entity.Balance{
		makeBalance("DUST", "ethereum", 0),
		makeBalance("REAL", "ethereum", 10),
		makeBalance("NEG", "ethereum", -3),
	})
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "REAL", tokens[0].Symbol)
	assert.InDelta(t, 100, tokens[0].Allocation, 1e-9)
}

func TestComputeTokens_Empty(t *testing.T) {
	tokens, err := ComputeTokens(nil)
	require.NoError(t, err)
	assert.NotNil(t, tokens)
	assert.Empty(t, tokens)

	tokens, err = ComputeTokens([]entity.Balance{makeBalance("DUST", "ethereum", 0)})
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestComputeTokens_AllocationsSumTo100(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 50; run++ {
		n := 1 + rng.Intn(25)
		balances := make([]entity.Balance, n)
		for i := range balances {
			balances[i] = makeBalance("T", "ethereum", rng.Float64()*1e6+1e-3)
		}

		tokens, err := ComputeTokens(balances)
		require.NoError(t, err)

		var sum float64
		for _, tok := range tokens {
			sum += tok.Allocation
		}
		assert.InDelta(t, 100, sum, 1e-6, "run %d", run)
	}
}

func TestComputeTokens_ScalesAmountByDecimals(t *testing.T) {
	b := makeBalance("USDC", "ethereum", 1234.5)
	b.Amount = "1234500000"
	b.Decimals = 6

	whale := makeBalance("ETH", "ethereum", 1)
	whale.Amount = "987654321987654321987654321"

	tokens, err := ComputeTokens([]entity.Balance{b, whale})
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.True(t, tokens[0].Balance.Equal(decimal.RequireFromString("1234.5")))
	assert.True(t, tokens[1].Balance.Equal(decimal.RequireFromString("987654321.987654321987654321")))
}

func TestComputeTokens_MalformedAmount(t *testing.T) {
	bad := makeBalance("BAD", "base", 10)
	bad.Amount = "12abc"

	_, err := ComputeTokens([]entity.Balance{makeBalance("OK", "ethereum", 5), bad})
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrMalformedRecord))

	var mre *entity.MalformedRecordError
	require.True(t, errors.As(err, &mre))
	assert.Equal(t, "balance", mre.Entity)
	assert.Equal(t, 1, mre.Index)
	assert.Equal(t, "amount", mre.Field)
	assert.Equal(t, "base:0xBAD", mre.Key)
}

func TestComputeTokens_MalformedDustIsIgnored(t *testing.T) {
	dust := makeBalance("DUST", "base", 0)
	dust.Amount = "not a number"

	tokens, err := ComputeTokens([]entity.Balance{dust})
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestComputeTokens_NegativeDecimals(t *testing.T) {
	b := makeBalance("X", "ethereum", 1)
	b.Decimals = -1

	_, err := ComputeTokens([]entity.Balance{b})
	var mre *entity.MalformedRecordError
	require.True(t, errors.As(err, &mre))
	assert.Equal(t, "decimals", mre.Field)
}

func TestComputeTokens_DecimalsBeyondInt32(t *testing.T) {
	if strconv.IntSize == 32 {
		t.Skip("int cannot hold decimals beyond MaxInt32")
	}
	huge := int64(1)<<32 + 18
	b := makeBalance("X", "ethereum", 1)
	b.Decimals = int(huge)

	_, err := ComputeTokens([]entity.Balance{b})
	var mre *entity.MalformedRecordError
	require.True(t, errors.As(err, &mre))
	assert.Equal(t, "decimals", mre.Field)
}

func TestComputeTokens_MissingAmountIsZero(t *testing.T) {
	b := makeBalance("X", "ethereum", 3)
	b.Amount = ""

	tokens, err := ComputeTokens([]entity.Balance{b})
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.True(t, tokens[0].Balance.IsZero())
}
