package portfolio

import (
	"fmt"
	"math"
	"sort"

	"strategy_dashboard/internal/domain/entity"
	"strategy_dashboard/internal/pkg/utils"
)

// ComputeTokens keeps the priced balances, converts their raw amounts to token units,
// sorts them by USD value (largest first) and assigns each its allocation percentage.
//
// Balances with value_usd <= 0 are dust or unpriced and are dropped before validation.
// A kept balance with a non-integer amount or decimals outside [0, MaxInt32] yields a
// *entity.MalformedRecordError.
func ComputeTokens(balances []entity.Balance) ([]entity.Token, error) {
	tokens := make([]entity.Token, 0, len(balances))
	var total float64

	for i, b := range balances {
		value := b.ValueUSD.Float64()
		if !(value > 0) || math.IsInf(value, 1) {
			continue
		}
		if b.Decimals < 0 || b.Decimals > math.MaxInt32 {
			return nil, &entity.MalformedRecordError{
				Entity: "balance", Index: i, Key: b.Key(), Field: "decimals",
				Err: fmt.Errorf("decimals %d out of range", b.Decimals),
			}
		}
		raw, err := utils.ParseIntegerAmount(b.Amount)
		if err != nil {
			return nil, &entity.MalformedRecordError{Entity: "balance", Index: i, Key: b.Key(), Field: "amount", Err: err}
		}

		tokens = append(tokens, entity.Token{
			Chain:        b.Chain,
			ChainID:      b.ChainID,
			Address:      b.Address,
			Symbol:       b.Symbol,
			Name:         b.Name,
			Decimals:     b.Decimals,
			Balance:      utils.ScaleByDecimals(raw, b.Decimals),
			PriceUSD:     b.PriceUSD.Float64(),
			ValueUSD:     value,
			LowLiquidity: b.LowLiquidity,
		})
		total += value
	}

	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].ValueUSD > tokens[j].ValueUSD
	})

	if total > 0 {
		for i := range tokens {
			tokens[i].Allocation = tokens[i].ValueUSD / total * 100
		}
	}
	return tokens, nil
}
