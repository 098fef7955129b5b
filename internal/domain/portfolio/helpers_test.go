package portfolio

import "strategy_dashboard/internal/domain/entity"

func f64(v float64) *float64 { return &v }

// makeBalance builds an 18-decimal balance worth value USD on chain.
func makeBalance(symbol, chain string, value float64) entity.Balance {
	return entity.Balance{
		Chain:    chain,
		ChainID:  1,
		Address:  "0x" + symbol,
		Amount:   "1000000000000000000",
		Symbol:   symbol,
		Name:     symbol + " token",
		Decimals: 18,
		PriceUSD: entity.FlexFloat(value),
		ValueUSD: entity.FlexFloat(value),
	}
}

func tokensOnChains(chains ...string) []entity.Token {
	tokens := make([]entity.Token, len(chains))
	for i, c := range chains {
		tokens[i] = entity.Token{Chain: c, ValueUSD: 1, Allocation: 100 / float64(len(chains))}
	}
	return tokens
}
