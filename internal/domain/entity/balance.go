package entity

// Balance is one token holding of a wallet on one chain, as reported by the wallet data feed.
// ValueUSD is provided by the upstream and is not recomputed from Amount and PriceUSD.
type Balance struct {
	Chain        string    `json:"chain" yaml:"chain"`
	ChainID      uint64    `json:"chain_id" yaml:"chainId"`
	Address      string    `json:"address" yaml:"address"`
	Amount       string    `json:"amount" yaml:"amount"` // raw base-10 integer, not scaled by Decimals
	Symbol       string    `json:"symbol" yaml:"symbol"`
	Name         string    `json:"name" yaml:"name"`
	Decimals     int       `json:"decimals" yaml:"decimals"`
	PriceUSD     FlexFloat `json:"price_usd" yaml:"priceUsd"`
	ValueUSD     FlexFloat `json:"value_usd" yaml:"valueUsd"`
	LowLiquidity bool      `json:"low_liquidity,omitempty" yaml:"lowLiquidity,omitempty"`
}

// Key identifies the balance for error reporting.
func (b Balance) Key() string {
	if b.Chain == "" {
		return b.Address
	}
	return b.Chain + ":" + b.Address
}
