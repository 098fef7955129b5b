// Package mockdata serves static demo data when an upstream is not configured or fails
// and the service runs with portfolioService.useMock enabled.
package mockdata

import (
	"context"
	"slices"
	"time"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/domain/entity"
)

func f64(v float64) *float64 { return &v }

var mockBalances = []entity.Balance{
	{Chain: "ethereum", ChainID: 1, Address: "native", Amount: "2500000000000000000", Symbol: "ETH", Name: "Ether", Decimals: 18, PriceUSD: 3200, ValueUSD: 8000},
	{Chain: "ethereum", ChainID: 1, Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", Amount: "4200000000", Symbol: "USDC", Name: "USD Coin", Decimals: 6, PriceUSD: 1, ValueUSD: 4200},
	{Chain: "base", ChainID: 8453, Address: "native", Amount: "750000000000000000", Symbol: "ETH", Name: "Ether", Decimals: 18, PriceUSD: 3200, ValueUSD: 2400},
	{Chain: "base", ChainID: 8453, Address: "0x940181a94a35a4569e4529a3cdfb74e38fd98631", Amount: "1500000000000000000000", Symbol: "AERO", Name: "Aerodrome", Decimals: 18, PriceUSD: 0.8, ValueUSD: 1200},
	{Chain: "arbitrum", ChainID: 42161, Address: "0x912ce59144191c1204e64559fe8253a0e49e6548", Amount: "900000000000000000000", Symbol: "ARB", Name: "Arbitrum", Decimals: 18, PriceUSD: 0.75, ValueUSD: 675},
	{Chain: "arbitrum", ChainID: 42161, Address: "0xdeadbeef00000000000000000000000000000000", Amount: "1000000000000000000", Symbol: "DUST", Name: "Dust Token", Decimals: 18, PriceUSD: 0, ValueUSD: 0, LowLiquidity: true},
}

var mockPositions = []entity.DefiPosition{
	{
		Kind: entity.PositionAMMLP, Chain: "base", ChainID: 8453, Protocol: "Aerodrome",
		Token0: &entity.PositionToken{Symbol: "WETH", Decimals: 18}, Token1: &entity.PositionToken{Symbol: "USDC", Decimals: 6},
		Liquidity: f64(3100), USDValue: f64(3050), Earned: f64(42.5),
	},
	{
		Kind: entity.PositionLendingSupply, Chain: "ethereum", ChainID: 1, Protocol: "Aave V3",
		Token0:      &entity.PositionToken{Symbol: "USDC", Decimals: 6},
		SupplyQuote: &entity.Quote{Balance: f64(5000), PriceUSD: f64(1), ValueUSD: f64(5000)},
		Earned:      f64(61.2),
	},
	{
		Kind: entity.PositionLendingBorrow, Chain: "ethereum", ChainID: 1, Protocol: "Aave V3",
		Token0:    &entity.PositionToken{Symbol: "WETH", Decimals: 18},
		DebtQuote: &entity.Quote{Balance: f64(0.5), PriceUSD: f64(3200), ValueUSD: f64(1600)},
		USDValue:  f64(1600),
	},
	{
		Kind: entity.PositionTokenizedVault, Chain: "arbitrum", ChainID: 42161, Protocol: "Yearn",
		Token0:   &entity.PositionToken{Symbol: "USDC", Decimals: 6},
		USDValue: f64(1250),
	},
}

func mockTransactions(address string) []entity.Transaction {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []entity.Transaction{
		{
			Chain: "ethereum", ChainID: 1, Hash: "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060",
			BlockNumber: 20000001, BlockTime: base, From: address, To: "0x87870bca3f3fd6335c3f4ce8392d69350b4fa4e2",
			Value: "0", GasPrice: "12000000000", GasUsed: 182000, Fee: "2184000000000000", Status: entity.TxStatusSuccess,
			Decoded: &entity.DecodedCall{Name: "supply"},
		},
		{
			Chain: "base", ChainID: 8453, Hash: "0x8a0b3c1f2d09d2b1a7cfd1f0f3dd2f6bd3c9a3c8f3d6f2aa8a0b3c1f2d09d2b1",
			BlockNumber: 15000002, BlockTime: base.Add(-26 * time.Hour), From: address, To: "0xcf77a3ba9a5ca399b7c97c74d54e5b1beb874e43",
			Value: "250000000000000000", GasPrice: "5000000", GasUsed: 240000, Fee: "1200000000000", Status: entity.TxStatusSuccess,
			Decoded: &entity.DecodedCall{Name: "addLiquidityETH"},
		},
		{
			Chain: "arbitrum", ChainID: 42161, Hash: "0x1f9840a85d5af5bf1d1762f925bdaddc4201f9841f9840a85d5af5bf1d1762f9",
			BlockNumber: 210000003, BlockTime: base.Add(-72 * time.Hour), From: address, To: "0x912ce59144191c1204e64559fe8253a0e49e6548",
			Value: "0", GasPrice: "10000000", GasUsed: 51000, Fee: "510000000000", Status: 0,
		},
	}
}

func filterByChain[T any](items []T, chainIDs []uint64, chainOf func(T) uint64) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if len(chainIDs) == 0 || slices.Contains(chainIDs, chainOf(it)) {
			out = append(out, it)
		}
	}
	return out
}

// Feed is a port.WalletDataFeed over the static demo portfolio. The same portfolio is
// returned for every address.
type Feed struct{}

var _ port.WalletDataFeed = Feed{}

// Configured implements port.WalletDataFeed.
func (Feed) Configured() bool { return true }

// Balances implements port.WalletDataFeed.
func (Feed) Balances(_ context.Context, _ string, chainIDs []uint64) ([]entity.Balance, error) {
	return filterByChain(mockBalances, chainIDs, func(b entity.Balance) uint64 { return b.ChainID }), nil
}

// Transactions implements port.WalletDataFeed.
func (Feed) Transactions(_ context.Context, address string, chainIDs []uint64) ([]entity.Transaction, error) {
	return filterByChain(mockTransactions(address), chainIDs, func(t entity.Transaction) uint64 { return t.ChainID }), nil
}

// DefiPositions implements port.WalletDataFeed.
func (Feed) DefiPositions(_ context.Context, _ string, chainIDs []uint64) ([]entity.DefiPosition, error) {
	return filterByChain(mockPositions, chainIDs, func(p entity.DefiPosition) uint64 { return p.ChainID }), nil
}
