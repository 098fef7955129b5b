package mockdata

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"strategy_dashboard/internal/domain/entity"
)

// listingID derives a stable id so mock records keep their ids across restarts.
func listingID(kind entity.CatalogKind, slug string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("catalog/"+string(kind)+"/"+slug)).String()
}

var catalogEpoch = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func mockStrategies() []entity.Listing {
	return []entity.Listing{
		{
			ID: listingID(entity.CatalogStrategies, "stable-yield"), Name: "Stablecoin Yield Rotator",
			Description: "Rotates USDC between lending markets toward the best supply rate.",
			Category:    "yield", RiskLevel: "low", Chains: []string{"ethereum", "base"}, Protocols: []string{"Aave V3", "Morpho"},
			TVL: 1_250_000, APY: 6.4, Subscribers: 312, Creator: "0x1111111111111111111111111111111111111111",
			Graph:     json.RawMessage(`{"nodes":[{"id":"n1","type":"supply"}],"edges":[]}`),
			CreatedAt: catalogEpoch,
		},
		{
			ID: listingID(entity.CatalogStrategies, "eth-lp"), Name: "ETH/USDC Concentrated LP",
			Description: "Provides concentrated ETH/USDC liquidity and rebalances around the spot price.",
			Category:    "liquidity", RiskLevel: "medium", Chains: []string{"base", "arbitrum"}, Protocols: []string{"Aerodrome", "Uniswap V3"},
			TVL: 840_000, APY: 18.2, Subscribers: 127, Creator: "0x2222222222222222222222222222222222222222",
			CreatedAt: catalogEpoch.Add(14 * 24 * time.Hour),
		},
		{
			ID: listingID(entity.CatalogStrategies, "leveraged-staking"), Name: "Leveraged Staked ETH Loop",
			Description: "Loops wstETH collateral against WETH debt for amplified staking yield.",
			Category:    "leverage", RiskLevel: "high", Chains: []string{"ethereum"}, Protocols: []string{"Aave V3", "Lido"},
			TVL: 2_100_000, APY: 11.7, Subscribers: 89, Creator: "0x3333333333333333333333333333333333333333",
			CreatedAt: catalogEpoch.Add(30 * 24 * time.Hour),
		},
	}
}

func mockAgents() []entity.Listing {
	return []entity.Listing{
		{
			ID: listingID(entity.CatalogAgents, "yield-keeper"), Name: "Yield Keeper",
			Description: "Executes the Stablecoin Yield Rotator every six hours.",
			Category:    "yield", RiskLevel: "low", Chains: []string{"ethereum", "base"},
			StrategyID: listingID(entity.CatalogStrategies, "stable-yield"), Status: "active",
			TVL: 410_000, APY: 6.1, Subscribers: 58, Creator: "0x1111111111111111111111111111111111111111",
			CreatedAt: catalogEpoch.Add(2 * 24 * time.Hour),
		},
		{
			ID: listingID(entity.CatalogAgents, "range-rebalancer"), Name: "Range Rebalancer",
			Description: "Watches LP ranges and rebalances when price leaves the band.",
			Category:    "liquidity", RiskLevel: "medium", Chains: []string{"base"},
			StrategyID: listingID(entity.CatalogStrategies, "eth-lp"), Status: "paused",
			TVL: 96_000, APY: 15.3, Subscribers: 21, Creator: "0x2222222222222222222222222222222222222222",
			CreatedAt: catalogEpoch.Add(20 * 24 * time.Hour),
		},
	}
}

// Listings returns a fresh copy of the mock collection for kind.
func Listings(kind entity.CatalogKind) []entity.Listing {
	switch kind {
	case entity.CatalogStrategies:
		return mockStrategies()
	case entity.CatalogAgents:
		return mockAgents()
	default:
		return nil
	}
}

// Listing looks up one mock record.
func Listing(kind entity.CatalogKind, id string) (entity.Listing, bool) {
	for _, l := range Listings(kind) {
		if l.ID == id {
			return l, true
		}
	}
	return entity.Listing{}, false
}
