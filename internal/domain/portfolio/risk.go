package portfolio

import (
	"strconv"

	"strategy_dashboard/internal/domain/entity"
)

const (
	maxScore            = 10
	minHealth           = 1
	pointsPerChain      = 2
	maxProtocolPoints   = 5
	highExposureAbove   = 50.0
	mediumExposureAbove = 25.0
)

// ComputeRiskMetrics derives the presentation-only risk scores. The thresholds are fixed;
// dashboard output depends on them exactly.
func ComputeRiskMetrics(tokens []entity.Token, protocols []entity.Protocol, positions []entity.DefiPosition) entity.RiskMetrics {
	var top float64
	chains := make(map[string]struct{})
	for _, t := range tokens {
		if t.Allocation > top {
			top = t.Allocation
		}
		chains[chainKey(t)] = struct{}{}
	}

	diversification := min(maxScore, len(chains)*pointsPerChain)
	health := min(maxScore, max(minHealth, diversification+min(len(protocols), maxProtocolPoints)))

	return entity.RiskMetrics{
		PortfolioHealth:      health,
		DiversificationScore: diversification,
		TopAllocation:        top,
		ChainCount:           len(chains),
		ExposureRisk:         exposureRisk(top),
		LiquidationRisk:      liquidationRisk(positions),
	}
}

func exposureRisk(topAllocation float64) string {
	switch {
	case topAllocation > highExposureAbove:
		return entity.RiskHigh
	case topAllocation > mediumExposureAbove:
		return entity.RiskMedium
	}
	return entity.RiskLow
}

func liquidationRisk(positions []entity.DefiPosition) string {
	if len(positions) > 0 {
		return entity.RiskReview
	}
	return entity.RiskLow
}

// chainKey prefers the chain name; records that only carry an id still count as a chain.
func chainKey(t entity.Token) string {
	if t.Chain != "" {
		return t.Chain
	}
	return "#" + strconv.FormatUint(t.ChainID, 10)
}
