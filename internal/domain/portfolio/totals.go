package portfolio

import "strategy_dashboard/internal/domain/entity"

// ComputeTotals sums token values and protocol deployments.
func ComputeTotals(tokens []entity.Token, protocols []entity.Protocol) entity.Totals {
	var totals entity.Totals
	for _, t := range tokens {
		totals.TokenValue += t.ValueUSD
	}
	for _, p := range protocols {
		totals.DeployedValue += p.AmountDeployed
	}
	totals.TotalValue = totals.TokenValue + totals.DeployedValue
	return totals
}
