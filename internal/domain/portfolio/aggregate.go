package portfolio

import "strategy_dashboard/internal/domain/entity"

// Result bundles everything derived from one wallet's raw collections.
type Result struct {
	Tokens       []entity.Token
	Protocols    []entity.Protocol
	Transactions []entity.ClassifiedTransaction
	Risk         entity.RiskMetrics
	Totals       entity.Totals
}

// Aggregate runs the whole derivation over already-fetched collections.
func Aggregate(balances []entity.Balance, txs []entity.Transaction, positions []entity.DefiPosition) (Result, error) {
	tokens, err := ComputeTokens(balances)
	if err != nil {
		return Result{}, err
	}
	protocols := ComputeProtocols(positions)
	return Result{
		Tokens:       tokens,
		Protocols:    protocols,
		Transactions: ClassifyTransactions(txs),
		Risk:         ComputeRiskMetrics(tokens, protocols, positions),
		Totals:       ComputeTotals(tokens, protocols),
	}, nil
}
