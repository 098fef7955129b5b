package port

import (
	"context"

	"strategy_dashboard/internal/domain/entity"
)

// WalletDataFeed is the upstream source of a wallet's balances, transactions and DeFi positions.
// A nil or empty chainIDs slice means all chains.
type WalletDataFeed interface {
	Balances(ctx context.Context, address string, chainIDs []uint64) ([]entity.Balance, error)
	Transactions(ctx context.Context, address string, chainIDs []uint64) ([]entity.Transaction, error)
	DefiPositions(ctx context.Context, address string, chainIDs []uint64) ([]entity.DefiPosition, error)
	// Configured reports whether the feed has the credentials to reach its upstream.
	Configured() bool
}

// PortfolioService builds wallet portfolio snapshots.
type PortfolioService interface {
	// GetPortfolio fetches the three wallet collections concurrently and aggregates them.
	// Upstream failures degrade to fallback data; only invalid input, malformed records
	// and context cancellation are returned as errors.
	GetPortfolio(ctx context.Context, address string, chainIDs []uint64) (*entity.PortfolioSnapshot, error)
	// GetTransactions returns only the classified transaction history.
	GetTransactions(ctx context.Context, address string, chainIDs []uint64) ([]entity.ClassifiedTransaction, entity.SourceState, error)
	// ParseChainFilter turns a comma-separated list of chain ids or network names into chain ids.
	ParseChainFilter(raw string) ([]uint64, error)
}
