package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/domain/entity"
)

// WalletReport is the outcome for one wallet of a batch run.
type WalletReport struct {
	Wallet   entity.Wallet
	Snapshot *entity.PortfolioSnapshot
	Err      error
}

// FetchAllWalletsPortfolio builds a snapshot for every wallet of wp, at most maxRoutines at a
// time. Per-wallet failures are reported in WalletReport.Err and do not stop the batch;
// reports keep the wallet order.
func FetchAllWalletsPortfolio(
	ctx context.Context,
	svc port.PortfolioService,
	wp port.WalletProvider,
	chainIDs []uint64,
	maxRoutines int,
	logger *zap.Logger,
) ([]WalletReport, error) {
	wallets, err := wp.GetWallets()
	if err != nil {
		logger.Error("Failed to get wallets", zap.Error(err))
		return nil, err
	}
	if maxRoutines <= 0 {
		maxRoutines = 1
	}

	reports := make([]WalletReport, len(wallets))
	var failed int
	var mu sync.Mutex

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxRoutines)
	for i, w := range wallets {
		eg.Go(func() error {
			snapshot, err := svc.GetPortfolio(egCtx, w.Address, chainIDs)
			reports[i] = WalletReport{Wallet: w, Snapshot: snapshot, Err: err}
			if err != nil {
				logger.Warn("Error fetching portfolio for wallet", zap.String("address", w.Address), zap.Error(err))
				mu.Lock()
				failed++
				mu.Unlock()
			}
			return nil
		})
	}
	_ = eg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("Fetched portfolios for all wallets", zap.Int("count", len(wallets)), zap.Int("failed", failed))
	return reports, nil
}
