package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/domain/entity"
	"strategy_dashboard/internal/domain/portfolio"
	"strategy_dashboard/internal/pkg/metrics"
)

// Fallback reasons used in the feed fallback counter.
const (
	reasonNotConfigured = "not_configured"
	reasonError         = "error"
)

// PortfolioServiceImpl implements port.PortfolioService.
type PortfolioServiceImpl struct {
	feed            port.WalletDataFeed
	fallback        port.WalletDataFeed // nil means degrade to empty collections
	networkProvider port.NetworkDefinitionProvider
	logger          *zap.Logger
	fetchTimeout    time.Duration
	now             func() time.Time
}

// NewPortfolioService creates a new instance of PortfolioServiceImpl. fallback serves a feed
// that is unconfigured or failing; pass nil to degrade to empty collections instead.
func NewPortfolioService(
	feed port.WalletDataFeed,
	fallback port.WalletDataFeed,
	np port.NetworkDefinitionProvider,
	fetchTimeout time.Duration,
	logger *zap.Logger,
) *PortfolioServiceImpl {
	return &PortfolioServiceImpl{
		feed:            feed,
		fallback:        fallback,
		networkProvider: np,
		logger:          logger.Named("PortfolioService"),
		fetchTimeout:    fetchTimeout,
		now:             time.Now,
	}
}

var _ port.PortfolioService = (*PortfolioServiceImpl)(nil)

// GetPortfolio implements port.PortfolioService.
func (s *PortfolioServiceImpl) GetPortfolio(ctx context.Context, address string, chainIDs []uint64) (*entity.PortfolioSnapshot, error) {
	address, err := s.validate(address, chainIDs)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Fetching portfolio", zap.String("address", address), zap.Uint64s("chainIDs", chainIDs))

	var (
		balances     []entity.Balance
		transactions []entity.Transaction
		positions    []entity.DefiPosition
		sources      = make(map[string]entity.SourceState, 3)
		balState     entity.SourceState
		txState      entity.SourceState
		posState     entity.SourceState
	)

	// Each goroutine writes only its own variables; the group only surfaces cancellation
	// of the caller's context, feed errors never reach it.
	var eg errgroup.Group
	eg.Go(func() error {
		balances, balState = fetchWithFallback(ctx, s, entity.FeedBalances, address, chainIDs, port.WalletDataFeed.Balances)
		return ctx.Err()
	})
	eg.Go(func() error {
		transactions, txState = fetchWithFallback(ctx, s, entity.FeedTransactions, address, chainIDs, port.WalletDataFeed.Transactions)
		return ctx.Err()
	})
	eg.Go(func() error {
		positions, posState = fetchWithFallback(ctx, s, entity.FeedPositions, address, chainIDs, port.WalletDataFeed.DefiPositions)
		return ctx.Err()
	})
	if err := eg.Wait(); err != nil {
		s.logger.Info("Portfolio fetch abandoned", zap.String("address", address), zap.Error(err))
		return nil, err
	}
	sources[entity.FeedBalances] = balState
	sources[entity.FeedTransactions] = txState
	sources[entity.FeedPositions] = posState

	started := time.Now()
	result, err := portfolio.Aggregate(balances, transactions, positions)
	metrics.AggregationDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		var malformed *entity.MalformedRecordError
		if errors.As(err, &malformed) {
			metrics.MalformedRecordsTotal.Inc()
		}
		s.logger.Error("Failed to aggregate portfolio", zap.String("address", address), zap.Error(err))
		return nil, err
	}

	snapshot := &entity.PortfolioSnapshot{
		WalletAddress: address,
		ChainIDs:      chainIDs,
		Tokens:        result.Tokens,
		Protocols:     result.Protocols,
		Transactions:  result.Transactions,
		Risk:          result.Risk,
		Totals:        result.Totals,
		Sources:       sources,
		GeneratedAt:   s.now().UTC(),
	}
	s.logger.Info("Portfolio aggregated",
		zap.String("address", address),
		zap.Int("tokens", len(snapshot.Tokens)),
		zap.Int("protocols", len(snapshot.Protocols)),
		zap.Float64("totalValue", snapshot.Totals.TotalValue))
	return snapshot, nil
}

// GetTransactions implements port.PortfolioService.
func (s *PortfolioServiceImpl) GetTransactions(ctx context.Context, address string, chainIDs []uint64) ([]entity.ClassifiedTransaction, entity.SourceState, error) {
	address, err := s.validate(address, chainIDs)
	if err != nil {
		return nil, "", err
	}
	txs, state := fetchWithFallback(ctx, s, entity.FeedTransactions, address, chainIDs, port.WalletDataFeed.Transactions)
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	return portfolio.ClassifyTransactions(txs), state, nil
}

// ParseChainFilter implements port.PortfolioService. Each comma-separated entry is a chain id
// ("8453") or a network identifier ("base"). Blank input means all chains; duplicates are
// dropped and order is kept.
func (s *PortfolioServiceImpl) ParseChainFilter(raw string) ([]uint64, error) {
	var ids []uint64
	seen := make(map[uint64]struct{})
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			if s.networkProvider == nil {
				return nil, fmt.Errorf("%w: %q", entity.ErrUnknownChain, part)
			}
			def, ok := s.networkProvider.GetNetworkDefinitionByName(part)
			if !ok {
				return nil, fmt.Errorf("%w: %q", entity.ErrUnknownChain, part)
			}
			id = def.ChainID
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// validate runs before any fetch.
func (s *PortfolioServiceImpl) validate(address string, chainIDs []uint64) (string, error) {
	normalized, err := entity.NormalizeWalletAddress(address)
	if err != nil {
		return "", err
	}
	if s.networkProvider == nil {
		return normalized, nil
	}
	for _, id := range chainIDs {
		if _, ok := s.networkProvider.GetNetworkDefinitionByChainID(id); !ok {
			return "", fmt.Errorf("%w: %d", entity.ErrUnknownChain, id)
		}
	}
	return normalized, nil
}

type feedCall[T any] func(f port.WalletDataFeed, ctx context.Context, address string, chainIDs []uint64) ([]T, error)

// fetchWithFallback asks the live feed and degrades to the fallback feed, then to an empty
// collection. It never fails; the caller checks its context for cancellation.
func fetchWithFallback[T any](
	ctx context.Context,
	s *PortfolioServiceImpl,
	feedName, address string,
	chainIDs []uint64,
	call feedCall[T],
) ([]T, entity.SourceState) {
	reason := reasonNotConfigured
	if s.feed != nil && s.feed.Configured() {
		fetchCtx := ctx
		if s.fetchTimeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
			defer cancel()
		}
		items, err := call(s.feed, fetchCtx, address, chainIDs)
		if err == nil {
			if items == nil {
				items = []T{}
			}
			return items, entity.SourceLive
		}
		if ctx.Err() != nil {
			return nil, entity.SourceEmpty
		}
		reason = reasonError
		s.logger.Warn("Wallet feed failed, falling back",
			zap.String("feed", feedName),
			zap.String("address", address),
			zap.Error(err))
	}
	metrics.FeedFallbacksTotal.WithLabelValues(feedName, reason).Inc()

	if s.fallback != nil {
		items, err := call(s.fallback, ctx, address, chainIDs)
		if err == nil {
			s.logger.Debug("Serving mock data", zap.String("feed", feedName), zap.String("reason", reason))
			return items, entity.SourceMock
		}
		s.logger.Warn("Fallback feed failed", zap.String("feed", feedName), zap.Error(err))
	}
	return []T{}, entity.SourceEmpty
}
