package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/domain/entity"
)

// MarketServiceImpl implements port.MarketService over a market-data client.
type MarketServiceImpl struct {
	client      port.MarketDataClient
	logger      *zap.Logger
	symbolCache *cache.Cache // lower-case symbol -> entity.CoinRef
	defaultDays int
}

var _ port.MarketService = (*MarketServiceImpl)(nil)

// NewMarketService creates a new instance of MarketServiceImpl.
func NewMarketService(client port.MarketDataClient, symbolTTL time.Duration, defaultDays int, logger *zap.Logger) *MarketServiceImpl {
	if defaultDays <= 0 {
		defaultDays = 7
	}
	return &MarketServiceImpl{
		client:      client,
		logger:      logger.Named("MarketService"),
		symbolCache: cache.New(symbolTTL, 10*time.Minute),
		defaultDays: defaultDays,
	}
}

// ResolveSymbol implements port.MarketService. An exact case-insensitive symbol match wins,
// otherwise the provider's first (highest ranked) result is used.
func (s *MarketServiceImpl) ResolveSymbol(ctx context.Context, symbol string) (entity.CoinRef, error) {
	key := strings.ToLower(strings.TrimSpace(symbol))
	if key == "" {
		return entity.CoinRef{}, fmt.Errorf("%w: empty symbol", entity.ErrUnknownSymbol)
	}
	if cached, found := s.symbolCache.Get(key); found {
		return cached.(entity.CoinRef), nil
	}

	coins, err := s.client.Search(ctx, key)
	if err != nil {
		return entity.CoinRef{}, err
	}
	if len(coins) == 0 {
		return entity.CoinRef{}, fmt.Errorf("%w: %s", entity.ErrUnknownSymbol, symbol)
	}
	ref := coins[0]
	for _, c := range coins {
		if strings.EqualFold(c.Symbol, key) {
			ref = c
			break
		}
	}
	s.symbolCache.Set(key, ref, cache.DefaultExpiration)
	s.logger.Debug("Resolved symbol", zap.String("symbol", key), zap.String("id", ref.ID))
	return ref, nil
}

// Snapshot implements port.MarketService.
func (s *MarketServiceImpl) Snapshot(ctx context.Context, symbol string) (*entity.MarketSnapshot, error) {
	ref, err := s.ResolveSymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	markets, err := s.client.Markets(ctx, []string{ref.ID})
	if err != nil {
		return nil, err
	}
	for _, m := range markets {
		if m.ID == ref.ID {
			return &m, nil
		}
	}
	return nil, fmt.Errorf("%w: no market data for %s", entity.ErrUnknownSymbol, ref.ID)
}

// OHLCV implements port.MarketService. A failed volume series leaves volumes at zero
// rather than failing the candles.
func (s *MarketServiceImpl) OHLCV(ctx context.Context, symbol string, days int) ([]entity.Candle, error) {
	if days <= 0 {
		days = s.defaultDays
	}
	ref, err := s.ResolveSymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	var candles, volumes []entity.Candle
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		candles, err = s.client.OHLC(egCtx, ref.ID, days)
		return err
	})
	eg.Go(func() error {
		var err error
		volumes, err = s.client.Volumes(egCtx, ref.ID, days)
		if err != nil {
			// egCtx is also cancelled when the OHLC call fails; that is not a volume failure.
			if egCtx.Err() == nil {
				s.logger.Warn("Failed to fetch volumes, serving candles without volume", zap.String("id", ref.ID), zap.Error(err))
			}
			volumes = nil
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return MergeVolumes(candles, volumes), nil
}

// MergeVolumes sets each candle's volume to the latest volume sample taken at or before the
// candle time. Candles before the first sample keep zero volume.
func MergeVolumes(candles, volumes []entity.Candle) []entity.Candle {
	samples := append([]entity.Candle(nil), volumes...)
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Time.Before(samples[j].Time) })

	out := make([]entity.Candle, len(candles))
	for i, c := range candles {
		idx := sort.Search(len(samples), func(k int) bool { return samples[k].Time.After(c.Time) })
		if idx > 0 {
			c.Volume = samples[idx-1].Volume
		}
		out[i] = c
	}
	return out
}
