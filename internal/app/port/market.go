package port

import (
	"context"

	"strategy_dashboard/internal/domain/entity"
)

// MarketDataClient talks to the public market-data provider.
type MarketDataClient interface {
	Search(ctx context.Context, query string) ([]entity.CoinRef, error)
	Markets(ctx context.Context, ids []string) ([]entity.MarketSnapshot, error)
	OHLC(ctx context.Context, id string, days int) ([]entity.Candle, error)
	Volumes(ctx context.Context, id string, days int) ([]entity.Candle, error)
}

// MarketService answers symbol-level market queries.
type MarketService interface {
	Snapshot(ctx context.Context, symbol string) (*entity.MarketSnapshot, error)
	OHLCV(ctx context.Context, symbol string, days int) ([]entity.Candle, error)
	ResolveSymbol(ctx context.Context, symbol string) (entity.CoinRef, error)
}
