package httpclient

import (
	"time"

	"strategy_dashboard/internal/domain/entity"
)

type coinGeckoSearchResponse struct {
	Coins []entity.CoinRef `json:"coins"`
}

type coinGeckoMarket struct {
	ID                       string           `json:"id"`
	Symbol                   string           `json:"symbol"`
	Name                     string           `json:"name"`
	CurrentPrice             entity.FlexFloat `json:"current_price"`
	MarketCap                entity.FlexFloat `json:"market_cap"`
	TotalVolume              entity.FlexFloat `json:"total_volume"`
	PriceChangePercentage24h entity.FlexFloat `json:"price_change_percentage_24h"`
	High24h                  entity.FlexFloat `json:"high_24h"`
	Low24h                   entity.FlexFloat `json:"low_24h"`
	LastUpdated              string           `json:"last_updated"`
}

func (m coinGeckoMarket) toEntity() entity.MarketSnapshot {
	updated, _ := time.Parse(time.RFC3339Nano, m.LastUpdated)
	return entity.MarketSnapshot{
		ID:        m.ID,
		Symbol:    m.Symbol,
		Name:      m.Name,
		PriceUSD:  m.CurrentPrice.Float64(),
		MarketCap: m.MarketCap.Float64(),
		Volume24h: m.TotalVolume.Float64(),
		Change24h: m.PriceChangePercentage24h.Float64(),
		High24h:   m.High24h.Float64(),
		Low24h:    m.Low24h.Float64(),
		UpdatedAt: updated.UTC(),
	}
}

// coinGeckoMarketChart only carries the series the dashboard reads.
type coinGeckoMarketChart struct {
	TotalVolumes [][]float64 `json:"total_volumes"`
}

func msToTime(ms float64) time.Time {
	return time.UnixMilli(int64(ms)).UTC()
}
