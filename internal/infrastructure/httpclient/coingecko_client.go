package httpclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/domain/entity"
)

const coinGeckoUpstreamName = "coingecko"

// CoinGeckoClient implements port.MarketDataClient.
type CoinGeckoClient struct {
	up         *upstream
	vsCurrency string
}

var _ port.MarketDataClient = (*CoinGeckoClient)(nil)

// NewCoinGeckoClient creates a CoinGecko client. The API key header depends on the
// plan: pro base URLs take x-cg-pro-api-key, the public API takes x-cg-demo-api-key.
func NewCoinGeckoClient(opts UpstreamOptions, apiKey, vsCurrency string, logger *zap.Logger) *CoinGeckoClient {
	headers := map[string]string{}
	for k, v := range opts.Headers {
		headers[k] = v
	}
	if apiKey != "" {
		if strings.Contains(opts.BaseURL, "pro-api.coingecko.com") {
			headers["x-cg-pro-api-key"] = apiKey
		} else {
			headers["x-cg-demo-api-key"] = apiKey
		}
	}
	opts.Headers = headers
	if vsCurrency == "" {
		vsCurrency = "usd"
	}
	return &CoinGeckoClient{
		up:         newUpstream(coinGeckoUpstreamName, opts, logger),
		vsCurrency: vsCurrency,
	}
}

// Search implements port.MarketDataClient.
func (c *CoinGeckoClient) Search(ctx context.Context, query string) ([]entity.CoinRef, error) {
	var resp coinGeckoSearchResponse
	if err := c.up.getJSON(ctx, "/search", url.Values{"query": {query}}, &resp); err != nil {
		return nil, err
	}
	return resp.Coins, nil
}

// Markets implements port.MarketDataClient.
func (c *CoinGeckoClient) Markets(ctx context.Context, ids []string) ([]entity.MarketSnapshot, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := url.Values{
		"vs_currency": {c.vsCurrency},
		"ids":         {strings.Join(ids, ",")},
	}
	var resp []coinGeckoMarket
	if err := c.up.getJSON(ctx, "/coins/markets", q, &resp); err != nil {
		return nil, err
	}
	out := make([]entity.MarketSnapshot, len(resp))
	for i, m := range resp {
		out[i] = m.toEntity()
	}
	return out, nil
}

// OHLC implements port.MarketDataClient. Volume is left zero; see Volumes.
func (c *CoinGeckoClient) OHLC(ctx context.Context, id string, days int) ([]entity.Candle, error) {
	q := url.Values{"vs_currency": {c.vsCurrency}, "days": {strconv.Itoa(days)}}
	var rows [][]float64
	if err := c.up.getJSON(ctx, "/coins/"+url.PathEscape(id)+"/ohlc", q, &rows); err != nil {
		return nil, err
	}
	out := make([]entity.Candle, 0, len(rows))
	for i, r := range rows {
		if len(r) < 5 {
			return nil, fmt.Errorf("%w: coingecko: ohlc row %d has %d fields", entity.ErrUpstream, i, len(r))
		}
		out = append(out, entity.Candle{Time: msToTime(r[0]), Open: r[1], High: r[2], Low: r[3], Close: r[4]})
	}
	return out, nil
}

// Volumes implements port.MarketDataClient. Only Time and Volume are set.
func (c *CoinGeckoClient) Volumes(ctx context.Context, id string, days int) ([]entity.Candle, error) {
	q := url.Values{"vs_currency": {c.vsCurrency}, "days": {strconv.Itoa(days)}}
	var resp coinGeckoMarketChart
	if err := c.up.getJSON(ctx, "/coins/"+url.PathEscape(id)+"/market_chart", q, &resp); err != nil {
		return nil, err
	}
	out := make([]entity.Candle, 0, len(resp.TotalVolumes))
	for _, r := range resp.TotalVolumes {
		if len(r) < 2 {
			continue
		}
		out = append(out, entity.Candle{Time: msToTime(r[0]), Volume: r[1]})
	}
	return out, nil
}
