package httpclient

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/domain/entity"
	"strategy_dashboard/internal/pkg/utils"
)

const (
	duneUpstreamName = "dune"
	duneMaxPages     = 5
)

// DuneClient implements port.WalletDataFeed against the Dune Sim API.
type DuneClient struct {
	up       *upstream
	apiKey   string
	txLimit  int
	maxPages int
}

var _ port.WalletDataFeed = (*DuneClient)(nil)

// NewDuneClient creates a Dune Sim client. With an empty apiKey the client reports
// itself unconfigured and every call returns entity.ErrFeedNotConfigured.
func NewDuneClient(opts UpstreamOptions, apiKey string, txLimit int, logger *zap.Logger) *DuneClient {
	headers := map[string]string{}
	for k, v := range opts.Headers {
		headers[k] = v
	}
	if apiKey != "" {
		headers["X-Sim-Api-Key"] = apiKey
	}
	opts.Headers = headers
	if txLimit <= 0 {
		txLimit = 50
	}
	return &DuneClient{
		up:       newUpstream(duneUpstreamName, opts, logger),
		apiKey:   apiKey,
		txLimit:  txLimit,
		maxPages: duneMaxPages,
	}
}

// Configured implements port.WalletDataFeed.
func (c *DuneClient) Configured() bool { return c.apiKey != "" }

func chainQuery(chainIDs []uint64) url.Values {
	q := url.Values{}
	if len(chainIDs) > 0 {
		q.Set("chain_ids", utils.JoinChainIDs(chainIDs))
	}
	return q
}

// Balances implements port.WalletDataFeed. Pages are followed through next_offset.
func (c *DuneClient) Balances(ctx context.Context, address string, chainIDs []uint64) ([]entity.Balance, error) {
	if !c.Configured() {
		return nil, entity.ErrFeedNotConfigured
	}
	q := chainQuery(chainIDs)
	var out []entity.Balance
	for page := 0; page < c.maxPages; page++ {
		var resp duneBalancesResponse
		if err := c.up.getJSON(ctx, "/v1/evm/balances/"+url.PathEscape(address), q, &resp); err != nil {
			return nil, err
		}
		out = append(out, resp.Balances...)
		if resp.NextOffset == "" {
			break
		}
		q.Set("offset", resp.NextOffset)
	}
	c.up.logger.Debug("Fetched balances", zap.String("address", address), zap.Int("count", len(out)))
	return out, nil
}

// Transactions implements port.WalletDataFeed. At most the configured limit is returned.
func (c *DuneClient) Transactions(ctx context.Context, address string, chainIDs []uint64) ([]entity.Transaction, error) {
	if !c.Configured() {
		return nil, entity.ErrFeedNotConfigured
	}
	q := chainQuery(chainIDs)
	q.Set("limit", strconv.Itoa(c.txLimit))

	out := make([]entity.Transaction, 0, c.txLimit)
	for page := 0; page < c.maxPages && len(out) < c.txLimit; page++ {
		var resp duneTransactionsResponse
		if err := c.up.getJSON(ctx, "/v1/evm/transactions/"+url.PathEscape(address), q, &resp); err != nil {
			return nil, err
		}
		for _, tx := range resp.Transactions {
			if len(out) == c.txLimit {
				break
			}
			out = append(out, tx.toEntity())
		}
		if resp.NextOffset == "" {
			break
		}
		q.Set("offset", resp.NextOffset)
	}
	c.up.logger.Debug("Fetched transactions", zap.String("address", address), zap.Int("count", len(out)))
	return out, nil
}

// DefiPositions implements port.WalletDataFeed.
func (c *DuneClient) DefiPositions(ctx context.Context, address string, chainIDs []uint64) ([]entity.DefiPosition, error) {
	if !c.Configured() {
		return nil, entity.ErrFeedNotConfigured
	}
	var resp dunePositionsResponse
	if err := c.up.getJSON(ctx, "/beta/evm/defi/positions/"+url.PathEscape(address), chainQuery(chainIDs), &resp); err != nil {
		return nil, err
	}
	out := make([]entity.DefiPosition, len(resp.Positions))
	for i, p := range resp.Positions {
		out[i] = p.toEntity()
	}
	c.up.logger.Debug("Fetched DeFi positions", zap.String("address", address), zap.Int("count", len(out)))
	return out, nil
}
