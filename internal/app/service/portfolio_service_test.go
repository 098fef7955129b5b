package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/domain/entity"
	networkdefinition "strategy_dashboard/internal/infrastructure/network/definition"
)

const wallet = "0xd8da6bf26964af9d7eed9e03e53415d37aa96045"

var fixedNow = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

func liveFeed() *fakeFeed {
	return &fakeFeed{
		configured: true,
		balances: []entity.Balance{
			{Chain: "ethereum", ChainID: 1, Address: "native", Amount: "1000000000000000000", Symbol: "ETH", Decimals: 18, PriceUSD: 3000, ValueUSD: 3000},
			{Chain: "base", ChainID: 8453, Address: "0xusdc", Amount: "1000000000", Symbol: "USDC", Decimals: 6, PriceUSD: 1, ValueUSD: 1000},
		},
		txs: []entity.Transaction{{Chain: "ethereum", ChainID: 1, Hash: "0x1", Value: "500000000000000000", Status: 1}},
		positions: []entity.DefiPosition{
			{Kind: entity.PositionLendingSupply, Chain: "ethereum", ChainID: 1, Protocol: "Aave V3", SupplyQuote: &entity.Quote{ValueUSD: f64(500)}},
		},
	}
}

func mockFeed() *fakeFeed {
	return &fakeFeed{
		configured: true,
		balances:   []entity.Balance{{Chain: "ethereum", ChainID: 1, Amount: "1", Symbol: "MOCK", Decimals: 0, ValueUSD: 10}},
		txs:        []entity.Transaction{{Hash: "0xmock", Status: 0}},
		positions:  []entity.DefiPosition{{Kind: entity.PositionAMMLP, Protocol: "MockSwap", USDValue: f64(20)}},
	}
}

func newTestPortfolioService(feed, fallback *fakeFeed, timeout time.Duration) *PortfolioServiceImpl {
	np := networkdefinition.NewNetworkDefinitionProvider(nopLogger{}, nil)
	var fb port.WalletDataFeed // a nil *fakeFeed must stay a nil interface
	if fallback != nil {
		fb = fallback
	}
	svc := NewPortfolioService(feed, fb, np, timeout, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestGetPortfolio_Live(t *testing.T) {
	svc := newTestPortfolioService(liveFeed(), mockFeed(), time.Second)

	snap, err := svc.GetPortfolio(context.Background(), wallet, []uint64{1, 8453})
	require.NoError(t, err)

	assert.Equal(t, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", snap.WalletAddress)
	assert.Equal(t, fixedNow, snap.GeneratedAt)
	assert.Equal(t, map[string]entity.SourceState{
		entity.FeedBalances:     entity.SourceLive,
		entity.FeedTransactions: entity.SourceLive,
		entity.FeedPositions:    entity.SourceLive,
	}, snap.Sources)

	require.Len(t, snap.Tokens, 2)
	assert.Equal(t, "ETH", snap.Tokens[0].Symbol)
	assert.InDelta(t, 75.0, snap.Tokens[0].Allocation, 1e-9)
	require.Len(t, snap.Protocols, 1)
	assert.Equal(t, 500.0, snap.Protocols[0].AmountDeployed)
	assert.Equal(t, 4500.0, snap.Totals.TotalValue)
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, entity.TxConfirmed, snap.Transactions[0].Label)
	assert.Equal(t, 0.5, snap.Transactions[0].DisplayAmount)
}

func TestGetPortfolio_UnconfiguredFeedUsesFallback(t *testing.T) {
	feed := &fakeFeed{configured: false}
	svc := newTestPortfolioService(feed, mockFeed(), time.Second)

	snap, err := svc.GetPortfolio(context.Background(), wallet, nil)
	require.NoError(t, err)
	assert.Zero(t, feed.calls.Load(), "an unconfigured feed is never called")
	for _, state := range snap.Sources {
		assert.Equal(t, entity.SourceMock, state)
	}
	require.Len(t, snap.Tokens, 1)
	assert.Equal(t, "MOCK", snap.Tokens[0].Symbol)
}

func TestGetPortfolio_UnconfiguredWithoutFallbackIsEmpty(t *testing.T) {
	svc := newTestPortfolioService(&fakeFeed{}, nil, time.Second)

	snap, err := svc.GetPortfolio(context.Background(), wallet, nil)
	require.NoError(t, err)
	for _, state := range snap.Sources {
		assert.Equal(t, entity.SourceEmpty, state)
	}
	assert.NotNil(t, snap.Tokens)
	assert.Empty(t, snap.Tokens)
	assert.Empty(t, snap.Protocols)
	assert.Zero(t, snap.Totals.TotalValue)
}

func TestGetPortfolio_SingleFeedFailureDegradesOnlyThatFeed(t *testing.T) {
	feed := liveFeed()
	feed.posErr = &entity.UpstreamError{Upstream: "dune", StatusCode: 500, Body: "boom"}
	svc := newTestPortfolioService(feed, nil, time.Second)

	snap, err := svc.GetPortfolio(context.Background(), wallet, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.SourceLive, snap.Sources[entity.FeedBalances])
	assert.Equal(t, entity.SourceLive, snap.Sources[entity.FeedTransactions])
	assert.Equal(t, entity.SourceEmpty, snap.Sources[entity.FeedPositions])
	assert.Len(t, snap.Tokens, 2)
	assert.Empty(t, snap.Protocols)
}

func TestGetPortfolio_FetchTimeoutDegrades(t *testing.T) {
	feed := liveFeed()
	feed.block = true
	svc := newTestPortfolioService(feed, mockFeed(), 20*time.Millisecond)

	snap, err := svc.GetPortfolio(context.Background(), wallet, nil)
	require.NoError(t, err)
	for _, state := range snap.Sources {
		assert.Equal(t, entity.SourceMock, state)
	}
}

func TestGetPortfolio_CancelledContextAbandonsSnapshot(t *testing.T) {
	feed := liveFeed()
	feed.block = true
	svc := newTestPortfolioService(feed, mockFeed(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	snap, err := svc.GetPortfolio(ctx, wallet, nil)
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetPortfolio_InvalidAddressRejectedBeforeFetch(t *testing.T) {
	feed := liveFeed()
	svc := newTestPortfolioService(feed, mockFeed(), time.Second)

	for _, addr := range []string{"", "d8da6bf26964af9d7eed9e03e53415d37aa96045", "0x123", "0xzz8da6bf26964af9d7eed9e03e53415d37aa9604"} {
		_, err := svc.GetPortfolio(context.Background(), addr, nil)
		assert.ErrorIs(t, err, entity.ErrInvalidWalletAddress, addr)
	}
	assert.Zero(t, feed.calls.Load())
}

func TestGetPortfolio_UnknownChain(t *testing.T) {
	feed := liveFeed()
	svc := newTestPortfolioService(feed, nil, time.Second)

	_, err := svc.GetPortfolio(context.Background(), wallet, []uint64{1, 999999})
	assert.ErrorIs(t, err, entity.ErrUnknownChain)
	assert.Zero(t, feed.calls.Load())
}

func TestGetPortfolio_MalformedRecord(t *testing.T) {
	feed := liveFeed()
	feed.balances = append(feed.balances, entity.Balance{Chain: "base", Address: "0xbad", Amount: "12abc", Decimals: 18, ValueUSD: 5})
	svc := newTestPortfolioService(feed, nil, time.Second)

	_, err := svc.GetPortfolio(context.Background(), wallet, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrMalformedRecord)
	var malformed *entity.MalformedRecordError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "balance", malformed.Entity)
}

func TestGetTransactions(t *testing.T) {
	feed := liveFeed()
	feed.txs = append(feed.txs, entity.Transaction{Hash: "0x2", Value: "0", Status: 0})
	svc := newTestPortfolioService(feed, nil, time.Second)

	txs, state, err := svc.GetTransactions(context.Background(), wallet, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.SourceLive, state)
	require.Len(t, txs, 2)
	assert.Equal(t, "0x1", txs[0].Hash)
	assert.Equal(t, entity.TxFailed, txs[1].Label)

	feed.txErr = errors.New("down")
	txs, state, err = svc.GetTransactions(context.Background(), wallet, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.SourceEmpty, state)
	assert.Empty(t, txs)
}

func TestParseChainFilter(t *testing.T) {
	svc := newTestPortfolioService(&fakeFeed{}, nil, time.Second)

	ids, err := svc.ParseChainFilter(" base, 1,Arbitrum ,8453,")
	require.NoError(t, err)
	assert.Equal(t, []uint64{8453, 1, 42161}, ids)

	ids, err = svc.ParseChainFilter("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	_, err = svc.ParseChainFilter("1,solana")
	assert.ErrorIs(t, err, entity.ErrUnknownChain)
}
